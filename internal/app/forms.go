package app

import (
	"math"
	"strconv"
	"strings"
	"time"

	"healthhub/internal/domain"
)

// MealTimeLayout is how meals logged without an explicit time are stamped.
const MealTimeLayout = "3:04:05 PM"

// Validation messages shown to the user.
const (
	MsgWeightRequired = "Please enter your weight"
	MsgMealRequired   = "Please enter a meal name and calories"
	MsgSleepRequired  = "Please enter your sleep hours"
	MsgWaterRequired  = "Please enter the number of glasses"
	MsgGoalRequired   = "Please enter a goal name and target"
	MsgNotANumber     = "must be a number"
)

func required(field, value, msg string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &domain.ValidationError{Field: field, Message: msg}
	}
	return v, nil
}

func parseNumber(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &domain.ValidationError{Field: field, Message: field + " " + MsgNotANumber}
	}
	return f, nil
}

// parseCount parses a number that is stored as an integer. The value is
// truncated and must fit in an int32 column.
func parseCount(field, value string) (int, error) {
	f, err := parseNumber(field, value)
	if err != nil {
		return 0, err
	}
	f = math.Trunc(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, &domain.ValidationError{Field: field, Message: field + " " + MsgNotANumber}
	}
	return int(f), nil
}

// ParseWeightForm validates the weight screen input.
func ParseWeightForm(weight string) (float64, error) {
	v, err := required("weight", weight, MsgWeightRequired)
	if err != nil {
		return 0, err
	}
	return parseNumber("weight", v)
}

// ParseMealForm validates the meal screen input. Calories are truncated to
// an integer and may be negative. An empty mealTime is stamped from now.
func ParseMealForm(name, calories, mealTime string, now time.Time) (domain.MealEntry, error) {
	n, err := required("name", name, MsgMealRequired)
	if err != nil {
		return domain.MealEntry{}, err
	}
	c, err := required("calories", calories, MsgMealRequired)
	if err != nil {
		return domain.MealEntry{}, err
	}
	kcal, err := parseCount("calories", c)
	if err != nil {
		return domain.MealEntry{}, err
	}
	t := strings.TrimSpace(mealTime)
	if t == "" {
		t = now.Format(MealTimeLayout)
	}
	return domain.MealEntry{Name: n, Calories: kcal, Time: t}, nil
}

// ParseSleepForm validates the sleep screen input.
func ParseSleepForm(hours string) (float64, error) {
	v, err := required("hours", hours, MsgSleepRequired)
	if err != nil {
		return 0, err
	}
	return parseNumber("hours", v)
}

// ParseWaterForm validates the glasses of water input.
func ParseWaterForm(glasses string) (int, error) {
	v, err := required("glasses", glasses, MsgWaterRequired)
	if err != nil {
		return 0, err
	}
	return parseCount("glasses", v)
}

// ParseGoalForm validates the goal screen input.
func ParseGoalForm(name, target string) (string, float64, error) {
	n, err := required("name", name, MsgGoalRequired)
	if err != nil {
		return "", 0, err
	}
	t, err := required("target", target, MsgGoalRequired)
	if err != nil {
		return "", 0, err
	}
	f, err := parseNumber("target", t)
	if err != nil {
		return "", 0, err
	}
	return n, f, nil
}
