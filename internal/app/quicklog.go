package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"healthhub/internal/domain"
)

// QuickLog is the combined quick-log form.
type QuickLog struct {
	Kind     string
	Weight   string
	MealName string
	Calories string
	Water    string
	Sleep    string
}

// Record validates q and appends it to the matching series. It returns the
// message to show the user.
func (s *HealthStore) Record(ctx context.Context, q QuickLog, now time.Time) (string, error) {
	switch q.Kind {
	case "weight":
		v, err := ParseWeightForm(q.Weight)
		if err != nil {
			return "", err
		}
		if err := s.AppendWeight(ctx, v); err != nil {
			return "", err
		}
		return "Weight logged successfully!", nil
	case "meal":
		m, err := ParseMealForm(q.MealName, q.Calories, "", now)
		if err != nil {
			return "", err
		}
		if err := s.AppendMeal(ctx, m); err != nil {
			return "", err
		}
		return "Meal logged successfully!", nil
	case "water":
		n, err := ParseWaterForm(q.Water)
		if err != nil {
			return "", err
		}
		if err := s.AppendWater(ctx, n); err != nil {
			return "", err
		}
		return fmt.Sprintf("%d glasses of water logged!", n), nil
	case "sleep":
		h, err := ParseSleepForm(q.Sleep)
		if err != nil {
			return "", err
		}
		if err := s.AppendSleep(ctx, h); err != nil {
			return "", err
		}
		return strconv.FormatFloat(h, 'f', -1, 64) + " hours of sleep logged!", nil
	}
	return "", &domain.ValidationError{Field: "kind", Message: "Choose what to log"}
}
