// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"fmt"
)

// Period selects the time window a HealthDataSet is fetched for.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DefaultPeriod is used when no period was selected.
const DefaultPeriod = PeriodWeek

// Periods lists the selectable periods in display order.
var Periods = []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodYear}

// Label returns the human readable name of the period.
func (p Period) Label() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodWeek:
		return "This Week"
	case PeriodMonth:
		return "This Month"
	case PeriodYear:
		return "This Year"
	}
	return string(p)
}

// ParsePeriod parses a period name. An empty string yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return DefaultPeriod, nil
	}
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// WeightEntry is a single weight measurement in kilograms.
type WeightEntry struct {
	Value float64 `json:"value"`
}

// MealEntry is a logged meal. Time is free-form as entered or stamped.
type MealEntry struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Time     string `json:"time"`
}

// SleepEntry is a night of sleep in hours.
type SleepEntry struct {
	Hours float64 `json:"hours"`
}

// GoalEntry is a user goal with progress as a percentage.
type GoalEntry struct {
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
	Target   float64 `json:"target"`
}

// HealthDataSet is the aggregate of every series for one user and period.
// All series are insertion ordered.
type HealthDataSet struct {
	Weight   []float64   `json:"weight"`
	Meals    []MealEntry `json:"meals"`
	Sleep    []float64   `json:"sleep"`
	Goals    []GoalEntry `json:"goals"`
	Steps    []int       `json:"steps"`
	Water    []int       `json:"water"`
	Calories []int       `json:"calories"`
}

// NewHealthDataSet returns a data set with every series empty but non-nil.
func NewHealthDataSet() *HealthDataSet {
	return &HealthDataSet{
		Weight:   []float64{},
		Meals:    []MealEntry{},
		Sleep:    []float64{},
		Goals:    []GoalEntry{},
		Steps:    []int{},
		Water:    []int{},
		Calories: []int{},
	}
}

// Clone returns a deep copy so callers can append without aliasing.
func (d *HealthDataSet) Clone() *HealthDataSet {
	if d == nil {
		return NewHealthDataSet()
	}
	return &HealthDataSet{
		Weight:   append([]float64{}, d.Weight...),
		Meals:    append([]MealEntry{}, d.Meals...),
		Sleep:    append([]float64{}, d.Sleep...),
		Goals:    append([]GoalEntry{}, d.Goals...),
		Steps:    append([]int{}, d.Steps...),
		Water:    append([]int{}, d.Water...),
		Calories: append([]int{}, d.Calories...),
	}
}

// HealthRepository is the port for health data persistence.
//
// Snapshot accepts a period but implementations return the same payload for
// every period.
type HealthRepository interface {
	Snapshot(ctx context.Context, userID int64, period Period) (*HealthDataSet, error)
	AppendWeight(ctx context.Context, userID int64, e WeightEntry) error
	AppendMeal(ctx context.Context, userID int64, e MealEntry) error
	AppendSleep(ctx context.Context, userID int64, e SleepEntry) error
	AppendWater(ctx context.Context, userID int64, glasses int) error
	AppendGoal(ctx context.Context, userID int64, e GoalEntry) error
}
