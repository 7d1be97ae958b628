package app_test

import (
	"math"
	"testing"

	"healthhub/internal/app"
	"healthhub/internal/domain"
)

var targets = app.Targets{StartWeight: 75, TargetWeight: 70, Calories: 2000, SleepHours: 8, WaterGlasses: 8, Steps: 10000}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPercent(t *testing.T) {
	if got := app.Percent(5, 0); got != 0 {
		t.Errorf("Percent(5, 0) = %v", got)
	}
	if got := app.Percent(1450, 2000); !near(got, 72.5) {
		t.Errorf("Percent(1450, 2000) = %v", got)
	}
}

func TestBuildDashboard(t *testing.T) {
	data := &domain.HealthDataSet{
		Weight:   []float64{74, 72.5},
		Sleep:    []float64{7.5},
		Steps:    []int{8500},
		Water:    []int{6},
		Calories: []int{1450},
	}
	d := app.BuildDashboard(data, targets)

	if d.Weight.Value != 72.5 || !near(d.Weight.Progress, 50) {
		t.Errorf("weight = %+v", d.Weight)
	}
	if !near(d.Calories.Progress, 72.5) || d.Calories.Target != 2000 {
		t.Errorf("calories = %+v", d.Calories)
	}
	if !near(d.Sleep.Progress, 93.75) {
		t.Errorf("sleep = %+v", d.Sleep)
	}
	if !near(d.Water.Progress, 75) {
		t.Errorf("water = %+v", d.Water)
	}
	if !near(d.Steps.Progress, 85) {
		t.Errorf("steps = %+v", d.Steps)
	}
	if d.Quote != app.Quote || d.Author != app.QuoteAuthor {
		t.Errorf("quote = %q %q", d.Quote, d.Author)
	}
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := app.BuildDashboard(nil, app.Targets{})
	if d.Weight.Progress != 0 || d.Steps.Progress != 0 || d.Calories.Value != 0 {
		t.Errorf("dashboard = %+v", d)
	}
}

func TestBuildDashboard_DemoWeightProgress(t *testing.T) {
	d := app.BuildDashboard(domain.DemoDataSet(), targets)
	// 75 -> 71.8 of a planned 75 -> 70 loss.
	if !near(d.Weight.Progress, 64) {
		t.Errorf("weight progress = %v, want 64", d.Weight.Progress)
	}
}
