package app_test

import (
	"testing"
	"time"

	"healthhub/internal/app"
	"healthhub/internal/domain"
)

func TestParseWeightForm(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"valid", "72.5", 72.5, false},
		{"trimmed", " 70 ", 70, false},
		{"negative accepted", "-3", -3, false},
		{"empty", "", 0, true},
		{"blank", "   ", 0, true},
		{"not a number", "heavy", 0, true},
		{"nan", "NaN", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := app.ParseWeightForm(tc.in)
			if tc.wantErr {
				if !domain.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseWeightForm_Message(t *testing.T) {
	_, err := app.ParseWeightForm("")
	ve, ok := err.(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Message != app.MsgWeightRequired {
		t.Errorf("message = %q", ve.Message)
	}
}

func TestParseMealForm(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	m, err := app.ParseMealForm("Lunch", "550", "", now)
	if err != nil {
		t.Fatal(err)
	}
	want := domain.MealEntry{Name: "Lunch", Calories: 550, Time: "3:04:05 PM"}
	if m != want {
		t.Errorf("got %+v, want %+v", m, want)
	}

	m, err = app.ParseMealForm("Snack", "-120.7", "10:15", now)
	if err != nil {
		t.Fatal(err)
	}
	if m.Calories != -120 || m.Time != "10:15" {
		t.Errorf("got %+v", m)
	}

	for _, tc := range []struct{ name, cal string }{
		{"", "100"},
		{"Tea", ""},
		{"Tea", "lots"},
		{"Feast", "1e20"},
		{"Fast", "-1e20"},
		{"Feast", "2147483648"},
	} {
		if _, err := app.ParseMealForm(tc.name, tc.cal, "", now); !domain.IsValidation(err) {
			t.Errorf("ParseMealForm(%q, %q): expected validation error, got %v", tc.name, tc.cal, err)
		}
	}
}

func TestParseSleepWaterGoalForms(t *testing.T) {
	if h, err := app.ParseSleepForm("7.5"); err != nil || h != 7.5 {
		t.Errorf("sleep = %v, %v", h, err)
	}
	if _, err := app.ParseSleepForm(""); !domain.IsValidation(err) {
		t.Error("expected validation error for empty sleep")
	}
	if n, err := app.ParseWaterForm("8"); err != nil || n != 8 {
		t.Errorf("water = %v, %v", n, err)
	}
	if _, err := app.ParseWaterForm("x"); !domain.IsValidation(err) {
		t.Error("expected validation error for non-numeric water")
	}
	for _, in := range []string{"1e19", "-1e19", "1e20"} {
		_, err := app.ParseWaterForm(in)
		ve, ok := err.(*domain.ValidationError)
		if !ok || ve.Message != "glasses "+app.MsgNotANumber {
			t.Errorf("ParseWaterForm(%q): expected out of range validation error, got %v", in, err)
		}
	}
	if n, err := app.ParseWaterForm("2147483647"); err != nil || n != 2147483647 {
		t.Errorf("max int32 water = %v, %v", n, err)
	}
	name, target, err := app.ParseGoalForm("Run a 5k", "5")
	if err != nil || name != "Run a 5k" || target != 5 {
		t.Errorf("goal = %q %v %v", name, target, err)
	}
	if _, _, err := app.ParseGoalForm("Run", ""); !domain.IsValidation(err) {
		t.Error("expected validation error for empty target")
	}
}

func TestRecordQuickLog(t *testing.T) {
	store := app.NewHealthStore(&mockHealthRepo{}, nil)
	ctx := userCtx(1)
	if _, err := store.Fetch(ctx, domain.PeriodWeek); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		in   app.QuickLog
		want string
	}{
		{app.QuickLog{Kind: "weight", Weight: "71"}, "Weight logged successfully!"},
		{app.QuickLog{Kind: "meal", MealName: "Toast", Calories: "200"}, "Meal logged successfully!"},
		{app.QuickLog{Kind: "water", Water: "3"}, "3 glasses of water logged!"},
		{app.QuickLog{Kind: "sleep", Sleep: "6.5"}, "6.5 hours of sleep logged!"},
	}
	for _, tc := range tests {
		msg, err := store.Record(ctx, tc.in, now)
		if err != nil {
			t.Fatalf("%s: %v", tc.in.Kind, err)
		}
		if msg != tc.want {
			t.Errorf("%s: message = %q, want %q", tc.in.Kind, msg, tc.want)
		}
	}

	cur, _ := store.Current(ctx)
	if len(cur.Weight) != 1 || len(cur.Meals) != 1 || len(cur.Water) != 1 || len(cur.Sleep) != 1 {
		t.Errorf("unexpected data set %+v", cur)
	}
	if cur.Meals[0].Time != "8:00:00 AM" {
		t.Errorf("meal time = %q", cur.Meals[0].Time)
	}
}

func TestRecordQuickLog_InvalidDoesNotMutate(t *testing.T) {
	store := app.NewHealthStore(&mockHealthRepo{}, nil)
	ctx := userCtx(1)
	if _, err := store.Fetch(ctx, domain.PeriodWeek); err != nil {
		t.Fatal(err)
	}
	for _, q := range []app.QuickLog{{Kind: "weight"}, {Kind: "meal", MealName: "Tea"}, {Kind: "dance"}} {
		if _, err := store.Record(ctx, q, time.Now()); !domain.IsValidation(err) {
			t.Errorf("%+v: expected validation error, got %v", q, err)
		}
	}
	cur, _ := store.Current(ctx)
	if len(cur.Weight)+len(cur.Meals) != 0 {
		t.Errorf("invalid quick log mutated data: %+v", cur)
	}
}
