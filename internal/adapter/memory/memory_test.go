package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"healthhub/internal/domain"
)

func TestSnapshotSeedsDemoData(t *testing.T) {
	db := New()
	ctx := context.Background()

	got, err := db.Snapshot(ctx, 1, domain.PeriodWeek)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !reflect.DeepEqual(got, domain.DemoDataSet()) {
		t.Errorf("expected demo payload, got %+v", got)
	}

	// Every period yields the same payload
	for _, p := range domain.Periods {
		d, _ := db.Snapshot(ctx, 1, p)
		if !reflect.DeepEqual(d, got) {
			t.Errorf("period %q returned a different payload", p)
		}
	}
}

func TestAppendsAreOrderedAndPerUser(t *testing.T) {
	db := New(WithSeed(domain.NewHealthDataSet))
	ctx := context.Background()
	userID := int64(1)

	if err := db.AppendWeight(ctx, userID, domain.WeightEntry{Value: 80}); err != nil {
		t.Fatalf("AppendWeight: %v", err)
	}
	meals := []domain.MealEntry{{Name: "a", Calories: 1}, {Name: "b", Calories: 2}}
	for _, m := range meals {
		if err := db.AppendMeal(ctx, userID, m); err != nil {
			t.Fatalf("AppendMeal: %v", err)
		}
	}
	_ = db.AppendSleep(ctx, userID, domain.SleepEntry{Hours: 6})
	_ = db.AppendWater(ctx, userID, 4)
	_ = db.AppendGoal(ctx, userID, domain.GoalEntry{Name: "g", Target: 3})

	d, _ := db.Snapshot(ctx, userID, domain.PeriodToday)
	if !reflect.DeepEqual(d.Weight, []float64{80}) {
		t.Errorf("weight = %v", d.Weight)
	}
	if !reflect.DeepEqual(d.Meals, meals) {
		t.Errorf("meals = %v", d.Meals)
	}
	if len(d.Sleep) != 1 || len(d.Water) != 1 || len(d.Goals) != 1 {
		t.Errorf("unexpected data %+v", d)
	}

	// Other user sees nothing
	other, _ := db.Snapshot(ctx, 999, domain.PeriodToday)
	if len(other.Weight) != 0 {
		t.Error("expected empty series for other user")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	db := New()
	ctx := context.Background()
	d, _ := db.Snapshot(ctx, 1, domain.PeriodWeek)
	d.Weight[0] = 0
	again, _ := db.Snapshot(ctx, 1, domain.PeriodWeek)
	if again.Weight[0] != 72.5 {
		t.Error("snapshot aliases stored data")
	}
}

func TestSnapshotLatencyHonorsContext(t *testing.T) {
	db := New(WithLatency(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := db.Snapshot(ctx, 1, domain.PeriodWeek); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	if _, err := db.GetByUsername(ctx, "alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	u, err := db.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if _, err := db.Create(ctx, "alice"); err == nil {
		t.Error("expected duplicate error")
	}
	got, err := db.GetByUsername(ctx, "alice")
	if err != nil || got.ID != u.ID {
		t.Errorf("GetByUsername = %+v, %v", got, err)
	}
}

func TestArtifacts(t *testing.T) {
	a := NewArtifacts()
	ctx := context.Background()
	data := []byte("a,b")
	if err := a.Put(ctx, "k", "text/csv", data); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data[0] = 'x'
	got, err := a.Get(ctx, "k")
	if err != nil || string(got) != "a,b" {
		t.Errorf("Get = %q, %v", got, err)
	}
	if _, err := a.Get(ctx, "missing"); !errors.Is(err, domain.ErrArtifactNotFound) {
		t.Errorf("expected ErrArtifactNotFound, got %v", err)
	}
}
