package app_test

import (
	"context"
	"sync"

	"healthhub/internal/app"
	"healthhub/internal/domain"
)

type mockHealthRepo struct {
	snapshotFn func(ctx context.Context, userID int64, p domain.Period) (*domain.HealthDataSet, error)
	weightFn   func(ctx context.Context, userID int64, e domain.WeightEntry) error
	mealFn     func(ctx context.Context, userID int64, e domain.MealEntry) error
	sleepFn    func(ctx context.Context, userID int64, e domain.SleepEntry) error
	waterFn    func(ctx context.Context, userID int64, glasses int) error
	goalFn     func(ctx context.Context, userID int64, e domain.GoalEntry) error
}

func (m *mockHealthRepo) Snapshot(ctx context.Context, userID int64, p domain.Period) (*domain.HealthDataSet, error) {
	if m.snapshotFn != nil {
		return m.snapshotFn(ctx, userID, p)
	}
	return domain.NewHealthDataSet(), nil
}

func (m *mockHealthRepo) AppendWeight(ctx context.Context, userID int64, e domain.WeightEntry) error {
	if m.weightFn != nil {
		return m.weightFn(ctx, userID, e)
	}
	return nil
}

func (m *mockHealthRepo) AppendMeal(ctx context.Context, userID int64, e domain.MealEntry) error {
	if m.mealFn != nil {
		return m.mealFn(ctx, userID, e)
	}
	return nil
}

func (m *mockHealthRepo) AppendSleep(ctx context.Context, userID int64, e domain.SleepEntry) error {
	if m.sleepFn != nil {
		return m.sleepFn(ctx, userID, e)
	}
	return nil
}

func (m *mockHealthRepo) AppendWater(ctx context.Context, userID int64, glasses int) error {
	if m.waterFn != nil {
		return m.waterFn(ctx, userID, glasses)
	}
	return nil
}

func (m *mockHealthRepo) AppendGoal(ctx context.Context, userID int64, e domain.GoalEntry) error {
	if m.goalFn != nil {
		return m.goalFn(ctx, userID, e)
	}
	return nil
}

type recordedEvent struct {
	subject string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{subject, payload})
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func userCtx(id int64) context.Context {
	return app.WithUser(context.Background(), &domain.User{ID: id, Username: "demo"})
}
