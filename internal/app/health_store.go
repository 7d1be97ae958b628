package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"healthhub/internal/domain"
	"healthhub/internal/metrics"
)

// Series names used in metrics and appended events.
const (
	SeriesWeight = "weight"
	SeriesMeals  = "meals"
	SeriesSleep  = "sleep"
	SeriesWater  = "water"
	SeriesGoals  = "goals"
)

// EntryAppended is the payload published after a successful append.
type EntryAppended struct {
	UserID int64  `json:"userId"`
	Series string `json:"series"`
	Entry  any    `json:"entry"`
}

// HealthStore is the data-access object for a user's health data. It keeps
// the last fetched snapshot per user and applies appends to it so screens see
// their own writes without a re-fetch.
type HealthStore struct {
	repo   domain.HealthRepository
	events domain.EventPublisher

	mu      sync.Mutex
	current map[int64]*domain.HealthDataSet
}

// NewHealthStore creates a HealthStore backed by repo. A nil publisher
// disables events.
func NewHealthStore(repo domain.HealthRepository, events domain.EventPublisher) *HealthStore {
	if events == nil {
		events = domain.NopPublisher{}
	}
	return &HealthStore{
		repo:    repo,
		events:  events,
		current: make(map[int64]*domain.HealthDataSet),
	}
}

// Fetch loads the user's data set for period. The period is validated but
// does not change the payload.
func (s *HealthStore) Fetch(ctx context.Context, period domain.Period) (*domain.HealthDataSet, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParsePeriod(string(period)); err != nil {
		return nil, err
	}

	data, err := s.repo.Snapshot(ctx, user.ID, period)
	if err != nil {
		metrics.Fetches.WithLabelValues(string(period), "error").Inc()
		return nil, fmt.Errorf("fetch health data: %w", err)
	}
	metrics.Fetches.WithLabelValues(string(period), "ok").Inc()

	s.mu.Lock()
	s.current[user.ID] = data.Clone()
	s.mu.Unlock()
	return data.Clone(), nil
}

// Current returns the last fetched snapshot for the user in ctx, including
// appends made since. ok is false when nothing was fetched yet.
func (s *HealthStore) Current(ctx context.Context) (data *domain.HealthDataSet, ok bool) {
	user := UserFrom(ctx)
	if user == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.current[user.ID]
	if !ok {
		return nil, false
	}
	return d.Clone(), true
}

// AppendWeight appends a weight in kilograms. No range check is applied.
func (s *HealthStore) AppendWeight(ctx context.Context, value float64) error {
	e := domain.WeightEntry{Value: value}
	return s.append(ctx, SeriesWeight, e,
		func(uid int64) error { return s.repo.AppendWeight(ctx, uid, e) },
		func(d *domain.HealthDataSet) { d.Weight = append(d.Weight, value) })
}

// AppendMeal appends a meal.
func (s *HealthStore) AppendMeal(ctx context.Context, e domain.MealEntry) error {
	return s.append(ctx, SeriesMeals, e,
		func(uid int64) error { return s.repo.AppendMeal(ctx, uid, e) },
		func(d *domain.HealthDataSet) { d.Meals = append(d.Meals, e) })
}

// AppendSleep appends a night of sleep in hours.
func (s *HealthStore) AppendSleep(ctx context.Context, hours float64) error {
	e := domain.SleepEntry{Hours: hours}
	return s.append(ctx, SeriesSleep, e,
		func(uid int64) error { return s.repo.AppendSleep(ctx, uid, e) },
		func(d *domain.HealthDataSet) { d.Sleep = append(d.Sleep, hours) })
}

// AppendWater appends a day's water intake in glasses.
func (s *HealthStore) AppendWater(ctx context.Context, glasses int) error {
	return s.append(ctx, SeriesWater, glasses,
		func(uid int64) error { return s.repo.AppendWater(ctx, uid, glasses) },
		func(d *domain.HealthDataSet) { d.Water = append(d.Water, glasses) })
}

// AddGoal appends a new goal. Progress always starts at zero.
func (s *HealthStore) AddGoal(ctx context.Context, name string, target float64) error {
	e := domain.GoalEntry{Name: name, Target: target}
	return s.append(ctx, SeriesGoals, e,
		func(uid int64) error { return s.repo.AppendGoal(ctx, uid, e) },
		func(d *domain.HealthDataSet) { d.Goals = append(d.Goals, e) })
}

// append persists an entry for the user in ctx. Without a user it does
// nothing and reports success.
func (s *HealthStore) append(ctx context.Context, series string, entry any, persist func(int64) error, apply func(*domain.HealthDataSet)) error {
	user := UserFrom(ctx)
	if user == nil {
		slog.DebugContext(ctx, "append skipped without user", "series", series)
		return nil
	}
	if err := persist(user.ID); err != nil {
		return fmt.Errorf("append %s: %w", series, err)
	}

	s.mu.Lock()
	if d, ok := s.current[user.ID]; ok {
		apply(d)
	}
	s.mu.Unlock()

	metrics.Appends.WithLabelValues(series).Inc()
	ev := EntryAppended{UserID: user.ID, Series: series, Entry: entry}
	if err := s.events.Publish(ctx, domain.EventEntryAppended, ev); err != nil {
		slog.WarnContext(ctx, "publish append event", "series", series, "error", err)
	}
	return nil
}
