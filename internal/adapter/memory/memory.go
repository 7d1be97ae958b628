// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"healthhub/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu      sync.Mutex
	health  map[int64]*domain.HealthDataSet
	users   []*domain.User
	latency time.Duration
	seed    func() *domain.HealthDataSet

	userIDCounter int64
}

// Option configures a DB.
type Option func(*DB)

// WithLatency delays every snapshot read by d.
func WithLatency(d time.Duration) Option {
	return func(db *DB) { db.latency = d }
}

// WithSeed sets the data set a user starts with. The default is the demo
// payload; pass domain.NewHealthDataSet for empty series.
func WithSeed(fn func() *domain.HealthDataSet) Option {
	return func(db *DB) { db.seed = fn }
}

// New creates a new in-memory database.
func New(opts ...Option) *DB {
	db := &DB{
		health: make(map[int64]*domain.HealthDataSet),
		seed:   domain.DemoDataSet,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Ensure interfaces are met.
var _ domain.HealthRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)

// --- HealthRepository ---

// dataLocked returns the user's data set, seeding it on first use.
func (db *DB) dataLocked(userID int64) *domain.HealthDataSet {
	d, ok := db.health[userID]
	if !ok {
		d = db.seed()
		db.health[userID] = d
	}
	return d
}

// Snapshot returns a copy of the user's data. The period is ignored.
func (db *DB) Snapshot(ctx context.Context, userID int64, _ domain.Period) (*domain.HealthDataSet, error) {
	if db.latency > 0 {
		t := time.NewTimer(db.latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.dataLocked(userID).Clone(), nil
}

// AppendWeight appends a weight entry.
func (db *DB) AppendWeight(ctx context.Context, userID int64, e domain.WeightEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	d := db.dataLocked(userID)
	d.Weight = append(d.Weight, e.Value)
	return nil
}

// AppendMeal appends a meal entry.
func (db *DB) AppendMeal(ctx context.Context, userID int64, e domain.MealEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	d := db.dataLocked(userID)
	d.Meals = append(d.Meals, e)
	return nil
}

// AppendSleep appends a sleep entry.
func (db *DB) AppendSleep(ctx context.Context, userID int64, e domain.SleepEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	d := db.dataLocked(userID)
	d.Sleep = append(d.Sleep, e.Hours)
	return nil
}

// AppendWater appends a day's water intake.
func (db *DB) AppendWater(ctx context.Context, userID int64, glasses int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	d := db.dataLocked(userID)
	d.Water = append(d.Water, glasses)
	return nil
}

// AppendGoal appends a goal.
func (db *DB) AppendGoal(ctx context.Context, userID int64, e domain.GoalEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	d := db.dataLocked(userID)
	d.Goals = append(d.Goals, e)
	return nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:        db.userIDCounter,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	db.users = append(db.users, u)
	c := *u
	return &c, nil
}

// --- ArtifactStore ---

type object struct {
	contentType string
	data        []byte
}

// Artifacts keeps export artifacts in memory.
type Artifacts struct {
	mu   sync.Mutex
	objs map[string]object
}

var _ domain.ArtifactStore = (*Artifacts)(nil)

// NewArtifacts creates an empty artifact store.
func NewArtifacts() *Artifacts {
	return &Artifacts{objs: make(map[string]object)}
}

// Put stores a copy of data under key.
func (a *Artifacts) Put(ctx context.Context, key, contentType string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objs[key] = object{contentType: contentType, data: append([]byte(nil), data...)}
	return nil
}

// Get returns a copy of the data stored under key.
func (a *Artifacts) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	o, ok := a.objs[key]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	return append([]byte(nil), o.data...), nil
}
