package sqldb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthhub/internal/domain"
)

func openTest(t *testing.T, opts ...Option) *DB {
	t.Helper()
	db, err := Open(context.Background(), DriverSQLite, ":memory:", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn")
	require.Error(t, err)
}

func TestUsers(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	_, err := db.GetByUsername(ctx, "alice")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))

	u, err := db.Create(ctx, "alice")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	got, err := db.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "alice", got.Username)

	_, err = db.Create(ctx, "alice")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestSnapshotEmpty(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	u, err := db.Create(ctx, "bob")
	require.NoError(t, err)

	d, err := db.Snapshot(ctx, u.ID, domain.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, domain.NewHealthDataSet(), d)
}

func TestAppendsRoundTrip(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	u, err := db.Create(ctx, "carol")
	require.NoError(t, err)

	require.NoError(t, db.AppendWeight(ctx, u.ID, domain.WeightEntry{Value: 80.5}))
	require.NoError(t, db.AppendWeight(ctx, u.ID, domain.WeightEntry{Value: 80.1}))
	require.NoError(t, db.AppendMeal(ctx, u.ID, domain.MealEntry{Name: "Soup", Calories: -5, Time: "12:00"}))
	require.NoError(t, db.AppendMeal(ctx, u.ID, domain.MealEntry{Name: "Tea", Calories: 10, Time: "16:00"}))
	require.NoError(t, db.AppendSleep(ctx, u.ID, domain.SleepEntry{Hours: 6.5}))
	require.NoError(t, db.AppendWater(ctx, u.ID, 7))
	require.NoError(t, db.AppendGoal(ctx, u.ID, domain.GoalEntry{Name: "Swim", Target: 20}))

	d, err := db.Snapshot(ctx, u.ID, domain.PeriodYear)
	require.NoError(t, err)
	assert.Equal(t, []float64{80.5, 80.1}, d.Weight)
	assert.Equal(t, []domain.MealEntry{
		{Name: "Soup", Calories: -5, Time: "12:00"},
		{Name: "Tea", Calories: 10, Time: "16:00"},
	}, d.Meals)
	assert.Equal(t, []float64{6.5}, d.Sleep)
	assert.Equal(t, []int{7}, d.Water)
	assert.Equal(t, []domain.GoalEntry{{Name: "Swim", Target: 20}}, d.Goals)

	other, err := db.Snapshot(ctx, u.ID+100, domain.PeriodYear)
	require.NoError(t, err)
	assert.Empty(t, other.Weight)
}

func TestDemoSeed(t *testing.T) {
	db := openTest(t, WithDemoSeed())
	ctx := context.Background()
	u, err := db.Create(ctx, "demo")
	require.NoError(t, err)

	for _, p := range domain.Periods {
		d, err := db.Snapshot(ctx, u.ID, p)
		require.NoError(t, err)
		assert.Equal(t, domain.DemoDataSet(), d, "period %s", p)
	}
}
