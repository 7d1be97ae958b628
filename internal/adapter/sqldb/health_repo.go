package sqldb

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"healthhub/internal/domain"
)

const (
	metricSteps    = "steps"
	metricWater    = "water"
	metricCalories = "calories"
)

type mealRow struct {
	Name     string `db:"name"`
	Calories int    `db:"calories"`
	Time     string `db:"meal_time"`
}

type goalRow struct {
	Name     string  `db:"name"`
	Progress float64 `db:"progress"`
	Target   float64 `db:"target"`
}

// Snapshot loads every series for the user in insertion order. The period is
// ignored.
func (d *DB) Snapshot(ctx context.Context, userID int64, _ domain.Period) (*domain.HealthDataSet, error) {
	out := domain.NewHealthDataSet()

	if err := d.db.SelectContext(ctx, &out.Weight,
		"SELECT value FROM weight_entries WHERE user_id = $1 ORDER BY id", userID); err != nil {
		return nil, err
	}
	if err := d.db.SelectContext(ctx, &out.Sleep,
		"SELECT hours FROM sleep_entries WHERE user_id = $1 ORDER BY id", userID); err != nil {
		return nil, err
	}

	var meals []mealRow
	if err := d.db.SelectContext(ctx, &meals,
		"SELECT name, calories, meal_time FROM meal_entries WHERE user_id = $1 ORDER BY id", userID); err != nil {
		return nil, err
	}
	for _, m := range meals {
		out.Meals = append(out.Meals, domain.MealEntry{Name: m.Name, Calories: m.Calories, Time: m.Time})
	}

	var goals []goalRow
	if err := d.db.SelectContext(ctx, &goals,
		"SELECT name, progress, target FROM goal_entries WHERE user_id = $1 ORDER BY id", userID); err != nil {
		return nil, err
	}
	for _, g := range goals {
		out.Goals = append(out.Goals, domain.GoalEntry{Name: g.Name, Progress: g.Progress, Target: g.Target})
	}

	counts := map[string]*[]int{
		metricSteps:    &out.Steps,
		metricWater:    &out.Water,
		metricCalories: &out.Calories,
	}
	for metric, dst := range counts {
		if err := d.db.SelectContext(ctx, dst,
			"SELECT value FROM daily_counts WHERE user_id = $1 AND metric = $2 ORDER BY id", userID, metric); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AppendWeight inserts a weight entry.
func (d *DB) AppendWeight(ctx context.Context, userID int64, e domain.WeightEntry) error {
	return insertWeight(ctx, d.db, userID, e.Value)
}

// AppendMeal inserts a meal entry.
func (d *DB) AppendMeal(ctx context.Context, userID int64, e domain.MealEntry) error {
	return insertMeal(ctx, d.db, userID, e)
}

// AppendSleep inserts a sleep entry.
func (d *DB) AppendSleep(ctx context.Context, userID int64, e domain.SleepEntry) error {
	return insertSleep(ctx, d.db, userID, e.Hours)
}

// AppendWater inserts a day's water intake.
func (d *DB) AppendWater(ctx context.Context, userID int64, glasses int) error {
	return insertCount(ctx, d.db, userID, metricWater, glasses)
}

// AppendGoal inserts a goal.
func (d *DB) AppendGoal(ctx context.Context, userID int64, e domain.GoalEntry) error {
	return insertGoal(ctx, d.db, userID, e)
}

func insertWeight(ctx context.Context, db sqlx.ExecerContext, userID int64, v float64) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO weight_entries (user_id, value, created_at) VALUES ($1, $2, $3)",
		userID, v, time.Now().UTC())
	return err
}

func insertMeal(ctx context.Context, db sqlx.ExecerContext, userID int64, e domain.MealEntry) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO meal_entries (user_id, name, calories, meal_time, created_at) VALUES ($1, $2, $3, $4, $5)",
		userID, e.Name, e.Calories, e.Time, time.Now().UTC())
	return err
}

func insertSleep(ctx context.Context, db sqlx.ExecerContext, userID int64, hours float64) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO sleep_entries (user_id, hours, created_at) VALUES ($1, $2, $3)",
		userID, hours, time.Now().UTC())
	return err
}

func insertGoal(ctx context.Context, db sqlx.ExecerContext, userID int64, e domain.GoalEntry) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO goal_entries (user_id, name, progress, target, created_at) VALUES ($1, $2, $3, $4, $5)",
		userID, e.Name, e.Progress, e.Target, time.Now().UTC())
	return err
}

func insertCount(ctx context.Context, db sqlx.ExecerContext, userID int64, metric string, v int) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO daily_counts (user_id, metric, value, created_at) VALUES ($1, $2, $3, $4)",
		userID, metric, v, time.Now().UTC())
	return err
}

func seedUser(ctx context.Context, db sqlx.ExecerContext, userID int64, d *domain.HealthDataSet) error {
	for _, v := range d.Weight {
		if err := insertWeight(ctx, db, userID, v); err != nil {
			return err
		}
	}
	for _, m := range d.Meals {
		if err := insertMeal(ctx, db, userID, m); err != nil {
			return err
		}
	}
	for _, h := range d.Sleep {
		if err := insertSleep(ctx, db, userID, h); err != nil {
			return err
		}
	}
	for _, g := range d.Goals {
		if err := insertGoal(ctx, db, userID, g); err != nil {
			return err
		}
	}
	series := []struct {
		metric string
		vals   []int
	}{{metricSteps, d.Steps}, {metricWater, d.Water}, {metricCalories, d.Calories}}
	for _, s := range series {
		for _, v := range s.vals {
			if err := insertCount(ctx, db, userID, s.metric, v); err != nil {
				return err
			}
		}
	}
	return nil
}
