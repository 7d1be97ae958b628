package domain

// DemoDataSet returns the sample payload new users start with.
func DemoDataSet() *HealthDataSet {
	return &HealthDataSet{
		Weight: []float64{72.5, 72.3, 72.1, 71.9, 71.8},
		Meals: []MealEntry{
			{Name: "Breakfast", Calories: 350, Time: "08:00"},
			{Name: "Lunch", Calories: 550, Time: "12:30"},
			{Name: "Dinner", Calories: 650, Time: "19:00"},
		},
		Sleep: []float64{7.5, 8.0, 7.2, 8.1, 7.8},
		Goals: []GoalEntry{
			{Name: "Lose 2kg", Progress: 60, Target: 70},
			{Name: "Walk 10k steps", Progress: 85, Target: 10000},
		},
		Steps:    []int{8500, 9200, 7800, 10100, 9500},
		Water:    []int{6, 8, 7, 8, 6},
		Calories: []int{1450, 1620, 1380, 1550, 1490},
	}
}
