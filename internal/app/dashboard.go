package app

import "healthhub/internal/domain"

// Targets are the daily goals the dashboard compares against.
type Targets struct {
	StartWeight  float64 `json:"startWeight"`
	TargetWeight float64 `json:"targetWeight"`
	Calories     int     `json:"calories"`
	SleepHours   float64 `json:"sleepHours"`
	WaterGlasses int     `json:"waterGlasses"`
	Steps        int     `json:"steps"`
}

// Quote shown at the bottom of the dashboard.
const (
	Quote       = "The groundwork for all happiness is good health."
	QuoteAuthor = "Leigh Hunt"
)

// Stat is one dashboard card.
type Stat struct {
	Value    float64 `json:"value"`
	Target   float64 `json:"target"`
	Progress float64 `json:"progress"`
}

// Dashboard summarizes the latest sample of every series.
type Dashboard struct {
	Weight   Stat   `json:"weight"`
	Calories Stat   `json:"calories"`
	Sleep    Stat   `json:"sleep"`
	Water    Stat   `json:"water"`
	Steps    Stat   `json:"steps"`
	Quote    string `json:"quote"`
	Author   string `json:"author"`
}

// Percent returns value/target*100, or 0 when target is 0.
func Percent(value, target float64) float64 {
	if target == 0 {
		return 0
	}
	return value / target * 100
}

func lastFloat(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

func lastInt(s []int) float64 {
	if len(s) == 0 {
		return 0
	}
	return float64(s[len(s)-1])
}

// BuildDashboard computes the dashboard for data. A nil data set yields zero
// values with the configured targets.
func BuildDashboard(data *domain.HealthDataSet, t Targets) Dashboard {
	if data == nil {
		data = domain.NewHealthDataSet()
	}
	cur := lastFloat(data.Weight)
	weight := Stat{Value: cur, Target: t.TargetWeight}
	if len(data.Weight) > 0 {
		weight.Progress = Percent(t.StartWeight-cur, t.StartWeight-t.TargetWeight)
	}
	stat := func(v, target float64) Stat {
		return Stat{Value: v, Target: target, Progress: Percent(v, target)}
	}
	return Dashboard{
		Weight:   weight,
		Calories: stat(lastInt(data.Calories), float64(t.Calories)),
		Sleep:    stat(lastFloat(data.Sleep), t.SleepHours),
		Water:    stat(lastInt(data.Water), float64(t.WaterGlasses)),
		Steps:    stat(lastInt(data.Steps), float64(t.Steps)),
		Quote:    Quote,
		Author:   QuoteAuthor,
	}
}
