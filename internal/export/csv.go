package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"healthhub/internal/domain"
)

var csvHeader = []string{"series", "index", "name", "value", "target", "time"}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// CSV writes one row per sample in a long format.
func CSV(w io.Writer, data *domain.HealthDataSet, _ Meta) error {
	cw := csv.NewWriter(w)
	rows := [][]string{csvHeader}
	for i, v := range data.Weight {
		rows = append(rows, []string{"weight", strconv.Itoa(i), "", ftoa(v), "", ""})
	}
	for i, m := range data.Meals {
		rows = append(rows, []string{"meals", strconv.Itoa(i), m.Name, strconv.Itoa(m.Calories), "", m.Time})
	}
	for i, v := range data.Sleep {
		rows = append(rows, []string{"sleep", strconv.Itoa(i), "", ftoa(v), "", ""})
	}
	for i, g := range data.Goals {
		rows = append(rows, []string{"goals", strconv.Itoa(i), g.Name, ftoa(g.Progress), ftoa(g.Target), ""})
	}
	ints := []struct {
		name string
		vals []int
	}{{"steps", data.Steps}, {"water", data.Water}, {"calories", data.Calories}}
	for _, s := range ints {
		for i, v := range s.vals {
			rows = append(rows, []string{s.name, strconv.Itoa(i), "", strconv.Itoa(v), "", ""})
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
