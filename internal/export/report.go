package export

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"healthhub/internal/domain"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Markdown writes the human readable report source.
func Markdown(w io.Writer, data *domain.HealthDataSet, meta Meta) {
	fmt.Fprintf(w, "# Health report\n\n")
	fmt.Fprintf(w, "%s, generated %s", meta.Range.Label(), meta.GeneratedAt.Format("2 Jan 2006 15:04"))
	if meta.Username != "" {
		fmt.Fprintf(w, " for %s", meta.Username)
	}
	fmt.Fprintf(w, ".\n\n")

	series := func(title, unit string, vals []string) {
		fmt.Fprintf(w, "## %s\n\n", title)
		if len(vals) == 0 {
			fmt.Fprintf(w, "No entries.\n\n")
			return
		}
		fmt.Fprintf(w, "| # | %s |\n|---|---|\n", unit)
		for i, v := range vals {
			fmt.Fprintf(w, "| %d | %s |\n", i+1, v)
		}
		fmt.Fprintln(w)
	}
	floats := func(s []float64) []string {
		out := make([]string, len(s))
		for i, v := range s {
			out[i] = ftoa(v)
		}
		return out
	}
	ints := func(s []int) []string {
		out := make([]string, len(s))
		for i, v := range s {
			out[i] = fmt.Sprint(v)
		}
		return out
	}

	series("Weight", "kg", floats(data.Weight))

	fmt.Fprintf(w, "## Meals\n\n")
	if len(data.Meals) == 0 {
		fmt.Fprintf(w, "No entries.\n\n")
	} else {
		fmt.Fprintf(w, "| Meal | Calories | Time |\n|---|---|---|\n")
		for _, m := range data.Meals {
			fmt.Fprintf(w, "| %s | %d | %s |\n", escapeCell(m.Name), m.Calories, escapeCell(m.Time))
		}
		fmt.Fprintln(w)
	}

	series("Sleep", "hours", floats(data.Sleep))

	fmt.Fprintf(w, "## Goals\n\n")
	if len(data.Goals) == 0 {
		fmt.Fprintf(w, "No entries.\n\n")
	} else {
		fmt.Fprintf(w, "| Goal | Progress | Target |\n|---|---|---|\n")
		for _, g := range data.Goals {
			fmt.Fprintf(w, "| %s | %s%% | %s |\n", escapeCell(g.Name), ftoa(g.Progress), ftoa(g.Target))
		}
		fmt.Fprintln(w)
	}

	series("Steps", "steps", ints(data.Steps))
	series("Water", "glasses", ints(data.Water))
	series("Calories", "kcal", ints(data.Calories))
}

// escapeCell keeps user text from breaking the table or injecting markup.
func escapeCell(s string) string {
	var b bytes.Buffer
	for _, r := range html.EscapeString(s) {
		if r == '|' {
			b.WriteString(`\|`)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Report writes a standalone HTML page rendered from the Markdown report.
func Report(w io.Writer, data *domain.HealthDataSet, meta Meta) error {
	var src bytes.Buffer
	Markdown(&src, data, meta)
	var body bytes.Buffer
	if err := md.Convert(src.Bytes(), &body); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>Health report</title></head>\n<body>\n%s</body>\n</html>\n", body.Bytes())
	return err
}
