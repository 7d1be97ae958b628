package ui

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"healthhub/internal/domain"
)

var printer = message.NewPrinter(language.English)

// Thousands formats n with thousands separators, e.g. 10,000.
func Thousands(n float64) string {
	return printer.Sprintf("%.0f", n)
}

// Ago formats t relative to now, e.g. "2 hours ago".
func Ago(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// Weight formats a kilogram value in unit with one decimal.
func Weight(kg float64, unit string) string {
	if unit != domain.UnitLb {
		unit = domain.UnitKg
	}
	v := domain.ConvertWeight(kg, domain.UnitKg, unit)
	return strconv.FormatFloat(v, 'f', 1, 64) + " " + unit
}

// Percent formats a progress ratio clamped to 0..100 for progress bars.
func Percent(p float64) string {
	switch {
	case p < 0:
		p = 0
	case p > 100:
		p = 100
	}
	return strconv.FormatFloat(p, 'f', 0, 64)
}

// Number formats f without trailing zeros.
func Number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
