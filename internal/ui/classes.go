package ui

import twmerge "github.com/Oudwins/tailwind-merge-go"

const (
	tabBase    = "flex-1 rounded-md px-3 py-2 text-sm font-medium text-gray-600 hover:bg-gray-100"
	tabActive  = "bg-emerald-600 text-white hover:bg-emerald-700"
	buttonBase = "inline-flex items-center justify-center rounded-md px-4 py-2 text-sm font-medium"
)

var buttonVariants = map[string]string{
	"primary": "bg-emerald-600 text-white hover:bg-emerald-700",
	"outline": "border border-gray-300 bg-white text-gray-800 hover:bg-gray-50",
	"ghost":   "bg-transparent text-gray-700 hover:bg-gray-100",
	"small":   "px-2 py-1 text-xs",
}

// TabClass returns the classes of a navigation tab.
func TabClass(active bool) string {
	if active {
		return twmerge.Merge(tabBase, tabActive)
	}
	return tabBase
}

// ButtonClass merges the base button classes with the named variants. Later
// variants win on conflicts.
func ButtonClass(variants ...string) string {
	classes := []string{buttonBase}
	for _, v := range variants {
		if c, ok := buttonVariants[v]; ok {
			classes = append(classes, c)
		}
	}
	return twmerge.Merge(classes...)
}

// BadgeClass returns the classes of a status badge.
func BadgeClass(on bool) string {
	base := "rounded-full px-2 py-0.5 text-xs font-semibold bg-gray-200 text-gray-700"
	if on {
		return twmerge.Merge(base, "bg-emerald-100 text-emerald-800")
	}
	return base
}
