package domain

import (
	"context"
	"fmt"
	"time"
)

// ExportFormat is the encoding of an exported data set.
type ExportFormat string

const (
	FormatCSV    ExportFormat = "csv"
	FormatJSON   ExportFormat = "json"
	FormatReport ExportFormat = "report"
)

// ExportFormats lists the supported formats in display order.
var ExportFormats = []ExportFormat{FormatCSV, FormatJSON, FormatReport}

// ParseExportFormat accepts a format name case-sensitively.
func ParseExportFormat(s string) (ExportFormat, error) {
	for _, f := range ExportFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ExportRange is the time span requested for an export.
type ExportRange string

const (
	RangeWeek    ExportRange = "week"
	RangeMonth   ExportRange = "month"
	RangeQuarter ExportRange = "quarter"
	RangeAll     ExportRange = "all"
)

// ExportRanges lists the selectable ranges in display order.
var ExportRanges = []ExportRange{RangeWeek, RangeMonth, RangeQuarter, RangeAll}

// Label returns the button label for the range.
func (r ExportRange) Label() string {
	switch r {
	case RangeWeek:
		return "Last 7 days"
	case RangeMonth:
		return "Last 30 days"
	case RangeQuarter:
		return "Last 3 months"
	case RangeAll:
		return "All time"
	}
	return string(r)
}

// ParseExportRange parses a range name. An empty string yields RangeAll.
func ParseExportRange(s string) (ExportRange, error) {
	if s == "" {
		return RangeAll, nil
	}
	for _, r := range ExportRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
}

// Artifact describes a stored export.
type Artifact struct {
	Key         string       `json:"key"`
	Format      ExportFormat `json:"format"`
	Range       ExportRange  `json:"range"`
	ContentType string       `json:"contentType"`
	Filename    string       `json:"filename"`
	Size        int          `json:"size"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ArtifactStore is the port for export artifact storage.
type ArtifactStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
