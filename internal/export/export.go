// Package export encodes health data sets for download.
package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"healthhub/internal/domain"
)

// Meta describes the export being produced.
type Meta struct {
	Username    string
	Range       domain.ExportRange
	GeneratedAt time.Time
}

// Encoder writes data to w.
type Encoder func(w io.Writer, data *domain.HealthDataSet, meta Meta) error

// Format binds an export format to its encoder and file metadata.
type Format struct {
	Name        domain.ExportFormat
	ContentType string
	Ext         string
	Encode      Encoder
}

var formats = map[domain.ExportFormat]Format{
	domain.FormatCSV:    {Name: domain.FormatCSV, ContentType: "text/csv; charset=utf-8", Ext: "csv", Encode: CSV},
	domain.FormatJSON:   {Name: domain.FormatJSON, ContentType: "application/json", Ext: "json", Encode: JSON},
	domain.FormatReport: {Name: domain.FormatReport, ContentType: "text/html; charset=utf-8", Ext: "html", Encode: Report},
}

// Lookup returns the Format for f.
func Lookup(f domain.ExportFormat) (Format, error) {
	ff, ok := formats[f]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, f)
	}
	return ff, nil
}

// Encode renders data in format f.
func Encode(f domain.ExportFormat, data *domain.HealthDataSet, meta Meta) (Format, []byte, error) {
	ff, err := Lookup(f)
	if err != nil {
		return Format{}, nil, err
	}
	if data == nil {
		data = domain.NewHealthDataSet()
	}
	var buf bytes.Buffer
	if err := ff.Encode(&buf, data, meta); err != nil {
		return Format{}, nil, fmt.Errorf("encode %s: %w", f, err)
	}
	return ff, buf.Bytes(), nil
}

// Filename returns the download name for an export.
func (f Format) Filename(meta Meta) string {
	return fmt.Sprintf("healthhub-%s-%s.%s", meta.Range, meta.GeneratedAt.Format("2006-01-02"), f.Ext)
}
