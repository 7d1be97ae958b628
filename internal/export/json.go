package export

import (
	"encoding/json"
	"io"
	"time"

	"healthhub/internal/domain"
)

type jsonDocument struct {
	Username    string                `json:"username,omitempty"`
	Range       domain.ExportRange    `json:"range"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Data        *domain.HealthDataSet `json:"data"`
}

// JSON writes the raw data set with export metadata.
func JSON(w io.Writer, data *domain.HealthDataSet, meta Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonDocument{
		Username:    meta.Username,
		Range:       meta.Range,
		GeneratedAt: meta.GeneratedAt.UTC(),
		Data:        data,
	})
}
