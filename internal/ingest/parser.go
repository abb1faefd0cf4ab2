package ingest

import (
	"io"

	"solar_yield/internal/model"
)

// Parser reads hourly cloud cover from a source and returns it keyed by day
// of the reference year.
type Parser interface {
	Parse(r io.Reader) (model.WeatherRecord, error)
}

// clampCover keeps a cloud cover percentage inside [0, 100].
func clampCover(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
