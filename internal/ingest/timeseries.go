package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"solar_yield/internal/model"
	"solar_yield/internal/solar"
)

// Timestamp layouts accepted by TimeSeriesParser, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// TimeSeriesParser parses hourly weather history with columns:
// time,cloud_cover. Samples from several years are averaged per reference
// day and hour. The hour is read from the timestamp as written, so the data
// is expected in local time. February 29 is dropped.
type TimeSeriesParser struct{}

type slot struct {
	doy, hour int
}

func (p *TimeSeriesParser) Parse(r io.Reader) (model.WeatherRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if err := validateHeader(header, []string{"time", "cloud_cover"}); err != nil {
		return nil, err
	}

	samples := make(map[slot][]float64)
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		s, cover, ok := parseTimeSeriesRow(row)
		if !ok {
			continue
		}
		samples[s] = append(samples[s], cover)
	}

	record := make(model.WeatherRecord)
	for s, values := range samples {
		day := record[s.doy]
		day[s.hour] = stat.Mean(values, nil)
		record[s.doy] = day
	}
	return record, nil
}

func parseTimeSeriesRow(row []string) (slot, float64, bool) {
	if len(row) < 2 {
		return slot{}, 0, false
	}
	ts, ok := parseTimestamp(strings.TrimSpace(row[0]))
	if !ok {
		return slot{}, 0, false
	}
	doy, ok := solar.DateToDayOfYear(ts)
	if !ok {
		return slot{}, 0, false
	}
	cover, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return slot{}, 0, false
	}
	return slot{doy: doy, hour: ts.Hour()}, clampCover(cover), true
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
