package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"solar_yield/internal/model"
	"solar_yield/internal/solar"
)

// DayHourParser parses CSV with columns: day_of_year,hour,cloud_cover.
// day_of_year is 0-based against the reference year, hour is 0..23 and
// cloud_cover is a percentage. Hours not listed for a present day stay at 0.
type DayHourParser struct{}

func (p *DayHourParser) Parse(r io.Reader) (model.WeatherRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if err := validateHeader(header, []string{"day_of_year", "hour", "cloud_cover"}); err != nil {
		return nil, err
	}

	record := make(model.WeatherRecord)
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

		doy, hour, cover, ok := parseDayHourRow(row)
		if !ok {
			continue
		}
		day := record[doy]
		day[hour] = cover
		record[doy] = day
	}

	return record, nil
}

func parseDayHourRow(row []string) (doy, hour int, cover float64, ok bool) {
	if len(row) < 3 {
		return 0, 0, 0, false
	}
	doy, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil || doy < 0 || doy >= solar.DaysInYear {
		return 0, 0, 0, false
	}
	hour, err = strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, 0, false
	}
	cover, err = strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return 0, 0, 0, false
	}
	return doy, hour, clampCover(cover), true
}

func validateHeader(header, want []string) error {
	if len(header) < len(want) {
		return fmt.Errorf("expected at least %d columns, got %d", len(want), len(header))
	}
	for i, name := range want {
		if got := strings.TrimSpace(header[i]); got != name {
			return fmt.Errorf("expected column %d to be %q, got %q", i, name, got)
		}
	}
	return nil
}
