package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"solar_yield/internal/model"
)

// ParserFor picks a parser from the first column of a CSV header line.
func ParserFor(headerLine string) (Parser, error) {
	first := strings.TrimSpace(strings.SplitN(headerLine, ",", 2)[0])
	first = strings.TrimPrefix(first, "\ufeff")
	switch first {
	case "day_of_year":
		return &DayHourParser{}, nil
	case "time":
		return &TimeSeriesParser{}, nil
	}
	return nil, fmt.Errorf("unrecognized weather CSV header %q", strings.TrimSpace(headerLine))
}

// Detect parses r with the parser matching its header.
func Detect(r io.Reader) (model.WeatherRecord, error) {
	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	p, err := ParserFor(headerLine)
	if err != nil {
		return nil, err
	}
	return p.Parse(io.MultiReader(strings.NewReader(strings.TrimPrefix(headerLine, "\ufeff")), br))
}

// LoadFile reads a weather CSV of either supported layout. The record name
// is the file name without extension.
func LoadFile(path string) (string, model.WeatherRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	record, err := Detect(f)
	if err != nil {
		return "", nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return name, record, nil
}
