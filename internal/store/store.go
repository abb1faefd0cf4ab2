package store

import (
	"sort"
	"sync"

	"solar_yield/internal/model"
)

// Store holds named weather records in memory.
type Store struct {
	mu      sync.RWMutex
	records map[string]model.WeatherRecord
}

func New() *Store {
	return &Store{
		records: make(map[string]model.WeatherRecord),
	}
}

// AddRecord merges days into the named record. Later days replace earlier
// ones with the same day of year.
func (s *Store) AddRecord(name string, record model.WeatherRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst, ok := s.records[name]
	if !ok {
		dst = make(model.WeatherRecord, len(record))
		s.records[name] = dst
	}
	for doy, day := range record {
		dst[doy] = day
	}
}

// Record returns a copy of the named record.
func (s *Store) Record(name string) (model.WeatherRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, ok := s.records[name]
	if !ok {
		return nil, false
	}
	cp := make(model.WeatherRecord, len(src))
	for doy, day := range src {
		cp[doy] = day
	}
	return cp, true
}

// Day returns the cloud cover of one day of the named record.
func (s *Store) Day(name string, doy int) (model.CloudCoverByHour, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.records[name][doy]
	return day, ok
}

// Names returns the record names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary describes the day coverage of a record.
func (s *Store) Summary(name string) (model.WeatherSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[name]
	if !ok {
		return model.WeatherSummary{}, false
	}
	return summarize(name, record), true
}

// Summaries returns a summary of every record, sorted by name.
func (s *Store) Summaries() []model.WeatherSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.WeatherSummary, 0, len(s.records))
	for name, record := range s.records {
		out = append(out, summarize(name, record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func summarize(name string, record model.WeatherRecord) model.WeatherSummary {
	sum := model.WeatherSummary{Name: name, Days: len(record)}
	first := true
	for doy := range record {
		if first || doy < sum.FirstDay {
			sum.FirstDay = doy
		}
		if first || doy > sum.LastDay {
			sum.LastDay = doy
		}
		first = false
	}
	return sum
}
