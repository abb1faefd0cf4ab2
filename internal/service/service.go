// Package service validates transport requests, resolves weather records by
// name and calls the engine. Both the REST and the WebSocket transports go
// through it.
package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"solar_yield/internal/log"
	"solar_yield/internal/model"
	"solar_yield/internal/simulator"
	"solar_yield/internal/solar"
	"solar_yield/internal/store"
)

// ErrUnknownWeather is returned when a request names a record the store
// does not hold.
var ErrUnknownWeather = errors.New("unknown weather record")

// TimeCorrection is the display offset between clock time and solar time.
type TimeCorrection struct {
	Minutes        float64 `json:"minutes"`
	EquationOfTime float64 `json:"equation_of_time"`
	SolarNoon      float64 `json:"solar_noon"`
}

// Service binds the engine to the weather store.
type Service struct {
	engine *simulator.Engine
	store  *store.Store
	log    *zap.SugaredLogger

	site      model.GeoCoordinate
	utcOffset float64
}

func New(engine *simulator.Engine, st *store.Store, logger *zap.SugaredLogger) *Service {
	return &Service{engine: engine, store: st, log: log.OrNop(logger)}
}

// SetDefaultSite sets the location used when a time correction query omits
// longitude or UTC offset.
func (s *Service) SetDefaultSite(site model.GeoCoordinate, utcOffset float64) {
	s.site = site
	s.utcOffset = utcOffset
}

// DefaultSite returns the location set by SetDefaultSite.
func (s *Service) DefaultSite() (model.GeoCoordinate, float64) {
	return s.site, s.utcOffset
}

// Engine returns the wrapped engine.
func (s *Service) Engine() *simulator.Engine {
	return s.engine
}

// WeatherSummaries lists the loaded weather records.
func (s *Service) WeatherSummaries() []model.WeatherSummary {
	return s.store.Summaries()
}

func (s *Service) Simulate(req SimulateRequest) (model.SimulationResult, error) {
	if err := req.Validate(); err != nil {
		return model.SimulationResult{}, err
	}

	lat, o, shadow := req.Latitude, req.Orientation(), req.Shadow()
	switch {
	case req.CloudCover != nil:
		return s.engine.SimulateWeather(lat, req.Day, o, shadow, *req.CloudCover), nil
	case req.Weather != "":
		if _, ok := s.store.Summary(req.Weather); !ok {
			return model.SimulationResult{}, fmt.Errorf("%w: %q", ErrUnknownWeather, req.Weather)
		}
		// A day absent from the record is cloud-free.
		cloud, _ := s.store.Day(req.Weather, req.Day)
		return s.engine.SimulateWeather(lat, req.Day, o, shadow, cloud), nil
	}
	return s.engine.Simulate(lat, req.Day, o, shadow), nil
}

func (s *Service) Aggregate(req AggregateRequest) (model.AggregateResult, error) {
	if err := req.Validate(); err != nil {
		return model.AggregateResult{}, err
	}

	var weather model.WeatherRecord
	if req.Weather != "" {
		rec, ok := s.store.Record(req.Weather)
		if !ok {
			return model.AggregateResult{}, fmt.Errorf("%w: %q", ErrUnknownWeather, req.Weather)
		}
		weather = rec
	}
	res := s.engine.Aggregate(req.Latitude, req.Orientation(), req.Shadow(), req.Day, weather)
	if weather != nil && res.WeatherDays < solar.DaysInYear {
		s.log.Debugw("weather record is partial", "weather", req.Weather, "days", res.WeatherDays)
	}
	return res, nil
}

func (s *Service) OptimizeDay(req OptimizeDayRequest) (model.Orientation, error) {
	if err := req.Validate(); err != nil {
		return model.Orientation{}, err
	}
	return s.engine.OptimizeDay(req.Latitude, req.Day, req.Shadow()), nil
}

func (s *Service) OptimizePeriod(req OptimizePeriodRequest) (model.Orientation, error) {
	if err := req.Validate(); err != nil {
		return model.Orientation{}, err
	}
	return s.engine.OptimizePeriod(req.Latitude, req.StartMonth, req.EndMonth, req.Shadow()), nil
}

func (s *Service) TimeCorrection(req TimeCorrectionRequest) (TimeCorrection, error) {
	if err := req.Validate(); err != nil {
		return TimeCorrection{}, err
	}
	minutes := solar.TimeCorrection(req.Longitude, req.UTCOffset, req.Day)
	return TimeCorrection{
		Minutes:        minutes,
		EquationOfTime: solar.EquationOfTime(req.Day),
		SolarNoon:      12 - minutes/60,
	}, nil
}
