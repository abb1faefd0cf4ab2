package service

import (
	"fmt"

	"solar_yield/internal/model"
	"solar_yield/internal/solar"
)

// ValidationError reports a request field outside its domain.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Site holds the location and shadow fields shared by every request.
type Site struct {
	Latitude   float64 `json:"latitude"`
	ShadowFrom float64 `json:"shadow_from"`
	ShadowTo   float64 `json:"shadow_to"`
}

func (s Site) Shadow() model.ShadowWindow {
	return model.ShadowWindow{From: s.ShadowFrom, To: s.ShadowTo}
}

func (s Site) validate() error {
	if s.Latitude < -90 || s.Latitude > 90 {
		return invalid("latitude", "%g is outside -90..90", s.Latitude)
	}
	if s.ShadowFrom < 0 || s.ShadowFrom > 24 {
		return invalid("shadow_from", "%g is outside 0..24", s.ShadowFrom)
	}
	if s.ShadowTo < 0 || s.ShadowTo > 24 {
		return invalid("shadow_to", "%g is outside 0..24", s.ShadowTo)
	}
	return nil
}

func validateDay(day int) error {
	if day < 0 || day >= solar.DaysInYear {
		return invalid("day", "%d is outside 0..%d", day, solar.DaysInYear-1)
	}
	return nil
}

func validateMonth(field string, m int) error {
	if m < 0 || m > 11 {
		return invalid(field, "%d is outside 0..11", m)
	}
	return nil
}

func validateOrientation(o model.Orientation) error {
	if o.Azimuth < 0 || o.Azimuth >= 360 {
		return invalid("azimuth", "%g is outside 0..360", o.Azimuth)
	}
	if o.Tilt < 0 || o.Tilt > 90 {
		return invalid("tilt", "%g is outside 0..90", o.Tilt)
	}
	return nil
}

// SimulateRequest asks for one day's curve and efficiency. Weather names a
// stored record; CloudCover supplies the day's cover inline and wins over
// Weather.
type SimulateRequest struct {
	Site
	Day        int                     `json:"day"`
	Azimuth    float64                 `json:"azimuth"`
	Tilt       float64                 `json:"tilt"`
	Weather    string                  `json:"weather,omitempty"`
	CloudCover *model.CloudCoverByHour `json:"cloud_cover,omitempty"`
}

func (r SimulateRequest) Orientation() model.Orientation {
	return model.Orientation{Azimuth: r.Azimuth, Tilt: r.Tilt}
}

func (r SimulateRequest) Validate() error {
	if err := r.Site.validate(); err != nil {
		return err
	}
	if err := validateDay(r.Day); err != nil {
		return err
	}
	if err := validateOrientation(r.Orientation()); err != nil {
		return err
	}
	if r.CloudCover != nil {
		for h, v := range r.CloudCover {
			if v < 0 || v > 100 {
				return invalid("cloud_cover", "hour %d: %g is outside 0..100", h, v)
			}
		}
	}
	return nil
}

// AggregateRequest asks for yearly and monthly totals. Day selects the month.
type AggregateRequest struct {
	Site
	Day     int     `json:"day"`
	Azimuth float64 `json:"azimuth"`
	Tilt    float64 `json:"tilt"`
	Weather string  `json:"weather,omitempty"`
}

func (r AggregateRequest) Orientation() model.Orientation {
	return model.Orientation{Azimuth: r.Azimuth, Tilt: r.Tilt}
}

func (r AggregateRequest) Validate() error {
	if err := r.Site.validate(); err != nil {
		return err
	}
	if err := validateDay(r.Day); err != nil {
		return err
	}
	return validateOrientation(r.Orientation())
}

// OptimizeDayRequest asks for the best orientation on one day.
type OptimizeDayRequest struct {
	Site
	Day int `json:"day"`
}

func (r OptimizeDayRequest) Validate() error {
	if err := r.Site.validate(); err != nil {
		return err
	}
	return validateDay(r.Day)
}

// OptimizePeriodRequest asks for the best orientation over an inclusive
// month range. EndMonth before StartMonth wraps over the new year.
type OptimizePeriodRequest struct {
	Site
	StartMonth int `json:"start_month"`
	EndMonth   int `json:"end_month"`
}

func (r OptimizePeriodRequest) Validate() error {
	if err := r.Site.validate(); err != nil {
		return err
	}
	if err := validateMonth("start_month", r.StartMonth); err != nil {
		return err
	}
	return validateMonth("end_month", r.EndMonth)
}

// TimeCorrectionRequest asks for the display offset between clock time and
// solar time.
type TimeCorrectionRequest struct {
	Longitude float64 `json:"longitude"`
	UTCOffset float64 `json:"utc_offset"`
	Day       int     `json:"day"`
}

func (r TimeCorrectionRequest) Validate() error {
	if r.Longitude < -180 || r.Longitude > 180 {
		return invalid("longitude", "%g is outside -180..180", r.Longitude)
	}
	if r.UTCOffset < -12 || r.UTCOffset > 14 {
		return invalid("utc_offset", "%g is outside -12..14", r.UTCOffset)
	}
	return validateDay(r.Day)
}
