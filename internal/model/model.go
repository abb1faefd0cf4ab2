package model

// GeoCoordinate is a location in degrees. Longitude is east-positive.
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Orientation describes a fixed panel.
//
// Azimuth is the compass bearing the panel faces (0=N, 90=E, 180=S, 270=W).
// Tilt is measured from horizontal (0=flat, 90=vertical wall).
type Orientation struct {
	Azimuth float64 `json:"azimuth"`
	Tilt    float64 `json:"tilt"`
}

// ShadowWindow is the hour interval [From, To) during which an obstacle
// fully blocks the panel. Windows with From >= To block nothing, so a window
// spanning midnight (e.g. 22 -> 2) has no effect.
type ShadowWindow struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// NoShadow is the degenerate window used when shading is disabled.
var NoShadow = ShadowWindow{}

// Active reports whether the window blocks any hour at all.
func (w ShadowWindow) Active() bool {
	return w.From < w.To
}

// Blocks reports whether the panel is shaded at the given hour.
func (w ShadowWindow) Blocks(hour float64) bool {
	return w.Active() && hour >= w.From && hour < w.To
}

// CloudCoverByHour holds cloud cover percent [0-100] for each hour [0-23].
type CloudCoverByHour [24]float64

// At returns the cloud cover for the hour bucket containing hour.
func (c *CloudCoverByHour) At(hour float64) float64 {
	h := int(hour)
	if h < 0 {
		h = 0
	}
	if h > 23 {
		h = 23
	}
	return c[h]
}

// WeatherRecord maps day-of-year [0-364] to its hourly cloud cover.
// Days without an entry are treated as cloud-free.
type WeatherRecord map[int]CloudCoverByHour

// CurvePoint is one sample of a day's power curve.
type CurvePoint struct {
	Hour      float64 `json:"hour"`
	Power     float64 `json:"power"`     // realized, zero when shaded
	Potential float64 `json:"potential"` // what the panel would get unshaded
	Blocked   bool    `json:"blocked"`
	SunUp     bool    `json:"sun_up"`
}

// SimulationResult is the outcome of simulating one day for one orientation.
type SimulationResult struct {
	Curve             []CurvePoint `json:"curve"`
	EfficiencyPercent float64      `json:"efficiency_percent"`
	// IdealEnergy is the clear-sky energy factor in equivalent full-sun hours.
	IdealEnergy float64 `json:"ideal_energy"`
	// RealEnergy is set only when cloud cover was supplied.
	RealEnergy *float64 `json:"real_energy,omitempty"`
}

// MonthTotal holds energy factor sums for one calendar month.
type MonthTotal struct {
	Ideal float64 `json:"ideal"`
	Real  float64 `json:"real"`
}

// AggregateResult sums per-day energy factors over the reference year and
// over the month containing the target day.
type AggregateResult struct {
	IdealYear  float64 `json:"ideal_year"`
	IdealMonth float64 `json:"ideal_month"`
	RealYear   float64 `json:"real_year"`
	RealMonth  float64 `json:"real_month"`

	// Month is the 0-based month of the target day.
	Month   int            `json:"month"`
	Monthly [12]MonthTotal `json:"monthly"`

	// HasWeather is false when no weather record was supplied; Real* are zero then.
	HasWeather bool `json:"has_weather"`
	// WeatherDays counts days that had cloud data. The remaining days were
	// integrated as cloud-free.
	WeatherDays int `json:"weather_days"`
}

// WeatherSummary describes a loaded weather record.
type WeatherSummary struct {
	Name     string `json:"name"`
	Days     int    `json:"days"`
	FirstDay int    `json:"first_day"`
	LastDay  int    `json:"last_day"`
}
