package simulator

import (
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"solar_yield/internal/log"
	"solar_yield/internal/metrics"
	"solar_yield/internal/model"
)

// Optimization kinds reported to listeners and metrics.
const (
	KindDay    = "day"
	KindPeriod = "period"
)

// OptimizationEvent is emitted after each orientation search.
type OptimizationEvent struct {
	Kind        string             `json:"kind"`
	Latitude    float64            `json:"latitude"`
	Day         int                `json:"day,omitempty"`
	StartMonth  int                `json:"start_month,omitempty"`
	EndMonth    int                `json:"end_month,omitempty"`
	Shadow      model.ShadowWindow `json:"shadow"`
	Orientation model.Orientation  `json:"orientation"`
}

// Listener receives engine events. It may be nil.
type Listener interface {
	OnOptimized(ev OptimizationEvent)
}

// Engine is the entry point of the yield model. It owns the baseline cache,
// which is the only state shared between calls.
type Engine struct {
	mu       sync.Mutex
	listener Listener
	workers  int

	baselines *BaselineCache
	log       *zap.SugaredLogger
}

func New(logger *zap.SugaredLogger, l Listener) *Engine {
	return &Engine{
		listener:  l,
		workers:   runtime.GOMAXPROCS(0),
		baselines: NewBaselineCache(),
		log:       log.OrNop(logger),
	}
}

// SetListener replaces the event listener. Pass nil to disable events.
func (e *Engine) SetListener(l Listener) {
	e.mu.Lock()
	e.listener = l
	e.mu.Unlock()
}

// SetWorkers bounds the concurrency of Aggregate.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.mu.Lock()
	e.workers = n
	e.mu.Unlock()
}

// Baseline returns the best unshaded energy factor achievable at lat on doy.
func (e *Engine) Baseline(lat float64, doy int) float64 {
	return e.baselines.Get(lat, doy)
}

// CachedBaselines returns the number of baselines computed so far.
func (e *Engine) CachedBaselines() int {
	return e.baselines.Len()
}

// Simulate computes the clear-sky curve, energy factor and efficiency of one
// orientation on one day.
func (e *Engine) Simulate(lat float64, doy int, o model.Orientation, shadow model.ShadowWindow) model.SimulationResult {
	metrics.SimulationsTotal.WithLabelValues("false").Inc()
	return e.simulate(lat, doy, o, shadow)
}

// SimulateWeather is Simulate plus the cloud-adjusted energy factor.
// Efficiency stays relative to the clear-sky baseline.
func (e *Engine) SimulateWeather(lat float64, doy int, o model.Orientation, shadow model.ShadowWindow, cloud model.CloudCoverByHour) model.SimulationResult {
	metrics.SimulationsTotal.WithLabelValues("true").Inc()
	res := e.simulate(lat, doy, o, shadow)
	realEnergy := CurveEnergyWithClouds(res.Curve, cloud)
	res.RealEnergy = &realEnergy
	return res
}

func (e *Engine) simulate(lat float64, doy int, o model.Orientation, shadow model.ShadowWindow) model.SimulationResult {
	curve := Curve(lat, doy, o, shadow)
	ideal := CurveEnergy(curve)
	return model.SimulationResult{
		Curve:             curve,
		IdealEnergy:       ideal,
		EfficiencyPercent: Efficiency(ideal, e.Baseline(lat, doy)),
	}
}

// Aggregate sums daily energy factors over the reference year and over the
// month of targetDoy. Weather may be nil; days missing from it count as
// cloud-free and are reported through WeatherDays.
func (e *Engine) Aggregate(lat float64, o model.Orientation, shadow model.ShadowWindow, targetDoy int, weather model.WeatherRecord) model.AggregateResult {
	e.mu.Lock()
	workers := e.workers
	e.mu.Unlock()

	start := time.Now()
	res := aggregate(lat, o, shadow, targetDoy, weather, workers)
	elapsed := time.Since(start)
	metrics.AggregationDuration.Observe(elapsed.Seconds())

	e.log.Debugw("aggregated year",
		"latitude", lat,
		"azimuth", o.Azimuth,
		"tilt", o.Tilt,
		"ideal_year", res.IdealYear,
		"weather_days", res.WeatherDays,
		"elapsed", elapsed,
	)
	if res.HasWeather && res.WeatherDays < len(weather) {
		e.log.Warnw("weather record has days outside 0..364", "entries", len(weather), "used", res.WeatherDays)
	}
	return res
}

// OptimizeDay returns the coarse-grid orientation with the highest efficiency
// for one day.
func (e *Engine) OptimizeDay(lat float64, doy int, shadow model.ShadowWindow) model.Orientation {
	metrics.OptimizationsTotal.WithLabelValues(KindDay).Inc()
	o := optimizeDay(lat, doy, shadow, e.Baseline(lat, doy))
	e.emit(OptimizationEvent{Kind: KindDay, Latitude: lat, Day: doy, Shadow: shadow, Orientation: o})
	return o
}

// OptimizePeriod returns an orientation for an inclusive month range
// (0=January, may wrap over the new year). The azimuth comes from the day
// optimizer at the period midpoint; the tilt maximizes the summed energy of
// days sampled every week across the period. This is an approximation of the
// full 2D search over all sampled days.
func (e *Engine) OptimizePeriod(lat float64, startMonth, endMonth int, shadow model.ShadowWindow) model.Orientation {
	metrics.OptimizationsTotal.WithLabelValues(KindPeriod).Inc()
	plan := NewPeriodPlan(startMonth, endMonth)

	az := searchPeriodAzimuth(lat, plan, shadow, e.Baseline(lat, plan.ReferenceDay))
	tilt := searchPeriodTilt(lat, plan, az, shadow)
	o := model.Orientation{Azimuth: az, Tilt: tilt}

	e.log.Debugw("optimized period",
		"latitude", lat,
		"start_month", startMonth,
		"end_month", endMonth,
		"reference_day", plan.ReferenceDay,
		"sample_days", len(plan.SampleDays),
		"azimuth", az,
		"tilt", tilt,
	)
	e.emit(OptimizationEvent{
		Kind: KindPeriod, Latitude: lat, StartMonth: startMonth, EndMonth: endMonth,
		Shadow: shadow, Orientation: o,
	})
	return o
}

func (e *Engine) emit(ev OptimizationEvent) {
	e.mu.Lock()
	l := e.listener
	e.mu.Unlock()
	if l != nil {
		l.OnOptimized(ev)
	}
}
