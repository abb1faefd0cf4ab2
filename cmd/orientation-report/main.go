package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"solar_yield/internal/config"
	"solar_yield/internal/ingest"
	"solar_yield/internal/log"
	"solar_yield/internal/model"
	"solar_yield/internal/simulator"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// period is a named inclusive month range for the period optimizer.
type period struct {
	name       string
	start, end int
}

var periods = []period{
	{"Full year", 0, 11},
	{"Summer (Apr-Sep)", 3, 8},
	{"Winter (Oct-Mar)", 9, 2},
}

// collector implements simulator.Listener, keeping every optimizer result.
type collector struct {
	events []simulator.OptimizationEvent
}

func (c *collector) OnOptimized(ev simulator.OptimizationEvent) { c.events = append(c.events, ev) }

type tiltResult struct {
	tilt  float64
	yield model.AggregateResult
}

func main() {
	configFile := flag.String("config", "", "path to config file (supplies the default latitude)")
	lat := flag.Float64("lat", math.NaN(), "latitude in degrees (default: location.latitude from config)")
	azimuth := flag.Float64("azimuth", 180, "panel azimuth in degrees (180 = south)")
	tilt := flag.Float64("tilt", 35, "panel tilt in degrees (0 = flat)")
	shadowFrom := flag.Float64("shadow-from", 0, "shadow window start hour")
	shadowTo := flag.Float64("shadow-to", 0, "shadow window end hour (no shadow when not after start)")
	day := flag.Int("day", 172, "day of year (0-364) for the monthly figure and the day optimum")
	weatherCSV := flag.String("weather-csv", "", "cloud cover CSV (day_of_year,hour,cloud_cover or time,cloud_cover)")
	tiltsFlag := flag.String("tilts", "0,15,30,45,60,75,90", "comma-separated tilts for the comparison table")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if err := log.Init(cfg.Logging.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if math.IsNaN(*lat) {
		*lat = cfg.Location.Latitude
	}
	if *lat < -90 || *lat > 90 {
		log.Fatalf("Latitude %v is outside -90..90", *lat)
	}
	if *day < 0 || *day > 364 {
		log.Fatalf("Day %d is outside 0..364", *day)
	}

	tilts, err := parseTilts(*tiltsFlag)
	if err != nil {
		log.Fatalf("Invalid tilts %q: %v", *tiltsFlag, err)
	}

	var weather model.WeatherRecord
	if *weatherCSV != "" {
		_, weather, err = ingest.LoadFile(*weatherCSV)
		if err != nil {
			log.Fatalf("Loading weather: %v", err)
		}
	}

	cb := &collector{}
	engine := newEngine(log.GetSugaredLogger(), cb, cfg.Engine.Workers)

	o := model.Orientation{Azimuth: *azimuth, Tilt: *tilt}
	shadow := model.ShadowWindow{From: *shadowFrom, To: *shadowTo}

	yield := engine.Aggregate(*lat, o, shadow, *day, weather)
	sim := engine.Simulate(*lat, *day, o, shadow)

	results := make([]tiltResult, 0, len(tilts))
	for _, t := range tilts {
		res := engine.Aggregate(*lat, model.Orientation{Azimuth: *azimuth, Tilt: t}, shadow, *day, weather)
		results = append(results, tiltResult{tilt: t, yield: res})
	}

	engine.OptimizeDay(*lat, *day, shadow)
	for _, p := range periods {
		engine.OptimizePeriod(*lat, p.start, p.end, shadow)
	}

	out := os.Stdout
	printHeader(out, *lat, o, shadow, *day, *weatherCSV, yield)
	printMonthly(out, yield)
	printTilts(out, *azimuth, results)
	printOptima(out, *day, sim.EfficiencyPercent, cb.events)
}

func newEngine(logger *zap.SugaredLogger, cb *collector, workers int) *simulator.Engine {
	engine := simulator.New(logger, cb)
	engine.SetWorkers(workers)
	return engine
}

func printHeader(w io.Writer, lat float64, o model.Orientation, shadow model.ShadowWindow, day int, weatherCSV string, yield model.AggregateResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Solar Yield Report")
	fmt.Fprintf(w, "  Latitude: %.2f°, Azimuth: %.0f°, Tilt: %.0f°\n", lat, o.Azimuth, o.Tilt)
	if shadow.Active() {
		fmt.Fprintf(w, "  Shadow: %.1fh to %.1fh\n", shadow.From, shadow.To)
	} else {
		fmt.Fprintln(w, "  Shadow: none")
	}
	fmt.Fprintf(w, "  Target day: %d (%s)\n", day, monthNames[yield.Month])
	if weatherCSV != "" {
		fmt.Fprintf(w, "  Weather: %s (%d of 365 days, others clear)\n", weatherCSV, yield.WeatherDays)
	} else {
		fmt.Fprintln(w, "  Weather: none (clear sky)")
	}
	fmt.Fprintln(w)
}

func printMonthly(w io.Writer, yield model.AggregateResult) {
	fmt.Fprintf(w, " %5s │ %9s │ %9s │ %7s\n", "Month", "Ideal", "Real", "Weather")
	fmt.Fprintf(w, "───────┼───────────┼───────────┼─────────\n")
	for m, t := range yield.Monthly {
		marker := " "
		if m == yield.Month {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%5s │ %9.1f │ %9s │ %7s\n", marker, monthNames[m], t.Ideal, realCell(yield.HasWeather, t.Real), lossCell(yield.HasWeather, t))
	}
	fmt.Fprintf(w, "───────┼───────────┼───────────┼─────────\n")
	year := model.MonthTotal{Ideal: yield.IdealYear, Real: yield.RealYear}
	fmt.Fprintf(w, " %5s │ %9.1f │ %9s │ %7s\n", "Year", year.Ideal, realCell(yield.HasWeather, year.Real), lossCell(yield.HasWeather, year))
	fmt.Fprintln(w)
}

func realCell(hasWeather bool, v float64) string {
	if !hasWeather {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}

// lossCell formats the share of clear-sky energy lost to clouds.
func lossCell(hasWeather bool, t model.MonthTotal) string {
	if !hasWeather || t.Ideal <= 0 {
		return "-"
	}
	return fmt.Sprintf("-%.1f%%", (1-t.Real/t.Ideal)*100)
}

func printTilts(w io.Writer, azimuth float64, results []tiltResult) {
	if len(results) == 0 {
		return
	}
	best := 0
	for i, r := range results {
		if r.yield.IdealYear > results[best].yield.IdealYear {
			best = i
		}
	}

	fmt.Fprintf(w, "Tilt comparison at azimuth %.0f°\n", azimuth)
	fmt.Fprintf(w, " %5s │ %10s │ %10s │ %8s\n", "Tilt", "Ideal/year", "Real/year", "vs best")
	fmt.Fprintf(w, "───────┼────────────┼────────────┼──────────\n")
	for i, r := range results {
		marker := " "
		if i == best {
			marker = "*"
		}
		rel := 0.0
		if top := results[best].yield.IdealYear; top > 0 {
			rel = r.yield.IdealYear / top * 100
		}
		fmt.Fprintf(w, "%s%4.0f° │ %10.1f │ %10s │ %7.1f%%\n", marker, r.tilt, r.yield.IdealYear, realCell(r.yield.HasWeather, r.yield.RealYear), rel)
	}
	fmt.Fprintln(w)
}

func printOptima(w io.Writer, day int, efficiency float64, events []simulator.OptimizationEvent) {
	fmt.Fprintln(w, "Optimal orientations")
	fmt.Fprintf(w, "  Current orientation on day %d: %.1f%% of the best achievable\n", day, efficiency)
	for _, ev := range events {
		switch ev.Kind {
		case simulator.KindDay:
			fmt.Fprintf(w, "  %-18s azimuth %5.0f°, tilt %4.0f°\n", fmt.Sprintf("Day %d:", ev.Day), ev.Orientation.Azimuth, ev.Orientation.Tilt)
		case simulator.KindPeriod:
			fmt.Fprintf(w, "  %-18s azimuth %5.0f°, tilt %4.0f°\n", periodName(ev.StartMonth, ev.EndMonth)+":", ev.Orientation.Azimuth, ev.Orientation.Tilt)
		}
	}
	fmt.Fprintln(w)
}

func periodName(start, end int) string {
	for _, p := range periods {
		if p.start == start && p.end == end {
			return p.name
		}
	}
	return monthNames[start] + "-" + monthNames[end]
}

func parseTilts(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	tilts := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		if v < 0 || v > 90 {
			return nil, fmt.Errorf("tilt must be within 0..90, got %v", v)
		}
		tilts = append(tilts, v)
	}
	if len(tilts) == 0 {
		return nil, fmt.Errorf("no tilts specified")
	}
	sort.Float64s(tilts)
	return tilts, nil
}
