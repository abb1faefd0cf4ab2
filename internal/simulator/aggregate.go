package simulator

import (
	"gonum.org/v1/gonum/floats"
	"golang.org/x/sync/errgroup"

	"solar_yield/internal/model"
	"solar_yield/internal/solar"
)

// dayEnergy is the per-day output of the aggregation fan-out.
type dayEnergy struct {
	ideal, real float64
	hasCloud    bool
}

// aggregate sums ideal and (when weather is non-nil) cloud-adjusted energy
// over every day of the reference year. Days run concurrently, bounded by
// workers; each writes only its own slot so totals do not depend on
// scheduling.
func aggregate(lat float64, o model.Orientation, shadow model.ShadowWindow, targetDoy int, weather model.WeatherRecord, workers int) model.AggregateResult {
	days := make([]dayEnergy, solar.DaysInYear)

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for doy := range days {
		g.Go(func() error {
			curve := Curve(lat, doy, o, shadow)
			d := dayEnergy{ideal: CurveEnergy(curve)}
			if weather != nil {
				cloud, ok := weather[doy]
				d.hasCloud = ok
				// A missing day integrates as cloud-free.
				d.real = CurveEnergyWithClouds(curve, cloud)
			}
			days[doy] = d
			return nil
		})
	}
	// Workers never fail; the group only bounds concurrency.
	_ = g.Wait()

	res := model.AggregateResult{
		Month:      solar.DayOfYearToMonth(targetDoy),
		HasWeather: weather != nil,
	}

	idealDays := make([]float64, len(days))
	realDays := make([]float64, len(days))
	var monthIdeal, monthReal [12][]float64
	for doy, d := range days {
		idealDays[doy], realDays[doy] = d.ideal, d.real
		m := solar.DayOfYearToMonth(doy)
		monthIdeal[m] = append(monthIdeal[m], d.ideal)
		monthReal[m] = append(monthReal[m], d.real)
		if d.hasCloud {
			res.WeatherDays++
		}
	}

	res.IdealYear = floats.Sum(idealDays)
	res.RealYear = floats.Sum(realDays)
	for m := range res.Monthly {
		res.Monthly[m] = model.MonthTotal{
			Ideal: floats.Sum(monthIdeal[m]),
			Real:  floats.Sum(monthReal[m]),
		}
	}
	res.IdealMonth = res.Monthly[res.Month].Ideal
	res.RealMonth = res.Monthly[res.Month].Real
	return res
}
