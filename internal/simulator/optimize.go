package simulator

import (
	"solar_yield/internal/model"
	"solar_yield/internal/solar"
)

const (
	// periodSampleInterval is the spacing in days of the days summed by the
	// period tilt search.
	periodSampleInterval = 7
	// periodTiltRefine is the +/- range of the 1° tilt refinement.
	periodTiltRefine = 4.0
)

// optimizeDay scans the coarse azimuth/tilt grid and returns the orientation
// with the highest efficiency for the day. Ties keep the first maximum
// (lowest azimuth, then lowest tilt). No refinement is applied.
func optimizeDay(lat float64, doy int, shadow model.ShadowWindow, baseline float64) model.Orientation {
	best := model.Orientation{Azimuth: minAzimuth, Tilt: minTilt}
	bestEff := -1.0
	for az := minAzimuth; az <= maxAzimuth; az += azimuthStep {
		for tilt := minTilt; tilt <= maxTilt; tilt += tiltStep {
			o := model.Orientation{Azimuth: az, Tilt: tilt}
			eff := Efficiency(IdealEnergy(lat, doy, o, shadow), baseline)
			if eff > bestEff {
				best, bestEff = o, eff
			}
		}
	}
	return best
}

// PeriodPlan is the sampling used by the period optimizer: one reference day
// for the azimuth and a spaced list of days for the tilt.
type PeriodPlan struct {
	ReferenceDay int
	SampleDays   []int
}

// NewPeriodPlan builds the plan for the inclusive, possibly wrapping, month
// range.
func NewPeriodPlan(startMonth, endMonth int) PeriodPlan {
	return PeriodPlan{
		ReferenceDay: solar.PeriodMidpoint(startMonth, endMonth),
		SampleDays:   solar.PeriodSampleDays(startMonth, endMonth, periodSampleInterval),
	}
}

// searchPeriodAzimuth picks the period azimuth from the day optimizer at the
// reference day. The tilt it finds is dropped.
func searchPeriodAzimuth(lat float64, plan PeriodPlan, shadow model.ShadowWindow, baseline float64) float64 {
	return optimizeDay(lat, plan.ReferenceDay, shadow, baseline).Azimuth
}

// searchPeriodTilt picks the tilt maximizing the summed ideal energy of the
// sample days at a fixed azimuth: 5° steps first, then 1° steps around the
// best coarse tilt.
func searchPeriodTilt(lat float64, plan PeriodPlan, azimuth float64, shadow model.ShadowWindow) float64 {
	total := func(tilt float64) float64 {
		o := model.Orientation{Azimuth: azimuth, Tilt: tilt}
		var sum float64
		for _, doy := range plan.SampleDays {
			sum += IdealEnergy(lat, doy, o, shadow)
		}
		return sum
	}

	bestTilt, best := minTilt, -1.0
	for tilt := minTilt; tilt <= maxTilt; tilt += tiltStep {
		if e := total(tilt); e > best {
			bestTilt, best = tilt, e
		}
	}

	coarse := bestTilt
	lo, hi := clamp(coarse-periodTiltRefine, minTilt, maxTilt), clamp(coarse+periodTiltRefine, minTilt, maxTilt)
	for tilt := lo; tilt <= hi; tilt += refineStep {
		if e := total(tilt); e > best {
			bestTilt, best = tilt, e
		}
	}
	return bestTilt
}
