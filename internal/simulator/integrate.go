package simulator

import (
	"math"

	"solar_yield/internal/model"
	"solar_yield/internal/solar"
)

const (
	// The day is sampled from firstHour to lastHour inclusive every stepHours.
	firstHour = 4.0
	lastHour  = 22.0
	stepHours = 0.2

	// airMassExponent turns sin(elevation) into a rough atmospheric attenuation.
	airMassExponent = 0.3

	// maxCloudLoss is the share of power removed at 100% cloud cover. The rest
	// stands in for diffuse light.
	maxCloudLoss = 0.8
)

// sampleCount is the number of curve points per day.
var sampleCount = int(math.Round((lastHour-firstHour)/stepHours)) + 1

func sampleHour(i int) float64 {
	return firstHour + float64(i)*stepHours
}

// Curve returns the day's power curve for a panel orientation.
func Curve(lat float64, doy int, o model.Orientation, shadow model.ShadowWindow) []model.CurvePoint {
	normal := solar.PanelNormal(o.Azimuth, o.Tilt)
	curve := make([]model.CurvePoint, sampleCount)
	for i := range curve {
		h := sampleHour(i)
		potential, sunUp := potentialPower(lat, doy, h, normal)
		p := model.CurvePoint{Hour: h, Potential: potential, Power: potential, SunUp: sunUp}
		if sunUp && shadow.Blocks(h) {
			p.Power = 0
			p.Blocked = true
		}
		curve[i] = p
	}
	return curve
}

// potentialPower returns the unshaded projected irradiance at hour and
// whether the sun is above the horizon.
func potentialPower(lat float64, doy int, hour float64, normal solar.Vector) (float64, bool) {
	pos := solar.Position(lat, doy, hour)
	if pos.Elevation <= 0 {
		return 0, false
	}
	sun := solar.ToVector(pos.Azimuth, pos.Elevation)
	intensity := math.Pow(sun.Z, airMassExponent)
	dp := math.Max(0, sun.Dot(normal))
	return dp * intensity, true
}

// CloudFactor returns the multiplier applied to power under the given cloud
// cover percentage.
func CloudFactor(cloudCoverPct float64) float64 {
	return 1 - cloudCoverPct/100*maxCloudLoss
}

// IdealEnergy integrates the clear-sky curve into an energy factor
// (equivalent full-sun hours).
func IdealEnergy(lat float64, doy int, o model.Orientation, shadow model.ShadowWindow) float64 {
	return CurveEnergy(Curve(lat, doy, o, shadow))
}

// RealEnergy integrates the curve after cloud attenuation.
func RealEnergy(lat float64, doy int, o model.Orientation, shadow model.ShadowWindow, cloud model.CloudCoverByHour) float64 {
	return CurveEnergyWithClouds(Curve(lat, doy, o, shadow), cloud)
}

// CurveEnergy is the Riemann sum of realized power over the curve.
func CurveEnergy(curve []model.CurvePoint) float64 {
	var sum float64
	for _, p := range curve {
		sum += p.Power
	}
	return sum * stepHours
}

// CurveEnergyWithClouds is CurveEnergy with each sample scaled by the cloud
// factor of its hour bucket.
func CurveEnergyWithClouds(curve []model.CurvePoint, cloud model.CloudCoverByHour) float64 {
	var sum float64
	for _, p := range curve {
		sum += p.Power * CloudFactor(cloud.At(p.Hour))
	}
	return sum * stepHours
}

// Efficiency expresses energy as a percentage of the baseline. It is zero
// when nothing is achievable.
func Efficiency(energy, baseline float64) float64 {
	if baseline <= 0 {
		return 0
	}
	return energy / baseline * 100
}
