// Package solar implements the simplified sun geometry used by the yield
// engine: declination, equation of time, sun position in the local horizon
// frame and panel normals.
//
// Vectors use a local horizon frame with x pointing east, y north and z up.
// Latitudes are expected in [-90, 90]; values outside that range produce
// defined but meaningless results.
package solar

import "math"

const (
	// axialTilt is the declination amplitude in degrees.
	axialTilt = 23.45
	// equinoxOffset shifts the declination sine so it crosses zero near March 21.
	equinoxOffset = 81
)

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// SunPosition is the sun's place in the sky, in degrees.
type SunPosition struct {
	Elevation float64 `json:"elevation"` // above horizon, <= 0 at night
	Azimuth   float64 `json:"azimuth"`   // clockwise from north, [0, 360)
}

// Declination returns the solar declination in degrees for a day of year.
func Declination(doy int) float64 {
	return axialTilt * math.Sin(degToRad(360.0/365.0*float64(doy-equinoxOffset)))
}

// EquationOfTime returns the difference between apparent and mean solar time
// in minutes.
func EquationOfTime(doy int) float64 {
	b := degToRad(360.0 / 364.0 * float64(doy-equinoxOffset))
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}

// Position returns the sun's elevation and azimuth at the given solar hour.
func Position(lat float64, doy int, hour float64) SunPosition {
	phi := degToRad(lat)
	delta := degToRad(Declination(doy))
	ha := degToRad(15 * (hour - 12))

	// Horizon-frame components of the sun direction.
	east := -math.Cos(delta) * math.Sin(ha)
	north := math.Cos(phi)*math.Sin(delta) - math.Sin(phi)*math.Cos(delta)*math.Cos(ha)
	up := math.Sin(phi)*math.Sin(delta) + math.Cos(phi)*math.Cos(delta)*math.Cos(ha)

	return SunPosition{
		Elevation: radToDeg(math.Asin(math.Max(-1, math.Min(1, up)))),
		Azimuth:   fixAngle(radToDeg(math.Atan2(east, north))),
	}
}

// TimeCorrection returns the shift in minutes between local clock time and
// local solar time for a longitude and a UTC offset in hours. Display only,
// the energy model works in solar time.
func TimeCorrection(lon, utcOffset float64, doy int) float64 {
	meridian := 15 * utcOffset
	return 4*(lon-meridian) + EquationOfTime(doy)
}
