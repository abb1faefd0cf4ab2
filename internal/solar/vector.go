package solar

import "math"

// Vector is a 3D vector in the local horizon frame (x=east, y=north, z=up).
type Vector struct {
	X, Y, Z float64
}

// Dot returns the scalar product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Norm returns the length of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// ToVector converts an azimuth/elevation pair into a unit direction vector.
func ToVector(azimuth, elevation float64) Vector {
	az := degToRad(azimuth)
	el := degToRad(elevation)
	return Vector{
		X: math.Cos(el) * math.Sin(az),
		Y: math.Cos(el) * math.Cos(az),
		Z: math.Sin(el),
	}
}

// PanelNormal returns the unit normal of a panel facing azimuth and tilted
// tilt degrees from horizontal. The normal leans the same angle away from
// straight up, so a flat panel has normal (0, 0, 1) whatever its azimuth.
func PanelNormal(azimuth, tilt float64) Vector {
	az := degToRad(azimuth)
	t := degToRad(tilt)
	return Vector{
		X: math.Sin(t) * math.Sin(az),
		Y: math.Sin(t) * math.Cos(az),
		Z: math.Cos(t),
	}
}
