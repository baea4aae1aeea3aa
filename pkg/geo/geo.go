// Package geo converts between geodetic coordinates and the local
// north-east-up frame every scenario entity shares.
//
// The transform uses a flat-earth spherical model (R = 6371 km) about the
// scenario origin. All entities in a scenario share one origin, so the
// formula is fixed here and NEU2LLA is the exact algebraic inverse of
// LLA2NEU; small model errors are systematic and cancel on the round trip.
package geo

import "math"

// EarthRadius is the mean spherical earth radius in meters.
const EarthRadius = 6371000.0

const degToRad = math.Pi / 180.0

// LLA2NEU converts geodetic coordinates (longitude deg, latitude deg,
// altitude m) to the local north-east-up frame anchored at the origin
// (lon0 deg, lat0 deg, alt0 m). Results are in meters.
func LLA2NEU(lon, lat, alt, lon0, lat0, alt0 float64) (north, east, up float64) {
	north = (lat - lat0) * degToRad * EarthRadius
	east = (lon - lon0) * degToRad * EarthRadius * math.Cos(lat0*degToRad)
	up = alt - alt0
	return north, east, up
}

// NEU2LLA converts local north-east-up coordinates (meters) back to
// geodetic (longitude deg, latitude deg, altitude m) about the same origin.
func NEU2LLA(north, east, up, lon0, lat0, alt0 float64) (lon, lat, alt float64) {
	lat = lat0 + north/(degToRad*EarthRadius)
	lon = lon0 + east/(degToRad*EarthRadius*math.Cos(lat0*degToRad))
	alt = alt0 + up
	return lon, lat, alt
}

// Norm2 returns the Euclidean norm of a 2D vector.
func Norm2(x, y float64) float64 {
	return math.Hypot(x, y)
}

// Norm3 returns the Euclidean norm of a 3D vector.
func Norm3(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
