package sim

import "math"

// Vector3 is a 3D vector in the local north-east-up frame.
type Vector3 struct {
	X float64 // north, m or m/s
	Y float64 // east, m or m/s
	Z float64 // up, m or m/s
}

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and w.
func (v Vector3) Dot(w Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Geodetic is a position in geodetic coordinates.
type Geodetic struct {
	Lon float64 // degrees
	Lat float64 // degrees
	Alt float64 // meters above sea level
}

// Attitude is a roll-pitch-yaw triple in radians.
type Attitude struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}
