package model

import (
	"fmt"
	"math"
)

// Point представляет координаты в игровом мире.
// Value type, передаётся по значению (immutable).
type Point struct {
	X float64
	Y float64
	Z float64
}

// NewPoint создаёт Point с указанными координатами.
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Min returns the component-wise minimum of p and other.
func (p Point) Min(other Point) Point {
	return Point{X: math.Min(p.X, other.X), Y: math.Min(p.Y, other.Y), Z: math.Min(p.Z, other.Z)}
}

// Max returns the component-wise maximum of p and other.
func (p Point) Max(other Point) Point {
	return Point{X: math.Max(p.X, other.X), Y: math.Max(p.Y, other.Y), Z: math.Max(p.Z, other.Z)}
}

// IsFinite reports whether every component is a finite number.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

// String formats the point rounded to whole blocks, as shown in admin replies.
func (p Point) String() string {
	return fmt.Sprintf("(%.0f, %.0f, %.0f)", p.X, p.Y, p.Z)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
