// Package geom provides the unit conversions and 2D helpers shared by the
// FreePCB model and the KiCad output path. FreePCB coordinates are y-up with
// a per-footprint unit system; KiCad output is y-down millimeters.
package geom

import (
	"fmt"
	"math"
)

// Units identifies the native coordinate system of a footprint.
type Units string

const (
	Nanometers  Units = "NM"
	Millimeters Units = "MM"
	Mils        Units = "MIL"
)

// Valid reports whether u is one of the three recognized unit systems.
func (u Units) Valid() bool {
	return u == Nanometers || u == Millimeters || u == Mils
}

// ToMM converts a native-unit value to millimeters.
func ToMM(n float64, units Units) float64 {
	switch units {
	case Nanometers:
		return n / 1e6
	case Millimeters:
		return n
	case Mils:
		return n * 0.0254
	}
	return math.NaN()
}

// FromMM converts millimeters to nanometers. Used when synthesizing new
// geometry (courtyards) in native units before re-conversion.
func FromMM(n float64) float64 {
	return n * 1e6
}

// Point is a 2D coordinate in a footprint's native units.
type Point struct {
	X, Y float64
}

// ArcCenter computes the center of a circular arc from its two endpoints and
// the signed included angle in degrees. The sign of the angle selects the
// side of the chord the center lies on. A zero angle or coincident endpoints
// leave the center undefined and are rejected.
func ArcCenter(start, end Point, angle float64) (Point, error) {
	dx := end.X - start.X
	dy := end.Y - start.Y

	dlen := math.Sqrt(dx*dx + dy*dy)
	if angle == 0 || dlen == 0 {
		return Point{}, fmt.Errorf("degenerate arc: angle %g, chord length %g", angle, dlen)
	}

	mid := Point{X: start.X + dx/2, Y: start.Y + dy/2}
	dist := dlen / (2 * math.Tan(angle/2*math.Pi/180))

	return Point{
		X: mid.X + dist*(dy/dlen),
		Y: mid.Y - dist*(dx/dlen),
	}, nil
}

// TextAnchor converts a FreePCB top-left text origin to the centered anchor
// KiCad expects. All inputs and outputs are millimeters; n is the string
// length in characters.
func TextAnchor(x, y, height float64, n int) (float64, float64) {
	px := x + height*float64(n)/2
	py := -y - height/2
	return px, py
}

// SwapForRotation exchanges a pad's two extents when the pin is rotated a
// quarter turn, since pad sizes are declared in the pin's local frame.
func SwapForRotation(angle float64, sx, sy float64) (float64, float64) {
	if angle == 90 || angle == 270 {
		return sy, sx
	}
	return sx, sy
}
