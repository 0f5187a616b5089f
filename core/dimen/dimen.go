/*
Package dimen implements dimensions and units.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"fmt"
	"math"
)

// DU is the central type for dimensions and lengths. Some of the packages in
// this module take great care to avoid rounding errors du to floating point
// arithmetic, and therefore will rely on fixed-point calculations with
// dimensions. DU will be based on scaled points, i.e. the dimension of
// TeX, where 65536 scaled points equal 1 printer's point.
type DU int32

// Some pre-defined dimensions
const (
	SP DU = 1     // scaled point
	PT DU = 65536 // printer's point = 65536 scaled points
	PX DU = 65781 // pixel at 72 dpi (one big point), rounded
	IN DU = 4736286
	BP DU = IN / 72 // big point = PostScript point
	MM DU = 186467
	CM DU = 1864679
)

// Infinity is the largest dimension value.
const Infinity = math.MaxInt32

func (d DU) String() string {
	return fmt.Sprintf("%.2fpt", float64(d)/float64(PT))
}

// Points returns a dimension in big (PostScript) points.
func (d DU) Points() float64 {
	return float64(d) / float64(BP)
}

// Pixels returns a dimension as device pixels, rounded to the nearest pixel.
func (d DU) Pixels() int {
	return int(math.Round(float64(d) / float64(PX)))
}

// FromPoints converts a floating point size (in big points) to a dimension.
func FromPoints(pt float64) DU {
	return DU(math.Round(pt * float64(BP)))
}

// Point is a point on a plane, given by (x,y) coordinates.
type Point struct {
	X, Y DU
}

// Origin denotes (0,0).
var Origin = Point{0, 0}

// Shift a point by a vector, i.e. another point.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// Rect is a rectangle on a plane, given by two corner points.
type Rect struct {
	TopL Point
	BotR Point
}

// Width returns the width of a rectangle.
func (r Rect) Width() DU {
	return r.BotR.X - r.TopL.X
}

// Height returns the height of a rectangle.
func (r Rect) Height() DU {
	return r.BotR.Y - r.TopL.Y
}

// Min returns the smaller of two dimensions.
func Min(a, b DU) DU {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b DU) DU {
	if a > b {
		return a
	}
	return b
}
