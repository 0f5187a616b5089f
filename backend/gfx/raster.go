package gfx

import (
	"image"
	"image/draw"

	"github.com/npillmayer/celltype/core/font/ot"
	"golang.org/x/image/vector"
)

// RasterizeOutline scan-converts glyph contours (in font units) into an
// alpha coverage bitmap of w×h pixels. scale converts font units to
// pixels; (dx, dy) positions the glyph origin inside the bitmap, with
// dy being the baseline row (font-unit y grows upward, pixel y grows
// downward).
//
// TrueType contours are sequences of on- and off-curve points;
// consecutive off-curve points imply an on-curve midpoint. Off-curve
// points are control points of quadratic Bézier segments.
func RasterizeOutline(contours []ot.Contour, scale float64, w, h int, dx, dy float64) *image.Alpha {
	coverage := image.NewAlpha(image.Rect(0, 0, w, h))
	if len(contours) == 0 || w <= 0 || h <= 0 {
		return coverage
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	for _, contour := range contours {
		rasterizeContour(z, contour, scale, dx, dy)
	}
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})
	return coverage
}

// px/py map a font-unit point into pixel space.
func px(p ot.OutlinePoint, scale, dx float64) float32 {
	return float32(dx + float64(p.X)*scale)
}

func py(p ot.OutlinePoint, scale, dy float64) float32 {
	return float32(dy - float64(p.Y)*scale)
}

func midpoint(a, b ot.OutlinePoint) ot.OutlinePoint {
	return ot.OutlinePoint{
		X:       int16((int32(a.X) + int32(b.X)) / 2),
		Y:       int16((int32(a.Y) + int32(b.Y)) / 2),
		OnCurve: true,
	}
}

func rasterizeContour(z *vector.Rasterizer, contour ot.Contour, scale, dx, dy float64) {
	n := len(contour)
	if n == 0 {
		return
	}
	// find a starting on-curve point, synthesizing one from the first
	// two off-curve points if the contour has no on-curve point at all
	startIdx := -1
	for i, p := range contour {
		if p.OnCurve {
			startIdx = i
			break
		}
	}
	var start ot.OutlinePoint
	if startIdx < 0 {
		start = midpoint(contour[0], contour[1%n])
		startIdx = 0
	} else {
		start = contour[startIdx]
	}
	z.MoveTo(px(start, scale, dx), py(start, scale, dy))
	pen := start
	var ctrl *ot.OutlinePoint
	for k := 1; k <= n; k++ {
		p := contour[(startIdx+k)%n]
		if p.OnCurve {
			if ctrl == nil {
				z.LineTo(px(p, scale, dx), py(p, scale, dy))
			} else {
				z.QuadTo(px(*ctrl, scale, dx), py(*ctrl, scale, dy),
					px(p, scale, dx), py(p, scale, dy))
				ctrl = nil
			}
			pen = p
		} else {
			if ctrl != nil {
				// two consecutive off-curve points: implied on-curve midpoint
				mid := midpoint(*ctrl, p)
				z.QuadTo(px(*ctrl, scale, dx), py(*ctrl, scale, dy),
					px(mid, scale, dx), py(mid, scale, dy))
				pen = mid
			}
			c := p
			ctrl = &c
		}
	}
	// close the contour back to the start
	if ctrl != nil {
		z.QuadTo(px(*ctrl, scale, dx), py(*ctrl, scale, dy),
			px(start, scale, dx), py(start, scale, dy))
	} else if pen != start {
		z.LineTo(px(start, scale, dx), py(start, scale, dy))
	}
	z.ClosePath()
}

// OutlineBounds computes the bounding box of contours in font units.
func OutlineBounds(contours []ot.Contour) (minX, minY, maxX, maxY int32) {
	first := true
	for _, contour := range contours {
		for _, p := range contour {
			if first {
				minX, maxX = int32(p.X), int32(p.X)
				minY, maxY = int32(p.Y), int32(p.Y)
				first = false
				continue
			}
			if int32(p.X) < minX {
				minX = int32(p.X)
			}
			if int32(p.X) > maxX {
				maxX = int32(p.X)
			}
			if int32(p.Y) < minY {
				minY = int32(p.Y)
			}
			if int32(p.Y) > maxY {
				maxY = int32(p.Y)
			}
		}
	}
	return
}
