package symbol

import (
	"image"
	"math"
)

// Code-points rendered by this package.
const (
	PowerlineRightTriangle = 0xE0B0
	PowerlineRightThin     = 0xE0B1
	PowerlineLeftTriangle  = 0xE0B2
	PowerlineLeftThin      = 0xE0B3
	GitBranch              = 0xE0A0
	Home                   = 0xF015
)

// Covers reports whether a code-point is rendered by the symbol
// renderer. Other code-points fall through to the font-based path.
func Covers(cp rune) bool {
	switch cp {
	case PowerlineRightTriangle, PowerlineRightThin,
		PowerlineLeftTriangle, PowerlineLeftThin,
		GitBranch, Home:
		return true
	}
	return false
}

// Raster renders a symbol into a w×h coverage bitmap.
func Raster(cp rune, w, h int) *image.Alpha {
	coverage := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return coverage
	}
	switch cp {
	case PowerlineRightTriangle:
		rightTriangle(coverage, w, h)
	case PowerlineLeftTriangle:
		leftTriangle(coverage, w, h)
	case PowerlineRightThin:
		verticalBar(coverage, w-1, h)
	case PowerlineLeftThin:
		verticalBar(coverage, 0, h)
	case GitBranch:
		gitBranch(coverage, w, h)
	case Home:
		home(coverage, w, h)
	default:
		tracer().Infof("symbol renderer does not cover %#U", cp)
	}
	return coverage
}

func set(img *image.Alpha, x, y int) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	img.Pix[y*img.Stride+x] = 0xff
}

// rightTriangle fills the right-pointing separator: row y extends from
// the left edge towards a point at the vertical center of the right
// edge, i.e. fill where x·h ≤ (h − |2y − h|)·w.
func rightTriangle(img *image.Alpha, w, h int) {
	for y := 0; y < h; y++ {
		reach := h - abs(2*y-h)
		for x := 0; x < w; x++ {
			if x*h <= reach*w {
				set(img, x, y)
			}
		}
	}
}

// leftTriangle is the mirrored separator pointing left.
func leftTriangle(img *image.Alpha, w, h int) {
	for y := 0; y < h; y++ {
		reach := h - abs(2*y-h)
		for x := 0; x < w; x++ {
			if (w-1-x)*h <= reach*w {
				set(img, x, y)
			}
		}
	}
}

// verticalBar draws a one-column bar at the given x position.
func verticalBar(img *image.Alpha, x int, h int) {
	for y := 0; y < h; y++ {
		set(img, x, y)
	}
}

// gitBranch draws the branch glyph: a circle with two radial lines.
func gitBranch(img *image.Alpha, w, h int) {
	cx, cy := float64(w)/2, float64(h)/2
	radius := math.Min(float64(w), float64(h)) / 4
	circle(img, cx, cy, radius)
	// radial lines up and down-right from the circle
	line(img, cx, cy, float64(w)/2, 1)
	line(img, cx, cy, float64(w)-2, float64(h)-2)
}

// home draws a triangle roof over a rectangular base.
func home(img *image.Alpha, w, h int) {
	roofH := h / 2
	for y := 0; y < roofH; y++ {
		// roof widens towards its bottom row
		half := (y * w) / (2 * roofH)
		for x := w/2 - half; x <= w/2+half; x++ {
			set(img, x, y)
		}
	}
	inset := w / 6
	for y := roofH; y < h; y++ {
		for x := inset; x < w-inset; x++ {
			set(img, x, y)
		}
	}
}

func circle(img *image.Alpha, cx, cy, radius float64) {
	steps := int(2 * math.Pi * radius * 2)
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		phi := 2 * math.Pi * float64(i) / float64(steps)
		set(img, int(cx+radius*math.Cos(phi)), int(cy+radius*math.Sin(phi)))
	}
}

func line(img *image.Alpha, x0, y0, x1, y1 float64) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		set(img, int(x0), int(y0))
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		set(img, int(x0+t*dx), int(y0+t*dy))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
