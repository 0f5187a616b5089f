package gfx

import (
	"image"

	"github.com/npillmayer/celltype/core"
)

// Color is a 32-bit RGBA color in 0xRRGGBBAA layout, straight alpha.
type Color uint32

// Color components.
func (c Color) R() uint8 { return uint8(c >> 24) }
func (c Color) G() uint8 { return uint8(c >> 16) }
func (c Color) B() uint8 { return uint8(c >> 8) }
func (c Color) A() uint8 { return uint8(c) }

// RGBA assembles a color from components.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// WithAlpha replaces the alpha component.
func (c Color) WithAlpha(a uint8) Color {
	return c&0xffffff00 | Color(a)
}

// Backend is the capability interface a concrete graphics backend has
// to offer. Backends are chosen at construction time; GPU-backed
// variants live outside of this module.
type Backend interface {
	// UploadAtlas hands a changed glyph-atlas texture to the backend.
	UploadAtlas(generation uint64, texture *image.RGBA) error
	// BlitRegion copies an axis-aligned rectangle of RGBA pixels to the
	// output surface at (x, y).
	BlitRegion(rgba []byte, x, y, w, h int) error
	// Flush makes all blitted regions visible.
	Flush() error
}

// BackendKind names the known backend implementations. The GPU-backed
// variants own their surfaces outside of this module; only the software
// renderer is provided here.
type BackendKind int

// Backend variants, chosen at construction time.
const (
	Software BackendKind = iota
	OpenGL
	Vulkan
	Metal
)

// SoftwareBackend renders into a caller-owned RGBA buffer. It is the
// reference implementation of the Backend capability set.
type SoftwareBackend struct {
	target []byte
	w, h   int
}

var _ Backend = &SoftwareBackend{}

// NewSoftwareBackend wraps a caller-owned pixel buffer of w×h RGBA
// pixels. The buffer length must be w×h×4.
func NewSoftwareBackend(target []byte, w, h int) (*SoftwareBackend, error) {
	if len(target) != w*h*4 {
		return nil, core.Error(core.EINVALID,
			"pixel buffer has %d bytes, need %d", len(target), w*h*4)
	}
	return &SoftwareBackend{target: target, w: w, h: h}, nil
}

// UploadAtlas is a no-op for the software backend: it reads glyphs
// straight from atlas memory.
func (sb *SoftwareBackend) UploadAtlas(generation uint64, texture *image.RGBA) error {
	tracer().Debugf("software backend ignores atlas upload (generation %d)", generation)
	return nil
}

// BlitRegion copies a rectangle of RGBA pixels into the target buffer.
// The region is clipped against the target; a failure can therefore
// only occur before the first pixel is written.
func (sb *SoftwareBackend) BlitRegion(rgba []byte, x, y, w, h int) error {
	if len(rgba) < w*h*4 {
		return core.Error(core.EINVALID, "blit source has %d bytes, need %d",
			len(rgba), w*h*4)
	}
	for row := 0; row < h; row++ {
		ty := y + row
		if ty < 0 || ty >= sb.h {
			continue
		}
		for col := 0; col < w; col++ {
			tx := x + col
			if tx < 0 || tx >= sb.w {
				continue
			}
			src := (row*w + col) * 4
			dst := (ty*sb.w + tx) * 4
			copy(sb.target[dst:dst+4], rgba[src:src+4])
		}
	}
	return nil
}

// Flush is a no-op: the caller owns the buffer.
func (sb *SoftwareBackend) Flush() error {
	return nil
}
