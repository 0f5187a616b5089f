package ot

import "errors"

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler.
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler.
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

func i16(b []byte) int16 {
	return int16(u16(b))
}

// fontBinSegm is a segment of byte data. Conceptually, it is like an
// io.ReaderAt, except that a common segment of sfnt font data is in-memory
// instead of on-disk. As an optimization, we skip the io.Reader / io.ReaderAt
// model of copying into a caller-supplied buffer and instead provide direct
// access to the underlying []byte data.
type fontBinSegm []byte

// view returns the length bytes at the given offset.
// The []byte returned is a sub-slice of b. The caller should not modify the
// contents of the returned []byte.
func (b fontBinSegm) view(offset, length int) ([]byte, error) {
	if 0 > offset || offset > offset+length {
		return nil, errBufferBounds
	}
	if offset+length > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+length], nil
}

// Size returns the length of the data segment in bytes.
func (b fontBinSegm) Size() int {
	return len(b)
}

// u16 returns the uint16 at the relative offset i.
func (b fontBinSegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// i16 returns the int16 at the relative offset i.
func (b fontBinSegm) i16(i int) (int16, error) {
	x, err := b.u16(i)
	return int16(x), err
}

// u32 returns the uint32 at the relative offset i.
func (b fontBinSegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}
