package ot

import (
	"golang.org/x/text/encoding/unicode"
)

// Name IDs of the naming table entries we care about.
const (
	NameFontFamily    = 1
	NameFontSubfamily = 2
	NameFullFontName  = 4
	NamePostScript    = 6
)

// NameTable is the naming table of a font. Records are stored for several
// platform/encoding/language combinations; we prefer Windows Unicode
// (platform 3, encoding 1) entries and fall back to Macintosh Roman.
type NameTable struct {
	TableBase
	count       int
	stringsBase int
}

func newNameTable(tag Tag, b fontBinSegm, offset, size uint32) *NameTable {
	t := &NameTable{}
	t.TableBase = TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.self = t
	return t
}

func (t *NameTable) Base() *TableBase {
	return &t.TableBase
}

// AsName returns this table as a name table, or nil.
func (tb *TableBase) AsName() *NameTable {
	if tb == nil || tb.self == nil {
		return nil
	}
	if n, ok := tb.self.(*NameTable); ok {
		return n
	}
	return nil
}

func parseName(tag Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	if size < 6 {
		return nil, errFontFormat("size of name table")
	}
	t := newNameTable(tag, b, offset, size)
	n, _ := b.u16(2)
	sb, _ := b.u16(4)
	t.count = int(n)
	t.stringsBase = int(sb)
	if 6+t.count*12 > int(size) {
		return nil, errFontFormat("name record entries")
	}
	return t, nil
}

// Name returns the naming table entry for a given name ID, or "" if the
// font has no decodable entry for it.
func (t *NameTable) Name(nameID int) string {
	best := ""
	for i := 0; i < t.count; i++ {
		rec, err := t.data.view(6+i*12, 12)
		if err != nil {
			return best
		}
		pid, psid := u16(rec), u16(rec[2:])
		id := int(u16(rec[6:]))
		if id != nameID {
			continue
		}
		length, off := int(u16(rec[8:])), int(u16(rec[10:]))
		raw, err := t.data.view(t.stringsBase+off, length)
		if err != nil {
			continue
		}
		switch {
		case pid == pidWindows && psid == psidWindowsUCS2, pid == pidUnicode:
			if s, err := decodeUTF16(raw); err == nil {
				return s
			}
		case pid == pidMacintosh:
			if best == "" {
				best = string(raw) // Roman is close enough to ASCII for names
			}
		}
	}
	return best
}

func decodeUTF16(b []byte) (string, error) {
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
