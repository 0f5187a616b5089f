package font

import (
	"fmt"
	"sync"

	"github.com/npillmayer/celltype/core"
)

// FontID is a handle into a font arena. Handle 0 is reserved and never
// issued, so callers may use the zero value as "no font".
type FontID uint32

// Arena owns a set of loaded fonts and hands out integer handles for
// them. Dependent components (caches, fallback chains, shapers) store
// FontIDs only; resolving a handle after the font has been unloaded
// fails cleanly instead of dereferencing freed memory.
//
// All methods are safe for concurrent use.
type Arena struct {
	mutex     sync.RWMutex
	fonts     []*ScalableFont // index = FontID − 1; nil for unloaded slots
	byName    map[string]FontID
	typecases map[string]*TypeCase
	version   uint64 // incremented on every load/unload
}

// NewArena creates an empty font arena.
func NewArena() *Arena {
	return &Arena{
		byName:    make(map[string]FontID),
		typecases: make(map[string]*TypeCase),
	}
}

// global arena, created lazily
var globalArena *Arena
var globalArenaCreation sync.Once

// GlobalArena returns a process-wide font arena for applications which do
// not want to inject their own.
func GlobalArena() *Arena {
	globalArenaCreation.Do(func() {
		globalArena = NewArena()
	})
	return globalArena
}

// StoreFont places a font into the arena and returns its handle. Storing
// a font twice (by normalized name) returns the existing handle.
func (arena *Arena) StoreFont(f *ScalableFont) (FontID, error) {
	if f == nil {
		return 0, core.Error(core.EINVALID, "arena cannot store null font")
	}
	arena.mutex.Lock()
	defer arena.mutex.Unlock()
	fname := NormalizeFontname(f.Fontname)
	if id, ok := arena.byName[fname]; ok {
		return id, nil
	}
	arena.fonts = append(arena.fonts, f)
	id := FontID(len(arena.fonts))
	arena.byName[fname] = id
	arena.version++
	tracer().Debugf("arena stores font %s as #%d (%s)", f.Fontname, id, fname)
	return id, nil
}

// Font resolves a handle. Unloaded or invalid handles yield an error.
func (arena *Arena) Font(id FontID) (*ScalableFont, error) {
	arena.mutex.RLock()
	defer arena.mutex.RUnlock()
	if id == 0 || int(id) > len(arena.fonts) {
		return nil, core.Error(core.EMISSING, "invalid font handle #%d", id)
	}
	f := arena.fonts[id-1]
	if f == nil {
		return nil, core.Error(core.EMISSING, "font #%d has been unloaded", id)
	}
	return f, nil
}

// Lookup finds a handle by font name, using normalized name matching.
func (arena *Arena) Lookup(name string) (FontID, bool) {
	arena.mutex.RLock()
	defer arena.mutex.RUnlock()
	id, ok := arena.byName[NormalizeFontname(name)]
	return id, ok
}

// Unload removes a font from the arena. The handle will never be re-used
// for a different font. Typecases derived from the font are dropped.
func (arena *Arena) Unload(id FontID) {
	arena.mutex.Lock()
	defer arena.mutex.Unlock()
	if id == 0 || int(id) > len(arena.fonts) {
		return
	}
	f := arena.fonts[id-1]
	if f == nil {
		return
	}
	arena.fonts[id-1] = nil
	delete(arena.byName, NormalizeFontname(f.Fontname))
	for key, tc := range arena.typecases {
		if tc.scalableFontParent == f {
			delete(arena.typecases, key)
		}
	}
	arena.version++
	tracer().Infof("arena unloads font #%d (%s)", id, f.Fontname)
}

// Version returns a counter which changes whenever the set of loaded
// fonts changes. Caches key their validity on it.
func (arena *Arena) Version() uint64 {
	arena.mutex.RLock()
	defer arena.mutex.RUnlock()
	return arena.version
}

// TypeCase returns a typecase for a loaded font at a given size,
// preparing and caching it on first use. If the font is not in the
// arena, the fallback font is prepared instead and an error is returned
// alongside the usable fallback typecase.
func (arena *Arena) TypeCase(name string, size float64) (*TypeCase, error) {
	tname := normalizeTypeCaseName(name, size)
	arena.mutex.Lock()
	defer arena.mutex.Unlock()
	if t, ok := arena.typecases[tname]; ok {
		return t, nil
	}
	fname := NormalizeFontname(name)
	if id, ok := arena.byName[fname]; ok {
		f := arena.fonts[id-1]
		t, err := f.PrepareCase(size)
		if err != nil {
			return nil, err
		}
		tracer().Infof("font arena has font %s, caches at %.2f", fname, size)
		arena.typecases[tname] = t
		return t, nil
	}
	tracer().Infof("font arena does not contain font %s", name)
	err := core.Error(core.EMISSING, "font %s not found in arena", name)
	fallbackName := normalizeTypeCaseName("fallback", size)
	if t, ok := arena.typecases[fallbackName]; ok {
		return t, err
	}
	f := FallbackFont()
	t, terr := f.PrepareCase(size)
	if terr != nil {
		return nil, terr
	}
	arena.typecases[fallbackName] = t
	return t, err
}

// DebugList logs the current arena contents.
func (arena *Arena) DebugList() {
	arena.mutex.RLock()
	defer arena.mutex.RUnlock()
	tracer().Debugf("--- fonts in arena ---")
	for i, f := range arena.fonts {
		if f != nil {
			tracer().Debugf("font #%d = %v", i+1, f.Fontname)
		}
	}
	tracer().Debugf("----------------------")
}

func normalizeTypeCaseName(fname string, size float64) string {
	return fmt.Sprintf("%s-%.2f", NormalizeFontname(fname), size)
}
