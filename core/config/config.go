package config

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/celltype/core"
)

// Configuration keys. The key set is closed: keys not listed here are
// ignored during parsing.
const (
	KeyFontFamily      = "font-family"
	KeyFontSize        = "font-size"
	KeyTheme           = "theme"
	KeyEnableLigatures = "enable-ligatures"
	KeyEnableKerning   = "enable-kerning"
	KeyZeroStyle       = "zero-style"
	KeyCursorBlink     = "cursor-blink"
	KeyCursorShape     = "cursor-shape"
	KeyWindowPaddingX  = "window-padding-x"
	KeyWindowPaddingY  = "window-padding-y"
)

var recognizedKeys = hashset.New(
	KeyFontFamily, KeyFontSize, KeyTheme,
	KeyEnableLigatures, KeyEnableKerning, KeyZeroStyle,
	KeyCursorBlink, KeyCursorShape,
	KeyWindowPaddingX, KeyWindowPaddingY,
)

// ZeroStyle selects the rendering of the digit zero.
type ZeroStyle int

// Recognized zero styles.
const (
	ZeroNormal ZeroStyle = iota
	ZeroSlashed
	ZeroDotted
)

// CursorShape selects the visual form of the terminal cursor.
type CursorShape int

// Recognized cursor shapes.
const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// Settings is an immutable snapshot of configuration values.
type Settings struct {
	FontFamily      string
	FontSize        float64
	Theme           string
	EnableLigatures bool
	EnableKerning   bool
	ZeroStyle       ZeroStyle
	CursorBlink     bool
	CursorShape     CursorShape
	WindowPaddingX  uint32
	WindowPaddingY  uint32
}

// Defaults returns the settings in effect without any configuration file.
func Defaults() Settings {
	return Settings{
		FontFamily:      "monospace",
		FontSize:        12.0,
		Theme:           "default",
		EnableLigatures: true,
		EnableKerning:   true,
		ZeroStyle:       ZeroNormal,
		CursorBlink:     true,
		CursorShape:     CursorBlock,
	}
}

// Parse reads a configuration in `key=value` form. Malformed lines and
// unknown keys are skipped; a value that cannot be converted to the
// key's type is an error.
func Parse(r io.Reader) (Settings, error) {
	s := Defaults()
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			tracer().Infof("config line %d has no '=', ignoring", lineno)
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		if !recognizedKeys.Contains(key) {
			tracer().Debugf("config key '%s' not recognized, ignoring", key)
			continue
		}
		if err := s.set(key, value); err != nil {
			return s, core.WrapError(err, core.EINVALID,
				"config line %d: bad value for %s", lineno, key)
		}
	}
	return s, scanner.Err()
}

func (s *Settings) set(key, value string) error {
	switch key {
	case KeyFontFamily:
		s.FontFamily = value
	case KeyFontSize:
		size, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return err
		}
		s.FontSize = size
	case KeyTheme:
		s.Theme = value
	case KeyEnableLigatures:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.EnableLigatures = b
	case KeyEnableKerning:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.EnableKerning = b
	case KeyZeroStyle:
		switch value {
		case "normal":
			s.ZeroStyle = ZeroNormal
		case "slashed":
			s.ZeroStyle = ZeroSlashed
		case "dotted":
			s.ZeroStyle = ZeroDotted
		default:
			return core.Error(core.EINVALID, "unknown zero-style '%s'", value)
		}
	case KeyCursorBlink:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.CursorBlink = b
	case KeyCursorShape:
		switch value {
		case "block":
			s.CursorShape = CursorBlock
		case "underline":
			s.CursorShape = CursorUnderline
		case "bar":
			s.CursorShape = CursorBar
		default:
			return core.Error(core.EINVALID, "unknown cursor-shape '%s'", value)
		}
	case KeyWindowPaddingX:
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		s.WindowPaddingX = uint32(n)
	case KeyWindowPaddingY:
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		s.WindowPaddingY = uint32(n)
	}
	return nil
}

// Watcher is the contract of an external file-change watcher. The
// renderer never watches files itself; a host wires a watcher to a
// store with WatchFile.
type Watcher interface {
	Watch(path string, callback func()) error
}

// WatchFile arranges for a store to reload a configuration file
// whenever the watcher reports a change. The callback fires on the
// watcher thread; Reload acquires the configuration lock itself and
// notifies observers outside of it.
func WatchFile(w Watcher, path string, store *Store, open func(string) (io.ReadCloser, error)) error {
	return w.Watch(path, func() {
		r, err := open(path)
		if err != nil {
			tracer().Errorf("config reload: %v", err)
			return
		}
		defer r.Close()
		if err := store.Reload(r); err != nil {
			tracer().Errorf("config reload: %v", err)
		}
	})
}

// --- Store -----------------------------------------------------------------

// Store holds the currently active settings and distributes updates.
// All methods are safe for concurrent use.
type Store struct {
	mutex     sync.Mutex
	current   Settings
	observers []func(Settings)
}

// NewStore creates a configuration store, initialized to defaults.
func NewStore() *Store {
	return &Store{current: Defaults()}
}

// Current returns a snapshot of the active settings.
func (store *Store) Current() Settings {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.current
}

// Notify registers a callback to be invoked whenever the settings
// change. Callbacks run outside of the configuration lock; they may
// safely call into rendering components.
func (store *Store) Notify(cb func(Settings)) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.observers = append(store.observers, cb)
}

// Reload parses a configuration and makes it the active one. Observers
// are notified after the lock has been released.
func (store *Store) Reload(r io.Reader) error {
	s, err := Parse(r)
	if err != nil {
		return err
	}
	store.mutex.Lock()
	store.current = s
	observers := make([]func(Settings), len(store.observers))
	copy(observers, store.observers)
	store.mutex.Unlock()
	tracer().Infof("configuration reloaded, notifying %d observers", len(observers))
	for _, cb := range observers {
		cb(s)
	}
	return nil
}
