package resources

import (
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/celltype/core"
	"github.com/npillmayer/celltype/core/font"
)

// notFound returns an application error for a missing font resource.
func notFound(res string) error {
	return core.Error(core.EMISSING, "font not found: %s", res)
}

// FontPromise is a future for an asynchronously loaded font.
type FontPromise func() (*font.ScalableFont, error)

type fontPlusErr struct {
	font *font.ScalableFont
	err  error
}

// ResolveFont searches the system font directories for a font matching
// pattern and loads it in the background. Clients call the returned
// promise to wait for the result. If no matching font file exists, the
// promise yields the fallback font together with a "missing" error.
func ResolveFont(pattern string) FontPromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		path, err := findfont.Find(pattern)
		if err != nil {
			tracer().Infof("no system font matches '%s'", pattern)
			result.font = font.FallbackFont()
			result.err = notFound(pattern)
			ch <- result
			return
		}
		tracer().Debugf("font '%s' resolved to %s", pattern, path)
		result.font, result.err = font.LoadOpenTypeFont(path)
		if result.err != nil {
			result.font = font.FallbackFont()
		}
		ch <- result
	}(ch)
	return func() (*font.ScalableFont, error) {
		result := <-ch
		return result.font, result.err
	}
}

// FindFontPath returns the file path of a system font matching pattern,
// without loading it.
func FindFontPath(pattern string) (string, error) {
	path, err := findfont.Find(pattern)
	if err != nil {
		return "", notFound(pattern)
	}
	return path, nil
}

// ListFonts enumerates system font files whose name contains pattern
// (case-insensitive). An empty pattern lists every discovered font.
// This is the "system font enumerator" contract for host integration.
func ListFonts(pattern string) []string {
	all := findfont.List()
	if pattern == "" {
		return all
	}
	needle := strings.ToLower(pattern)
	var matches []string
	for _, path := range all {
		if strings.Contains(strings.ToLower(path), needle) {
			matches = append(matches, path)
		}
	}
	return matches
}
