package config

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.config")
	defer teardown()
	//
	s, err := Parse(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestParseOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.config")
	defer teardown()
	//
	input := `
# terminal font setup
font-family = JetBrains Mono
font-size=13.5
enable-ligatures = false
zero-style = slashed
cursor-shape = bar
window-padding-x = 4
no-such-key = whatever
`
	s, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, "JetBrains Mono", s.FontFamily)
	assert.InDelta(t, 13.5, s.FontSize, 0.001)
	assert.False(t, s.EnableLigatures)
	assert.True(t, s.EnableKerning) // untouched default
	assert.Equal(t, ZeroSlashed, s.ZeroStyle)
	assert.Equal(t, CursorBar, s.CursorShape)
	assert.EqualValues(t, 4, s.WindowPaddingX)
}

func TestParseBadValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.config")
	defer teardown()
	//
	_, err := Parse(strings.NewReader("font-size = huge\n"))
	assert.Error(t, err)
}

func TestStoreNotify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.config")
	defer teardown()
	//
	store := NewStore()
	var seen Settings
	store.Notify(func(s Settings) {
		seen = s
	})
	err := store.Reload(strings.NewReader("theme = solarized\n"))
	assert.NoError(t, err)
	assert.Equal(t, "solarized", seen.Theme)
	assert.Equal(t, "solarized", store.Current().Theme)
}
