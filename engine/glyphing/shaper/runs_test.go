package shaper

import (
	"testing"

	"github.com/npillmayer/celltype/engine/glyphing"
	"github.com/npillmayer/celltype/engine/uniprop"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClusters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	cps := decode("a漢b")
	require.Equal(t, 3, len(cps))
	assert.Equal(t, 0, cps[0].cluster)
	assert.Equal(t, 1, cps[1].cluster)
	assert.Equal(t, 4, cps[2].cluster) // ideograph is 3 bytes
}

func TestDecodeInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	cps := decode("\xff\xfe")
	require.Equal(t, 2, len(cps))
	assert.Equal(t, '�', cps[0].r)
	assert.Equal(t, 0, cps[0].cluster)
	assert.Equal(t, 1, cps[1].cluster)
}

func TestItemizeScripts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	text := "abc漢字x"
	cps := decode(text)
	runs := itemizeScripts(cps)
	require.Equal(t, 3, len(runs))
	assert.Equal(t, uniprop.ScriptLatin, runs[0].script)
	assert.Equal(t, uniprop.ScriptHan, runs[1].script)
	assert.Equal(t, uniprop.ScriptLatin, runs[2].script)
}

func TestItemizeCommonJoinsPrevious(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	cps := decode("ab, cd")
	runs := itemizeScripts(cps)
	require.Equal(t, 1, len(runs))
	assert.Equal(t, uniprop.ScriptLatin, runs[0].script)
	assert.Equal(t, 0, runs[0].start)
	assert.Equal(t, 6, runs[0].end)
}

func TestSegmentRunsBidi(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	text := "abc שלום xyz"
	cps := decode(text)
	runs := segmentRuns(text, cps)
	require.GreaterOrEqual(t, len(runs), 3)
	assert.Equal(t, glyphing.LeftToRight, runs[0].dir)
	foundRTL := false
	for _, r := range runs {
		if r.dir == glyphing.RightToLeft {
			foundRTL = true
			assert.EqualValues(t, 1, r.level&1, "RTL runs have odd levels")
			assert.Equal(t, uniprop.ScriptHebrew, r.script)
		}
	}
	assert.True(t, foundRTL)
	// runs partition the text
	pos := 0
	for _, r := range runs {
		assert.Equal(t, pos, r.start)
		pos = r.end
	}
	assert.Equal(t, len(cps), pos)
}

func TestLigatureSetLongestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	ls := NewLigatureSet()
	ls.Add([]rune("=="), 100)
	ls.Add([]rune("==="), 200)
	lig, ok := ls.match([]rune("===x"))
	require.True(t, ok)
	assert.EqualValues(t, 200, lig.gid)
	assert.Equal(t, 3, lig.length)
	//
	lig, ok = ls.match([]rune("==x"))
	require.True(t, ok)
	assert.EqualValues(t, 100, lig.gid)
	//
	_, ok = ls.match([]rune("=x"))
	assert.False(t, ok)
}

func TestLigatureSetRejectsBadLengths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	ls := NewLigatureSet()
	ls.Add([]rune("a"), 1)
	ls.Add([]rune("abcde"), 2)
	_, ok := ls.match([]rune("abcde"))
	assert.False(t, ok)
}
