package shaper

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIndic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, indicConsonant, classifyIndic('क'))        // ka
	assert.Equal(t, indicVowelIndependent, classifyIndic('आ')) // aa
	assert.Equal(t, indicHalant, classifyIndic(0x094D))
	assert.Equal(t, indicNukta, classifyIndic(0x093C))
	assert.Equal(t, indicMatraPre, classifyIndic(0x093F))  // i
	assert.Equal(t, indicMatraBelow, classifyIndic(0x0941)) // u
	assert.Equal(t, indicMatraPost, classifyIndic(0x093E)) // aa matra (Mc)
	assert.Equal(t, indicZWJ, classifyIndic(0x200D))
	assert.Equal(t, indicNumber, classifyIndic('7'))
}

func TestIndicSyllableBoundaries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	// ka + i-matra | ra + aa-matra: two syllables, split before the
	// second consonant
	cps := decode("किरा")
	syllables := indicSyllables(cps)
	require.Equal(t, 2, len(syllables))
	assert.Equal(t, [2]int{0, 2}, syllables[0])
	assert.Equal(t, [2]int{2, 4}, syllables[1])
}

func TestIndicConjunctStaysTogether(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	// ka + halant + ka: halant-joined consonants form one syllable
	cps := decode("क्क")
	syllables := indicSyllables(cps)
	require.Equal(t, 1, len(syllables))
}

func TestIndicReorderMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	// consonant + post-matra (class 3) + pre-matra (class 1): the
	// stable sort brings the pre-base matra first
	cps := decode("काि")
	reorderIndic(cps)
	require.Equal(t, 3, len(cps))
	assert.Equal(t, rune(0x0915), cps[0].r)
	assert.Equal(t, rune(0x093F), cps[1].r)
	assert.Equal(t, rune(0x093E), cps[2].r)
}

func TestIndicReorderKeepsClusterIDs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	cps := decode("काि")
	reorderIndic(cps)
	// cluster ids travel with their code-points
	assert.Equal(t, 6, cps[1].cluster) // the pre-matra came from byte 6
	assert.Equal(t, 3, cps[2].cluster)
}
