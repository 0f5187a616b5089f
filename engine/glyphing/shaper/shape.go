package shaper

import (
	"unicode/utf8"

	"github.com/npillmayer/celltype/core/font"
	"github.com/npillmayer/celltype/core/font/ot"
	"github.com/npillmayer/celltype/core/font/otquery"
	"github.com/npillmayer/celltype/engine/glyphing"
	"github.com/npillmayer/celltype/engine/uniprop"
	"golang.org/x/text/unicode/norm"
)

// Shaper is a Unicode-aware text shaper for terminal output. It holds
// the ligature registries and nothing else; per-call state lives on the
// stack of Shape, so a single Shaper may be used from any number of
// goroutines.
type Shaper struct {
	liga   *LigatureSet // default 'liga' substitutions
	clig   *LigatureSet // default 'clig' substitutions
	custom *LigatureSet // font- or caller-provided substitutions
}

var _ glyphing.Shaper = &Shaper{}

// New creates a shaper with the standard ligature sets.
func New() *Shaper {
	return &Shaper{
		liga:   StandardLigatures(),
		clig:   ContextualLigatures(),
		custom: NewLigatureSet(),
	}
}

// AddLigature registers a substitution of a code-point sequence by a
// font glyph, as a font's substitution table would. Custom ligatures
// take precedence over the built-in sets.
func (sh *Shaper) AddLigature(seq []rune, gid ot.GlyphIndex) {
	sh.custom.Add(seq, gid)
}

// featureState resolves which features are active at a cluster position.
type featureState struct {
	kern, liga, clig bool
}

func resolveFeatures(features []glyphing.FeatureRange, cluster int) featureState {
	// default features
	state := featureState{kern: true, liga: true, clig: true}
	for _, fr := range features {
		if cluster < fr.Start || (fr.End >= 0 && cluster >= fr.End) {
			continue
		}
		switch fr.Feature {
		case glyphing.FeatureKern:
			state.kern = fr.On
		case glyphing.FeatureLiga:
			state.liga = fr.On
		case glyphing.FeatureClig:
			state.clig = fr.On
		}
	}
	return state
}

// Shape turns a string into a positioned glyph sequence. Invalid UTF-8
// contributes replacement characters; shaping never fails on text
// input. The returned glyphs are in visual order across runs while
// cluster ids preserve logical order.
func (sh *Shaper) Shape(text string, params glyphing.Params) (glyphing.GlyphSequence, error) {
	typecase := params.Font
	if typecase == nil {
		var err error
		typecase, err = font.FallbackFont().PrepareCase(10.0)
		if err != nil {
			return glyphing.GlyphSequence{}, err
		}
	}
	otf := typecase.ScalableFontParent().SFNT
	//
	// 1. decode to code-points with cluster ids
	cps := decode(text)
	// 2.+3. script runs, split at bidi level boundaries
	runs := segmentRuns(text, cps)
	tracer().Debugf("shaping %d code-points in %d runs", len(cps), len(runs))
	//
	masks := make([]uint32, len(cps))
	for _, r := range runs {
		if r.script == uniprop.ScriptArabic || r.script == uniprop.ScriptSyriac ||
			r.script == uniprop.ScriptThaana {
			resolveJoining(cps[r.start:r.end], masks[r.start:r.end])
		}
		if r.script.IsIndic() {
			reorderIndic(cps[r.start:r.end])
		}
	}
	//
	buf := NewBuffer(len(cps))
	seq := glyphing.GlyphSequence{}
	type runSpan struct {
		start, end int
	}
	spans := make([]runSpan, 0, len(runs))
	levels := make([]uint8, 0, len(runs))
	for _, r := range runs {
		runStart := buf.Len()
		// 4. glyph lookup in logical order
		for i := r.start; i < r.end; i++ {
			gid := otquery.GlyphIndex(otf, cps[i].r)
			mtx := otquery.GlyphMetrics(otf, gid)
			buf.Append(
				glyphing.GlyphInfo{
					CodePoint: cps[i].r,
					GID:       gid,
					ClusterID: cps[i].cluster,
					Mask:      masks[i],
				},
				glyphing.GlyphPosition{
					XAdvance: typecase.Scale(mtx.Advance),
				},
			)
		}
		// 5. substitutions: cluster formation first, then ligatures
		sh.composeMarks(buf, runStart, typecase, otf)
		sh.applyLigatures(buf, runStart, typecase, otf, params)
		// 6. positioning
		if otf != nil {
			sh.applyKerning(buf, runStart, typecase, otf, params)
		}
		// 7. right-to-left runs are reversed after shaping, so cluster
		// ids remain logical while storage order becomes visual
		if r.dir == glyphing.RightToLeft {
			buf.Reverse(runStart, buf.Len())
		}
		spans = append(spans, runSpan{start: runStart, end: buf.Len()})
		levels = append(levels, r.level)
	}
	//
	for i := 0; i < buf.Len(); i++ {
		seq.W += buf.Position(i).XAdvance
	}
	metrics := typecase.Metrics()
	seq.H = typecase.Scale(int32(metrics.Ascent))
	seq.D = -typecase.Scale(int32(metrics.Descent))
	// rule L2: the run sequence itself is reordered by embedding level,
	// so adjacent right-to-left runs swap into visual order as well
	glyphs := make([]glyphing.ShapedGlyph, 0, buf.Len())
	for _, idx := range visualRunOrder(levels) {
		for i := spans[idx].start; i < spans[idx].end; i++ {
			glyphs = append(glyphs, glyphing.ShapedGlyph{
				GlyphInfo:     *buf.Info(i),
				GlyphPosition: *buf.Position(i),
			})
		}
	}
	seq.Glyphs = glyphs
	return seq, nil
}

// composeMarks merges a base glyph with a following combining mark when
// the font offers a precomposed glyph for the NFC composition of the
// pair. The merged glyph keeps the base glyph's cluster id, so source
// offsets survive the substitution.
func (sh *Shaper) composeMarks(buf *Buffer, start int, typecase *font.TypeCase, otf *ot.Font) {
	for i := start; i+1 < buf.Len(); i++ {
		if !uniprop.IsCombiningMark(buf.Info(i + 1).CodePoint) {
			continue
		}
		pair := string([]rune{buf.Info(i).CodePoint, buf.Info(i + 1).CodePoint})
		composed := norm.NFC.String(pair)
		r, size := utf8.DecodeRuneInString(composed)
		if size < len(composed) {
			continue // no precomposed form exists
		}
		gid := otquery.GlyphIndex(otf, r)
		if gid == otquery.NOTDEF {
			continue // font has no glyph for the composition
		}
		info := glyphing.GlyphInfo{
			CodePoint: r,
			GID:       gid,
			Mask:      buf.Info(i).Mask,
		}
		buf.Collapse(i, i+2, info)
		buf.Position(i).XAdvance = typecase.Scale(otquery.GlyphMetrics(otf, gid).Advance)
	}
}

// applyLigatures substitutes ligature sequences in buf[start:], longest
// match first. Custom (font) substitutions take precedence over the
// built-in liga and clig sets.
func (sh *Shaper) applyLigatures(buf *Buffer, start int, typecase *font.TypeCase,
	otf *ot.Font, params glyphing.Params) {
	//
	for i := start; i < buf.Len(); i++ {
		state := resolveFeatures(params.Features, buf.Info(i).ClusterID)
		if !state.liga && !state.clig {
			continue
		}
		limit := buf.Len() - i
		if limit > maxLigatureLen {
			limit = maxLigatureLen
		}
		window := make([]rune, limit)
		for k := 0; k < limit; k++ {
			window[k] = buf.Info(i + k).CodePoint
		}
		lig, ok := sh.custom.match(window)
		if !ok && state.liga {
			lig, ok = sh.liga.match(window)
		}
		if !ok && state.clig {
			lig, ok = sh.clig.match(window)
		}
		if !ok {
			continue
		}
		// kerning between the collapsed components is folded into the
		// ligature's advance
		if state.kern {
			for k := i; k < i+lig.length-1; k++ {
				pair := otquery.Kerning(otf, buf.Info(k).GID, buf.Info(k+1).GID)
				if pair != 0 {
					buf.Position(k).XAdvance += typecase.Scale(int32(pair))
				}
			}
		}
		gid := lig.gid
		if gid == 0 {
			gid = buf.Info(i).GID
		}
		info := glyphing.GlyphInfo{
			CodePoint: buf.Info(i).CodePoint,
			GID:       gid,
			Mask:      buf.Info(i).Mask | MaskLiga,
		}
		buf.Collapse(i, i+lig.length, info)
		tracer().Debugf("ligature of %d glyphs at cluster %d", lig.length,
			buf.Info(i).ClusterID)
	}
}

// applyKerning adds pair kerning to the left glyph's x-advance, scaled
// from font units to design units.
func (sh *Shaper) applyKerning(buf *Buffer, start int, typecase *font.TypeCase,
	otf *ot.Font, params glyphing.Params) {
	//
	for i := start; i < buf.Len()-1; i++ {
		state := resolveFeatures(params.Features, buf.Info(i).ClusterID)
		if !state.kern {
			continue
		}
		k := otquery.Kerning(otf, buf.Info(i).GID, buf.Info(i+1).GID)
		if k == 0 {
			continue
		}
		buf.Position(i).XAdvance += typecase.Scale(int32(k))
		buf.Info(i).Mask |= MaskKern
	}
}
