package shaper

import (
	"github.com/npillmayer/celltype/engine/uniprop"
)

// Contextual forms of cursive scripts, encoded as feature mask bits on
// the glyph infos. Exactly one of the four form bits is set on every
// dual- or right-joining letter of a cursive run; non-joining letters
// and joiners get none.
const (
	MaskIsol uint32 = 1 << iota
	MaskInit
	MaskMedi
	MaskFina
	MaskLiga // glyph is a ligature
	MaskKern // kerning has been applied against the next glyph
	MaskMark // glyph is a combining mark
)

// resolveJoining selects contextual forms for a cursive run: isolated
// if neither neighbor joins, initial if only the following letter
// joins, medial if both join, final if only the preceding letter joins.
// Transparent code-points (marks, format controls) do not interrupt
// joining and receive MaskMark.
func resolveJoining(cps []codepoint, masks []uint32) {
	jt := make([]uniprop.JoiningType, len(cps))
	for i, cp := range cps {
		jt[i] = uniprop.JoiningTypeFor(cp.r)
	}
	for i := range cps {
		if jt[i] == uniprop.JoiningTransparent {
			masks[i] |= MaskMark
			continue
		}
		if jt[i] == uniprop.JoiningNone || jt[i] == uniprop.JoiningCausing {
			continue
		}
		prev := prevJoinable(jt, i)
		next := nextJoinable(jt, i)
		// a dual-joining letter connects on both sides; a right-joining
		// letter only connects backward to its predecessor
		connectsPrev := prev != uniprop.JoiningNone &&
			(prev == uniprop.JoiningDual || prev == uniprop.JoiningCausing ||
				prev == uniprop.JoiningLeft)
		connectsNext := jt[i] == uniprop.JoiningDual &&
			(next == uniprop.JoiningDual || next == uniprop.JoiningCausing ||
				next == uniprop.JoiningRight || next == uniprop.JoiningLeft)
		switch {
		case connectsPrev && connectsNext:
			masks[i] |= MaskMedi
		case connectsPrev:
			masks[i] |= MaskFina
		case connectsNext:
			masks[i] |= MaskInit
		default:
			masks[i] |= MaskIsol
		}
	}
}

// prevJoinable returns the joining type of the nearest non-transparent
// predecessor, or JoiningNone at the run start.
func prevJoinable(jt []uniprop.JoiningType, i int) uniprop.JoiningType {
	for k := i - 1; k >= 0; k-- {
		if jt[k] != uniprop.JoiningTransparent {
			return jt[k]
		}
	}
	return uniprop.JoiningNone
}

// nextJoinable returns the joining type of the nearest non-transparent
// successor, or JoiningNone at the run end.
func nextJoinable(jt []uniprop.JoiningType, i int) uniprop.JoiningType {
	for k := i + 1; k < len(jt); k++ {
		if jt[k] != uniprop.JoiningTransparent {
			return jt[k]
		}
	}
	return uniprop.JoiningNone
}
