package emoji

import (
	"github.com/npillmayer/celltype/engine/uniprop"
)

// Class is the sequence class of an emoji cluster.
type Class int

// Emoji sequence classes.
const (
	ClassSimple Class = iota
	ClassFlag
	ClassKeycap
	ClassSkinTone
	ClassZWJ
	ClassTag
)

//go:generate stringer -type=Class

// Classify determines the sequence class of an emoji cluster.
//
// A flag is exactly two regional indicators; a keycap is an ASCII digit,
// '#' or '*' plus optional VS16 and the combining keycap; a skin-tone
// sequence is a base emoji followed by a modifier; a ZWJ sequence
// contains at least one zero-width joiner between components; a tag
// sequence uses the tag characters U+E0020..U+E007F.
func Classify(seq []rune) Class {
	if len(seq) == 2 &&
		isRegionalIndicator(seq[0]) && isRegionalIndicator(seq[1]) {
		return ClassFlag
	}
	if isKeycapBase(seq[0]) {
		rest := seq[1:]
		if len(rest) > 0 && rest[0] == uniprop.VS16 {
			rest = rest[1:]
		}
		if len(rest) == 1 && rest[0] == uniprop.CombiningKeycap {
			return ClassKeycap
		}
	}
	for _, r := range seq {
		if uniprop.EmojiPropertyOf(r) == uniprop.EmojiZWJ {
			return ClassZWJ
		}
	}
	for _, r := range seq {
		if uniprop.EmojiPropertyOf(r) == uniprop.EmojiTag {
			return ClassTag
		}
	}
	for _, r := range seq[1:] {
		if uniprop.EmojiPropertyOf(r) == uniprop.EmojiModifier {
			return ClassSkinTone
		}
	}
	return ClassSimple
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

func isKeycapBase(r rune) bool {
	return (r >= '0' && r <= '9') || r == '#' || r == '*'
}

// forcedText reports whether the sequence carries an explicit
// text-presentation selector.
func forcedText(seq []rune) bool {
	for _, r := range seq {
		if r == uniprop.VS15 {
			return true
		}
	}
	return false
}
