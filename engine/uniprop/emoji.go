package uniprop

// EmojiProperty classifies a code-point's role in emoji sequences.
type EmojiProperty int

// Emoji properties, condensed from emoji-data.txt.
const (
	EmojiNone         EmojiProperty = iota
	EmojiPlain                      // emoji with default text presentation
	EmojiPresentation               // emoji with default emoji presentation
	EmojiModifier                   // skin tone modifiers U+1F3FB..U+1F3FF
	EmojiComponent                  // keycap combiner, regional indicators, variation selectors
	EmojiZWJ                        // U+200D
	EmojiTag                        // U+E0020..U+E007F
)

//go:generate stringer -type=EmojiProperty

// Variation selectors controlling presentation.
const (
	VS15 = 0xFE0E // text presentation selector
	VS16 = 0xFE0F // emoji presentation selector
)

// The combining enclosing keycap.
const CombiningKeycap = 0x20E3

type emojiRange struct {
	lo, hi rune
	prop   EmojiProperty
}

// Condensed emoji ranges. Text-default emoji (digits, #, *, some
// pictographs) are EmojiPlain; emoji-presentation-default ranges are
// EmojiPresentation.
var emojiRanges = []emojiRange{
	{0x0023, 0x0023, EmojiPlain}, // #
	{0x002A, 0x002A, EmojiPlain}, // *
	{0x0030, 0x0039, EmojiPlain}, // 0-9
	{0x00A9, 0x00A9, EmojiPlain},
	{0x00AE, 0x00AE, EmojiPlain},
	{0x200D, 0x200D, EmojiZWJ},
	{0x203C, 0x203C, EmojiPlain},
	{0x2049, 0x2049, EmojiPlain},
	{0x20E3, 0x20E3, EmojiComponent},
	{0x2122, 0x2122, EmojiPlain},
	{0x2139, 0x2139, EmojiPlain},
	{0x2194, 0x21AA, EmojiPlain},
	{0x231A, 0x231B, EmojiPresentation},
	{0x2328, 0x2328, EmojiPlain},
	{0x23E9, 0x23EC, EmojiPresentation},
	{0x23F0, 0x23F0, EmojiPresentation},
	{0x23F3, 0x23F3, EmojiPresentation},
	{0x24C2, 0x24C2, EmojiPlain},
	{0x25AA, 0x25AB, EmojiPlain},
	{0x25B6, 0x25B6, EmojiPlain},
	{0x25C0, 0x25C0, EmojiPlain},
	{0x25FB, 0x25FE, EmojiPlain},
	{0x2600, 0x2604, EmojiPlain},
	{0x260E, 0x260E, EmojiPlain},
	{0x2611, 0x2611, EmojiPlain},
	{0x2614, 0x2615, EmojiPresentation},
	{0x2618, 0x2618, EmojiPlain},
	{0x261D, 0x261D, EmojiPlain},
	{0x2620, 0x2620, EmojiPlain},
	{0x2622, 0x2623, EmojiPlain},
	{0x2626, 0x2626, EmojiPlain},
	{0x262A, 0x262A, EmojiPlain},
	{0x262E, 0x262F, EmojiPlain},
	{0x2638, 0x263A, EmojiPlain},
	{0x2640, 0x2640, EmojiPlain},
	{0x2642, 0x2642, EmojiPlain},
	{0x2648, 0x2653, EmojiPresentation},
	{0x265F, 0x2660, EmojiPlain},
	{0x2663, 0x2663, EmojiPlain},
	{0x2665, 0x2666, EmojiPlain},
	{0x2668, 0x2668, EmojiPlain},
	{0x267B, 0x267B, EmojiPlain},
	{0x267E, 0x267E, EmojiPlain},
	{0x267F, 0x267F, EmojiPresentation},
	{0x2692, 0x2697, EmojiPlain},
	{0x2699, 0x2699, EmojiPlain},
	{0x269B, 0x269C, EmojiPlain},
	{0x26A0, 0x26A1, EmojiPlain},
	{0x26AA, 0x26AB, EmojiPresentation},
	{0x26B0, 0x26B1, EmojiPlain},
	{0x26BD, 0x26BE, EmojiPresentation},
	{0x26C4, 0x26C5, EmojiPresentation},
	{0x26CE, 0x26CE, EmojiPresentation},
	{0x26D4, 0x26D4, EmojiPresentation},
	{0x26EA, 0x26EA, EmojiPresentation},
	{0x26F2, 0x26F3, EmojiPresentation},
	{0x26F5, 0x26F5, EmojiPresentation},
	{0x26FA, 0x26FA, EmojiPresentation},
	{0x26FD, 0x26FD, EmojiPresentation},
	{0x2702, 0x2702, EmojiPlain},
	{0x2705, 0x2705, EmojiPresentation},
	{0x2708, 0x270D, EmojiPlain},
	{0x270F, 0x270F, EmojiPlain},
	{0x2712, 0x2712, EmojiPlain},
	{0x2714, 0x2714, EmojiPlain},
	{0x2716, 0x2716, EmojiPlain},
	{0x271D, 0x271D, EmojiPlain},
	{0x2721, 0x2721, EmojiPlain},
	{0x2728, 0x2728, EmojiPresentation},
	{0x2733, 0x2734, EmojiPlain},
	{0x2744, 0x2744, EmojiPlain},
	{0x2747, 0x2747, EmojiPlain},
	{0x274C, 0x274C, EmojiPresentation},
	{0x274E, 0x274E, EmojiPresentation},
	{0x2753, 0x2755, EmojiPresentation},
	{0x2757, 0x2757, EmojiPresentation},
	{0x2763, 0x2764, EmojiPlain},
	{0x2795, 0x2797, EmojiPresentation},
	{0x27A1, 0x27A1, EmojiPlain},
	{0x27B0, 0x27B0, EmojiPresentation},
	{0x27BF, 0x27BF, EmojiPresentation},
	{0x2934, 0x2935, EmojiPlain},
	{0x2B05, 0x2B07, EmojiPlain},
	{0x2B1B, 0x2B1C, EmojiPresentation},
	{0x2B50, 0x2B50, EmojiPresentation},
	{0x2B55, 0x2B55, EmojiPresentation},
	{0x3030, 0x3030, EmojiPlain},
	{0x303D, 0x303D, EmojiPlain},
	{0x3297, 0x3297, EmojiPlain},
	{0x3299, 0x3299, EmojiPlain},
	{0x1F1E6, 0x1F1FF, EmojiComponent}, // regional indicators
	{0x1F201, 0x1F202, EmojiPresentation},
	{0x1F21A, 0x1F21A, EmojiPresentation},
	{0x1F22F, 0x1F22F, EmojiPresentation},
	{0x1F232, 0x1F23A, EmojiPresentation},
	{0x1F250, 0x1F251, EmojiPresentation},
	{0x1F300, 0x1F320, EmojiPresentation},
	{0x1F321, 0x1F32C, EmojiPlain},
	{0x1F32D, 0x1F335, EmojiPresentation},
	{0x1F336, 0x1F336, EmojiPlain},
	{0x1F337, 0x1F37C, EmojiPresentation},
	{0x1F37D, 0x1F37D, EmojiPlain},
	{0x1F37E, 0x1F393, EmojiPresentation},
	{0x1F396, 0x1F397, EmojiPlain},
	{0x1F399, 0x1F39B, EmojiPlain},
	{0x1F39E, 0x1F39F, EmojiPlain},
	{0x1F3A0, 0x1F3C4, EmojiPresentation},
	{0x1F3C5, 0x1F3C5, EmojiPresentation},
	{0x1F3C6, 0x1F3CA, EmojiPresentation},
	{0x1F3CB, 0x1F3CE, EmojiPlain},
	{0x1F3CF, 0x1F3D3, EmojiPresentation},
	{0x1F3D4, 0x1F3DF, EmojiPlain},
	{0x1F3E0, 0x1F3F0, EmojiPresentation},
	{0x1F3F3, 0x1F3F5, EmojiPlain},
	{0x1F3F7, 0x1F3F7, EmojiPlain},
	{0x1F3F8, 0x1F3FA, EmojiPresentation},
	{0x1F3FB, 0x1F3FF, EmojiModifier}, // skin tones
	{0x1F400, 0x1F4FC, EmojiPresentation},
	{0x1F4FD, 0x1F4FD, EmojiPlain},
	{0x1F4FF, 0x1F53D, EmojiPresentation},
	{0x1F549, 0x1F54A, EmojiPlain},
	{0x1F54B, 0x1F54E, EmojiPresentation},
	{0x1F550, 0x1F567, EmojiPresentation},
	{0x1F56F, 0x1F570, EmojiPlain},
	{0x1F573, 0x1F579, EmojiPlain},
	{0x1F57A, 0x1F57A, EmojiPresentation},
	{0x1F587, 0x1F587, EmojiPlain},
	{0x1F58A, 0x1F58D, EmojiPlain},
	{0x1F590, 0x1F590, EmojiPlain},
	{0x1F595, 0x1F596, EmojiPresentation},
	{0x1F5A4, 0x1F5A5, EmojiPlain},
	{0x1F5A8, 0x1F5A8, EmojiPlain},
	{0x1F5B1, 0x1F5B2, EmojiPlain},
	{0x1F5BC, 0x1F5BC, EmojiPlain},
	{0x1F5C2, 0x1F5C4, EmojiPlain},
	{0x1F5D1, 0x1F5D3, EmojiPlain},
	{0x1F5DC, 0x1F5DE, EmojiPlain},
	{0x1F5E1, 0x1F5E1, EmojiPlain},
	{0x1F5E3, 0x1F5E3, EmojiPlain},
	{0x1F5E8, 0x1F5E8, EmojiPlain},
	{0x1F5EF, 0x1F5EF, EmojiPlain},
	{0x1F5F3, 0x1F5F3, EmojiPlain},
	{0x1F5FA, 0x1F5FA, EmojiPlain},
	{0x1F5FB, 0x1F64F, EmojiPresentation},
	{0x1F680, 0x1F6C5, EmojiPresentation},
	{0x1F6CB, 0x1F6CB, EmojiPlain},
	{0x1F6CC, 0x1F6CC, EmojiPresentation},
	{0x1F6CD, 0x1F6CF, EmojiPlain},
	{0x1F6D0, 0x1F6D2, EmojiPresentation},
	{0x1F6D5, 0x1F6D7, EmojiPresentation},
	{0x1F6E0, 0x1F6E5, EmojiPlain},
	{0x1F6E9, 0x1F6E9, EmojiPlain},
	{0x1F6EB, 0x1F6EC, EmojiPresentation},
	{0x1F6F0, 0x1F6F0, EmojiPlain},
	{0x1F6F3, 0x1F6F3, EmojiPlain},
	{0x1F6F4, 0x1F6FC, EmojiPresentation},
	{0x1F7E0, 0x1F7EB, EmojiPresentation},
	{0x1F90C, 0x1F93A, EmojiPresentation},
	{0x1F93C, 0x1F945, EmojiPresentation},
	{0x1F947, 0x1F978, EmojiPresentation},
	{0x1F97A, 0x1F9CB, EmojiPresentation},
	{0x1F9CD, 0x1F9FF, EmojiPresentation},
	{0x1FA70, 0x1FA74, EmojiPresentation},
	{0x1FA78, 0x1FA7A, EmojiPresentation},
	{0x1FA80, 0x1FA86, EmojiPresentation},
	{0x1FA90, 0x1FAA8, EmojiPresentation},
	{0x1FAB0, 0x1FAB6, EmojiPresentation},
	{0x1FAC0, 0x1FAC2, EmojiPresentation},
	{0x1FAD0, 0x1FAD6, EmojiPresentation},
	{0xE0020, 0xE007F, EmojiTag}, // tag sequence characters
}

// EmojiPropertyOf classifies a code-point's role in emoji sequences.
// Variation selectors are EmojiComponent; code-points with no emoji
// role at all are EmojiNone.
func EmojiPropertyOf(r rune) EmojiProperty {
	if r == VS15 || r == VS16 {
		return EmojiComponent
	}
	for _, er := range emojiRanges {
		if r >= er.lo && r <= er.hi {
			return er.prop
		}
		if r < er.lo {
			break // table is sorted
		}
	}
	return EmojiNone
}

// IsEmoji reports whether a code-point can start an emoji cluster.
func IsEmoji(r rune) bool {
	switch EmojiPropertyOf(r) {
	case EmojiPlain, EmojiPresentation:
		return true
	case EmojiComponent:
		return isRegionalIndicator(r)
	}
	return false
}
