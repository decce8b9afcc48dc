package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction is the dominant writing direction of a string.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, CJK, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for digits, punctuation and whitespace
	Neutral
)

// String returns "LTR", "RTL" or "Neutral".
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// DetectDirection returns the direction held by most of the strongly
// directional characters in s, or Neutral when s has none. Ties go to LTR.
// Wrapped lines are always drawn left to right, so callers use this to flag
// replacement text that will read backwards.
func DetectDirection(s string) Direction {
	ltr, rtl := 0, 0
	for _, r := range s {
		switch CharDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}

	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	default:
		return LTR
	}
}

// CharDirection classifies r by its Unicode bidi class: L is LTR, R and AL
// are RTL and every weak or neutral class is Neutral.
func CharDirection(r rune) Direction {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.L:
		return LTR
	case bidi.R, bidi.AL:
		return RTL
	default:
		return Neutral
	}
}
