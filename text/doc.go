// Package text lays out replacement text for a region.
//
// [Wrap] is a greedy line breaker that fits text into a pixel width using a
// monospace approximation: every character is [CharWidth] wide, half the
// font size. It has no notion of words and may break inside one. Explicit
// line breaks are honoured and every output line holds at least one
// character, so wrapping always terminates.
//
//	lines := text.Wrap("HELLO", 10, 10) // ["HE", "LL", "O"]
//
// Input is NFC-normalised first, so a base letter followed by a combining
// mark counts as a single character.
//
// [DetectDirection] reports whether text is mostly right-to-left, using the
// Unicode bidi classes from golang.org/x/text. Lines are always drawn left
// to right, so callers use it to warn about text that will read backwards.
package text
