package intset

import "errors"

// Error classification codes.
//
// Callers MUST classify errors using errors.Is.
var (
	// ErrInvalidRune indicates a rune codec was asked to encode or decode a
	// value outside the Unicode scalar value range (a surrogate half, a
	// negative rune, or a value above utf8.MaxRune).
	ErrInvalidRune = errors.New("intset: invalid rune")
)
