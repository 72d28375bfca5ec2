package ucodec

// IsHighSurrogate reports whether r is in U+D800..U+DBFF.
func IsHighSurrogate(r rune) bool { return r >= highSurrogateStart && r <= highSurrogateEnd }

// IsLowSurrogate reports whether r is in U+DC00..U+DFFF.
func IsLowSurrogate(r rune) bool { return r >= lowSurrogateStart && r <= lowSurrogateEnd }

// IsSurrogate reports whether r is in U+D800..U+DFFF.
func IsSurrogate(r rune) bool { return r >= highSurrogateStart && r <= lowSurrogateEnd }

// CombineSurrogates joins a UTF-16 surrogate pair into one code point. The
// caller checks that hi and lo are a high and a low surrogate.
func CombineSurrogates(hi, lo rune) rune {
	return surrogateBase + (hi-highSurrogateStart)<<10 + (lo - lowSurrogateStart)
}

// SplitSurrogates splits a supplementary code point (above U+FFFF) into its
// UTF-16 surrogate pair.
func SplitSurrogates(r rune) (hi, lo rune) {
	r -= surrogateBase
	return highSurrogateStart + (r>>10)&0x3FF, lowSurrogateStart + r&0x3FF
}
