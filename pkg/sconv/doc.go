// Package sconv converts strings between character sets.
//
// A Session owns every conversion it hands out. Conversions are keyed by the
// exact (from, to) charset names they were requested with and live until
// Session.Close. Each Conv picks one Strategy when it is built:
//
//	StrategyLegacy        UTF-8 written by old archivers that stored 16-bit wide chars
//	StrategyIdentityUTF8  UTF-8 to UTF-8 with CESU-8 repair and optional NFC/NFD
//	StrategyUTF16BE       fixed-width UTF-16BE to or from the session charset
//	StrategyHandle        a Backend handle (x/text encodings by default)
//	StrategyBestEffort    ASCII-preserving copy with '?' or U+FFFD substitution
//
// Conversions never stop at the first bad character. When characters are
// replaced the output is still complete and the call returns an error for
// which types.IsLossy is true. Any other error means nothing useful was
// produced.
//
// Sessions are not safe for concurrent use.
package sconv
