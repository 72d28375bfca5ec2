//go:build !windows

package codepage

// Current reports the locale charset from the environment.
func Current() Locale {
	cs := CharsetFromLocaleName(localeFromEnv())
	cp, ok := Lookup(cs)
	if !ok {
		cp = Unknown
	}
	return Locale{Charset: cs, ACP: cp, OEMCP: cp}
}
