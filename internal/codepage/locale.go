package codepage

import (
	"os"
	"strings"
)

// Locale describes the character set of the running process.
type Locale struct {
	// Charset is the name conversions use for "the current locale".
	Charset string
	// ACP and OEMCP are the ANSI and OEM code pages. They differ only on
	// Windows; elsewhere both are the code page of Charset.
	ACP   uint32
	OEMCP uint32
}

// NeedsOEMConversion reports whether archive names written with the OEM code
// page must be converted to the ANSI one.
func (l Locale) NeedsOEMConversion() bool {
	return l.ACP != CLocale && l.ACP != Unknown && l.OEMCP != Unknown && l.ACP != l.OEMCP
}

// CharsetFromLocaleName extracts the codeset of a POSIX locale name such as
// "de_DE.ISO-8859-1@euro". Locales without a codeset map to "UTF-8", except
// "C" and "POSIX" which are plain ASCII.
func CharsetFromLocaleName(name string) string {
	if name == "" {
		return "UTF-8"
	}
	if name == "C" || name == "POSIX" {
		return "US-ASCII"
	}
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return "UTF-8"
	}
	cs := name[dot+1:]
	if at := strings.IndexByte(cs, '@'); at >= 0 {
		cs = cs[:at]
	}
	cs = strings.ToUpper(cs)
	switch cs {
	case "":
		return "UTF-8"
	case "UTF8":
		return "UTF-8"
	}
	return cs
}

// localeFromEnv follows the POSIX precedence LC_ALL, LC_CTYPE, LANG.
func localeFromEnv() string {
	for _, k := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
