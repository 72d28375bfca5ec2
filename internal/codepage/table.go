// Package codepage maps charset names to numeric code pages and reports the
// charset of the current locale.
//
// Lookup is the only alias resolution in the module: conversion objects
// compare charset names verbatim, and use code pages only to recognize two
// spellings of the same encoding.
package codepage

import (
	"sort"
	"strconv"
	"strings"
)

// Unknown is returned for names that do not map to a code page.
const Unknown uint32 = 0xFFFFFFFF

// Well-known code pages.
const (
	CLocale uint32 = 0
	UTF16LE uint32 = 1200
	UTF16BE uint32 = 1201
	UTF8    uint32 = 65001
)

// maxNameLen is the longest name Lookup accepts; it fits every table entry.
const maxNameLen = 17

type charset struct {
	name string
	cp   uint32
}

// charsets must stay sorted by name.
var charsets = []charset{
	{"ASCII", 1252},
	{"ASMO-708", 708},
	{"BIG5", 950},
	{"CHINESE", 936},
	{"CP1025", 21025},
	{"CP367", 1252},
	{"CP819", 1252},
	{"DOS-720", 720},
	{"DOS-862", 862},
	{"EUC-CN", 51936},
	{"EUC-JP", 51932},
	{"EUC-KR", 949},
	{"EUCCN", 51936},
	{"EUCJP", 51932},
	{"EUCKR", 949},
	{"GB18030", 54936},
	{"GB2312", 936},
	{"HEBREW", 1255},
	{"HZ-GB-2312", 52936},
	{"IBM273", 20273},
	{"IBM277", 20277},
	{"IBM278", 20278},
	{"IBM280", 20280},
	{"IBM284", 20284},
	{"IBM285", 20285},
	{"IBM290", 20290},
	{"IBM297", 20297},
	{"IBM367", 1252},
	{"IBM420", 20420},
	{"IBM423", 20423},
	{"IBM424", 20424},
	{"IBM819", 1252},
	{"IBM871", 20871},
	{"IBM880", 20880},
	{"IBM905", 20905},
	{"IBM924", 20924},
	{"ISO-8859-1", 28591},
	{"ISO-8859-13", 28603},
	{"ISO-8859-15", 28605},
	{"ISO-8859-2", 28592},
	{"ISO-8859-3", 28593},
	{"ISO-8859-4", 28594},
	{"ISO-8859-5", 28595},
	{"ISO-8859-6", 28596},
	{"ISO-8859-7", 28597},
	{"ISO-8859-8", 28598},
	{"ISO-8859-9", 28599},
	{"ISO8859-1", 28591},
	{"ISO8859-13", 28603},
	{"ISO8859-15", 28605},
	{"ISO8859-2", 28592},
	{"ISO8859-3", 28593},
	{"ISO8859-4", 28594},
	{"ISO8859-5", 28595},
	{"ISO8859-6", 28596},
	{"ISO8859-7", 28597},
	{"ISO8859-8", 28598},
	{"ISO8859-9", 28599},
	{"JOHAB", 1361},
	{"KOI8-R", 20866},
	{"KOI8-U", 21866},
	{"KS_C_5601-1987", 949},
	{"LATIN1", 1252},
	{"LATIN2", 28592},
	{"MACINTOSH", 10000},
	{"SHIFT-JIS", 932},
	{"SHIFT_JIS", 932},
	{"SJIS", 932},
	{"US", 1252},
	{"US-ASCII", 1252},
	{"UTF-16", 1200},
	{"UTF-16BE", 1201},
	{"UTF-16LE", 1200},
	{"UTF-8", UTF8},
	{"X-EUROPA", 29001},
	{"X-MAC-ARABIC", 10004},
	{"X-MAC-CE", 10029},
	{"X-MAC-CHINESEIMP", 10008},
	{"X-MAC-CHINESETRAD", 10002},
	{"X-MAC-CROATIAN", 10082},
	{"X-MAC-CYRILLIC", 10007},
	{"X-MAC-GREEK", 10006},
	{"X-MAC-HEBREW", 10005},
	{"X-MAC-ICELANDIC", 10079},
	{"X-MAC-JAPANESE", 10001},
	{"X-MAC-KOREAN", 10003},
	{"X-MAC-ROMANIAN", 10010},
	{"X-MAC-THAI", 10021},
	{"X-MAC-TURKISH", 10081},
	{"X-MAC-UKRAINIAN", 10017},
}

// parseDigits parses an all-digit suffix.
func parseDigits(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || uint32(v) == Unknown {
		return 0, false
	}
	return uint32(v), true
}

// Lookup returns the code page for a charset name. Names are matched
// case-insensitively against the table first, so that e.g. CP367 maps to
// 1252; then CP<n>, IBM<n>, WINDOWS-<n> (874 and 1250-1258 only), CP_ACP
// and CP_OEMCP are parsed.
func Lookup(name string) (uint32, bool) {
	if name == "" || len(name) > maxNameLen {
		return Unknown, false
	}
	cs := strings.ToUpper(name)

	i := sort.Search(len(charsets), func(i int) bool { return charsets[i].name >= cs })
	if i < len(charsets) && charsets[i].name == cs {
		return charsets[i].cp, true
	}

	switch {
	case cs == "CP_ACP":
		return Current().ACP, true
	case cs == "CP_OEMCP":
		return Current().OEMCP, true
	case strings.HasPrefix(cs, "CP"):
		if v, ok := parseDigits(cs[2:]); ok {
			return v, true
		}
	case strings.HasPrefix(cs, "IBM"):
		if v, ok := parseDigits(cs[3:]); ok {
			return v, true
		}
	case strings.HasPrefix(cs, "WINDOWS-"):
		if v, ok := parseDigits(cs[8:]); ok && (v == 874 || (v >= 1250 && v <= 1258)) {
			return v, true
		}
	}
	return Unknown, false
}

// Name returns the canonical charset name for a code page, as used when a
// conversion is requested by number (e.g. "CP850").
func Name(cp uint32) string {
	switch cp {
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case Unknown:
		return ""
	}
	return "CP" + strconv.FormatUint(uint64(cp), 10)
}
