//go:build windows

package codepage

import (
	"golang.org/x/sys/windows"
)

var (
	modkernel32  = windows.NewLazySystemDLL("kernel32.dll")
	procGetACP   = modkernel32.NewProc("GetACP")
	procGetOEMCP = modkernel32.NewProc("GetOEMCP")
)

func callCodePage(p *windows.LazyProc) uint32 {
	if err := p.Find(); err != nil {
		return Unknown
	}
	r, _, _ := p.Call()
	return uint32(r)
}

// Current reports the ANSI and OEM code pages of the process. The charset
// name is the ANSI code page spelled CP<n>, or UTF-8 when the process runs
// with the UTF-8 code page.
func Current() Locale {
	acp := callCodePage(procGetACP)
	oem := callCodePage(procGetOEMCP)
	return Locale{Charset: Name(acp), ACP: acp, OEMCP: oem}
}
