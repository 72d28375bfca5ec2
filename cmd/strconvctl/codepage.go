package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/archstr/internal/codepage"
	"github.com/joshuapare/archstr/pkg/sconv"
)

func init() {
	rootCmd.AddCommand(newCodepageCmd())
}

func newCodepageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codepage [name...]",
		Short: "Look up Windows code pages for charset names",
		Long: `The codepage command maps charset names to Windows code page numbers
and reports whether a converter is available for them. Without arguments it
shows the detected locale.

Example:
  strconvctl codepage
  strconvctl codepage ISO-8859-1 SHIFT_JIS CP437 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runLocale()
			}
			return runCodepage(args)
		},
	}
}

type codepageInfo struct {
	Name      string `json:"name"`
	Codepage  uint32 `json:"codepage,omitempty"`
	Known     bool   `json:"known"`
	Canonical string `json:"canonical,omitempty"`
	Supported bool   `json:"supported"`
}

func lookupCodepage(name string) codepageInfo {
	info := codepageInfo{Name: name}
	if cp, ok := codepage.Lookup(name); ok {
		info.Codepage = cp
		info.Known = true
		info.Canonical = codepage.Name(cp)
	}
	_, err := sconv.Resolve(name)
	info.Supported = err == nil
	return info
}

func runCodepage(args []string) error {
	infos := make([]codepageInfo, 0, len(args))
	for _, name := range args {
		infos = append(infos, lookupCodepage(name))
	}

	if jsonOut {
		return printJSON(infos)
	}
	for _, info := range infos {
		cp := "unknown"
		if info.Known {
			cp = info.Canonical
		}
		supported := "no"
		if info.Supported {
			supported = "yes"
		}
		printInfo("%-20s %-10s supported: %s\n", info.Name, cp, supported)
	}
	return nil
}

type localeInfo struct {
	Charset string `json:"charset"`
	ACP     uint32 `json:"acp"`
	OEMCP   uint32 `json:"oemcp"`
	NeedOEM bool   `json:"needs_oem_conversion"`
}

func runLocale() error {
	loc := codepage.Current()
	if charset != "" {
		loc.Charset = charset
	}
	info := localeInfo{
		Charset: loc.Charset,
		ACP:     loc.ACP,
		OEMCP:   loc.OEMCP,
		NeedOEM: loc.NeedsOEMConversion(),
	}

	if jsonOut {
		return printJSON(info)
	}
	printInfo("%s %s\n", label("Charset:"), info.Charset)
	printInfo("%s %s\n", label("ANSI code page:"), cpString(info.ACP))
	printInfo("%s %s\n", label("OEM code page:"), cpString(info.OEMCP))
	printInfo("%s %t\n", label("OEM conversion:"), info.NeedOEM)
	return nil
}

func cpString(cp uint32) string {
	if cp == codepage.Unknown {
		return "unknown"
	}
	return codepage.Name(cp)
}
