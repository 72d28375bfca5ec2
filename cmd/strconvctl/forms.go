package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"

	"github.com/joshuapare/archstr/pkg/mstring"
	"github.com/joshuapare/archstr/pkg/sconv"
	"github.com/joshuapare/archstr/pkg/types"
)

func init() {
	rootCmd.AddCommand(newFormsCmd())
}

func newFormsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forms <text>",
		Short: "Show the representations of a UTF-8 string",
		Long: `The forms command stores its argument as UTF-8 and derives the
locale (MBS) and wide-character (WCS) forms, then prints each one with the
set of forms that converted cleanly.

Example:
  strconvctl forms "café"
  strconvctl forms --charset ISO-8859-1 "naïve 中"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkMinArgs(args, 1, "strconvctl forms <text>"); err != nil {
				return err
			}
			return runForms(args[0])
		},
	}
}

type formsInfo struct {
	Charset   string   `json:"charset"`
	Forms     string   `json:"forms"`
	UTF8      string   `json:"utf8"`
	MBS       string   `json:"mbs"`
	WCS       []string `json:"wcs"`
	Width     int      `json:"width"`     // terminal columns
	Graphemes int      `json:"graphemes"` // user-perceived characters
	Error     string   `json:"error,omitempty"`
}

func runForms(text string) error {
	s := newSession("", sconv.Options{})
	defer s.Close()

	var m mstring.MString
	defer m.Clean()

	info := formsInfo{
		Charset:   s.CurrentCharset(),
		Width:     runewidth.StringWidth(text),
		Graphemes: uniseg.GraphemeClusterCount(text),
	}
	err := m.UpdateUTF8(s, []byte(text))
	if err != nil && !types.IsLossy(err) {
		return fmt.Errorf("failed to store text: %w", err)
	}
	if err != nil {
		info.Error = err.Error()
	}
	info.Forms = m.Forms().String()

	// Getters return degraded output for forms that did not convert.
	u, _ := m.UTF8(s)
	mbs, _ := m.MBS(s)
	wcs, _ := m.WCS(s)
	info.UTF8 = hexBytes(u)
	info.MBS = hexBytes(mbs)
	for _, r := range wcs {
		info.WCS = append(info.WCS, fmt.Sprintf("U+%04X", r))
	}

	if jsonOut {
		return printJSON(info)
	}
	printInfo("%s %s\n", label("Charset:"), info.Charset)
	printInfo("%s   %s\n", label("Forms:"), info.Forms)
	printInfo("%s   %s\n", label("UTF-8:"), info.UTF8)
	printInfo("%s     %s\n", label("MBS:"), info.MBS)
	printInfo("%s     %s\n", label("WCS:"), strings.Join(info.WCS, " "))
	printInfo("%s   %d columns, %d graphemes\n", label("Width:"), info.Width, info.Graphemes)
	if info.Error != "" {
		printWarning("%s\n", info.Error)
	}
	return nil
}

func hexBytes(p []byte) string {
	parts := make([]string, len(p))
	for i, b := range p {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}
