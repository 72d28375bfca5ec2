package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/archstr/internal/codepage"
	"github.com/joshuapare/archstr/pkg/sconv"
	"github.com/joshuapare/archstr/pkg/strbuf"
	"github.com/joshuapare/archstr/pkg/types"
)

var (
	convertFrom       string
	convertTo         string
	convertOutput     string
	convertBestEffort bool
	convertStrict     bool
	convertNFD        bool
)

func init() {
	cmd := newConvertCmd()
	cmd.Flags().StringVar(&convertFrom, "from", "", "Source charset (default: locale charset)")
	cmd.Flags().StringVar(&convertTo, "to", "UTF-8", "Destination charset")
	cmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&convertBestEffort, "best-effort", false, "Fall back to a lossy copy when no converter exists")
	cmd.Flags().BoolVar(&convertStrict, "strict", false, "Fail when characters had to be replaced")
	cmd.Flags().BoolVar(&convertNFD, "nfd", false, "Decompose UTF-8 input instead of composing it")
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert text between character sets",
		Long: `The convert command reads a file (or stdin) in one charset and writes it
in another, the way an archive reader converts entry names. Input ends at the
first NUL byte; UTF-16BE input ends at the first NUL unit.

Example:
  strconvctl convert --from CP437 --to UTF-8 names.txt
  strconvctl convert --from UTF-8 --to ISO-8859-1 --strict < names.txt
  strconvctl convert --from UTF-8 --to UTF-8 --nfd names.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
	return cmd
}

func runConvert(args []string) error {
	data, done, err := readInput(args)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	defer done()

	from := convertFrom
	if from == "" {
		from = localeCharset()
	}

	// The destination is the session charset so that names read from
	// UTF-8 get normalized.
	s := newSession(convertTo, sconv.Options{NormalizeD: convertNFD})
	defer s.Close()

	c, err := s.ConversionFrom(from, convertBestEffort)
	if err != nil {
		return fmt.Errorf("cannot convert from %s to %s: %w", from, convertTo, err)
	}
	printVerbose("Converting %s -> %s (strategy %s, flags %s)\n", from, convertTo, c.Strategy(), c.Flags())

	var out strbuf.String
	convErr := c.Append(&out, data)
	if convErr != nil && !types.IsLossy(convErr) {
		return fmt.Errorf("conversion failed: %w", convErr)
	}
	if convErr != nil && convertStrict {
		return fmt.Errorf("conversion was lossy: %w", convErr)
	}

	if err := writeOutput(out.Elems()); err != nil {
		return err
	}
	if convErr != nil {
		printWarning("%v\n", convErr)
	}
	return nil
}

// localeCharset is the --charset flag or the detected locale charset.
func localeCharset() string {
	if charset != "" {
		return charset
	}
	return codepage.Current().Charset
}

func writeOutput(p []byte) error {
	if convertOutput != "" {
		if err := os.WriteFile(convertOutput, p, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if _, err := os.Stdout.Write(p); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
