package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/archstr/internal/unorm"
	"github.com/joshuapare/archstr/pkg/types"
)

func init() {
	rootCmd.AddCommand(newNormalizeCmd("nfc", "Compose UTF-8 text (NFC)", unorm.ToFormC))
	rootCmd.AddCommand(newNormalizeCmd("nfd", "Decompose UTF-8 text as HFS+ stores names", unorm.ToFormD))
}

func newNormalizeCmd(name, short string, fn func([]byte) ([]byte, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [file]",
		Short: short,
		Long: short + `. Reads a file or stdin and writes the result to stdout.
Invalid UTF-8 is replaced with U+FFFD and reported as a warning.

Example:
  strconvctl ` + name + ` names.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(args, fn)
		},
	}
}

func runNormalize(args []string, fn func([]byte) ([]byte, error)) error {
	data, done, err := readInput(args)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	defer done()

	out, err := fn(data)
	if err != nil && !types.IsLossy(err) {
		return fmt.Errorf("normalization failed: %w", err)
	}
	if _, werr := os.Stdout.Write(out); werr != nil {
		return fmt.Errorf("failed to write output: %w", werr)
	}
	if err != nil {
		printWarning("%v\n", err)
	}
	return nil
}
