package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/joshuapare/archstr/cmd/strconvctl/logger"
	"github.com/joshuapare/archstr/internal/mmfile"
	"github.com/joshuapare/archstr/pkg/sconv"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
	charset string
	logDir  string
)

var rootCmd = &cobra.Command{
	Use:   "strconvctl",
	Short: "Convert and inspect archive entry name encodings",
	Long: `strconvctl converts text between character sets the way an archive
reader or writer does: UTF-8 fast paths, UTF-16BE, host codepages, Unicode
normalization for names read from archives, and best-effort fallbacks.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Options{Verbose: verbose, LogDir: logDir})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVar(&charset, "charset", "", "Locale charset (default: detected from the environment)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newSession opens a conversion session for cs, or for the --charset
// flag when cs is empty.
func newSession(cs string, opts sconv.Options) *sconv.Session {
	if cs == "" {
		cs = charset
	}
	opts.Charset = cs
	opts.Logger = logger.L
	return sconv.NewSession(opts)
}

// readInput returns the contents of the named file, or of stdin when no
// name is given. Files are memory-mapped; call done once the data is no
// longer needed.
func readInput(args []string) (data []byte, done func(), err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
		return data, func() {}, err
	}
	f, err := mmfile.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	printVerbose("Mapped %s (%d bytes)\n", args[0], f.Len())
	return f.Bytes(), func() {
		if err := f.Close(); err != nil {
			logger.L.Warn("unmap failed", "path", args[0], "error", err)
		}
	}, nil
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// label styles a field name for text output
func label(s string) string {
	if noColor {
		return s
	}
	return labelStyle.Render(s)
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printWarning prints a warning unless in quiet mode
func printWarning(format string, args ...interface{}) {
	if quiet {
		return
	}
	prefix := "Warning: "
	if !noColor {
		prefix = warnStyle.Render("Warning:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// checkMinArgs validates that at least the minimum number of arguments were provided
func checkMinArgs(args []string, min int, usage string) error {
	if len(args) < min {
		return fmt.Errorf(
			"expected at least %d argument(s), got %d\nUsage: %s",
			min,
			len(args),
			usage,
		)
	}
	return nil
}
