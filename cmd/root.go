package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gospec/internal/parser"
	"github.com/chriserin/gospec/internal/ui"
)

const (
	specsDir   = "specs"
	dbPath     = "specs/gospec.db"
	configPath = "specs/gospec.json"
)

var rootCmd = &cobra.Command{
	Use:           "gospec",
	Short:         "Compile describe/it spec files into Go tests",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ReportError(os.Stderr, err)
		os.Exit(1)
	}
}

// ReportError prints err, with a keyword suggestion for misspelled keywords.
func ReportError(w io.Writer, err error) {
	ui.ErrorLine(w, err)
	var perr *parser.ParseError
	if errors.As(err, &perr) && perr.Kind == parser.UnexpectedKeyword {
		if kw := parser.Suggest(perr.Found); kw != "" {
			ui.HintLine(w, kw)
		}
	}
}

func requireInit() error {
	if _, err := os.Stat(specsDir); os.IsNotExist(err) {
		return errors.New("run `gospec init` first")
	}
	return nil
}
