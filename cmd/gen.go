package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chriserin/gospec/internal/config"
	"github.com/chriserin/gospec/internal/expand"
	"github.com/chriserin/gospec/internal/lexer"
	"github.com/chriserin/gospec/internal/parser"
	"github.com/chriserin/gospec/internal/ui"
)

type GenOptions struct {
	Input string
	// Output is a file path; "" or "-" writes to the command's output.
	Output     string
	Package    string
	Imports    []string
	Goimports  bool
	DumpTokens bool
	DumpTree   bool
}

var genFlags GenOptions

var genCmd = &cobra.Command{
	Use:   "gen <file.spec>",
	Short: "Compile one spec file into Go test code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		opts := genFlags
		opts.Input = args[0]
		if !cmd.Flags().Changed("package") {
			opts.Package = cfg.Package
		}
		if !cmd.Flags().Changed("goimports") {
			opts.Goimports = cfg.Goimports
		}
		opts.Imports = append(append([]string{}, cfg.Imports...), genFlags.Imports...)
		return RunGen(cmd.OutOrStdout(), opts)
	},
}

func init() {
	genCmd.Flags().StringVarP(&genFlags.Output, "output", "o", "-", "Output file, or - for stdout")
	genCmd.Flags().StringVar(&genFlags.Package, "package", "", "Package of the generated file (default: output directory name)")
	genCmd.Flags().StringSliceVar(&genFlags.Imports, "import", nil, "Extra import path; repeatable")
	genCmd.Flags().BoolVar(&genFlags.Goimports, "goimports", false, "Fix imports with goimports")
	genCmd.Flags().BoolVar(&genFlags.DumpTokens, "dump-tokens", false, "Print the token tree and stop")
	genCmd.Flags().BoolVar(&genFlags.DumpTree, "dump-tree", false, "Print the parsed scope tree and stop")
	rootCmd.AddCommand(genCmd)
}

func RunGen(w io.Writer, opts GenOptions) error {
	src, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.Input, err)
	}

	if opts.DumpTokens {
		tokens, err := lexer.Tokenize(opts.Input, src)
		if err != nil {
			return err
		}
		fmt.Fprint(w, lexer.String(tokens))
		return nil
	}
	if opts.DumpTree {
		scopes, err := parser.ParseSource(opts.Input, src)
		if err != nil {
			return err
		}
		ui.Tree(w, scopes)
		return nil
	}

	toStdout := opts.Output == "" || opts.Output == "-"
	outDir, filename := ".", ""
	if !toStdout {
		outDir, filename = filepath.Dir(opts.Output), opts.Output
	}
	cfg := config.Config{Package: opts.Package, Imports: opts.Imports}
	if err := cfg.Validate(); err != nil {
		return err
	}

	code, err := expand.Compile(opts.Input, src, expand.Options{
		Package:   cfg.PackageName(outDir),
		Imports:   opts.Imports,
		Source:    filepath.ToSlash(opts.Input),
		Goimports: opts.Goimports,
		Filename:  filename,
	})
	if err != nil {
		return err
	}

	if toStdout {
		_, err := w.Write(code)
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	if err := os.WriteFile(opts.Output, code, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.Output, err)
	}
	ui.GeneratedLine(w, opts.Input, opts.Output)
	return nil
}
