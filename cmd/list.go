package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/chriserin/gospec/internal/db"
	"github.com/chriserin/gospec/internal/ui"
	"github.com/spf13/cobra"
)

var fileFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered test cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), fileFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&fileFlag, "file", "", "Only list test cases from this spec file")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	file    string
	line    int
	pattern string
}

func RunList(w io.Writer, fileFilter string) error {
	if err := requireInit(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT f.file_path, t.line, s.path || '/^' || t.name || '$'
		FROM tests t
		JOIN scopes s ON t.scope_id = s.id
		JOIN files f ON s.file_id = f.id
		ORDER BY f.file_path, t.line, t.id
	`)
	if err != nil {
		return fmt.Errorf("querying tests: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		if err := rows.Scan(&filePath, &r.line, &r.pattern); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		if fileFilter != "" && !sameSpec(filePath, fileFilter) {
			continue
		}
		r.file = filepath.Base(filePath)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	// Compute column width
	fileWidth := 0
	for _, r := range results {
		if n := len(fmt.Sprintf("%s:%d", r.file, r.line)); n > fileWidth {
			fileWidth = n
		}
	}

	for _, r := range results {
		ui.ListRow(w, r.file, r.line, r.pattern, fileWidth)
	}
	return nil
}

// sameSpec reports whether a registered path names the spec the user typed,
// accepting both "specs/login.spec" and "login.spec".
func sameSpec(registered, arg string) bool {
	arg = filepath.Clean(arg)
	return registered == filepath.ToSlash(arg) ||
		registered == filepath.ToSlash(filepath.Join(specsDir, arg))
}
