package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/gospec/internal/db"
	"github.com/spf13/cobra"
)

var testsCmd = &cobra.Command{
	Use:   "tests <file.spec>",
	Short: "Print go test -run patterns for a spec file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTests(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(testsCmd)
}

// RunTests prints one -run pattern per top-level scope of file, the
// patterns that select every test generated from it.
func RunTests(w io.Writer, file string) error {
	if err := requireInit(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	filePath, fileID, err := lookupSpec(sqlDB, file)
	if err != nil {
		return err
	}

	rows, err := sqlDB.Query(`
		SELECT path FROM scopes
		WHERE file_id = ? AND instr(path, '/') = 0
		ORDER BY line, id
	`, fileID)
	if err != nil {
		return fmt.Errorf("querying scopes: %w", err)
	}
	defer rows.Close()

	var found bool
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return fmt.Errorf("scanning scope row: %w", err)
		}
		fmt.Fprintf(w, "  go test -run '%s'\n", path)
		found = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating scopes: %w", err)
	}

	if !found {
		fmt.Fprintf(w, "no tests registered for %s\n", filePath)
	}
	return nil
}
