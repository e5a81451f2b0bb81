package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/gospec/internal/db"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show counts of registered spec files, scopes and tests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer) error {
	if err := requireInit(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var files, scopes, tests int
	err = sqlDB.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM files),
			(SELECT COUNT(*) FROM scopes),
			(SELECT COUNT(*) FROM tests)
	`).Scan(&files, &scopes, &tests)
	if err != nil {
		return fmt.Errorf("counting registry: %w", err)
	}

	fmt.Fprintf(w, "Files: %d\n", files)
	if files == 0 {
		return nil
	}
	fmt.Fprintf(w, "  scopes: %d\n", scopes)
	fmt.Fprintf(w, "  tests: %d\n", tests)

	rows, err := sqlDB.Query(`
		SELECT f.file_path, COUNT(t.id)
		FROM files f
		LEFT JOIN scopes s ON s.file_id = f.id
		LEFT JOIN tests t ON t.scope_id = s.id
		GROUP BY f.id
		ORDER BY f.file_path
	`)
	if err != nil {
		return fmt.Errorf("querying file counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		var cnt int
		if err := rows.Scan(&path, &cnt); err != nil {
			return fmt.Errorf("scanning file row: %w", err)
		}
		fmt.Fprintf(w, "  %s: %d\n", path, cnt)
	}
	return rows.Err()
}
