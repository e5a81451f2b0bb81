package cmd

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/chriserin/gospec/internal/db"
	"github.com/chriserin/gospec/internal/spectree"
	"github.com/chriserin/gospec/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <file.spec>",
	Short: "Show the registered tree of a spec file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, file string) error {
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

	var outputPath, fingerprint string
	var encoded []byte
	err = sqlDB.QueryRow(`
		SELECT f.output_path, f.fingerprint, t.encoded
		FROM files f
		JOIN trees t ON t.file_id = f.id
		WHERE f.id = ?
	`, fileID).Scan(&outputPath, &fingerprint, &encoded)
	if err != nil {
		return fmt.Errorf("loading tree of %s: %w", filePath, err)
	}

	tree, err := spectree.Decode(encoded)
	if err != nil {
		return fmt.Errorf("decoding tree of %s: %w", filePath, err)
	}

	ui.GeneratedLine(w, filePath, outputPath)
	fmt.Fprintf(w, "fingerprint %s\n\n", fingerprint[:12])
	ui.Tree(w, tree.Scopes())
	return nil
}

// lookupSpec finds a registered spec by the path the user typed.
func lookupSpec(sqlDB *sql.DB, file string) (string, int64, error) {
	rows, err := sqlDB.Query(`SELECT id, file_path FROM files ORDER BY file_path`)
	if err != nil {
		return "", 0, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			return "", 0, fmt.Errorf("scanning file row: %w", err)
		}
		if sameSpec(path, file) {
			return path, id, nil
		}
	}
	if err := rows.Err(); err != nil {
		return "", 0, fmt.Errorf("iterating files: %w", err)
	}
	return "", 0, fmt.Errorf("%s is not registered; run `gospec sync`: %w", file, sql.ErrNoRows)
}

