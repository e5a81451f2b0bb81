package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/gospec/internal/config"
	"github.com/chriserin/gospec/internal/db"
	"github.com/chriserin/gospec/internal/expand"
	"github.com/chriserin/gospec/internal/naming"
	"github.com/chriserin/gospec/internal/parser"
	"github.com/chriserin/gospec/internal/spectree"
	"github.com/chriserin/gospec/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Compile specs/*.spec into Go tests and register them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

type syncStatus int

const (
	statusNew syncStatus = iota
	statusChanged
	statusTracked
)

type compiledSpec struct {
	path        string
	output      string
	fingerprint string
	tree        []byte
	scopes      []*parser.Scope
	code        []byte
}

func RunSync(w io.Writer) error {
	if err := requireInit(); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob(filepath.Join(specsDir, "*.spec"))
	if err != nil {
		return fmt.Errorf("scanning specs/: %w", err)
	}
	sort.Strings(matches)

	// Compile everything before touching the registry: one bad file fails
	// the whole sync.
	compiled := make([]compiledSpec, 0, len(matches))
	for _, path := range matches {
		c, err := compileSpec(cfg, path)
		if err != nil {
			return err
		}
		compiled = append(compiled, c)
	}

	seen := make(map[string]bool, len(compiled))
	for _, c := range compiled {
		status, err := registerSpec(sqlDB, c)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(c.output), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(c.output), err)
		}
		if err := os.WriteFile(c.output, c.code, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", c.output, err)
		}

		switch status {
		case statusNew:
			ui.NewLine(w, c.path)
		case statusChanged:
			ui.ChgLine(w, c.path)
		default:
			ui.TrkLine(w, c.path)
		}
		seen[c.path] = true
	}

	removed, err := pruneSpecs(sqlDB, seen)
	if err != nil {
		return err
	}
	for _, path := range removed {
		ui.DelLine(w, path)
	}

	ui.SummaryLine(w, len(compiled))
	return nil
}

func compileSpec(cfg config.Config, path string) (compiledSpec, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return compiledSpec{}, fmt.Errorf("reading %s: %w", path, err)
	}
	scopes, err := parser.ParseSource(path, src)
	if err != nil {
		return compiledSpec{}, err
	}

	tree := spectree.FromScopes(scopes)
	fingerprint, err := spectree.Fingerprint(tree)
	if err != nil {
		return compiledSpec{}, fmt.Errorf("fingerprinting %s: %w", path, err)
	}
	encoded, err := spectree.Encode(tree)
	if err != nil {
		return compiledSpec{}, fmt.Errorf("encoding %s: %w", path, err)
	}

	output := filepath.Join(cfg.Output, outputName(path))
	code, err := expand.Render(expand.Expand(scopes), expand.Options{
		Package:   cfg.PackageName(cfg.Output),
		Imports:   cfg.Imports,
		Source:    filepath.ToSlash(path),
		Goimports: cfg.Goimports,
		Filename:  output,
	})
	if err != nil {
		return compiledSpec{}, fmt.Errorf("generating %s: %w", path, err)
	}

	return compiledSpec{
		path:        path,
		output:      output,
		fingerprint: fingerprint,
		tree:        encoded,
		scopes:      scopes,
		code:        code,
	}, nil
}

// outputName maps login.spec to login_spec_test.go.
func outputName(specPath string) string {
	base := strings.TrimSuffix(filepath.Base(specPath), filepath.Ext(specPath))
	return base + "_spec_test.go"
}

// runPattern turns a scope path into the go test -run pattern that selects
// it and nothing else. Each element is anchored so Test_x does not also
// match Test_x_more.
func runPattern(path []string) string {
	if len(path) == 0 {
		return ""
	}
	parts := make([]string, len(path))
	for i, name := range path {
		if i == 0 {
			name = naming.TestFunc(name)
		}
		parts[i] = anchor(name)
	}
	return strings.Join(parts, "/")
}

// anchor wraps one -run element. Sanitized names hold no regexp
// metacharacters.
func anchor(name string) string {
	return "^" + name + "$"
}

func registerSpec(sqlDB *sql.DB, c compiledSpec) (syncStatus, error) {
	tx, err := sqlDB.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning registration of %s: %w", c.path, err)
	}
	defer tx.Rollback()

	var fileID int64
	var prev string
	status := statusTracked
	err = tx.QueryRow(`SELECT id, fingerprint FROM files WHERE file_path = ?`, c.path).Scan(&fileID, &prev)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(`INSERT INTO files (file_path, output_path, fingerprint) VALUES (?, ?, ?)`,
			c.path, c.output, c.fingerprint)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", c.path, err)
		}
		if fileID, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("inserting %s: %w", c.path, err)
		}
		status = statusNew
	case err != nil:
		return 0, fmt.Errorf("querying %s: %w", c.path, err)
	case prev != c.fingerprint:
		_, err := tx.Exec(`UPDATE files SET output_path = ?, fingerprint = ?, updated_at = datetime('now') WHERE id = ?`,
			c.output, c.fingerprint, fileID)
		if err != nil {
			return 0, fmt.Errorf("updating %s: %w", c.path, err)
		}
		status = statusChanged
	default:
		if _, err := tx.Exec(`UPDATE files SET output_path = ? WHERE id = ?`, c.output, fileID); err != nil {
			return 0, fmt.Errorf("updating %s: %w", c.path, err)
		}
	}

	if err := clearFile(tx, fileID); err != nil {
		return 0, fmt.Errorf("clearing %s: %w", c.path, err)
	}

	var insertErr error
	parser.Walk(c.scopes, func(path []string, s *parser.Scope) {
		if insertErr != nil {
			return
		}
		res, err := tx.Exec(`INSERT INTO scopes (file_id, path, name, line) VALUES (?, ?, ?, ?)`,
			fileID, runPattern(path), s.Name, s.Line)
		if err != nil {
			insertErr = err
			return
		}
		scopeID, err := res.LastInsertId()
		if err != nil {
			insertErr = err
			return
		}
		for _, child := range s.Children {
			if child.Test == nil {
				continue
			}
			_, err := tx.Exec(`INSERT INTO tests (scope_id, name, display, line) VALUES (?, ?, ?, ?)`,
				scopeID, child.Test.Name, child.Test.Display, child.Test.Line)
			if err != nil {
				insertErr = err
				return
			}
		}
	})
	if insertErr != nil {
		return 0, fmt.Errorf("registering scopes of %s: %w", c.path, insertErr)
	}

	_, err = tx.Exec(`INSERT INTO trees (file_id, encoded) VALUES (?, ?)
		ON CONFLICT(file_id) DO UPDATE SET encoded = excluded.encoded`, fileID, c.tree)
	if err != nil {
		return 0, fmt.Errorf("storing tree of %s: %w", c.path, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing %s: %w", c.path, err)
	}
	return status, nil
}

func clearFile(tx *sql.Tx, fileID int64) error {
	if _, err := tx.Exec(`DELETE FROM tests WHERE scope_id IN (SELECT id FROM scopes WHERE file_id = ?)`, fileID); err != nil {
		return err
	}
	_, err := tx.Exec(`DELETE FROM scopes WHERE file_id = ?`, fileID)
	return err
}

// pruneSpecs unregisters spec files that no longer exist and removes their
// generated tests. It returns the removed spec paths in order.
func pruneSpecs(sqlDB *sql.DB, seen map[string]bool) ([]string, error) {
	rows, err := sqlDB.Query(`SELECT id, file_path, output_path FROM files ORDER BY file_path`)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	type gone struct {
		id     int64
		path   string
		output string
	}
	var stale []gone
	for rows.Next() {
		var g gone
		if err := rows.Scan(&g.id, &g.path, &g.output); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		if !seen[g.path] {
			stale = append(stale, g)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating files: %w", err)
	}

	var removed []string
	for _, g := range stale {
		tx, err := sqlDB.Begin()
		if err != nil {
			return nil, fmt.Errorf("beginning removal of %s: %w", g.path, err)
		}
		if err := clearFile(tx, g.id); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("removing %s: %w", g.path, err)
		}
		if _, err := tx.Exec(`DELETE FROM trees WHERE file_id = ?`, g.id); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("removing %s: %w", g.path, err)
		}
		if _, err := tx.Exec(`DELETE FROM files WHERE id = ?`, g.id); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("removing %s: %w", g.path, err)
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("committing removal of %s: %w", g.path, err)
		}
		if err := os.Remove(g.output); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("removing %s: %w", g.output, err)
		}
		removed = append(removed, g.path)
	}
	return removed, nil
}
