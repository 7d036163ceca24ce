// Package migrations embeds the schema migrations. The migrate command runs
// them through golang-migrate; Apply executes the up scripts directly for
// environments without the CLI, such as integration tests.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.sql
var FS embed.FS

// Apply executes every up migration in lexical order. Scripts are idempotent,
// so applying on top of an existing schema is safe.
func Apply(ctx context.Context, db *sql.DB) error {
	entries, err := FS.ReadDir(".")
	if err != nil {
		return err
	}

	var ups []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			ups = append(ups, entry.Name())
		}
	}
	sort.Strings(ups)

	for _, name := range ups {
		script, err := FS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}
