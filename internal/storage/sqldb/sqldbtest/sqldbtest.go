// Package sqldbtest opens throwaway gateways with the reference hotel schema
// applied. It is only imported from tests.
package sqldbtest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/storage/sqldb"
)

// MigrationsDir honours MIGRATIONS_DIR and falls back to the repo's migrations/.
func MigrationsDir(t testing.TB) string {
	t.Helper()
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("cannot locate migrations: runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

// Statements returns every statement of every .sql file in dir, in file order.
func Statements(t testing.TB, dir string) []string {
	t.Helper()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	var out []string
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		for _, stmt := range strings.Split(string(b), ";") {
			if hasSQL(stmt) {
				out = append(out, stmt)
			}
		}
	}
	return out
}

func hasSQL(chunk string) bool {
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return true
		}
	}
	return false
}

// Apply runs the reference schema through g.
func Apply(t testing.TB, g domain.Gateway) {
	t.Helper()
	for _, stmt := range Statements(t, MigrationsDir(t)) {
		if err := g.Execute(context.Background(), stmt); err != nil {
			t.Fatalf("apply schema: %v\n%s", err, stmt)
		}
	}
}

// OpenMemory returns an in-memory sqlite gateway with the schema applied.
// Query output goes to out.
func OpenMemory(t testing.TB, out io.Writer) *sqldb.Gateway {
	t.Helper()
	g, err := sqldb.Open(context.Background(), sqldb.ConnInfo{Driver: "sqlite", Name: ":memory:"}, out)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(g.Close)
	Apply(t, g)
	return g
}
