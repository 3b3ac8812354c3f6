package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/albapepper/cricket-stats/internal/config"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	d, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "stats.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE b = $1 AND c LIKE $2 LIMIT $3"

	pg := &DB{Dialect: Postgres}
	if got := pg.Rebind(q); got != q {
		t.Errorf("postgres Rebind changed query: %s", got)
	}

	lite := &DB{Dialect: SQLite}
	want := "SELECT a FROM t WHERE b = ? AND c LIKE ? LIMIT ?"
	if got := lite.Rebind(q); got != want {
		t.Errorf("sqlite Rebind = %q, want %q", got, want)
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	d := openTemp(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := d.Migrate(ctx); err != nil {
			t.Fatalf("Migrate #%d: %v", i+1, err)
		}
	}

	for _, table := range []string{config.PlayersTable, config.BattingTable, config.BowlingTable, config.MatchesTable} {
		var n int
		if err := d.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			t.Errorf("table %s not queryable: %v", table, err)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	d := openTemp(t)
	if err := d.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestOpenSQLiteRejectsEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSchemaStatementsPerDialect(t *testing.T) {
	pg := (&DB{Dialect: Postgres}).schemaStatements()
	lite := (&DB{Dialect: SQLite}).schemaStatements()
	if len(pg) != len(lite) {
		t.Fatalf("statement count differs: %d vs %d", len(pg), len(lite))
	}
	if !strings.Contains(pg[1], "BIGSERIAL") {
		t.Errorf("postgres batting table should use BIGSERIAL: %s", pg[1])
	}
	if !strings.Contains(lite[1], "AUTOINCREMENT") {
		t.Errorf("sqlite batting table should use AUTOINCREMENT: %s", lite[1])
	}
}
