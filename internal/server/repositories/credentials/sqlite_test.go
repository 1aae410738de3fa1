package credentials

import (
	"strings"
	"testing"
)

func TestSQLiteSchema_QualifiesIndexNotTable(t *testing.T) {
	stmts := SQLiteSchema("auth.tokens")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if !strings.Contains(stmts[0], `"auth"."tokens"`) {
		t.Fatalf("table not quoted: %s", stmts[0])
	}
	want := `CREATE INDEX IF NOT EXISTS "auth"."tokens_user_id_idx" ON "tokens" (user_id)`
	if stmts[1] != want {
		t.Fatalf("index ddl = %q, want %q", stmts[1], want)
	}
}

func TestSQLiteSchema_DefaultTable(t *testing.T) {
	stmts := SQLiteSchema("  ")
	if !strings.Contains(stmts[0], `"rememberme"`) {
		t.Fatalf("default table not used: %s", stmts[0])
	}
	if !strings.HasSuffix(stmts[1], `"rememberme_user_id_idx" ON "rememberme" (user_id)`) {
		t.Fatalf("unexpected index ddl: %s", stmts[1])
	}
}
