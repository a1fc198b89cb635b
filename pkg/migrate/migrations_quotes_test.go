package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestQuotesMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_supplier_quotes_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no supplier quotes migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE quote_status AS ENUM",
		"CREATE TABLE IF NOT EXISTS supplier_quotes",
		"CREATE TABLE IF NOT EXISTS quote_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_supplier_quotes_quote_number",
		"CREATE INDEX IF NOT EXISTS idx_supplier_quotes_status_valid_until",
		"package_conversion JSONB",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
