package schema

import (
	"strings"
	"testing"
)

func TestLegacyColumnsHaveCanonicalDefinitions(t *testing.T) {
	for table, renames := range legacyColumns {
		ddl, ok := columnDDL[table]
		if !ok {
			t.Fatalf("legacy table %q has no canonical definition", table)
		}
		for legacy, canonical := range renames {
			if _, ok := ddl[canonical]; !ok {
				t.Errorf("%s: legacy %q maps to %q, which has no DDL entry", table, legacy, canonical)
			}
		}
	}
}

func TestScript(t *testing.T) {
	problems := []Problem{
		{Table: "clients", Column: "birth_date", Detail: "legacy column \"birthDate\" needs renaming",
			FixSQL: `ALTER TABLE clients RENAME COLUMN "birthDate" TO birth_date;`},
		{Table: "products", Column: "sales_count", Detail: "column missing",
			FixSQL: "ALTER TABLE products ADD COLUMN IF NOT EXISTS sales_count integer NOT NULL DEFAULT 0;"},
	}

	script := Script(problems)
	lines := strings.Split(strings.TrimRight(script, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one statement per line, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "RENAME COLUMN") {
		t.Errorf("expected a rename first, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ";") {
		t.Errorf("expected terminated statements, got %q", lines[1])
	}
}

func TestScript_Empty(t *testing.T) {
	if got := Script(nil); got != "" {
		t.Errorf("expected empty script for no problems, got %q", got)
	}
}
