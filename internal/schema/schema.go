// Package schema verifies that the live database matches the column layout the
// application was built against, and produces repair statements when it does
// not. Older deployments evolved their tables by hand and left a mix of
// camelCase and snake_case column names behind; this package is the single
// place that knows both spellings. It runs at startup and from the admin
// routes, never on the request write path.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"
)

// legacyColumns maps the camelCase spellings found in older deployments to the
// canonical snake_case names, per table.
var legacyColumns = map[string]map[string]string{
	"transactions": {
		"appointmentId": "appointment_id",
		"clientId":      "client_id",
		"paymentMethod": "payment_method",
		"createdAt":     "created_at",
		"updatedAt":     "updated_at",
	},
	"appointments": {
		"startTime":      "starts_at",
		"endTime":        "ends_at",
		"clientId":       "client_id",
		"clientInitials": "client_initials",
		"createdAt":      "created_at",
		"updatedAt":      "updated_at",
	},
	"clients": {
		"birthDate": "birth_date",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	"products": {
		"minStock":   "min_stock",
		"salesCount": "sales_count",
		"createdAt":  "created_at",
		"updatedAt":  "updated_at",
	},
}

// columnDDL holds the canonical definition of every column the application
// reads or writes. A missing column is repaired with ADD COLUMN from this map.
var columnDDL = map[string]map[string]string{
	"transactions": {
		"type":           "text NOT NULL DEFAULT 'income'",
		"category":       "text NOT NULL DEFAULT ''",
		"amount":         "double precision NOT NULL DEFAULT 0",
		"date":           "date NOT NULL DEFAULT now()",
		"description":    "text NOT NULL DEFAULT ''",
		"appointment_id": "uuid",
		"client_id":      "uuid",
		"payment_method": "text NOT NULL DEFAULT ''",
		"notes":          "text NOT NULL DEFAULT ''",
		"created_at":     "timestamptz NOT NULL DEFAULT now()",
		"updated_at":     "timestamptz NOT NULL DEFAULT now()",
	},
	"appointments": {
		"starts_at":       "timestamptz NOT NULL DEFAULT now()",
		"ends_at":         "timestamptz NOT NULL DEFAULT now()",
		"client_id":       "uuid",
		"service":         "text NOT NULL DEFAULT ''",
		"client_initials": "text NOT NULL DEFAULT ''",
		"color":           "text NOT NULL DEFAULT ''",
		"status":          "text NOT NULL DEFAULT 'pending'",
		"notes":           "text NOT NULL DEFAULT ''",
		"created_at":      "timestamptz NOT NULL DEFAULT now()",
		"updated_at":      "timestamptz NOT NULL DEFAULT now()",
	},
	"clients": {
		"name":       "text NOT NULL DEFAULT ''",
		"phone":      "text NOT NULL DEFAULT ''",
		"email":      "text NOT NULL DEFAULT ''",
		"birth_date": "date",
		"status":     "text NOT NULL DEFAULT 'active'",
		"created_at": "timestamptz NOT NULL DEFAULT now()",
		"updated_at": "timestamptz NOT NULL DEFAULT now()",
	},
	"products": {
		"name":        "text NOT NULL DEFAULT ''",
		"price":       "text NOT NULL DEFAULT '0'",
		"cost":        "text NOT NULL DEFAULT '0'",
		"stock":       "integer NOT NULL DEFAULT 0",
		"min_stock":   "integer NOT NULL DEFAULT 5",
		"category":    "text NOT NULL DEFAULT ''",
		"supplier":    "text NOT NULL DEFAULT ''",
		"barcode":     "text NOT NULL DEFAULT ''",
		"sales_count": "integer NOT NULL DEFAULT 0",
		"created_at":  "timestamptz NOT NULL DEFAULT now()",
		"updated_at":  "timestamptz NOT NULL DEFAULT now()",
	},
}

// Problem is one detected divergence plus the statement that repairs it.
type Problem struct {
	Table  string `json:"table"`
	Column string `json:"column"`
	Detail string `json:"detail"`
	FixSQL string `json:"fix_sql"`
}

// Verify probes information_schema for every table the application uses and
// reports missing or legacy-named columns. Tables that do not exist at all are
// reported as a single problem whose fix is to run the migrations.
func Verify(db *sql.DB) ([]Problem, error) {
	var problems []Problem

	tables := make([]string, 0, len(columnDDL))
	for table := range columnDDL {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		existing, err := tableColumns(db, table)
		if err != nil {
			return nil, fmt.Errorf("probing %s: %w", table, err)
		}
		if existing == nil {
			problems = append(problems, Problem{
				Table:  table,
				Detail: "table does not exist",
				FixSQL: "-- run the versioned migrations (POST /api/setup-schema)",
			})
			continue
		}

		for legacy, canonical := range legacyColumns[table] {
			if existing[legacy] && !existing[canonical] {
				problems = append(problems, Problem{
					Table:  table,
					Column: canonical,
					Detail: fmt.Sprintf("legacy column %q needs renaming", legacy),
					FixSQL: fmt.Sprintf(`ALTER TABLE %s RENAME COLUMN %q TO %s;`, table, legacy, canonical),
				})
				existing[canonical] = true
			}
		}

		columns := make([]string, 0, len(columnDDL[table]))
		for column := range columnDDL[table] {
			columns = append(columns, column)
		}
		sort.Strings(columns)
		for _, column := range columns {
			if !existing[column] {
				problems = append(problems, Problem{
					Table:  table,
					Column: column,
					Detail: "column missing",
					FixSQL: fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s;", table, column, columnDDL[table][column]),
				})
			}
		}
	}
	return problems, nil
}

// tableColumns returns the column set of a table, or nil if the table is absent.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, nil
	}
	return columns, nil
}

// Repair executes the fix statements. It stops at the first failure so a
// privilege error can be reported with the remaining script intact.
func Repair(db *sql.DB, problems []Problem) error {
	for _, p := range problems {
		if strings.HasPrefix(p.FixSQL, "--") {
			return fmt.Errorf("table %s is missing; run the migrations first", p.Table)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err := db.ExecContext(ctx, p.FixSQL)
		cancel()
		if err != nil {
			return fmt.Errorf("repairing %s.%s: %w", p.Table, p.Column, err)
		}
	}
	return nil
}

// Script renders the repair statements for an operator to run by hand when
// the connected role lacks DDL privileges.
func Script(problems []Problem) string {
	var sb strings.Builder
	for _, p := range problems {
		sb.WriteString(p.FixSQL)
		sb.WriteString("\n")
	}
	return sb.String()
}
