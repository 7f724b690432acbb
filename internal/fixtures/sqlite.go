package fixtures

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// sqlite driver for database fixtures.
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/leaprel/pkg/rel"
)

const listTablesQuery = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`

func loadSQLite(ctx context.Context, path string) ([]Fixture, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return readTables(ctx, db)
}

// readTables turns every user table of db into a relation, in name order.
func readTables(ctx context.Context, db *sql.DB) ([]Fixture, error) {
	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, err
	}

	fixtures := make([]Fixture, 0, len(names))
	for _, name := range names {
		r, err := readTable(ctx, db, name)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		fixtures = append(fixtures, Fixture{Name: name, Relation: r})
	}
	return fixtures, nil
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, listTablesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readTable(ctx context.Context, db *sql.DB, name string) (*rel.Relation, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var tuples []rel.Tuple
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		t, err := toTuple(values)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(tuples)+1, err)
		}
		tuples = append(tuples, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rel.NewRelation(columns, tuples)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
