package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/database"

	"github.com/samber/lo"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// Table names the columns a seeder writes to.
type Table struct {
	Name    string
	Columns []string
}

// CheckSchema verifies every listed column exists in the public schema and
// reports all missing ones at once, as table.column.
func CheckSchema(ctx context.Context, db database.DB, tables ...Table) error {
	if db == nil {
		return database.ErrNilDB
	}
	if len(tables) == 0 {
		return nil
	}
	for _, t := range tables {
		if t.Name == "" || lo.Contains(t.Columns, "") {
			return fmt.Errorf("empty table or column in %q", t.Name)
		}
	}

	names := lo.Uniq(lo.Map(tables, func(t Table, _ int) string { return t.Name }))
	rows, err := db.Query(ctx,
		`SELECT table_name, column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = ANY($1)`,
		names,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return err
		}
		existing[table+"."+column] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	missing := lo.FlatMap(tables, func(t Table, _ int) []string {
		return lo.FilterMap(t.Columns, func(c string, _ int) (string, bool) {
			key := t.Name + "." + c
			_, ok := existing[key]
			return key, !ok
		})
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(lo.Uniq(missing), ", "))
	}
	return nil
}
