package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"jobboard/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type call struct {
	query string
	args  []any
}

// fakeDB replays scripted results in call order and records every statement.
type fakeDB struct {
	mu sync.Mutex

	calls []call
	rows  [][][]any
	errs  []error

	committed  bool
	rolledBack bool
}

func (db *fakeDB) script(rows [][]any, err error) *fakeDB {
	db.rows = append(db.rows, rows)
	db.errs = append(db.errs, err)
	return db
}

func (db *fakeDB) next(query string, args []any) ([][]any, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.calls = append(db.calls, call{query: query, args: args})
	if len(db.rows) == 0 {
		return nil, fmt.Errorf("unexpected statement: %s", query)
	}
	rows, err := db.rows[0], db.errs[0]
	db.rows, db.errs = db.rows[1:], db.errs[1:]
	return rows, err
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }
func (db *fakeDB) Close() error                   { return nil }
func (db *fakeDB) SQLDB() *sql.DB                 { return nil }

func (db *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	return fakeTx{db: db}, nil
}

func (db *fakeDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	rows, err := db.next(query, args)
	return int64(len(rows)), err
}

func (db *fakeDB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := db.next(query, args)
	if err != nil {
		return nil, err
	}
	return &fakeRows{vals: rows, idx: -1}, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	rows, err := db.next(query, args)
	if err != nil {
		return fakeRow{err: err}
	}
	if len(rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{vals: rows[0]}
}

type fakeTx struct {
	db *fakeDB
}

func (t fakeTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t fakeTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t fakeTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t fakeTx) Commit(ctx context.Context) error {
	t.db.committed = true
	return nil
}

func (t fakeTx) Rollback(ctx context.Context) error {
	if !t.db.committed {
		t.db.rolledBack = true
	}
	return nil
}

type fakeRows struct {
	vals [][]any
	idx  int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.vals)
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(r.vals[r.idx], dest)
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

func assign(vals []any, dest []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan dest mismatch: got %d want %d", len(dest), len(vals))
	}
	for i := range dest {
		ok := true
		switch d := dest[i].(type) {
		case *uuid.UUID:
			*d, ok = vals[i].(uuid.UUID)
		case *string:
			*d, ok = vals[i].(string)
		case **string:
			if vals[i] == nil {
				*d = nil
			} else {
				var s string
				s, ok = vals[i].(string)
				*d = &s
			}
		case *time.Time:
			*d, ok = vals[i].(time.Time)
		case *int:
			*d, ok = vals[i].(int)
		default:
			return fmt.Errorf("unsupported scan type %T", dest[i])
		}
		if !ok {
			return fmt.Errorf("scan type mismatch at %d: %T into %T", i, vals[i], dest[i])
		}
	}
	return nil
}
