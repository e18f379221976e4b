package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// builder creates SQLite-flavoured statements.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type querySpec interface {
	Query() (string, []any)
}

func exec(ctx context.Context, q querier, stmt querySpec) (sql.Result, error) {
	query, args := stmt.Query()
	return q.ExecContext(ctx, query, args...)
}

func query(ctx context.Context, q querier, stmt querySpec) (*sql.Rows, error) {
	query, args := stmt.Query()
	return q.QueryContext(ctx, query, args...)
}

// queryInt runs a single-value integer query such as COUNT(*).
func queryInt(ctx context.Context, q querier, stmt querySpec) (int, error) {
	rows, err := query(ctx, q, stmt)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	var n sql.NullInt64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return int(n.Int64), nil
}

// eventPredicates translates QueryOpts into WHERE predicates over the
// sequence and timestamp columns of an event table.
func eventPredicates(opts QueryOpts) []*entsql.Predicate {
	var ps []*entsql.Predicate
	if opts.After > 0 {
		ps = append(ps, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		ps = append(ps, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		ps = append(ps, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		ps = append(ps, entsql.LTE("timestamp", opts.To.UTC()))
	}
	return ps
}

func utcPtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}

func wrapRowsErr(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
