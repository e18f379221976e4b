package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

const sequenceRow = 1

// sequenceCounter numbers events across all event tables so a review can be
// placed before or after the session event that closed it.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter seeds the counter row. The table itself comes from
// the migration.
func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	seed := builder().Insert(SequenceTable.Name).
		Columns("id", "next_val").
		Values(sequenceRow, 1).
		OnConflict(entsql.DoNothing())
	if _, err := exec(ctx, db, seed); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next reserves a sequence number. The bump and the read share a
// transaction, and the write lock it takes keeps other processes out.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	tx, err := sc.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer tx.Rollback()

	bump := builder().Update(SequenceTable.Name).
		Add("next_val", 1).
		Where(entsql.EQ("id", sequenceRow))
	if _, err := exec(ctx, tx, bump); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	read := builder().Select("next_val").
		From(entsql.Table(SequenceTable.Name)).
		Where(entsql.EQ("id", sequenceRow))
	n, err := queryInt(ctx, tx, read)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return int64(n) - 1, nil
}
