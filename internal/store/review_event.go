package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var reviewEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "user_id", "card_id", "quality",
	"correct", "interval_before", "interval_after", "ease_after", "maturity_after",
}

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = exec(ctx, r.db, builder().Insert("review_events").
		Columns(reviewEventColumns[1:]...).
		Values(seqNum, r.now(), data.SessionID, data.UserID, data.CardID, data.Quality,
			data.Correct, data.IntervalBefore, data.IntervalAfter, data.EaseAfter, data.MaturityAfter))
	if err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryReviewEvents(ctx context.Context, userID string, opts QueryOpts) ([]ReviewEventRecord, error) {
	b := builder()
	sel := b.Select(reviewEventColumns...).
		From(b.Table("review_events")).
		Where(entsql.And(append(eventPredicates(opts), entsql.EQ("user_id", userID))...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	rows, err := query(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	defer rows.Close()

	var out []ReviewEventRecord
	for rows.Next() {
		var e ReviewEventRecord
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.UserID, &e.CardID,
			&e.Quality, &e.Correct, &e.IntervalBefore, &e.IntervalAfter, &e.EaseAfter, &e.MaturityAfter); err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		out = append(out, e)
	}
	return out, wrapRowsErr("query review events", rows.Err())
}
