package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "user_id", "deck_id", "action",
	"planned_count", "graded_count", "correct_count", "cancelled", "duration_secs",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = exec(ctx, r.db, builder().Insert("session_events").
		Columns(sessionEventColumns[1:]...).
		Values(seqNum, r.now(), data.SessionID, data.UserID, data.DeckID, data.Action,
			data.PlannedCount, data.GradedCount, data.CorrectCount, data.Cancelled, data.DurationSecs))
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, userID string, opts QueryOpts) ([]SessionEventRecord, error) {
	b := builder()
	preds := append(eventPredicates(opts),
		entsql.EQ("user_id", userID),
		entsql.EQ("action", SessionActionEnd),
	)
	sel := b.Select(sessionEventColumns...).
		From(b.Table("session_events")).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	rows, err := query(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var e SessionEventRecord
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.UserID, &e.DeckID,
			&e.Action, &e.PlannedCount, &e.GradedCount, &e.CorrectCount, &e.Cancelled, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		out = append(out, e)
	}
	return out, wrapRowsErr("query session events", rows.Err())
}
