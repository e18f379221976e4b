package trainer

import (
	"context"
	"errors"

	"github.com/abhisek/vocabo/internal/store"
)

// History returns the user's most recent completed sessions, newest first.
func (t *Trainer) History(ctx context.Context, userID string, limit int) ([]store.SessionEventRecord, error) {
	if t.events == nil {
		return nil, errors.New("event log not available")
	}
	return t.events.QuerySessionEvents(ctx, userID, store.QueryOpts{Limit: limit})
}

// Reviews returns the user's most recent graded cards, newest first.
func (t *Trainer) Reviews(ctx context.Context, userID string, limit int) ([]store.ReviewEventRecord, error) {
	if t.events == nil {
		return nil, errors.New("event log not available")
	}
	return t.events.QueryReviewEvents(ctx, userID, store.QueryOpts{Limit: limit})
}
