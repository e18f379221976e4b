package session

import (
	"time"

	"github.com/abhisek/vocabo/internal/progress"
)

// Result summarizes a completed session.
type Result struct {
	SessionID       string
	PlannedCount    int
	GradedCount     int
	CorrectCount    int
	AccuracyPct     int
	DurationMinutes float64
	StartedAt       time.Time
	CompletedAt     time.Time
	Cancelled       bool

	// Unlocked lists achievements unlocked by recording this session.
	Unlocked []progress.Achievement
}

func newResult(s *Session) Result {
	r := Result{
		SessionID:    s.id,
		PlannedCount: s.planned,
		GradedCount:  s.gradedCount,
		CorrectCount: s.correctCount,
		StartedAt:    s.startedAt,
		CompletedAt:  s.completedAt,
		Cancelled:    s.cancelled,
	}
	r.AccuracyPct = r.outcome().AccuracyPct()
	r.DurationMinutes = s.completedAt.Sub(s.startedAt).Minutes()
	return r
}

// Duration returns the wall-clock length of the session.
func (r Result) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

func (r Result) outcome() progress.SessionOutcome {
	return progress.SessionOutcome{
		GradedCount:  r.GradedCount,
		CorrectCount: r.CorrectCount,
		CompletedAt:  r.CompletedAt,
	}
}
