package spacedrep

import (
	"math"
	"time"

	"github.com/abhisek/vocabo/internal/cards"
)

// Config tunes the scheduler.
type Config struct {
	// MaxIntervalDays caps the interval after a successful review.
	// Zero leaves intervals unbounded.
	MaxIntervalDays int
}

// Scheduler computes the next review time, ease factor and maturity of a
// card from a graded recall. It performs no I/O.
type Scheduler struct {
	cfg Config
}

// NewScheduler creates a scheduler with the given configuration.
func NewScheduler(cfg Config) *Scheduler {
	return &Scheduler{cfg: cfg}
}

// Grade returns the card updated for a review of quality q at now.
// The input card is not modified.
func (s *Scheduler) Grade(c cards.Card, q Quality, now time.Time) (cards.Card, error) {
	if !q.Valid() {
		return c, &InvalidGradeError{Quality: q}
	}

	if q.Passed() {
		switch c.ReviewCount {
		case 0:
			c.IntervalDays = FirstIntervalDays
		case 1:
			c.IntervalDays = SecondIntervalDays
		default:
			next := math.Round(float64(c.IntervalDays) * c.EaseFactor)
			c.IntervalDays = int(math.Min(next, IntervalCeilingDays))
		}
		c.IntervalDays = min(max(c.IntervalDays, 1), IntervalCeilingDays)
		if s.cfg.MaxIntervalDays > 0 && c.IntervalDays > s.cfg.MaxIntervalDays {
			c.IntervalDays = s.cfg.MaxIntervalDays
		}
		c.EaseFactor = NextEaseFactor(c.EaseFactor, q)
		c.Maturity = MaturityForInterval(c.IntervalDays)
		c.CorrectReviewCount++
	} else {
		c.IntervalDays = FirstIntervalDays
		c.EaseFactor = math.Max(MinEaseFactor, c.EaseFactor-FailEasePenalty)
		c.Maturity = cards.MaturityLearning
	}

	reviewedAt := now
	c.LastReviewedAt = &reviewedAt
	c.NextReviewAt = now.AddDate(0, 0, c.IntervalDays)
	c.ReviewCount++
	return c, nil
}

// Grade schedules with an unbounded default scheduler.
func Grade(c cards.Card, q Quality, now time.Time) (cards.Card, error) {
	return defaultScheduler.Grade(c, q, now)
}

var defaultScheduler = NewScheduler(Config{})
