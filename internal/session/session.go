package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/spacedrep"
)

// CardSaver persists a graded card.
type CardSaver interface {
	SaveCard(ctx context.Context, userID string, c cards.Card) error
}

// Config wires a Session to its collaborators.
type Config struct {
	ID        string
	UserID    string
	DeckID    int64
	Scheduler *spacedrep.Scheduler
	Cards     CardSaver
	Clock     func() time.Time
}

// Graded describes one grading transition.
type Graded struct {
	Quality spacedrep.Quality
	Before  cards.Card
	After   cards.Card
}

// Correct reports whether the grade counted as a successful recall.
func (g Graded) Correct() bool { return g.Quality.Passed() }

// Session drives one pass over a frozen plan:
//
//	Active(i) --Present--> AwaitingGrade(i) --Grade--> Active(i+1)
//	Active(len) --Present--> Complete
//	Active/AwaitingGrade --Cancel--> Complete
//
// A Session is not safe for concurrent use.
type Session struct {
	id     string
	userID string
	deckID int64

	plan         []cards.Card
	planned      int
	cursor       int
	state        State
	gradedCount  int
	correctCount int
	cancelled    bool
	startedAt    time.Time
	completedAt  time.Time

	sched *spacedrep.Scheduler
	saver CardSaver
	clock func() time.Time
}

// Start begins a session over plan in state Active at cursor 0.
func Start(plan *Plan, cfg Config) *Session {
	if cfg.Scheduler == nil {
		cfg.Scheduler = spacedrep.NewScheduler(spacedrep.Config{})
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	var cs []cards.Card
	if plan != nil {
		cs = append(cs, plan.Cards...)
	}
	return &Session{
		id:        cfg.ID,
		userID:    cfg.UserID,
		deckID:    cfg.DeckID,
		plan:      cs,
		planned:   len(cs),
		state:     StateActive,
		startedAt: cfg.Clock(),
		sched:     cfg.Scheduler,
		saver:     cfg.Cards,
		clock:     cfg.Clock,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) UserID() string       { return s.userID }
func (s *Session) DeckID() int64        { return s.deckID }
func (s *Session) State() State         { return s.state }
func (s *Session) Cursor() int          { return s.cursor }
func (s *Session) Len() int             { return len(s.plan) }
func (s *Session) PlannedCount() int    { return s.planned }
func (s *Session) GradedCount() int     { return s.gradedCount }
func (s *Session) CorrectCount() int    { return s.correctCount }
func (s *Session) Cancelled() bool      { return s.cancelled }
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Present returns the card at the cursor and waits for its grade. When the
// plan is exhausted it completes the session and returns nil.
func (s *Session) Present() (*cards.Card, error) {
	if s.state != StateActive {
		return nil, &InvalidStateError{Op: "present", State: s.state}
	}
	if s.cursor >= len(s.plan) {
		s.complete()
		return nil, nil
	}
	c := s.plan[s.cursor]
	s.state = StateAwaitingGrade
	return &c, nil
}

// Grade schedules the presented card, persists it and advances the cursor.
// If persisting fails the session stays awaiting the same grade.
func (s *Session) Grade(ctx context.Context, q spacedrep.Quality) (Graded, error) {
	if s.state != StateAwaitingGrade {
		return Graded{}, &InvalidStateError{Op: "grade", State: s.state}
	}

	before := s.plan[s.cursor]
	after, err := s.sched.Grade(before, q, s.clock())
	if err != nil {
		return Graded{}, err
	}
	if s.saver != nil {
		if err := s.saver.SaveCard(ctx, s.userID, after); err != nil {
			return Graded{}, fmt.Errorf("save card %d: %w", after.ID, err)
		}
	}

	s.gradedCount++
	if q.Passed() {
		s.correctCount++
	}
	s.cursor++
	s.state = StateActive
	return Graded{Quality: q, Before: before, After: after}, nil
}

// Cancel truncates the plan at the cursor and completes the session. Cards
// graded so far stay persisted; a presented but ungraded card is dropped.
func (s *Session) Cancel() error {
	if s.state == StateComplete {
		return &InvalidStateError{Op: "cancel", State: s.state}
	}
	s.plan = s.plan[:s.cursor]
	s.cancelled = true
	s.complete()
	return nil
}

func (s *Session) complete() {
	s.state = StateComplete
	s.completedAt = s.clock()
}

// Summary returns the session's result. Valid only once complete.
func (s *Session) Summary() (Result, error) {
	if s.state != StateComplete {
		return Result{}, &InvalidStateError{Op: "summarize", State: s.state}
	}
	return newResult(s), nil
}
