package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/progress"
	"github.com/abhisek/vocabo/internal/spacedrep"
	"github.com/abhisek/vocabo/internal/store"
)

// ErrSessionNotFound is returned for unknown or superseded handles.
var ErrSessionNotFound = errors.New("session not found")

// Handle identifies a session across calls.
type Handle string

// CardStore loads decks and persists graded cards.
type CardStore interface {
	CardSaver
	LoadDeck(ctx context.Context, userID string, deckID int64) ([]cards.Card, error)
	CountMastered(ctx context.Context, userID string) (int, error)
}

// ProgressStore loads and saves per-user progress.
type ProgressStore interface {
	LoadProgress(ctx context.Context, userID string) (progress.UserProgress, error)
	SaveProgress(ctx context.Context, userID string, p progress.UserProgress) error
}

// EventRecorder appends review and session events.
type EventRecorder interface {
	AppendReviewEvent(ctx context.Context, data store.ReviewEventData) error
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// ServiceConfig wires the Service. Cards and Progress are required.
type ServiceConfig struct {
	Cards     CardStore
	Progress  ProgressStore
	Events    EventRecorder // optional
	Composer  *Composer
	Scheduler *spacedrep.Scheduler
	Tracker   *progress.Tracker
	Logger    *slog.Logger
	Clock     func() time.Time
	NewID     func() string
}

// Service runs review sessions behind opaque handles. Each user has at most
// one live session: starting another implicitly cancels the previous one,
// recording whatever it graded, and its handle stops resolving.
type Service struct {
	cards     CardStore
	progress  ProgressStore
	events    EventRecorder
	composer  *Composer
	scheduler *spacedrep.Scheduler
	tracker   *progress.Tracker
	logger    *slog.Logger
	clock     func() time.Time
	newID     func() string

	mu       sync.Mutex
	sessions map[Handle]*entry
	byUser   map[string]Handle
}

type entry struct {
	mu       sync.Mutex
	sess     *Session
	recorded bool
	unlocked []progress.Achievement
}

// NewService creates a session service, filling unset collaborators with
// defaults.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Composer == nil {
		cfg.Composer = NewComposer(OrderShuffle, nil)
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = spacedrep.NewScheduler(spacedrep.Config{})
	}
	if cfg.Tracker == nil {
		cfg.Tracker = progress.NewTracker(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Service{
		cards:     cfg.Cards,
		progress:  cfg.Progress,
		events:    cfg.Events,
		composer:  cfg.Composer,
		scheduler: cfg.Scheduler,
		tracker:   cfg.Tracker,
		logger:    cfg.Logger,
		clock:     cfg.Clock,
		newID:     cfg.NewID,
		sessions:  make(map[Handle]*entry),
		byUser:    make(map[string]Handle),
	}
}

// StartSession composes a session over the deck's due cards plus up to
// newCardLimit new cards. Returns ErrNoCardsDue when there is nothing to
// study.
func (s *Service) StartSession(ctx context.Context, userID string, deckID int64, newCardLimit int) (Handle, error) {
	deck, err := s.cards.LoadDeck(ctx, userID, deckID)
	if err != nil {
		return "", fmt.Errorf("load deck: %w", err)
	}
	plan, err := s.composer.Compose(deck, s.clock(), newCardLimit)
	if err != nil {
		return "", err
	}

	// The user's earlier session is closed and recorded before it is
	// replaced. If recording fails its handle stays registered so
	// PresentNext can retry, and no new session starts.
	s.mu.Lock()
	ph, hasPrior := s.byUser[userID]
	prior := s.sessions[ph]
	s.mu.Unlock()
	if hasPrior && prior != nil {
		if err := s.retire(ctx, prior); err != nil {
			return "", fmt.Errorf("record previous session %s: %w", ph, err)
		}
	}

	h := Handle(s.newID())
	e := &entry{sess: Start(plan, Config{
		ID:        string(h),
		UserID:    userID,
		DeckID:    deckID,
		Scheduler: s.scheduler,
		Cards:     s.cards,
		Clock:     s.clock,
	})}

	s.mu.Lock()
	if hasPrior {
		delete(s.sessions, ph)
	}
	s.sessions[h] = e
	s.byUser[userID] = h
	s.mu.Unlock()

	s.logger.Info("session started",
		"session", h, "user", userID, "deck", deckID,
		"due", plan.DueCount, "new", plan.NewCount)
	s.appendSessionEvent(ctx, e.sess, store.SessionActionStart)
	return h, nil
}

// PresentNext returns the next card to study, or nil once the session is
// complete. Completion records progress; if that fails the error is
// returned and calling PresentNext again retries the recording.
func (s *Service) PresentNext(ctx context.Context, h Handle) (*cards.Card, error) {
	e, err := s.lookup(h)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess.State() == StateComplete {
		if !e.recorded {
			return nil, s.finish(ctx, e)
		}
		return nil, &InvalidStateError{Op: "present", State: StateComplete}
	}

	c, err := e.sess.Present()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, s.finish(ctx, e)
	}
	return c, nil
}

// SubmitGrade grades the presented card with quality q and persists it.
func (s *Service) SubmitGrade(ctx context.Context, h Handle, q spacedrep.Quality) error {
	e, err := s.lookup(h)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.sess.Grade(ctx, q)
	if err != nil {
		return err
	}

	s.logger.Debug("card graded",
		"session", h, "card", g.After.ID, "quality", int(q),
		"interval", g.After.IntervalDays, "maturity", g.After.Maturity)
	if s.events != nil {
		err := s.events.AppendReviewEvent(ctx, store.ReviewEventData{
			SessionID:      e.sess.ID(),
			UserID:         e.sess.UserID(),
			CardID:         g.After.ID,
			Quality:        int(q),
			Correct:        g.Correct(),
			IntervalBefore: g.Before.IntervalDays,
			IntervalAfter:  g.After.IntervalDays,
			EaseAfter:      g.After.EaseFactor,
			MaturityAfter:  string(g.After.Maturity),
		})
		if err != nil {
			s.logger.Warn("failed to log review event", "session", h, "error", err)
		}
	}
	return nil
}

// CancelSession ends the session early. Grades already submitted are kept
// and recorded in progress.
func (s *Service) CancelSession(ctx context.Context, h Handle) error {
	e, err := s.lookup(h)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.sess.Cancel(); err != nil {
		return err
	}
	return s.finish(ctx, e)
}

// Result returns the summary of a completed session.
func (s *Service) Result(h Handle) (Result, error) {
	e, err := s.lookup(h)
	if err != nil {
		return Result{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.sess.Summary()
	if err != nil {
		return Result{}, err
	}
	r.Unlocked = append([]progress.Achievement(nil), e.unlocked...)
	return r, nil
}

// Position returns the cursor and the current plan length.
func (s *Service) Position(h Handle) (cursor, total int, err error) {
	e, err := s.lookup(h)
	if err != nil {
		return 0, 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Cursor(), e.sess.Len(), nil
}

func (s *Service) lookup(h Handle) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[h]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", h, ErrSessionNotFound)
	}
	return e, nil
}

// retire cancels a superseded session if it is still live and records it.
func (s *Service) retire(ctx context.Context, e *entry) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess.State() != StateComplete {
		if err := e.sess.Cancel(); err != nil {
			return err
		}
	}
	return s.finish(ctx, e)
}

// finish records a completed session into the user's progress exactly once.
// Sessions that graded nothing leave progress untouched. Caller holds e.mu.
func (s *Service) finish(ctx context.Context, e *entry) error {
	if e.recorded {
		return nil
	}
	sess := e.sess
	res, err := sess.Summary()
	if err != nil {
		return err
	}

	if res.GradedCount > 0 {
		p, err := s.progress.LoadProgress(ctx, sess.UserID())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		mastered, err := s.cards.CountMastered(ctx, sess.UserID())
		if err != nil {
			return fmt.Errorf("count mastered cards: %w", err)
		}
		o := res.outcome()
		o.MasteredCards = mastered

		updated, unlocked := s.tracker.RecordSessionCompletion(p, o)
		if err := s.progress.SaveProgress(ctx, sess.UserID(), updated); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		e.unlocked = unlocked
		for _, a := range unlocked {
			s.logger.Info("achievement unlocked", "user", sess.UserID(), "achievement", string(a))
		}
	}

	e.recorded = true
	s.logger.Info("session complete",
		"session", sess.ID(), "graded", res.GradedCount, "correct", res.CorrectCount,
		"accuracy_pct", res.AccuracyPct, "cancelled", res.Cancelled)
	s.appendSessionEvent(ctx, sess, store.SessionActionEnd)
	return nil
}

func (s *Service) appendSessionEvent(ctx context.Context, sess *Session, action string) {
	if s.events == nil {
		return
	}
	data := store.SessionEventData{
		SessionID:    sess.ID(),
		UserID:       sess.UserID(),
		DeckID:       sess.DeckID(),
		Action:       action,
		PlannedCount: sess.PlannedCount(),
		GradedCount:  sess.GradedCount(),
		CorrectCount: sess.CorrectCount(),
		Cancelled:    sess.Cancelled(),
	}
	if action == store.SessionActionEnd {
		if r, err := sess.Summary(); err == nil {
			data.DurationSecs = int(r.Duration().Seconds())
		}
	}
	if err := s.events.AppendSessionEvent(ctx, data); err != nil {
		s.logger.Warn("failed to log session event", "session", sess.ID(), "action", action, "error", err)
	}
}
