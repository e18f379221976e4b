// Package trainer is the application layer behind the CLI. It ties decks,
// progress, sessions and translation together per user.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/progress"
	"github.com/abhisek/vocabo/internal/session"
	"github.com/abhisek/vocabo/internal/store"
	"github.com/abhisek/vocabo/internal/translate"
)

// ErrNoTranslator is returned by translation calls when no LLM provider
// is configured.
var ErrNoTranslator = errors.New("translation is not configured")

// Translator translates free text for a learner at a given level.
type Translator interface {
	Translate(ctx context.Context, text string, level progress.Level) (translate.Result, error)
}

// Deps are the collaborators of a Trainer. Cards, Progress and Sessions
// are required.
type Deps struct {
	Cards      store.CardRepo
	Progress   store.ProgressRepo
	Events     store.EventRepo
	Sessions   *session.Service
	Translator Translator
	Tracker    *progress.Tracker
	Logger     *slog.Logger
	Clock      func() time.Time

	// DailyGoal overrides the goal stored in progress when positive.
	DailyGoal int
}

// Trainer serves one process; every call names the user it acts for.
type Trainer struct {
	cards      store.CardRepo
	progress   store.ProgressRepo
	events     store.EventRepo
	sessions   *session.Service
	translator Translator
	tracker    *progress.Tracker
	logger     *slog.Logger
	clock      func() time.Time
	dailyGoal  int
}

// New builds a Trainer.
func New(d Deps) *Trainer {
	if d.Tracker == nil {
		d.Tracker = progress.NewTracker(nil)
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	return &Trainer{
		cards:      d.Cards,
		progress:   d.Progress,
		events:     d.Events,
		sessions:   d.Sessions,
		translator: d.Translator,
		tracker:    d.Tracker,
		logger:     d.Logger,
		clock:      d.Clock,
		dailyGoal:  d.DailyGoal,
	}
}

// Sessions exposes the session service driving interactive review.
func (t *Trainer) Sessions() *session.Service { return t.sessions }

// Added reports a stored card and anything it unlocked.
type Added struct {
	Card     cards.Card
	Deck     cards.Deck
	Unlocked []progress.Achievement
}

// AddCard stores a new card in deckName, creating the deck on first use.
// An empty deckName means the default deck.
func (t *Trainer) AddCard(ctx context.Context, userID, deckName, front, back string) (Added, error) {
	deck, err := t.cards.EnsureDeck(ctx, userID, deckNameOrDefault(deckName))
	if err != nil {
		return Added{}, fmt.Errorf("open deck: %w", err)
	}
	c, err := t.cards.AddCard(ctx, userID, deck.ID, front, back)
	if err != nil {
		return Added{}, err
	}

	unlocked, err := t.noteCardAdded(ctx, userID)
	if err != nil {
		return Added{}, err
	}
	t.logger.Info("card added", "user", userID, "deck", deck.Name, "card", c.ID)
	return Added{Card: c, Deck: deck, Unlocked: unlocked}, nil
}

func (t *Trainer) noteCardAdded(ctx context.Context, userID string) ([]progress.Achievement, error) {
	p, err := t.progress.LoadProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	updated, unlocked := t.tracker.RecordCardAdded(p, t.clock())
	if len(unlocked) == 0 {
		return nil, nil
	}
	if err := t.progress.SaveProgress(ctx, userID, updated); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	return unlocked, nil
}

// Translate translates text at the user's level.
func (t *Trainer) Translate(ctx context.Context, userID, text string) (translate.Result, error) {
	if t.translator == nil {
		return translate.Result{}, ErrNoTranslator
	}
	p, err := t.progress.LoadProgress(ctx, userID)
	if err != nil {
		return translate.Result{}, fmt.Errorf("load progress: %w", err)
	}
	return t.translator.Translate(ctx, text, p.Level)
}

// QuickAdd translates text and stores the pair as a card, native side
// in front.
func (t *Trainer) QuickAdd(ctx context.Context, userID, deckName, text string) (translate.Result, Added, error) {
	res, err := t.Translate(ctx, userID, text)
	if err != nil {
		return translate.Result{}, Added{}, err
	}
	added, err := t.AddCard(ctx, userID, deckName, res.Front(), res.Back())
	if err != nil {
		return res, Added{}, err
	}
	return res, added, nil
}

// Level returns the user's CEFR level.
func (t *Trainer) Level(ctx context.Context, userID string) (progress.Level, error) {
	p, err := t.progress.LoadProgress(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load progress: %w", err)
	}
	return p.Level, nil
}

// SetLevel stores the user's CEFR level.
func (t *Trainer) SetLevel(ctx context.Context, userID string, level progress.Level) error {
	p, err := t.progress.LoadProgress(ctx, userID)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	p.Level = level
	if err := t.progress.SaveProgress(ctx, userID, p); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func deckNameOrDefault(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return cards.DefaultDeckName
}
