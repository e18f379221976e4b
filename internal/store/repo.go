package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/progress"
)

// ErrNotFound is returned when a deck or card does not exist or does not
// belong to the requesting user.
var ErrNotFound = errors.New("not found")

// ErrDeckExists is returned when creating a deck whose name is taken.
var ErrDeckExists = errors.New("deck already exists")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// CardRepo persists decks and cards, scoped per user.
type CardRepo interface {
	// CreateDeck creates a named deck. Returns ErrDeckExists if the user
	// already has a deck with that name.
	CreateDeck(ctx context.Context, userID, name string) (cards.Deck, error)

	// EnsureDeck returns the named deck, creating it if needed.
	EnsureDeck(ctx context.Context, userID, name string) (cards.Deck, error)

	// DeckByName looks up a deck by name.
	DeckByName(ctx context.Context, userID, name string) (cards.Deck, error)

	// ListDecks returns the user's decks ordered by name.
	ListDecks(ctx context.Context, userID string) ([]cards.Deck, error)

	// LoadDeck returns every card of the deck in insertion order.
	LoadDeck(ctx context.Context, userID string, deckID int64) ([]cards.Card, error)

	// AddCard creates a new card in the deck.
	AddCard(ctx context.Context, userID string, deckID int64, front, back string) (cards.Card, error)

	// InsertCard stores a card as-is, including its scheduling state.
	// The card's ID is ignored and assigned by the database.
	InsertCard(ctx context.Context, userID string, c cards.Card) (cards.Card, error)

	// SaveCard writes the card's scheduling state.
	SaveCard(ctx context.Context, userID string, c cards.Card) error

	// CountCards returns the number of cards across all of the user's decks.
	CountCards(ctx context.Context, userID string) (int, error)

	// CountMastered returns the number of mastered cards across all of the
	// user's decks.
	CountMastered(ctx context.Context, userID string) (int, error)
}

// ProgressRepo persists per-user progress aggregates.
type ProgressRepo interface {
	// LoadProgress returns the user's progress, or fresh defaults for a
	// user that has none yet.
	LoadProgress(ctx context.Context, userID string) (progress.UserProgress, error)

	// SaveProgress upserts the user's progress.
	SaveProgress(ctx context.Context, userID string, p progress.UserProgress) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ReviewEventData captures one graded card.
type ReviewEventData struct {
	SessionID      string
	UserID         string
	CardID         int64
	Quality        int
	Correct        bool
	IntervalBefore int
	IntervalAfter  int
	EaseAfter      float64
	MaturityAfter  string
}

// ReviewEventRecord is a stored review event.
type ReviewEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ReviewEventData
}

// Session event actions.
const (
	SessionActionStart = "start"
	SessionActionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID    string
	UserID       string
	DeckID       int64
	Action       string
	PlannedCount int
	GradedCount  int
	CorrectCount int
	Cancelled    bool
	DurationSecs int
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendReviewEvent records a graded card.
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM calls per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// QueryReviewEvents returns the user's review events, newest first.
	QueryReviewEvents(ctx context.Context, userID string, opts QueryOpts) ([]ReviewEventRecord, error)

	// QuerySessionEvents returns the user's completed sessions (end
	// events), newest first.
	QuerySessionEvents(ctx context.Context, userID string, opts QueryOpts) ([]SessionEventRecord, error)
}
