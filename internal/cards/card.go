package cards

import (
	"strings"
	"time"
)

// Scheduling defaults applied to every freshly created card.
const (
	DefaultEaseFactor   = 2.5
	MinEaseFactor       = 1.3
	InitialIntervalDays = 1
)

// Card is a single front/back learning item with its own scheduling state.
// Front holds the native term, Back the target-language term.
type Card struct {
	ID                 int64      `json:"id" yaml:"-"`
	DeckID             int64      `json:"deck_id" yaml:"-"`
	Front              string     `json:"front" yaml:"front" validate:"notblank,max=500"`
	Back               string     `json:"back" yaml:"back" validate:"notblank,max=500"`
	Maturity           Maturity   `json:"maturity" yaml:"maturity" validate:"oneof=new learning easy medium hard mastered"`
	IntervalDays       int        `json:"interval_days" yaml:"interval_days" validate:"gte=1"`
	EaseFactor         float64    `json:"ease_factor" yaml:"ease_factor" validate:"gte=1.3"`
	NextReviewAt       time.Time  `json:"next_review_at" yaml:"next_review_at"`
	ReviewCount        int        `json:"review_count" yaml:"review_count" validate:"gte=0"`
	CorrectReviewCount int        `json:"correct_review_count" yaml:"correct_review_count" validate:"gte=0,ltefield=ReviewCount"`
	LastReviewedAt     *time.Time `json:"last_reviewed_at,omitempty" yaml:"last_reviewed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at" yaml:"created_at"`
}

// New creates a card in the initial New state, due immediately.
func New(deckID int64, front, back string, now time.Time) (Card, error) {
	c := Card{
		DeckID:       deckID,
		Front:        strings.TrimSpace(front),
		Back:         strings.TrimSpace(back),
		Maturity:     MaturityNew,
		IntervalDays: InitialIntervalDays,
		EaseFactor:   DefaultEaseFactor,
		NextReviewAt: now,
		CreatedAt:    now,
	}
	if err := Validate(c); err != nil {
		return Card{}, err
	}
	return c, nil
}

// IsNew reports whether the card has never been graded.
func (c Card) IsNew() bool {
	return c.ReviewCount == 0
}

// IsDue returns true if the card is due for review (at or past NextReviewAt).
func (c Card) IsDue(now time.Time) bool {
	return !now.Before(c.NextReviewAt)
}

// OverdueDays returns how many days past due the card is. Returns 0 if not yet due.
func (c Card) OverdueDays(now time.Time) float64 {
	if now.Before(c.NextReviewAt) {
		return 0
	}
	return now.Sub(c.NextReviewAt).Hours() / 24.0
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (c Card) DaysUntilReview(now time.Time) int {
	if c.IsDue(now) {
		return 0
	}
	return int(c.NextReviewAt.Sub(now).Hours()/24.0) + 1
}

// Accuracy returns the fraction of correct reviews, or 0 for unreviewed cards.
func (c Card) Accuracy() float64 {
	if c.ReviewCount == 0 {
		return 0
	}
	return float64(c.CorrectReviewCount) / float64(c.ReviewCount)
}

// SoonestReview returns the earliest NextReviewAt among cards, and false
// when cards is empty.
func SoonestReview(cs []Card) (time.Time, bool) {
	if len(cs) == 0 {
		return time.Time{}, false
	}
	soonest := cs[0].NextReviewAt
	for _, c := range cs[1:] {
		if c.NextReviewAt.Before(soonest) {
			soonest = c.NextReviewAt
		}
	}
	return soonest, true
}
