package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/abhisek/vocabo/internal/cards"
)

// ErrNoCardsDue is returned when a deck has neither due nor new cards.
// It is an expected outcome, not a failure.
var ErrNoCardsDue = errors.New("no cards due")

// DefaultNewCardLimit caps how many never-reviewed cards join a session.
const DefaultNewCardLimit = 10

// Order controls how composed cards are arranged.
type Order string

const (
	// OrderShuffle mixes due and new cards randomly.
	OrderShuffle Order = "shuffle"
	// OrderDueFirst presents due cards, most overdue first, then new cards
	// in insertion order.
	OrderDueFirst Order = "due-first"
)

// ParseOrder validates an order name. An empty string means OrderShuffle.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderShuffle:
		return OrderShuffle, nil
	case OrderDueFirst:
		return OrderDueFirst, nil
	}
	return "", fmt.Errorf("unknown session order %q (want shuffle or due-first)", s)
}

// Plan is the frozen, ordered list of cards for one session. Cards are value
// copies taken at composition time.
type Plan struct {
	Cards      []cards.Card
	DueCount   int
	NewCount   int
	ComposedAt time.Time
}

// Len returns the number of cards in the plan.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Cards)
}

// Composer selects and orders cards for a session.
type Composer struct {
	order   Order
	shuffle func(n int, swap func(i, j int))
}

// NewComposer creates a composer with the given order. A nil rng uses the
// global math/rand source.
func NewComposer(order Order, rng *rand.Rand) *Composer {
	if order == "" {
		order = OrderShuffle
	}
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	return &Composer{order: order, shuffle: shuffle}
}

// Order returns the composer's ordering policy.
func (c *Composer) Order() Order { return c.order }

// Compose builds a plan from every due card plus at most newCardLimit new
// cards, taken in deck order. A negative limit is treated as zero.
// Returns ErrNoCardsDue when the plan would be empty.
func (c *Composer) Compose(deck []cards.Card, now time.Time, newCardLimit int) (*Plan, error) {
	if newCardLimit < 0 {
		newCardLimit = 0
	}

	var due, fresh []cards.Card
	for _, card := range deck {
		switch {
		case card.IsNew():
			if len(fresh) < newCardLimit {
				fresh = append(fresh, card)
			}
		case card.IsDue(now):
			due = append(due, card)
		}
	}

	if len(due)+len(fresh) == 0 {
		return nil, ErrNoCardsDue
	}

	planned := make([]cards.Card, 0, len(due)+len(fresh))
	switch c.order {
	case OrderDueFirst:
		slices.SortStableFunc(due, func(a, b cards.Card) int {
			return a.NextReviewAt.Compare(b.NextReviewAt)
		})
		planned = append(planned, due...)
		planned = append(planned, fresh...)
	default:
		planned = append(planned, due...)
		planned = append(planned, fresh...)
		c.shuffle(len(planned), func(i, j int) {
			planned[i], planned[j] = planned[j], planned[i]
		})
	}

	return &Plan{
		Cards:      planned,
		DueCount:   len(due),
		NewCount:   len(fresh),
		ComposedAt: now,
	}, nil
}
