package trainer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/session"
)

// NothingDueError is returned by StartReview when the deck has nothing to
// study right now. It matches session.ErrNoCardsDue.
type NothingDueError struct {
	Deck string
	// Next is the soonest scheduled review of a reviewed card; zero when
	// no card has been reviewed yet.
	Next time.Time
	Now  time.Time
	// NewWaiting counts unreviewed cards left out by the new-card limit.
	NewWaiting int
}

func (e *NothingDueError) Error() string {
	switch {
	case e.NewWaiting > 0:
		return fmt.Sprintf("no cards due in %s; %d new cards wait for a new-card limit above 0", e.Deck, e.NewWaiting)
	case e.Next.IsZero():
		return fmt.Sprintf("deck %s has no cards yet", e.Deck)
	}
	return fmt.Sprintf("no cards due in %s, next review in %s", e.Deck, Until(e.Now, e.Next))
}

func (e *NothingDueError) Unwrap() error { return session.ErrNoCardsDue }

// StartReview opens a session on deckName (default deck when empty).
func (t *Trainer) StartReview(ctx context.Context, userID, deckName string, newCardLimit int) (session.Handle, error) {
	name := deckNameOrDefault(deckName)
	deck, err := t.cards.DeckByName(ctx, userID, name)
	if err != nil {
		return "", err
	}

	h, err := t.sessions.StartSession(ctx, userID, deck.ID, newCardLimit)
	if errors.Is(err, session.ErrNoCardsDue) {
		nde := &NothingDueError{Deck: name, Now: t.clock()}
		cs, lerr := t.cards.LoadDeck(ctx, userID, deck.ID)
		if lerr != nil {
			return "", fmt.Errorf("load deck: %w", lerr)
		}
		var reviewed []cards.Card
		for _, c := range cs {
			if c.IsNew() {
				nde.NewWaiting++
			} else {
				reviewed = append(reviewed, c)
			}
		}
		nde.Next, _ = cards.SoonestReview(reviewed)
		return "", nde
	}
	return h, err
}

// Until renders the wait from now to t as "~N minutes", "~N hours" or
// "~N days"; anything already past is "now".
func Until(now, t time.Time) string {
	d := t.Sub(now)
	switch {
	case d <= 0:
		return "now"
	case d < time.Hour:
		return plural(int(math.Ceil(d.Minutes())), "minute")
	case d < 48*time.Hour:
		return plural(int(math.Round(d.Hours())), "hour")
	default:
		return plural(int(math.Round(d.Hours()/24)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "~1 " + unit
	}
	return fmt.Sprintf("~%d %ss", n, unit)
}
