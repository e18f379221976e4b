package trainer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/deckfile"
	"github.com/abhisek/vocabo/internal/store"
)

// DeckSummary pairs a deck with its card counts.
type DeckSummary struct {
	Deck  cards.Deck
	Stats cards.Stats
}

// Decks lists the user's decks with per-deck stats.
func (t *Trainer) Decks(ctx context.Context, userID string) ([]DeckSummary, error) {
	decks, err := t.cards.ListDecks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	now := t.clock()
	out := make([]DeckSummary, 0, len(decks))
	for _, d := range decks {
		cs, err := t.cards.LoadDeck(ctx, userID, d.ID)
		if err != nil {
			return nil, fmt.Errorf("load deck %s: %w", d.Name, err)
		}
		out = append(out, DeckSummary{Deck: d, Stats: cards.Summarize(cs, now)})
	}
	return out, nil
}

// CreateDeck creates an empty deck. It fails with store.ErrDeckExists if
// the name is taken.
func (t *Trainer) CreateDeck(ctx context.Context, userID, name string) (cards.Deck, error) {
	return t.cards.CreateDeck(ctx, userID, deckNameOrDefault(name))
}

// ExportDeck writes deckName as a deck file.
func (t *Trainer) ExportDeck(ctx context.Context, userID, deckName string, w io.Writer) (int, error) {
	name := deckNameOrDefault(deckName)
	deck, err := t.cards.DeckByName(ctx, userID, name)
	if err != nil {
		return 0, err
	}
	cs, err := t.cards.LoadDeck(ctx, userID, deck.ID)
	if err != nil {
		return 0, fmt.Errorf("load deck %s: %w", name, err)
	}
	if err := deckfile.Encode(w, deckfile.New(deck.Name, cs, t.clock())); err != nil {
		return 0, err
	}
	return len(cs), nil
}

// ImportOptions tweak ImportDeck.
type ImportOptions struct {
	// Deck overrides the deck name stored in the file.
	Deck string
	// Reset discards scheduling state so every card starts as new.
	Reset bool
}

// Imported reports the result of ImportDeck.
type Imported struct {
	Deck    cards.Deck
	Added   int
	Created bool
}

// ImportDeck reads a deck file and appends its cards to the target deck,
// creating the deck when it does not exist. The file is validated in full
// before anything is written.
func (t *Trainer) ImportDeck(ctx context.Context, userID string, r io.Reader, opts ImportOptions) (Imported, error) {
	now := t.clock()
	f, err := deckfile.Decode(r, now)
	if err != nil {
		return Imported{}, err
	}
	name := opts.Deck
	if name == "" {
		name = f.Deck
	}
	name = deckNameOrDefault(name)

	var res Imported
	res.Deck, err = t.cards.DeckByName(ctx, userID, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if res.Deck, err = t.cards.CreateDeck(ctx, userID, name); err != nil {
			return Imported{}, fmt.Errorf("create deck %s: %w", name, err)
		}
		res.Created = true
	case err != nil:
		return Imported{}, err
	}

	for _, c := range f.Cards {
		if opts.Reset {
			if c, err = cards.New(res.Deck.ID, c.Front, c.Back, now); err != nil {
				return res, err
			}
		}
		c.DeckID = res.Deck.ID
		if _, err := t.cards.InsertCard(ctx, userID, c); err != nil {
			return res, fmt.Errorf("import %q: %w", c.Front, err)
		}
		res.Added++
	}

	if res.Added > 0 {
		if _, err := t.noteCardAdded(ctx, userID); err != nil {
			return res, err
		}
	}
	t.logger.Info("deck imported", "user", userID, "deck", name, "cards", res.Added, "created", res.Created)
	return res, nil
}
