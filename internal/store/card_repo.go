package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabo/internal/cards"
)

var cardColumns = []string{
	"id", "deck_id", "front", "back", "maturity", "interval_days", "ease_factor",
	"next_review_at", "review_count", "correct_review_count", "last_reviewed_at", "created_at",
}

// cardRepo implements CardRepo over the decks and cards tables.
type cardRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *cardRepo) CreateDeck(ctx context.Context, userID, name string) (cards.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return cards.Deck{}, fmt.Errorf("create deck: name must not be blank")
	}
	if _, err := r.DeckByName(ctx, userID, name); err == nil {
		return cards.Deck{}, fmt.Errorf("create deck %q: %w", name, ErrDeckExists)
	} else if !errors.Is(err, ErrNotFound) {
		return cards.Deck{}, err
	}

	d := cards.Deck{UserID: userID, Name: name, CreatedAt: r.now()}
	res, err := exec(ctx, r.db, builder().Insert("decks").
		Columns("user_id", "name", "created_at").
		Values(d.UserID, d.Name, d.CreatedAt))
	if err != nil {
		return cards.Deck{}, fmt.Errorf("insert deck: %w", err)
	}
	if d.ID, err = res.LastInsertId(); err != nil {
		return cards.Deck{}, fmt.Errorf("deck id: %w", err)
	}
	return d, nil
}

func (r *cardRepo) EnsureDeck(ctx context.Context, userID, name string) (cards.Deck, error) {
	d, err := r.DeckByName(ctx, userID, name)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return cards.Deck{}, err
	}
	return r.CreateDeck(ctx, userID, name)
}

func (r *cardRepo) DeckByName(ctx context.Context, userID, name string) (cards.Deck, error) {
	decks, err := r.queryDecks(ctx, entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("name", strings.TrimSpace(name)),
	))
	if err != nil {
		return cards.Deck{}, err
	}
	if len(decks) == 0 {
		return cards.Deck{}, fmt.Errorf("deck %q: %w", name, ErrNotFound)
	}
	return decks[0], nil
}

func (r *cardRepo) ListDecks(ctx context.Context, userID string) ([]cards.Deck, error) {
	return r.queryDecks(ctx, entsql.EQ("user_id", userID))
}

func (r *cardRepo) queryDecks(ctx context.Context, where *entsql.Predicate) ([]cards.Deck, error) {
	b := builder()
	rows, err := query(ctx, r.db, b.Select("id", "user_id", "name", "created_at").
		From(b.Table("decks")).
		Where(where).
		OrderBy("name"))
	if err != nil {
		return nil, fmt.Errorf("query decks: %w", err)
	}
	defer rows.Close()

	var decks []cards.Deck
	for rows.Next() {
		var d cards.Deck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		d.CreatedAt = d.CreatedAt.UTC()
		decks = append(decks, d)
	}
	return decks, wrapRowsErr("query decks", rows.Err())
}

// checkDeck returns ErrNotFound unless deckID exists and belongs to userID.
func (r *cardRepo) checkDeck(ctx context.Context, userID string, deckID int64) error {
	b := builder()
	n, err := queryInt(ctx, r.db, b.Select(entsql.Count("*")).
		From(b.Table("decks")).
		Where(entsql.And(entsql.EQ("id", deckID), entsql.EQ("user_id", userID))))
	if err != nil {
		return fmt.Errorf("check deck: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deck %d: %w", deckID, ErrNotFound)
	}
	return nil
}

func (r *cardRepo) LoadDeck(ctx context.Context, userID string, deckID int64) ([]cards.Card, error) {
	if err := r.checkDeck(ctx, userID, deckID); err != nil {
		return nil, err
	}

	b := builder()
	rows, err := query(ctx, r.db, b.Select(cardColumns...).
		From(b.Table("cards")).
		Where(entsql.EQ("deck_id", deckID)).
		OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cs []cards.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, wrapRowsErr("query cards", rows.Err())
}

func scanCard(rows *sql.Rows) (cards.Card, error) {
	var (
		c        cards.Card
		maturity string
		last     sql.NullTime
	)
	err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &maturity, &c.IntervalDays,
		&c.EaseFactor, &c.NextReviewAt, &c.ReviewCount, &c.CorrectReviewCount, &last, &c.CreatedAt)
	if err != nil {
		return cards.Card{}, fmt.Errorf("scan card: %w", err)
	}
	if c.Maturity, err = cards.ParseMaturity(maturity); err != nil {
		return cards.Card{}, fmt.Errorf("card %d: %w", c.ID, err)
	}
	c.NextReviewAt = c.NextReviewAt.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	c.LastReviewedAt = utcPtr(last)
	return c, nil
}

func (r *cardRepo) AddCard(ctx context.Context, userID string, deckID int64, front, back string) (cards.Card, error) {
	c, err := cards.New(deckID, front, back, r.now())
	if err != nil {
		return cards.Card{}, err
	}
	return r.InsertCard(ctx, userID, c)
}

func (r *cardRepo) InsertCard(ctx context.Context, userID string, c cards.Card) (cards.Card, error) {
	if err := cards.Validate(c); err != nil {
		return cards.Card{}, err
	}
	if err := r.checkDeck(ctx, userID, c.DeckID); err != nil {
		return cards.Card{}, err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}

	res, err := exec(ctx, r.db, builder().Insert("cards").
		Columns(cardColumns[1:]...).
		Values(c.DeckID, c.Front, c.Back, string(c.Maturity), c.IntervalDays, c.EaseFactor,
			c.NextReviewAt.UTC(), c.ReviewCount, c.CorrectReviewCount, nullTime(c.LastReviewedAt), c.CreatedAt.UTC()))
	if err != nil {
		return cards.Card{}, fmt.Errorf("insert card: %w", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return cards.Card{}, fmt.Errorf("card id: %w", err)
	}
	return c, nil
}

func (r *cardRepo) SaveCard(ctx context.Context, userID string, c cards.Card) error {
	if err := cards.Validate(c); err != nil {
		return err
	}
	if err := r.checkDeck(ctx, userID, c.DeckID); err != nil {
		return err
	}

	res, err := exec(ctx, r.db, builder().Update("cards").
		Set("maturity", string(c.Maturity)).
		Set("interval_days", c.IntervalDays).
		Set("ease_factor", c.EaseFactor).
		Set("next_review_at", c.NextReviewAt.UTC()).
		Set("review_count", c.ReviewCount).
		Set("correct_review_count", c.CorrectReviewCount).
		Set("last_reviewed_at", nullTime(c.LastReviewedAt)).
		Where(entsql.And(entsql.EQ("id", c.ID), entsql.EQ("deck_id", c.DeckID))))
	if err != nil {
		return fmt.Errorf("update card %d: %w", c.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update card %d: %w", c.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("card %d: %w", c.ID, ErrNotFound)
	}
	return nil
}

func (r *cardRepo) CountCards(ctx context.Context, userID string) (int, error) {
	return r.countCards(ctx, userID, nil)
}

func (r *cardRepo) CountMastered(ctx context.Context, userID string) (int, error) {
	return r.countCards(ctx, userID, entsql.EQ("maturity", string(cards.MaturityMastered)))
}

func (r *cardRepo) countCards(ctx context.Context, userID string, extra *entsql.Predicate) (int, error) {
	b := builder()
	owned := b.Select("id").From(b.Table("decks")).Where(entsql.EQ("user_id", userID))
	where := entsql.In("deck_id", owned)
	if extra != nil {
		where = entsql.And(where, extra)
	}
	n, err := queryInt(ctx, r.db, b.Select(entsql.Count("*")).
		From(b.Table("cards")).
		Where(where))
	if err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
