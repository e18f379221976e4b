package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/progress"
	"github.com/abhisek/vocabo/internal/spacedrep"
	"github.com/abhisek/vocabo/internal/store"
)

type mockCardStore struct {
	mu       sync.Mutex
	decks    map[int64][]cards.Card
	mastered int
	saveErr  error
}

func (m *mockCardStore) LoadDeck(_ context.Context, _ string, deckID int64) ([]cards.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decks[deckID]
	if !ok {
		return nil, fmt.Errorf("deck %d: %w", deckID, store.ErrNotFound)
	}
	return append([]cards.Card(nil), d...), nil
}

func (m *mockCardStore) SaveCard(_ context.Context, _ string, c cards.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	d := m.decks[c.DeckID]
	for i := range d {
		if d[i].ID == c.ID {
			d[i] = c
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *mockCardStore) CountMastered(_ context.Context, _ string) (int, error) {
	return m.mastered, nil
}

type mockProgressStore struct {
	saved   map[string]progress.UserProgress
	saves   int
	saveErr error
}

func (m *mockProgressStore) LoadProgress(_ context.Context, userID string) (progress.UserProgress, error) {
	if p, ok := m.saved[userID]; ok {
		return p, nil
	}
	return progress.New(), nil
}

func (m *mockProgressStore) SaveProgress(_ context.Context, userID string, p progress.UserProgress) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.saved == nil {
		m.saved = make(map[string]progress.UserProgress)
	}
	m.saved[userID] = p
	m.saves++
	return nil
}

type mockEvents struct {
	reviews  []store.ReviewEventData
	sessions []store.SessionEventData
}

func (m *mockEvents) AppendReviewEvent(_ context.Context, d store.ReviewEventData) error {
	m.reviews = append(m.reviews, d)
	return nil
}

func (m *mockEvents) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	m.sessions = append(m.sessions, d)
	return nil
}

type fixture struct {
	svc      *Service
	cards    *mockCardStore
	progress *mockProgressStore
	events   *mockEvents
}

func newFixture(deck []cards.Card) *fixture {
	cs := &mockCardStore{decks: map[int64][]cards.Card{1: deck}}
	ps := &mockProgressStore{}
	ev := &mockEvents{}
	n := 0
	svc := NewService(ServiceConfig{
		Cards:    cs,
		Progress: ps,
		Events:   ev,
		Composer: NewComposer(OrderDueFirst, nil),
		Tracker:  progress.NewTracker(time.UTC),
		Clock:    func() time.Time { return testNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("s%d", n)
		},
	})
	return &fixture{svc: svc, cards: cs, progress: ps, events: ev}
}

func newDeck(n int) []cards.Card {
	var d []cards.Card
	for i := 1; i <= n; i++ {
		d = append(d, newCard(int64(i)))
	}
	return d
}

func runSession(t *testing.T, svc *Service, h Handle, q spacedrep.Quality) {
	t.Helper()
	ctx := context.Background()
	for {
		c, err := svc.PresentNext(ctx, h)
		require.NoError(t, err)
		if c == nil {
			return
		}
		require.NoError(t, svc.SubmitGrade(ctx, h, q))
	}
}

func TestService_CompleteSessionRecordsProgress(t *testing.T) {
	f := newFixture(newDeck(10))
	ctx := context.Background()

	h, err := f.svc.StartSession(ctx, "u1", 1, 10)
	require.NoError(t, err)
	runSession(t, f.svc, h, spacedrep.QualityPerfect)

	r, err := f.svc.Result(h)
	require.NoError(t, err)
	assert.Equal(t, 10, r.GradedCount)
	assert.Equal(t, 10, r.CorrectCount)
	assert.Equal(t, 100, r.AccuracyPct)
	assert.Contains(t, r.Unlocked, progress.AchievementPerfectSession)

	p := f.progress.saved["u1"]
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 10, p.TotalReviews)
	assert.Equal(t, 10, p.DailyProgress[progress.DayOf(testNow, time.UTC)])

	// Every card was persisted with its new schedule.
	for _, c := range f.cards.decks[1] {
		assert.Equal(t, 1, c.ReviewCount)
		assert.Equal(t, cards.MaturityLearning, c.Maturity)
	}

	assert.Len(t, f.events.reviews, 10)
	require.Len(t, f.events.sessions, 2)
	assert.Equal(t, store.SessionActionStart, f.events.sessions[0].Action)
	assert.Equal(t, store.SessionActionEnd, f.events.sessions[1].Action)
	assert.Equal(t, 10, f.events.sessions[1].GradedCount)

	// Completed sessions reject further presentation.
	_, err = f.svc.PresentNext(ctx, h)
	assert.ErrorIs(t, err, ErrInvalidSessionState)
}

func TestService_PerfectSessionNotReunlocked(t *testing.T) {
	f := newFixture(newDeck(10))
	ctx := context.Background()

	h, err := f.svc.StartSession(ctx, "u1", 1, 10)
	require.NoError(t, err)
	runSession(t, f.svc, h, spacedrep.QualityPerfect)

	// Make every card due again and repeat.
	for i := range f.cards.decks[1] {
		f.cards.decks[1][i].NextReviewAt = testNow.Add(-time.Minute)
	}
	h2, err := f.svc.StartSession(ctx, "u1", 1, 10)
	require.NoError(t, err)
	runSession(t, f.svc, h2, spacedrep.QualityPerfect)

	r, err := f.svc.Result(h2)
	require.NoError(t, err)
	assert.NotContains(t, r.Unlocked, progress.AchievementPerfectSession)
	assert.True(t, f.progress.saved["u1"].HasAchievement(progress.AchievementPerfectSession))
}

func TestService_NoCardsDue(t *testing.T) {
	f := newFixture(nil)
	_, err := f.svc.StartSession(context.Background(), "u1", 1, 10)
	assert.ErrorIs(t, err, ErrNoCardsDue)
}

func TestService_UnknownDeck(t *testing.T) {
	f := newFixture(newDeck(1))
	_, err := f.svc.StartSession(context.Background(), "u1", 99, 10)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_UnknownHandle(t *testing.T) {
	f := newFixture(newDeck(1))
	_, err := f.svc.PresentNext(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.svc.Result("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_CancelRecordsGradedOnly(t *testing.T) {
	f := newFixture(newDeck(5))
	ctx := context.Background()

	h, err := f.svc.StartSession(ctx, "u1", 1, 10)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := f.svc.PresentNext(ctx, h)
		require.NoError(t, err)
		require.NoError(t, f.svc.SubmitGrade(ctx, h, spacedrep.QualityGood))
	}
	require.NoError(t, f.svc.CancelSession(ctx, h))

	r, err := f.svc.Result(h)
	require.NoError(t, err)
	assert.True(t, r.Cancelled)
	assert.Equal(t, 2, r.GradedCount)
	assert.Equal(t, 5, r.PlannedCount)
	assert.Equal(t, 2, f.progress.saved["u1"].TotalReviews)

	assert.ErrorIs(t, f.svc.CancelSession(ctx, h), ErrInvalidSessionState)
}

func TestService_CancelWithoutGradesLeavesProgress(t *testing.T) {
	f := newFixture(newDeck(3))
	ctx := context.Background()

	h, err := f.svc.StartSession(ctx, "u1", 1, 10)
	require.NoError(t, err)
	require.NoError(t, f.svc.CancelSession(ctx, h))

	assert.Zero(t, f.progress.saves)
}

func TestService_StartImplicitlyCancelsPrior(t *testing.T) {
	f := newFixture(newDeck(4))
	ctx := context.Background()

	h1, err := f.svc.StartSession(ctx, "u1", 1, 2)
	require.NoError(t, err)
	_, err = f.svc.PresentNext(ctx, h1)
	require.NoError(t, err)
	require.NoError(t, f.svc.SubmitGrade(ctx, h1, spacedrep.QualityGood))

	h2, err := f.svc.StartSession(ctx, "u1", 1, 2)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	// The prior session's grade was recorded and its handle is gone.
	assert.Equal(t, 1, f.progress.saved["u1"].TotalReviews)
	_, err = f.svc.PresentNext(ctx, h2)
	require.NoError(t, err)
	_, err = f.svc.PresentNext(ctx, h1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Another user's session is unaffected.
	h3, err := f.svc.StartSession(ctx, "u2", 1, 2)
	require.NoError(t, err)
	_, _, err = f.svc.Position(h2)
	assert.NoError(t, err)
	_, _, err = f.svc.Position(h3)
	assert.NoError(t, err)
}

func TestService_SaveCardFailureDoesNotAdvance(t *testing.T) {
	f := newFixture(newDeck(2))
	ctx := context.Background()

	h, err := f.svc.StartSession(ctx, "u1", 1, 10)
	require.NoError(t, err)
	first, err := f.svc.PresentNext(ctx, h)
	require.NoError(t, err)

	f.cards.saveErr = errors.New("locked")
	assert.Error(t, f.svc.SubmitGrade(ctx, h, spacedrep.QualityGood))
	cursor, _, err := f.svc.Position(h)
	require.NoError(t, err)
	assert.Equal(t, 0, cursor)
	assert.Empty(t, f.events.reviews)

	f.cards.saveErr = nil
	require.NoError(t, f.svc.SubmitGrade(ctx, h, spacedrep.QualityGood))
	next, err := f.svc.PresentNext(ctx, h)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.NotEqual(t, first.ID, next.ID)
}

func TestService_ProgressSaveFailureIsRetryable(t *testing.T) {
	f := newFixture(newDeck(1))
	ctx := context.Background()

	h, err := f.svc.StartSession(ctx, "u1", 1, 10)
	require.NoError(t, err)
	_, err = f.svc.PresentNext(ctx, h)
	require.NoError(t, err)
	require.NoError(t, f.svc.SubmitGrade(ctx, h, spacedrep.QualityGood))

	f.progress.saveErr = errors.New("busy")
	c, err := f.svc.PresentNext(ctx, h)
	assert.Nil(t, c)
	assert.Error(t, err)

	f.progress.saveErr = nil
	c, err = f.svc.PresentNext(ctx, h)
	assert.Nil(t, c)
	require.NoError(t, err)
	assert.Equal(t, 1, f.progress.saved["u1"].TotalReviews)

	// Recorded exactly once.
	_, err = f.svc.PresentNext(ctx, h)
	assert.ErrorIs(t, err, ErrInvalidSessionState)
	assert.Equal(t, 1, f.progress.saves)
}

func TestService_GradeBeforePresent(t *testing.T) {
	f := newFixture(newDeck(1))
	ctx := context.Background()

	h, err := f.svc.StartSession(ctx, "u1", 1, 10)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.SubmitGrade(ctx, h, spacedrep.QualityGood), ErrInvalidSessionState)
	_, err = f.svc.Result(h)
	assert.ErrorIs(t, err, ErrInvalidSessionState)
}

func TestService_StartKeepsPriorWhenRecordingFails(t *testing.T) {
	f := newFixture(newDeck(4))
	ctx := context.Background()

	h1, err := f.svc.StartSession(ctx, "u1", 1, 2)
	require.NoError(t, err)
	_, err = f.svc.PresentNext(ctx, h1)
	require.NoError(t, err)
	require.NoError(t, f.svc.SubmitGrade(ctx, h1, spacedrep.QualityGood))

	f.progress.saveErr = errors.New("disk full")
	_, err = f.svc.StartSession(ctx, "u1", 1, 2)
	require.Error(t, err)
	assert.Zero(t, f.progress.saves)

	// The earlier session is still reachable and its recording can be retried.
	f.progress.saveErr = nil
	c, err := f.svc.PresentNext(ctx, h1)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, 1, f.progress.saved["u1"].TotalReviews)

	r, err := f.svc.Result(h1)
	require.NoError(t, err)
	assert.True(t, r.Cancelled)
	assert.Equal(t, 1, r.GradedCount)

	h2, err := f.svc.StartSession(ctx, "u1", 1, 2)
	require.NoError(t, err)
	_, err = f.svc.PresentNext(ctx, h1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	require.NoError(t, f.svc.CancelSession(ctx, h2))
	assert.Equal(t, 1, f.progress.saves)
}

func TestService_RecordsProgressInSQLiteStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "vocabo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	deck, err := st.CardRepo().CreateDeck(ctx, "u1", "default")
	require.NoError(t, err)
	_, err = st.CardRepo().AddCard(ctx, "u1", deck.ID, "кіт", "cat")
	require.NoError(t, err)

	svc := NewService(ServiceConfig{
		Cards:    st.CardRepo(),
		Progress: st.ProgressRepo(),
		Events:   st.EventRepo(),
		Composer: NewComposer(OrderDueFirst, nil),
		Tracker:  progress.NewTracker(time.UTC),
	})

	h, err := svc.StartSession(ctx, "u1", deck.ID, 10)
	require.NoError(t, err)
	c, err := svc.PresentNext(ctx, h)
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NoError(t, svc.SubmitGrade(ctx, h, spacedrep.QualityGood))

	c, err = svc.PresentNext(ctx, h)
	require.NoError(t, err)
	assert.Nil(t, c)

	p, err := st.ProgressRepo().LoadProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalReviews)
	assert.Equal(t, 1, p.CorrectReviews)
	assert.Equal(t, 1, p.CurrentStreak)
}
