package trainer

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/progress"
	"github.com/abhisek/vocabo/internal/session"
	"github.com/abhisek/vocabo/internal/spacedrep"
	"github.com/abhisek/vocabo/internal/store"
	"github.com/abhisek/vocabo/internal/translate"
)

const user = "u1"

type stubTranslator struct {
	res    translate.Result
	err    error
	levels []progress.Level
}

func (s *stubTranslator) Translate(_ context.Context, text string, level progress.Level) (translate.Result, error) {
	s.levels = append(s.levels, level)
	if s.err != nil {
		return translate.Result{}, s.err
	}
	r := s.res
	r.Source = text
	return r, nil
}

func newTrainer(t *testing.T, tr Translator) *Trainer {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "vocabo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := session.NewService(session.ServiceConfig{
		Cards:    st.CardRepo(),
		Progress: st.ProgressRepo(),
		Events:   st.EventRepo(),
		Composer: session.NewComposer(session.OrderDueFirst, nil),
	})
	return New(Deps{
		Cards:      st.CardRepo(),
		Progress:   st.ProgressRepo(),
		Events:     st.EventRepo(),
		Sessions:   svc,
		Translator: tr,
	})
}

func TestAddCard(t *testing.T) {
	ctx := context.Background()
	tr := newTrainer(t, nil)

	first, err := tr.AddCard(ctx, user, "", "яблуко", "apple")
	require.NoError(t, err)
	assert.Equal(t, cards.DefaultDeckName, first.Deck.Name)
	assert.Equal(t, []progress.Achievement{progress.AchievementFirstCard}, first.Unlocked)
	assert.True(t, first.Card.IsNew())

	second, err := tr.AddCard(ctx, user, "default", "груша", "pear")
	require.NoError(t, err)
	assert.Equal(t, first.Deck.ID, second.Deck.ID)
	assert.Empty(t, second.Unlocked)

	_, err = tr.AddCard(ctx, user, "", " ", "blank")
	assert.ErrorIs(t, err, cards.ErrInvalidCard)
}

func TestQuickAdd(t *testing.T) {
	ctx := context.Background()
	stub := &stubTranslator{res: translate.Result{Translation: "натхнення", FromNative: false}}
	tr := newTrainer(t, stub)

	require.NoError(t, tr.SetLevel(ctx, user, progress.LevelB2))
	res, added, err := tr.QuickAdd(ctx, user, "words", "inspiration")
	require.NoError(t, err)

	assert.Equal(t, "inspiration", res.Source)
	assert.Equal(t, "натхнення", added.Card.Front)
	assert.Equal(t, "inspiration", added.Card.Back)
	assert.Equal(t, "words", added.Deck.Name)
	assert.Equal(t, []progress.Level{progress.LevelB2}, stub.levels)

	stub.err = errors.New("offline")
	_, _, err = tr.QuickAdd(ctx, user, "words", "joy")
	assert.Error(t, err)

	none := newTrainer(t, nil)
	_, err = none.Translate(ctx, user, "joy")
	assert.ErrorIs(t, err, ErrNoTranslator)
}

func TestLevel(t *testing.T) {
	ctx := context.Background()
	tr := newTrainer(t, nil)

	lvl, err := tr.Level(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, progress.DefaultLevel, lvl)

	require.NoError(t, tr.SetLevel(ctx, user, progress.LevelC1))
	lvl, err = tr.Level(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, progress.LevelC1, lvl)
}

func review(t *testing.T, tr *Trainer, q spacedrep.Quality) int {
	t.Helper()
	ctx := context.Background()
	h, err := tr.StartReview(ctx, user, "", 10)
	require.NoError(t, err)
	graded := 0
	for {
		c, err := tr.Sessions().PresentNext(ctx, h)
		require.NoError(t, err)
		if c == nil {
			return graded
		}
		require.NoError(t, tr.Sessions().SubmitGrade(ctx, h, q))
		graded++
	}
}

func TestStartReview_NothingDue(t *testing.T) {
	ctx := context.Background()
	tr := newTrainer(t, nil)

	_, err := tr.StartReview(ctx, user, "", 10)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = tr.AddCard(ctx, user, "", "яблуко", "apple")
	require.NoError(t, err)

	_, err = tr.StartReview(ctx, user, "", 0)
	var nde *NothingDueError
	require.ErrorAs(t, err, &nde)
	assert.ErrorIs(t, err, session.ErrNoCardsDue)
	assert.Equal(t, 1, nde.NewWaiting)
	assert.Contains(t, err.Error(), "1 new cards")

	assert.Equal(t, 1, review(t, tr, 5))

	_, err = tr.StartReview(ctx, user, "", 10)
	require.ErrorAs(t, err, &nde)
	assert.Zero(t, nde.NewWaiting)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), nde.Next, time.Minute)
	assert.Contains(t, err.Error(), "next review in ~24 hours")
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	tr := newTrainer(t, nil)
	tr.dailyGoal = 2

	st, err := tr.Stats(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, st.Cards.Total)
	assert.False(t, st.HasNextReview)
	assert.Equal(t, 2, st.DailyGoal)

	for _, pair := range [][2]string{{"один", "one"}, {"два", "two"}, {"три", "three"}} {
		_, err := tr.AddCard(ctx, user, "", pair[0], pair[1])
		require.NoError(t, err)
	}
	_, err = tr.CreateDeck(ctx, user, "empty")
	require.NoError(t, err)
	assert.Equal(t, 3, review(t, tr, 4))

	st, err = tr.Stats(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Cards.Total)
	assert.Equal(t, 2, st.Decks)
	assert.Equal(t, 3, st.TodayGraded)
	assert.True(t, st.GoalMet())
	assert.Equal(t, 3, st.Progress.TotalReviews)
	assert.Equal(t, 1, st.Progress.CurrentStreak)
	assert.True(t, st.HasNextReview)
	assert.Zero(t, st.Mastered())
	assert.Equal(t, 3, st.Cards.ByMaturity[cards.MaturityLearning])
}

func TestDecks(t *testing.T) {
	ctx := context.Background()
	tr := newTrainer(t, nil)

	_, err := tr.CreateDeck(ctx, user, "verbs")
	require.NoError(t, err)
	_, err = tr.CreateDeck(ctx, user, "verbs")
	assert.ErrorIs(t, err, store.ErrDeckExists)
	_, err = tr.AddCard(ctx, user, "verbs", "бігти", "run")
	require.NoError(t, err)

	ds, err := tr.Decks(ctx, user)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "verbs", ds[0].Deck.Name)
	assert.Equal(t, 1, ds[0].Stats.Total)

	other, err := tr.Decks(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	tr := newTrainer(t, nil)

	_, err := tr.AddCard(ctx, user, "", "яблуко", "apple")
	require.NoError(t, err)
	_, err = tr.AddCard(ctx, user, "", "груша", "pear")
	require.NoError(t, err)
	review(t, tr, 5)

	var buf bytes.Buffer
	n, err := tr.ExportDeck(ctx, user, "", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	exported := buf.String()
	imp, err := tr.ImportDeck(ctx, "u2", bytes.NewBufferString(exported), ImportOptions{})
	require.NoError(t, err)
	assert.True(t, imp.Created)
	assert.Equal(t, 2, imp.Added)
	assert.Equal(t, cards.DefaultDeckName, imp.Deck.Name)

	cs, err := tr.cards.LoadDeck(ctx, "u2", imp.Deck.ID)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	for _, c := range cs {
		assert.Equal(t, 1, c.ReviewCount, "scheduling kept")
		assert.Equal(t, 1, c.IntervalDays)
	}

	reset, err := tr.ImportDeck(ctx, "u2", bytes.NewBufferString(exported), ImportOptions{Deck: "fresh", Reset: true})
	require.NoError(t, err)
	cs, err = tr.cards.LoadDeck(ctx, "u2", reset.Deck.ID)
	require.NoError(t, err)
	for _, c := range cs {
		assert.True(t, c.IsNew())
	}

	again, err := tr.ImportDeck(ctx, "u2", bytes.NewBufferString(exported), ImportOptions{})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, imp.Deck.ID, again.Deck.ID)

	_, err = tr.ExportDeck(ctx, user, "missing", &buf)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	tr := newTrainer(t, nil)

	_, err := tr.AddCard(ctx, user, "", "кіт", "cat")
	require.NoError(t, err)
	review(t, tr, 3)

	hist, err := tr.History(ctx, user, 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, 1, hist[0].GradedCount)
	assert.Equal(t, 1, hist[0].CorrectCount)

	revs, err := tr.Reviews(ctx, user, 10)
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, 3, revs[0].Quality)
}

func TestUntil(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Hour, "now"},
		{0, "now"},
		{30 * time.Second, "~1 minute"},
		{45 * time.Minute, "~45 minutes"},
		{time.Hour, "~1 hour"},
		{23*time.Hour + 40*time.Minute, "~24 hours"},
		{72 * time.Hour, "~3 days"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Until(now, now.Add(tt.d)), tt.d.String())
	}
}
