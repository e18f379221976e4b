package trainer

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/progress"
)

// Stats is the user's dashboard.
type Stats struct {
	Cards    cards.Stats
	Decks    int
	Progress progress.UserProgress

	Today       progress.Day
	TodayGraded int
	DailyGoal   int

	// NextReview is the soonest scheduled review among reviewed cards.
	NextReview    time.Time
	HasNextReview bool
}

// GoalMet reports whether today's graded count reached the daily goal.
func (s Stats) GoalMet() bool {
	return s.DailyGoal > 0 && s.TodayGraded >= s.DailyGoal
}

// Mastered is the number of mastered cards.
func (s Stats) Mastered() int {
	return s.Cards.ByMaturity[cards.MaturityMastered]
}

// Stats gathers progress and card counts across all of the user's decks.
func (t *Trainer) Stats(ctx context.Context, userID string) (Stats, error) {
	p, err := t.progress.LoadProgress(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("load progress: %w", err)
	}
	decks, err := t.cards.ListDecks(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("list decks: %w", err)
	}

	var all, reviewed []cards.Card
	for _, d := range decks {
		cs, err := t.cards.LoadDeck(ctx, userID, d.ID)
		if err != nil {
			return Stats{}, fmt.Errorf("load deck %s: %w", d.Name, err)
		}
		all = append(all, cs...)
		for _, c := range cs {
			if !c.IsNew() {
				reviewed = append(reviewed, c)
			}
		}
	}

	now := t.clock()
	st := Stats{
		Cards:     cards.Summarize(all, now),
		Decks:     len(decks),
		Progress:  p,
		Today:     t.tracker.Today(now),
		DailyGoal: p.DailyGoal,
	}
	if t.dailyGoal > 0 {
		st.DailyGoal = t.dailyGoal
	}
	st.TodayGraded = p.GradedOn(st.Today)
	st.NextReview, st.HasNextReview = cards.SoonestReview(reviewed)
	return st, nil
}
