package spacedrep

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/abhisek/vocabo/internal/cards"
)

func newCard(t *testing.T, now time.Time) cards.Card {
	t.Helper()
	c, err := cards.New(1, "кіт", "cat", now)
	if err != nil {
		t.Fatalf("new card: %v", err)
	}
	return c
}

func TestGrade_FirstSuccess(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c, err := Grade(newCard(t, now), QualityGood, now)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}

	if c.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", c.IntervalDays)
	}
	if c.ReviewCount != 1 || c.CorrectReviewCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", c.CorrectReviewCount, c.ReviewCount)
	}
	if c.Maturity != cards.MaturityLearning {
		t.Errorf("Maturity = %q, want learning", c.Maturity)
	}
	if !c.NextReviewAt.Equal(now.AddDate(0, 0, 1)) {
		t.Errorf("NextReviewAt = %v, want %v", c.NextReviewAt, now.AddDate(0, 0, 1))
	}
	if c.LastReviewedAt == nil || !c.LastReviewedAt.Equal(now) {
		t.Errorf("LastReviewedAt = %v, want %v", c.LastReviewedAt, now)
	}
}

func TestGrade_Scenario(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newCard(t, now)

	c, _ = Grade(c, QualityGood, now)
	if c.IntervalDays != 1 || c.Maturity != cards.MaturityLearning {
		t.Fatalf("after 1st: interval=%d maturity=%q", c.IntervalDays, c.Maturity)
	}

	now = c.NextReviewAt
	c, _ = Grade(c, QualityGood, now)
	if c.IntervalDays != 6 {
		t.Fatalf("after 2nd: interval=%d, want 6", c.IntervalDays)
	}
	// 6 days sits in the medium bucket (>= 3).
	if c.Maturity != cards.MaturityMedium {
		t.Errorf("after 2nd: maturity=%q, want medium", c.Maturity)
	}
	if math.Abs(c.EaseFactor-2.5) > 1e-9 {
		t.Errorf("after 2nd: ease=%f, want 2.5", c.EaseFactor)
	}

	now = c.NextReviewAt
	c, _ = Grade(c, QualityPerfect, now)
	// Interval uses the ease before this review's update: round(6 * 2.5) = 15,
	// not round(6 * 2.6) = 16.
	if c.IntervalDays != 15 {
		t.Errorf("after 3rd: interval=%d, want 15", c.IntervalDays)
	}
	if math.Abs(c.EaseFactor-2.6) > 1e-9 {
		t.Errorf("after 3rd: ease=%f, want 2.6", c.EaseFactor)
	}
	if c.Maturity != cards.MaturityEasy {
		t.Errorf("after 3rd: maturity=%q, want easy", c.Maturity)
	}
	if c.ReviewCount != 3 || c.CorrectReviewCount != 3 {
		t.Errorf("counts = %d/%d, want 3/3", c.CorrectReviewCount, c.ReviewCount)
	}
}

func TestGrade_EaseUpdateByQuality(t *testing.T) {
	tests := []struct {
		q    Quality
		want float64
	}{
		{QualityPerfect, 2.6},
		{QualityGood, 2.5},
		{QualityEffortful, 2.36},
	}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		c, err := Grade(newCard(t, now), tt.q, now)
		if err != nil {
			t.Fatalf("grade q=%d: %v", tt.q, err)
		}
		if math.Abs(c.EaseFactor-tt.want) > 1e-9 {
			t.Errorf("q=%d: ease=%f, want %f", tt.q, c.EaseFactor, tt.want)
		}
	}
}

func TestGrade_FailureResets(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newCard(t, now)
	c.ReviewCount = 8
	c.CorrectReviewCount = 8
	c.IntervalDays = 40
	c.Maturity = cards.MaturityMastered

	for _, q := range []Quality{QualityBlackout, QualityWrong, QualityHard} {
		got, err := Grade(c, q, now)
		if err != nil {
			t.Fatalf("grade q=%d: %v", q, err)
		}
		if got.IntervalDays != 1 {
			t.Errorf("q=%d: interval=%d, want 1", q, got.IntervalDays)
		}
		if got.Maturity != cards.MaturityLearning {
			t.Errorf("q=%d: maturity=%q, want learning", q, got.Maturity)
		}
		if math.Abs(got.EaseFactor-2.3) > 1e-9 {
			t.Errorf("q=%d: ease=%f, want 2.3", q, got.EaseFactor)
		}
		if got.ReviewCount != 9 || got.CorrectReviewCount != 8 {
			t.Errorf("q=%d: counts=%d/%d, want 8/9", q, got.CorrectReviewCount, got.ReviewCount)
		}
	}
}

func TestGrade_EaseFloor(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newCard(t, now)
	for i := 0; i < 50; i++ {
		var err error
		c, err = Grade(c, QualityBlackout, now)
		if err != nil {
			t.Fatalf("grade %d: %v", i, err)
		}
		if c.EaseFactor < MinEaseFactor {
			t.Fatalf("review %d: ease=%f below floor", i, c.EaseFactor)
		}
	}
	if c.EaseFactor != MinEaseFactor {
		t.Errorf("ease=%f, want floor %f", c.EaseFactor, MinEaseFactor)
	}

	// Quality 3 repeatedly also pushes ease down; it must stop at the floor.
	c = newCard(t, now)
	for i := 0; i < 30; i++ {
		c, _ = Grade(c, QualityEffortful, now)
	}
	if c.EaseFactor < MinEaseFactor {
		t.Errorf("ease=%f below floor after effortful reviews", c.EaseFactor)
	}
}

func TestGrade_InvalidQuality(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	orig := newCard(t, now)
	for _, q := range []Quality{-1, 6, 42} {
		got, err := Grade(orig, q, now)
		if err == nil {
			t.Fatalf("q=%d: expected error", q)
		}
		if !errors.Is(err, ErrInvalidGrade) {
			t.Errorf("q=%d: error %v does not match ErrInvalidGrade", q, err)
		}
		var ige *InvalidGradeError
		if !errors.As(err, &ige) || ige.Quality != q {
			t.Errorf("q=%d: expected *InvalidGradeError carrying quality", q)
		}
		if got.ReviewCount != orig.ReviewCount {
			t.Errorf("q=%d: card mutated on invalid grade", q)
		}
	}
}

func TestGrade_SuccessProperties(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	qualities := []Quality{3, 5, 4, 3, 3, 5, 4, 4, 3, 5}
	c := newCard(t, now)
	for i, q := range qualities {
		var err error
		c, err = Grade(c, q, now)
		if err != nil {
			t.Fatalf("grade %d: %v", i, err)
		}
		if c.IntervalDays < 1 {
			t.Fatalf("review %d: interval %d < 1", i, c.IntervalDays)
		}
		if !c.NextReviewAt.After(*c.LastReviewedAt) {
			t.Fatalf("review %d: next review %v not after last review %v", i, c.NextReviewAt, *c.LastReviewedAt)
		}
		if err := cards.Validate(c); err != nil {
			t.Fatalf("review %d: invariants broken: %v", i, err)
		}
		now = c.NextReviewAt
	}
}

func TestGrade_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	orig := newCard(t, now)
	_, _ = Grade(orig, QualityPerfect, now)
	if orig.ReviewCount != 0 || orig.LastReviewedAt != nil {
		t.Error("expected input card to be unchanged")
	}
}

func TestGrade_MaxIntervalCap(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewScheduler(Config{MaxIntervalDays: 3650})
	c := newCard(t, now)
	c.ReviewCount = 20
	c.CorrectReviewCount = 20
	c.Maturity = cards.MaturityMastered
	c.IntervalDays = 3000
	c.EaseFactor = 3.0

	got, err := s.Grade(c, QualityPerfect, now)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if got.IntervalDays != 3650 {
		t.Errorf("IntervalDays = %d, want 3650", got.IntervalDays)
	}

	// The package default is unbounded.
	got, _ = Grade(c, QualityPerfect, now)
	if got.IntervalDays != 9000 {
		t.Errorf("unbounded IntervalDays = %d, want 9000", got.IntervalDays)
	}
}

func TestGrade_IntervalCeiling(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newCard(t, now)
	c.ReviewCount = 50
	c.CorrectReviewCount = 50
	c.Maturity = cards.MaturityMastered
	c.IntervalDays = 1 << 40
	c.EaseFactor = 6

	for i := 0; i < 3; i++ {
		var err error
		c, err = Grade(c, QualityPerfect, now)
		if err != nil {
			t.Fatalf("grade %d: %v", i, err)
		}
		if c.IntervalDays != IntervalCeilingDays {
			t.Fatalf("grade %d: IntervalDays = %d, want %d", i, c.IntervalDays, IntervalCeilingDays)
		}
		if !c.NextReviewAt.After(*c.LastReviewedAt) {
			t.Fatalf("grade %d: next review %v not after %v", i, c.NextReviewAt, *c.LastReviewedAt)
		}
		now = c.NextReviewAt
	}
}
