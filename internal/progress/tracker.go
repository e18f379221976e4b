package progress

import "time"

// SessionOutcome is what the tracker needs to know about a finished session.
type SessionOutcome struct {
	GradedCount  int
	CorrectCount int
	CompletedAt  time.Time

	// MasteredCards is the user's cumulative number of mastered cards after
	// the session.
	MasteredCards int
}

// AccuracyPct returns round(100*correct/graded), 0 when nothing was graded.
func (o SessionOutcome) AccuracyPct() int {
	if o.GradedCount == 0 {
		return 0
	}
	return (200*o.CorrectCount + o.GradedCount) / (2 * o.GradedCount)
}

// Tracker updates UserProgress in response to completed sessions and card
// additions. Dates are computed in the tracker's location.
type Tracker struct {
	loc *time.Location
}

// NewTracker creates a tracker that evaluates calendar days and night hours
// in loc. A nil loc means time.Local.
func NewTracker(loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{loc: loc}
}

// Location returns the tracker's time zone.
func (t *Tracker) Location() *time.Location { return t.loc }

// Today returns the calendar date of now in the tracker's location.
func (t *Tracker) Today(now time.Time) Day { return DayOf(now, t.loc) }

// RecordSessionCompletion applies a finished session to p and returns the
// updated progress plus the achievements unlocked by this call. p itself is
// not modified.
func (t *Tracker) RecordSessionCompletion(p UserProgress, o SessionOutcome) (UserProgress, []Achievement) {
	p = p.Clone()
	today := DayOf(o.CompletedAt, t.loc)

	switch {
	case p.LastReviewDate.IsZero():
		p.CurrentStreak = 1
	case p.LastReviewDate == today:
		// already counted today
	case p.LastReviewDate.AddDays(1) == today:
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastReviewDate = today

	p.DailyProgress[today] += o.GradedCount
	p.TotalReviews += o.GradedCount
	p.CorrectReviews += o.CorrectCount

	var unlocked []Achievement
	unlock := func(a Achievement) {
		if p.HasAchievement(a) {
			return
		}
		p.Achievements[a] = o.CompletedAt
		unlocked = append(unlocked, a)
	}

	for _, m := range streakMilestones {
		if p.CurrentStreak >= m.days {
			unlock(m.a)
		}
	}
	for _, m := range masteredMilestones {
		if o.MasteredCards >= m.count {
			unlock(m.a)
		}
	}
	// Rounded: 199/200 counts as perfect.
	if o.GradedCount >= PerfectSessionMinCards && o.AccuracyPct() == 100 {
		unlock(AchievementPerfectSession)
	}
	if hour := o.CompletedAt.In(t.loc).Hour(); hour >= NightStartHour || hour < NightEndHour {
		unlock(AchievementNightOwl)
	}

	return p, unlocked
}

// RecordCardAdded unlocks first_card the first time any card is added.
func (t *Tracker) RecordCardAdded(p UserProgress, now time.Time) (UserProgress, []Achievement) {
	p = p.Clone()
	if p.HasAchievement(AchievementFirstCard) {
		return p, nil
	}
	p.Achievements[AchievementFirstCard] = now
	return p, []Achievement{AchievementFirstCard}
}
