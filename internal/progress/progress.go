package progress

import (
	"maps"
	"time"
)

// DefaultDailyGoal is the number of graded cards per day a new user aims for.
const DefaultDailyGoal = 20

// UserProgress holds a user's lifetime learning aggregates.
type UserProgress struct {
	CurrentStreak  int                       `json:"current_streak"`
	LongestStreak  int                       `json:"longest_streak"`
	LastReviewDate Day                       `json:"last_review_date,omitempty"`
	DailyProgress  map[Day]int               `json:"daily_progress"`
	TotalReviews   int                       `json:"total_reviews"`
	CorrectReviews int                       `json:"correct_reviews"`
	Achievements   map[Achievement]time.Time `json:"achievements"`
	Level          Level                     `json:"level"`
	DailyGoal      int                       `json:"daily_goal"`
}

// New returns zero progress with default level and daily goal.
func New() UserProgress {
	return UserProgress{
		DailyProgress: make(map[Day]int),
		Achievements:  make(map[Achievement]time.Time),
		Level:         DefaultLevel,
		DailyGoal:     DefaultDailyGoal,
	}
}

// Clone returns a deep copy of p so callers can mutate it freely.
func (p UserProgress) Clone() UserProgress {
	c := p
	c.DailyProgress = maps.Clone(p.DailyProgress)
	if c.DailyProgress == nil {
		c.DailyProgress = make(map[Day]int)
	}
	c.Achievements = maps.Clone(p.Achievements)
	if c.Achievements == nil {
		c.Achievements = make(map[Achievement]time.Time)
	}
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	return c
}

// Accuracy returns CorrectReviews/TotalReviews, or 0 with no reviews.
func (p UserProgress) Accuracy() float64 {
	if p.TotalReviews == 0 {
		return 0
	}
	return float64(p.CorrectReviews) / float64(p.TotalReviews)
}

// HasAchievement reports whether a has been unlocked.
func (p UserProgress) HasAchievement(a Achievement) bool {
	_, ok := p.Achievements[a]
	return ok
}

// GradedOn returns the number of cards graded on day d.
func (p UserProgress) GradedOn(d Day) int {
	return p.DailyProgress[d]
}

// DailyGoalMet reports whether the daily goal was reached on d.
// A non-positive goal is never met.
func (p UserProgress) DailyGoalMet(d Day) bool {
	return p.DailyGoal > 0 && p.DailyProgress[d] >= p.DailyGoal
}

// UnlockedAchievements returns the unlocked achievements in display order.
func (p UserProgress) UnlockedAchievements() []Achievement {
	var out []Achievement
	for _, a := range AllAchievements() {
		if p.HasAchievement(a) {
			out = append(out, a)
		}
	}
	return out
}
