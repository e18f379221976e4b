package spacedrep

import (
	"time"

	"github.com/abhisek/vocabo/internal/cards"
)

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNew      ReviewStatus = "new"
	ReviewNotDue   ReviewStatus = "not_due"
	ReviewDue      ReviewStatus = "due"
	ReviewOverdue  ReviewStatus = "overdue"
	ReviewMastered ReviewStatus = "mastered"
)

// IsOverdue returns true if the card has exceeded its grace period, which
// is half of its current interval past the due date.
func IsOverdue(c cards.Card, now time.Time) bool {
	if !c.IsDue(now) {
		return false
	}
	graceHours := float64(c.IntervalDays) * 0.5 * 24.0
	threshold := c.NextReviewAt.Add(time.Duration(graceHours * float64(time.Hour)))
	return now.After(threshold)
}

// Status returns the review status for UI display.
func Status(c cards.Card, now time.Time) ReviewStatus {
	if c.IsNew() {
		return ReviewNew
	}
	if c.Maturity == cards.MaturityMastered && !c.IsDue(now) {
		return ReviewMastered
	}
	if IsOverdue(c, now) {
		return ReviewOverdue
	}
	if c.IsDue(now) {
		return ReviewDue
	}
	return ReviewNotDue
}
