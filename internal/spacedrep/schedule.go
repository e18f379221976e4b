package spacedrep

import "github.com/abhisek/vocabo/internal/cards"

// Fixed intervals for the first two successful reviews, in days.
const (
	FirstIntervalDays  = 1
	SecondIntervalDays = 6
)

// IntervalCeilingDays bounds intervals even when no cap is configured, so
// the multiplication and the date arithmetic cannot overflow.
const IntervalCeilingDays = 365 * 10000

// Ease factor adjustments.
const (
	FailEasePenalty = 0.2
	MinEaseFactor   = cards.MinEaseFactor
)

// Maturity thresholds on the post-review interval, in days.
const (
	MasteredThresholdDays = 21
	EasyThresholdDays     = 7
	MediumThresholdDays   = 3
)

// PassingQuality is the lowest quality counted as a successful recall.
const PassingQuality Quality = 3

// MaturityForInterval maps an interval to its maturity bucket.
func MaturityForInterval(days int) cards.Maturity {
	switch {
	case days >= MasteredThresholdDays:
		return cards.MaturityMastered
	case days >= EasyThresholdDays:
		return cards.MaturityEasy
	case days >= MediumThresholdDays:
		return cards.MaturityMedium
	default:
		return cards.MaturityLearning
	}
}

// NextEaseFactor applies the SM-2 ease update for a successful review,
// floored at MinEaseFactor.
func NextEaseFactor(ease float64, q Quality) float64 {
	d := float64(5 - q)
	ease += 0.1 - d*(0.08+d*0.02)
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}
	return ease
}
