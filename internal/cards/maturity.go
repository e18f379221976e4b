package cards

import "fmt"

// Maturity is a coarse bucket summarizing a card's learning progress.
// It is derived from the card's interval on every scheduling update.
type Maturity string

const (
	MaturityNew      Maturity = "new"
	MaturityLearning Maturity = "learning"
	MaturityEasy     Maturity = "easy"
	MaturityMedium   Maturity = "medium"
	MaturityHard     Maturity = "hard"
	MaturityMastered Maturity = "mastered"
)

// AllMaturities returns all maturities in display order.
func AllMaturities() []Maturity {
	return []Maturity{
		MaturityNew, MaturityLearning, MaturityHard,
		MaturityMedium, MaturityEasy, MaturityMastered,
	}
}

// ParseMaturity converts a stored string back to a Maturity.
func ParseMaturity(s string) (Maturity, error) {
	for _, m := range AllMaturities() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown maturity %q", s)
}

// DisplayName returns a human-readable label for the maturity.
func (m Maturity) DisplayName() string {
	switch m {
	case MaturityNew:
		return "New"
	case MaturityLearning:
		return "Learning"
	case MaturityEasy:
		return "Easy"
	case MaturityMedium:
		return "Medium"
	case MaturityHard:
		return "Hard"
	case MaturityMastered:
		return "Mastered"
	default:
		return string(m)
	}
}
