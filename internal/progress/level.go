package progress

import (
	"fmt"
	"strings"
)

// Level is a CEFR proficiency level.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
)

// DefaultLevel is assigned to users who never picked one.
const DefaultLevel = LevelA2

// AllLevels returns the supported levels from lowest to highest.
func AllLevels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1}
}

// ParseLevel accepts a level in any case, e.g. "b1".
func ParseLevel(s string) (Level, error) {
	up := Level(strings.ToUpper(strings.TrimSpace(s)))
	for _, l := range AllLevels() {
		if l == up {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q (want one of A1, A2, B1, B2, C1)", s)
}

// Description returns the level's common name.
func (l Level) Description() string {
	switch l {
	case LevelA1:
		return "Beginner"
	case LevelA2:
		return "Elementary"
	case LevelB1:
		return "Intermediate"
	case LevelB2:
		return "Upper intermediate"
	case LevelC1:
		return "Advanced"
	default:
		return string(l)
	}
}
