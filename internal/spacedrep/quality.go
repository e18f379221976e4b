package spacedrep

import (
	"errors"
	"fmt"
)

// ErrInvalidGrade is matched by every InvalidGradeError.
var ErrInvalidGrade = errors.New("invalid grade")

// Quality is the self-reported recall strength for one grading event:
// 0-1 failed or very hard, 2-3 correct but effortful, 4-5 easy.
type Quality int

const (
	QualityBlackout Quality = iota
	QualityWrong
	QualityHard
	QualityEffortful
	QualityGood
	QualityPerfect
)

// Valid reports whether q is within [0, 5].
func (q Quality) Valid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passed reports whether q counts as a successful recall.
func (q Quality) Passed() bool {
	return q >= PassingQuality
}

// Label returns a short human-readable description of the quality.
func (q Quality) Label() string {
	switch q {
	case QualityBlackout:
		return "Blackout"
	case QualityWrong:
		return "Wrong"
	case QualityHard:
		return "Hard"
	case QualityEffortful:
		return "Effortful"
	case QualityGood:
		return "Good"
	case QualityPerfect:
		return "Perfect"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// InvalidGradeError reports a quality outside [0, 5].
type InvalidGradeError struct {
	Quality Quality
}

func (e *InvalidGradeError) Error() string {
	return fmt.Sprintf("invalid grade %d: quality must be between 0 and 5", int(e.Quality))
}

func (e *InvalidGradeError) Is(target error) bool { return target == ErrInvalidGrade }
