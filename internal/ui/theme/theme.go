package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/spacedrep"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Card faces
var (
	Front = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 4)

	Back = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(1, 4)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	GradeActive = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			Padding(0, 1)

	GradeInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 1)
)

// GradeColor shades failing grades red and passing grades from amber to green.
func GradeColor(q spacedrep.Quality) color.Color {
	switch {
	case !q.Passed():
		return Error
	case q == spacedrep.QualityEffortful:
		return Accent
	case q == spacedrep.QualityGood:
		return Secondary
	default:
		return Success
	}
}

// MaturityColor returns the accent used for a maturity badge.
func MaturityColor(m cards.Maturity) color.Color {
	switch m {
	case cards.MaturityNew:
		return Primary
	case cards.MaturityLearning:
		return Error
	case cards.MaturityHard:
		return Accent
	case cards.MaturityMedium:
		return Secondary
	default:
		return Success
	}
}
