package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabo/internal/ui/theme"
)

// AnswerInput is a text field where the learner types a guess before the
// back of the card is revealed.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	matched   bool
}

// NewAnswerInput creates a focused answer field.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages. Input is frozen once submitted.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.submitted {
		return a, nil
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the field, with a mark after submission.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.submitted && a.Value() != "" {
		if a.matched {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the trimmed guess.
func (a AnswerInput) Value() string {
	return strings.TrimSpace(a.Model.Value())
}

// Submit freezes the field and compares the guess with want.
func (a *AnswerInput) Submit(want string) bool {
	a.submitted = true
	a.matched = a.Value() != "" && normalize(a.Value()) == normalize(want)
	a.Model.Blur()
	return a.matched
}

// Submitted reports whether Submit has been called.
func (a AnswerInput) Submitted() bool { return a.submitted }

// Matched reports whether the submitted guess equals the expected answer.
func (a AnswerInput) Matched() bool { return a.matched }

// Typed reports whether the learner entered anything.
func (a AnswerInput) Typed() bool { return a.Value() != "" }

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
