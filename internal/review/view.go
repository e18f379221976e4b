package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabo/internal/ui/components"
	"github.com/abhisek/vocabo/internal/ui/layout"
	"github.com/abhisek/vocabo/internal/ui/theme"
)

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	position := 0
	if m.live() {
		position = m.cursor + 1
	}
	header := layout.RenderHeader(m.deck, position, m.total, m.width)
	footer := layout.RenderFooter(m.KeyHints(), m.width)
	v.SetContent(layout.RenderFrame(header, m.content(m.width), footer, m.width, m.height))
	return v
}

// content renders the body for the current phase.
func (m *Model) content(width int) string {
	switch {
	case m.phase == phaseError:
		return m.renderError(width)
	case m.phase == phaseSummary:
		return m.renderSummary(width)
	case m.confirmQuit:
		return renderQuitConfirm(width, m.graded)
	case m.phase == phaseQuestion, m.phase == phaseRevealed:
		return m.renderCard(width)
	}
	return "\n\n" + layout.Center(theme.Hint.Render("Loading cards..."), width)
}

func (m *Model) renderCard(width int) string {
	c := m.card
	var b strings.Builder

	bar := components.NewProgressBar(m.cursor, m.total, min(width-8, 50))
	b.WriteString("\n")
	b.WriteString(layout.Center(bar.View(), width))
	b.WriteString("\n\n")

	badge := lipgloss.NewStyle().Foreground(theme.MaturityColor(c.Maturity)).Render(c.Maturity.DisplayName())
	b.WriteString(layout.Center(badge, width))
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Front.Render(c.Front), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(m.input.View(), width))
	b.WriteString("\n\n")

	if m.phase == phaseRevealed {
		b.WriteString(layout.Center(theme.Back.Render(c.Back), width))
		b.WriteString("\n\n")
		b.WriteString(layout.Center(theme.Hint.Render("How well did you remember it?"), width))
		b.WriteString("\n")
		for _, line := range strings.Split(m.grades.View(), "\n") {
			b.WriteString(layout.Center(line, width))
			b.WriteString("\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(layout.Center(theme.Incorrect.Render("Could not save grade: "+m.notice), width))
	}
	return b.String()
}

func renderQuitConfirm(width, graded int) string {
	msg := "End the review now?"
	if graded > 0 {
		msg += fmt.Sprintf("\n\nThe %d cards you graded are kept.", graded)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(msg + "\n\n" + theme.Hint.Render("y / n"))
	return "\n\n" + layout.Center(box, width)
}

func (m *Model) renderSummary(width int) string {
	r := m.result
	var b strings.Builder

	title := "Review complete!"
	if r.Cancelled {
		title = "Review ended early"
	}
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(title))
	b.WriteString("\n\n")

	mins := int(r.Duration().Minutes())
	secs := int(r.Duration().Seconds()) % 60
	b.WriteString(layout.Center(theme.Hint.Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)), width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Graded: %d/%d      Correct: %d      Accuracy: %d%%",
		r.GradedCount, r.PlannedCount, r.CorrectCount, r.AccuracyPct)
	b.WriteString(layout.Center(theme.Body.Render(stats), width))
	b.WriteString("\n")

	if len(r.Unlocked) > 0 {
		b.WriteString("\n")
		b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Achievements unlocked"), width))
		b.WriteString("\n")
		for _, a := range r.Unlocked {
			b.WriteString(layout.Center(a.Icon()+" "+a.DisplayName(), width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderError(width int) string {
	return "\n\n" + layout.Center(theme.Incorrect.Render("Something went wrong"), width) +
		"\n\n" + layout.Center(theme.Body.Render(m.err.Error()), width)
}
