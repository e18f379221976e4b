// Package layout frames a screen with a header bar and a key-hint footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabo/internal/ui/theme"
)

// Smallest terminal the review screen is drawn in.
const (
	MinWidth  = 48
	MinHeight = 16
)

type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger terminal, centred in the space
// that is available.
func RenderMinSizeMessage(width, height int) string {
	msg := theme.Body.Render("Terminal too small") + "\n\n" +
		theme.Hint.Render(fmt.Sprintf("need %dx%d, have %dx%d", MinWidth, MinHeight, width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// bar is the bordered strip shared by header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
}

// RenderHeader shows the brand, the deck centred and "cursor/total" on the
// right. The position is omitted while total is zero.
func RenderHeader(deck string, cursor, total int, width int) string {
	inner := max(width-4, 0)
	third := inner / 3

	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(third).Render("Vocabo")
	var pos string
	if total > 0 {
		pos = fmt.Sprintf("%d/%d", cursor, total)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Width(third).Align(lipgloss.Right).Render(pos)
	middle := lipgloss.NewStyle().Foreground(theme.Text).Width(inner - 2*third).Align(lipgloss.Center).Render(deck)

	return bar(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, brand, middle, right))
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + theme.Hint.Render(h.Description)
	}
	return bar(width).Render(strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer; content gets the rows the
// other two leave over.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rows).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func Center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
