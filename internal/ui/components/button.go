package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabo/internal/spacedrep"
	"github.com/abhisek/vocabo/internal/ui/theme"
)

// GradeBar is a row of buttons for the six recall qualities.
type GradeBar struct {
	Selected spacedrep.Quality
}

// NewGradeBar creates a grade bar with q pre-selected.
func NewGradeBar(q spacedrep.Quality) GradeBar {
	if !q.Valid() {
		q = spacedrep.PassingQuality
	}
	return GradeBar{Selected: q}
}

// Update moves the selection with the arrow keys. ok is true when the
// learner committed a grade, either with a digit key or with enter.
func (g GradeBar) Update(msg tea.Msg) (bar GradeBar, q spacedrep.Quality, ok bool) {
	kmsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return g, 0, false
	}
	key := kmsg.String()
	switch key {
	case "left", "h":
		if g.Selected > spacedrep.QualityBlackout {
			g.Selected--
		}
	case "right", "l":
		if g.Selected < spacedrep.QualityPerfect {
			g.Selected++
		}
	case "enter", "space", " ":
		return g, g.Selected, true
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '5' {
			g.Selected = spacedrep.Quality(key[0] - '0')
			return g, g.Selected, true
		}
	}
	return g, 0, false
}

// View renders the buttons on one line with the selected label underneath.
func (g GradeBar) View() string {
	buttons := make([]string, 0, 6)
	for q := spacedrep.QualityBlackout; q <= spacedrep.QualityPerfect; q++ {
		label := fmt.Sprintf("%d", int(q))
		if q == g.Selected {
			buttons = append(buttons, theme.GradeActive.
				Background(theme.GradeColor(q)).
				Render(label))
			continue
		}
		buttons = append(buttons, theme.GradeInactive.
			Foreground(theme.GradeColor(q)).
			Render(label))
	}
	caption := lipgloss.NewStyle().
		Foreground(theme.GradeColor(g.Selected)).
		Render(g.Selected.Label())
	return strings.Join(buttons, " ") + "\n" + caption
}
