// Package review is the interactive terminal screen for a study session.
package review

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/session"
	"github.com/abhisek/vocabo/internal/spacedrep"
	"github.com/abhisek/vocabo/internal/ui/components"
	"github.com/abhisek/vocabo/internal/ui/layout"
)

// Sessions is the part of session.Service the screen drives.
type Sessions interface {
	PresentNext(ctx context.Context, h session.Handle) (*cards.Card, error)
	SubmitGrade(ctx context.Context, h session.Handle, q spacedrep.Quality) error
	CancelSession(ctx context.Context, h session.Handle) error
	Result(h session.Handle) (session.Result, error)
	Position(h session.Handle) (cursor, total int, err error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseRevealed
	phaseSummary
	phaseError
)

// Model is the root Bubble Tea model of a review session.
type Model struct {
	ctx    context.Context
	svc    Sessions
	handle session.Handle
	deck   string

	phase       phase
	confirmQuit bool
	busy        bool
	quitting    bool

	card   *cards.Card
	cursor int
	total  int
	input  components.AnswerInput
	grades components.GradeBar

	graded  int
	correct int

	// notice is a recoverable error shown under the card.
	notice string

	result   session.Result
	finished bool
	err      error

	width  int
	height int
}

// New creates the screen for an already started session.
func New(ctx context.Context, svc Sessions, h session.Handle, deck string) *Model {
	return &Model{
		ctx:    ctx,
		svc:    svc,
		handle: h,
		deck:   deck,
		phase:  phaseLoading,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.next()
}

// Result returns the session result once the session has finished.
func (m *Model) Result() (session.Result, bool) {
	return m.result, m.finished
}

// Err returns the error that stopped the screen, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case cardMsg:
		return m.handleCard(msg)

	case finishedMsg:
		return m.handleFinished(msg)

	case gradeFailedMsg:
		// The card is still awaiting its grade; let the learner try again.
		m.busy = false
		m.graded--
		if msg.Quality.Passed() {
			m.correct--
		}
		m.notice = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseQuestion && !m.confirmQuit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// next fetches the following card; when none is left it fetches the result.
func (m *Model) next() tea.Cmd {
	ctx, svc, h := m.ctx, m.svc, m.handle
	return func() tea.Msg {
		return present(ctx, svc, h)
	}
}

func present(ctx context.Context, svc Sessions, h session.Handle) tea.Msg {
	c, err := svc.PresentNext(ctx, h)
	if err != nil {
		return cardMsg{Err: err}
	}
	if c == nil {
		r, err := svc.Result(h)
		return finishedMsg{Result: r, Err: err}
	}
	cursor, total, err := svc.Position(h)
	return cardMsg{Card: c, Cursor: cursor, Total: total, Err: err}
}

func (m *Model) grade(q spacedrep.Quality) tea.Cmd {
	ctx, svc, h := m.ctx, m.svc, m.handle
	m.busy = true
	m.graded++
	if q.Passed() {
		m.correct++
	}
	return func() tea.Msg {
		if err := svc.SubmitGrade(ctx, h, q); err != nil {
			return gradeFailedMsg{Quality: q, Err: err}
		}
		return present(ctx, svc, h)
	}
}

func (m *Model) cancel() tea.Cmd {
	ctx, svc, h := m.ctx, m.svc, m.handle
	m.busy = true
	return func() tea.Msg {
		if err := svc.CancelSession(ctx, h); err != nil {
			return finishedMsg{Err: err}
		}
		r, err := svc.Result(h)
		return finishedMsg{Result: r, Err: err}
	}
}

func (m *Model) handleCard(msg cardMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.err = msg.Err
		m.phase = phaseError
		return m, nil
	}
	m.err = nil
	m.notice = ""
	m.card = msg.Card
	m.cursor = msg.Cursor
	m.total = msg.Total
	m.phase = phaseQuestion
	m.input = components.NewAnswerInput("type the answer, or just press enter", 500)
	return m, m.input.Init()
}

func (m *Model) handleFinished(msg finishedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.err = msg.Err
		m.phase = phaseError
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	}
	m.err = nil
	m.result = msg.Result
	m.finished = true
	m.card = nil
	m.phase = phaseSummary
	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		if m.live() && !m.busy {
			m.quitting = true
			return m, m.cancel()
		}
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch m.phase {
	case phaseSummary:
		switch key {
		case "enter", "q", "esc":
			return m, tea.Quit
		}
		return m, nil

	case phaseError:
		// The session keeps its place, so presenting again retries whatever
		// failed, including recording a finished session.
		if key == "r" {
			m.busy = true
			return m, m.next()
		}
		return m, tea.Quit

	case phaseLoading:
		return m, nil
	}

	if m.confirmQuit {
		switch key {
		case "y", "Y":
			m.confirmQuit = false
			return m, m.cancel()
		case "n", "N", "esc":
			m.confirmQuit = false
		}
		return m, nil
	}

	if key == "esc" {
		m.confirmQuit = true
		return m, nil
	}

	switch m.phase {
	case phaseQuestion:
		if key == "enter" {
			m.reveal()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseRevealed:
		var (
			q  spacedrep.Quality
			ok bool
		)
		m.grades, q, ok = m.grades.Update(msg)
		if ok {
			return m, m.grade(q)
		}
	}
	return m, nil
}

// reveal shows the back and pre-selects a grade from the typed guess.
func (m *Model) reveal() {
	matched := m.input.Submit(m.card.Back)
	suggested := spacedrep.PassingQuality
	switch {
	case matched:
		suggested = spacedrep.QualityGood
	case m.input.Typed():
		suggested = spacedrep.QualityWrong
	}
	m.grades = components.NewGradeBar(suggested)
	m.phase = phaseRevealed
}

func (m *Model) live() bool {
	return m.phase == phaseQuestion || m.phase == phaseRevealed
}

// KeyHints returns the footer hints for the current phase.
func (m *Model) KeyHints() []layout.KeyHint {
	if m.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End review"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch m.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Reveal"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseRevealed:
		return []layout.KeyHint{
			{Key: "0-5", Description: "Grade"},
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
		}
	case phaseSummary:
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	case phaseError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "any key", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}
