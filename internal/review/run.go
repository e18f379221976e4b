package review

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabo/internal/session"
)

// ErrAborted is returned by Run when the screen closed before the session
// reached a result.
var ErrAborted = errors.New("review aborted")

// Run drives the started session h in the terminal until the learner
// finishes or quits, and returns its result.
func Run(ctx context.Context, svc Sessions, h session.Handle, deck string, opts ...tea.ProgramOption) (session.Result, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, svc, h, deck), opts...)
	final, err := p.Run()
	if err != nil {
		return session.Result{}, err
	}
	m, ok := final.(*Model)
	if !ok {
		return session.Result{}, ErrAborted
	}
	if r, done := m.Result(); done {
		return r, nil
	}
	if m.Err() != nil {
		return session.Result{}, m.Err()
	}
	return session.Result{}, ErrAborted
}
