package review

import (
	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/session"
	"github.com/abhisek/vocabo/internal/spacedrep"
)

// cardMsg carries the next card to study, or nil when the plan is done.
type cardMsg struct {
	Card   *cards.Card
	Cursor int
	Total  int
	Err    error
}

// finishedMsg is sent once the session is complete or cancelled.
type finishedMsg struct {
	Result session.Result
	Err    error
}

// gradeFailedMsg reports a grade that could not be saved.
type gradeFailedMsg struct {
	Quality spacedrep.Quality
	Err     error
}
