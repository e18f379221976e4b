package cards

import "time"

// DefaultDeckName is the deck cards land in when no deck is named.
const DefaultDeckName = "default"

// Deck is a named collection of cards belonging to one user.
type Deck struct {
	ID        int64
	UserID    string
	Name      string
	CreatedAt time.Time
}

// Stats summarizes a deck's cards by maturity.
type Stats struct {
	Total      int
	Due        int
	ByMaturity map[Maturity]int
}

// Summarize counts cards per maturity and how many are due at now.
func Summarize(cs []Card, now time.Time) Stats {
	st := Stats{ByMaturity: make(map[Maturity]int)}
	for _, c := range cs {
		st.Total++
		st.ByMaturity[c.Maturity]++
		if !c.IsNew() && c.IsDue(now) {
			st.Due++
		}
	}
	return st
}
