package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/progress"
)

const rule = "─"

func printUnlocked(w io.Writer, unlocked []progress.Achievement) {
	for _, a := range unlocked {
		fmt.Fprintf(w, "%s Achievement unlocked: %s\n", a.Icon(), a.DisplayName())
	}
}

func deckLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return cards.DefaultDeckName
	}
	return name
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
