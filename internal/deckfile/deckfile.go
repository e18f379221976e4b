// Package deckfile reads and writes decks as YAML documents.
//
// A file holds one deck. Scheduling fields are optional on import, so a
// hand-written list of front/back pairs is a valid deck file:
//
//	version: 1
//	deck: verbs
//	cards:
//	  - front: бігти
//	    back: run
package deckfile

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/vocabo/internal/cards"
)

// Version is the format version written by Encode.
const Version = 1

// ErrUnsupportedVersion is returned for files from a newer vocabo.
var ErrUnsupportedVersion = errors.New("unsupported deck file version")

// File is the document stored on disk.
type File struct {
	Version    int          `yaml:"version"`
	Deck       string       `yaml:"deck"`
	ExportedAt time.Time    `yaml:"exported_at,omitempty"`
	Cards      []cards.Card `yaml:"cards"`
}

// New builds a File for deckName holding cs.
func New(deckName string, cs []cards.Card, now time.Time) File {
	f := File{Version: Version, Deck: deckName, ExportedAt: now.UTC(), Cards: make([]cards.Card, len(cs))}
	for i, c := range cs {
		c.NextReviewAt = c.NextReviewAt.UTC()
		c.CreatedAt = c.CreatedAt.UTC()
		if c.LastReviewedAt != nil {
			t := c.LastReviewedAt.UTC()
			c.LastReviewedAt = &t
		}
		f.Cards[i] = c
	}
	return f
}

// Encode writes f as YAML.
func Encode(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode deck %s: %w", f.Deck, err)
	}
	return enc.Close()
}

// Decode reads a deck file. Cards without scheduling state become new
// cards due at now; every card is validated. Card and deck IDs are never
// read from the file.
func Decode(r io.Reader, now time.Time) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, errors.New("deck file is empty")
		}
		return File{}, fmt.Errorf("decode deck file: %w", err)
	}
	switch {
	case f.Version == 0:
		f.Version = Version
	case f.Version > Version:
		return File{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Version)
	}
	f.Deck = strings.TrimSpace(f.Deck)

	for i, c := range f.Cards {
		if c.Maturity == "" {
			fresh, err := cards.New(0, c.Front, c.Back, now)
			if err != nil {
				return File{}, fmt.Errorf("card %d: %w", i+1, err)
			}
			f.Cards[i] = fresh
			continue
		}
		if c.NextReviewAt.IsZero() {
			c.NextReviewAt = now
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if err := cards.Validate(c); err != nil {
			return File{}, fmt.Errorf("card %d (%s): %w", i+1, c.Front, err)
		}
		f.Cards[i] = c
	}
	return f, nil
}
