// Package translate turns a word or phrase into a card pair using an LLM.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/vocabo/internal/llm"
	"github.com/abhisek/vocabo/internal/progress"
)

// ErrEmptyText is returned for blank input.
var ErrEmptyText = errors.New("nothing to translate")

// Result is one translation. FromNative tells which side is which.
type Result struct {
	Source      string
	Translation string
	From        Language
	To          Language
	FromNative  bool
}

// Front is the native-language side of the pair.
func (r Result) Front() string {
	if r.FromNative {
		return r.Source
	}
	return r.Translation
}

// Back is the target-language side of the pair.
func (r Result) Back() string {
	if r.FromNative {
		return r.Translation
	}
	return r.Source
}

// String renders "🇺🇦 яблуко → 🇬🇧 apple".
func (r Result) String() string {
	return fmt.Sprintf("%s %s → %s %s", r.From.Flag, r.Source, r.To.Flag, r.Translation)
}

// Translator translates between a user's native and target language.
type Translator struct {
	provider llm.Provider
	native   Language
	target   Language
	logger   *slog.Logger
}

// New returns a Translator for the given ISO 639-1 language codes.
func New(p llm.Provider, native, target string, logger *slog.Logger) (*Translator, error) {
	n, err := LookupLanguage(native)
	if err != nil {
		return nil, fmt.Errorf("native language: %w", err)
	}
	t, err := LookupLanguage(target)
	if err != nil {
		return nil, fmt.Errorf("target language: %w", err)
	}
	if n.Code == t.Code {
		return nil, fmt.Errorf("native and target language are both %s", n.Name)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Translator{provider: p, native: n, target: t, logger: logger}, nil
}

// IsNative guesses whether text is written in the native language. Only
// the script is inspected; when both languages share a script the input
// is assumed to be in the target language.
func (t *Translator) IsNative(text string) bool {
	if t.native.Script == t.target.Script {
		return false
	}
	return writtenIn(text, t.native.Script)
}

var resultSchema = &llm.Schema{
	Name:        "vocabulary-translation",
	Description: "The translation of a single vocabulary item.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translation": map[string]any{
				"type":        "string",
				"description": "The most common translation, without explanations.",
				"minLength":   1,
			},
		},
		"required":             []any{"translation"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a bilingual dictionary for a %s learner at CEFR level %s.
Translate the user's word or short phrase from %s to %s.
Answer with the single most common translation a learner at that level would need.
Keep the part of speech. Do not add articles, notes or alternatives.`

// Translate detects the direction of text and translates it. The level
// steers the choice among synonyms.
func (t *Translator) Translate(ctx context.Context, text string, level progress.Level) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptyText
	}
	if level == "" {
		level = progress.DefaultLevel
	}

	res := Result{Source: text, FromNative: t.IsNative(text)}
	if res.FromNative {
		res.From, res.To = t.native, t.target
	} else {
		res.From, res.To = t.target, t.native
	}

	req := llm.UserPrompt(fmt.Sprintf(systemPrompt, t.target.Name, level, res.From.Name, res.To.Name), text)
	req.Schema = resultSchema
	req.MaxTokens = 128

	resp, err := t.provider.Generate(llm.WithPurpose(ctx, llm.PurposeTranslate), req)
	if err != nil {
		return Result{}, fmt.Errorf("translate %q: %w", text, err)
	}

	var out struct {
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Result{}, fmt.Errorf("decode translation: %w", err)
	}
	res.Translation = strings.TrimSpace(out.Translation)
	if res.Translation == "" {
		return Result{}, fmt.Errorf("translate %q: empty translation", text)
	}

	t.logger.Debug("translated", "from", res.From.Code, "to", res.To.Code, "tokens", resp.Usage.Total())
	return res, nil
}
