package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabo/internal/trainer"
)

// isolate points config discovery at empty directories and clears vendor
// API keys, returning a fresh database path.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	return filepath.Join(dir, "vocabo.db")
}

// resetFlags restores every flag to its default so executions don't leak
// into each other through the package-level command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--db", db}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAddAndList(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, db, "add", "яблуко", "apple")
	require.NoError(t, err)
	assert.Contains(t, out, "Added яблуко → apple to default")
	assert.Contains(t, out, "Achievement unlocked: First Card")

	out, err = execute(t, db, "add", "--deck", "fruit", "груша", "pear")
	require.NoError(t, err)
	assert.Contains(t, out, "to fruit")
	assert.NotContains(t, out, "Achievement")

	out, err = execute(t, db, "deck", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "default")
	assert.Contains(t, out, "fruit")

	out, err = execute(t, db, "--user", "other", "deck", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No decks yet")

	_, err = execute(t, db, "add", "only-front")
	assert.Error(t, err)
}

func TestDeckCreate(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, db, "deck", "create", "verbs")
	require.NoError(t, err)
	assert.Contains(t, out, "Created deck verbs")

	_, err = execute(t, db, "deck", "create", "verbs")
	assert.ErrorContains(t, err, "deck already exists")
}

func TestReview_NothingDue(t *testing.T) {
	db := isolate(t)

	_, err := execute(t, db, "review")
	assert.Error(t, err, "default deck does not exist yet")

	_, err = execute(t, db, "add", "кіт", "cat")
	require.NoError(t, err)

	out, err := execute(t, db, "review", "--new-card-limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "No cards due in default; 1 new cards wait")
}

func TestLevel(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, db, "level")
	require.NoError(t, err)
	assert.Equal(t, "A2 (Elementary)\n", out)

	out, err = execute(t, db, "level", "b1")
	require.NoError(t, err)
	assert.Contains(t, out, "Level set to B1 (Intermediate)")

	out, err = execute(t, db, "level")
	require.NoError(t, err)
	assert.Equal(t, "B1 (Intermediate)\n", out)

	_, err = execute(t, db, "level", "Z9")
	assert.ErrorContains(t, err, "unknown level")
}

func TestStats(t *testing.T) {
	db := isolate(t)

	_, err := execute(t, db, "add", "кіт", "cat")
	require.NoError(t, err)

	out, err := execute(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Level:      A2 (Elementary)")
	assert.Contains(t, out, "Today:      0/20")
	assert.Contains(t, out, "Cards:      1 in 1 decks, 0 due")
	assert.Contains(t, out, "Achievements (1/")
	assert.NotContains(t, out, "Next:")
}

func TestExportImport(t *testing.T) {
	db := isolate(t)
	file := filepath.Join(t.TempDir(), "deck.yaml")

	_, err := execute(t, db, "add", "кіт", "cat")
	require.NoError(t, err)
	_, err = execute(t, db, "add", "пес", "dog")
	require.NoError(t, err)

	_, err = execute(t, db, "deck", "export", "--out", file)
	require.NoError(t, err)

	out, err := execute(t, db, "deck", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "front: кіт")
	assert.Contains(t, out, "deck: default")

	out, err = execute(t, db, "--user", "u2", "deck", "import", "--deck", "animals", "--reset", file)
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 cards into animals (new deck)\n", out)

	out, err = execute(t, db, "--user", "u2", "deck", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "animals")

	_, err = execute(t, db, "deck", "import", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHistory_Empty(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, db, "history")
	require.NoError(t, err)
	assert.Equal(t, "No sessions yet.\n", out)
}

func TestTranslate_NotConfigured(t *testing.T) {
	db := isolate(t)

	_, err := execute(t, db, "translate", "apple")
	assert.ErrorIs(t, err, trainer.ErrNoTranslator)
}

func TestTranslate_OpenAI(t *testing.T) {
	db := isolate(t)

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini-2024-07-18",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": `{"translation":"яблуко"}`},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 5, "total_tokens": 35},
		})
	}))
	t.Cleanup(srv.Close)

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("VOCABO_LLM__OPENAI__BASE_URL", srv.URL+"/v1")

	out, err := execute(t, db, "translate", "--provider", "openai", "apple")
	require.NoError(t, err)
	assert.Equal(t, "🇬🇧 apple → 🇺🇦 яблуко\n", out)

	out, err = execute(t, db, "translate", "--provider", "openai", "--add", "--deck", "fruit", "apple")
	require.NoError(t, err)
	assert.Contains(t, out, "Added яблуко → apple to fruit")
	assert.Equal(t, 2, calls)

	out, err = execute(t, db, "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "translate")
	assert.Contains(t, out, "openai")

	out, err = execute(t, db, "llm", "view", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Purpose:   translate")
	assert.Contains(t, out, "яблуко")

	out, err = execute(t, db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "translate")
	assert.NotContains(t, out, "Pricing unavailable")

	_, err = execute(t, db, "llm", "view", "99")
	assert.ErrorContains(t, err, "event 99 not found")
}

func TestLLMStats_Empty(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, db, "llm", "stats")
	require.NoError(t, err)
	assert.Equal(t, "No LLM usage recorded yet.\n", out)
}

func TestVersion(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, db, "version")
	require.NoError(t, err)
	assert.Equal(t, "vocabo (devel)\n", out)
}
