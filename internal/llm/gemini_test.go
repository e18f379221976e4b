package llm

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiProvider_Generate(t *testing.T) {
	var path string
	url := serve(t, http.StatusOK, map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": `{"translation":"яблуко"}`}},
			},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{"promptTokenCount": 12, "candidatesTokenCount": 4, "totalTokenCount": 16},
	}, func(r *http.Request) { path = r.URL.Path })

	p, err := NewGeminiProvider(context.Background(), ProviderConfig{APIKey: "k", Model: "gemini-flash", BaseURL: url})
	if err != nil {
		t.Fatal(err)
	}
	req := UserPrompt("translate", "apple")
	req.Schema = translationSchema
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasSuffix(path, "/models/gemini-2.0-flash:generateContent") {
		t.Errorf("path = %s", path)
	}
	if string(resp.Content) != `{"translation":"яблуко"}` {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 4 {
		t.Errorf("usage = %+v", resp.Usage)
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":        "object",
		"description": "a pair",
		"properties": map[string]any{
			"word":  map[string]any{"type": "string"},
			"count": map[string]any{"type": "integer"},
			"level": map[string]any{"type": "string", "enum": []any{"A1", "A2"}},
			"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"other": map[string]any{"type": "null"},
		},
		"required": []string{"word"},
	})

	if s.Type != genai.TypeObject || s.Description != "a pair" {
		t.Fatalf("root = %+v", s)
	}
	if len(s.Properties) != 5 {
		t.Fatalf("properties = %d", len(s.Properties))
	}
	if s.Properties["count"].Type != genai.TypeInteger {
		t.Errorf("count type = %s", s.Properties["count"].Type)
	}
	if got := s.Properties["level"].Enum; len(got) != 2 || got[1] != "A2" {
		t.Errorf("enum = %v", got)
	}
	if s.Properties["tags"].Items == nil || s.Properties["tags"].Items.Type != genai.TypeString {
		t.Errorf("items = %+v", s.Properties["tags"].Items)
	}
	if s.Properties["other"].Type != genai.TypeString {
		t.Errorf("unknown type should fall back to string, got %s", s.Properties["other"].Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "word" {
		t.Errorf("required = %v", s.Required)
	}
}
