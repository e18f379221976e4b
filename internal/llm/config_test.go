package llm

import (
	"context"
	"encoding/json"
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestConfig_Discover(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		vars     map[string]string
		wantOK   bool
		want     string
	}{
		{"nothing set", "", "", nil, false, ""},
		{"gemini wins over openai", "", "", map[string]string{"OPENAI_API_KEY": "o", "GEMINI_API_KEY": "g"}, true, ProviderGemini},
		{"anthropic only", "", "", map[string]string{"ANTHROPIC_API_KEY": "a"}, true, ProviderAnthropic},
		{"explicit provider takes vendor key", ProviderOpenAI, "", map[string]string{"OPENAI_API_KEY": "o", "GEMINI_API_KEY": "g"}, true, ProviderOpenAI},
		{"explicit provider without key", ProviderAnthropic, "", map[string]string{"GEMINI_API_KEY": "g"}, false, ProviderAnthropic},
		{"explicit key kept", ProviderOpenRouter, "mine", map[string]string{"OPENROUTER_API_KEY": "theirs"}, true, ProviderOpenRouter},
		{"mock needs nothing", ProviderMock, "", nil, true, ProviderMock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Provider = tt.provider
			if pc := cfg.providerConfig(tt.provider); pc != nil {
				pc.APIKey = tt.apiKey
			}
			ok := cfg.Discover(env(tt.vars))
			if ok != tt.wantOK {
				t.Fatalf("Discover = %v, want %v", ok, tt.wantOK)
			}
			if cfg.Provider != tt.want {
				t.Errorf("provider = %q, want %q", cfg.Provider, tt.want)
			}
			if tt.name == "explicit key kept" && cfg.OpenRouter.APIKey != "mine" {
				t.Errorf("key overwritten: %s", cfg.OpenRouter.APIKey)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Validate() == nil {
		t.Error("empty provider should fail")
	}
	cfg.Provider = "llama"
	if cfg.Validate() == nil {
		t.Error("unknown provider should fail")
	}
	cfg.Provider = ProviderGemini
	if cfg.Validate() == nil {
		t.Error("missing key should fail")
	}
	cfg.Gemini.APIKey = "g"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}
}

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	sink := &eventSink{}
	p, err := New(context.Background(), cfg, sink, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %s", p.ModelID())
	}

	cfg.Provider = ProviderAnthropic
	if _, err := New(context.Background(), cfg, sink, nil); err == nil {
		t.Error("expected missing key error")
	}
}

func TestMockProvider_Respond(t *testing.T) {
	m := NewMockProvider(MockReply{Content: json.RawMessage(`"scripted"`)})
	m.Respond = func(req Request) MockReply {
		b, _ := json.Marshal(req.Messages[0].Content)
		return MockReply{Content: b}
	}
	first, _ := m.Generate(context.Background(), UserPrompt("", "a"))
	second, _ := m.Generate(context.Background(), UserPrompt("", "b"))
	if string(first.Content) != `"scripted"` || string(second.Content) != `"b"` {
		t.Errorf("got %s, %s", first.Content, second.Content)
	}
	if len(m.Requests()) != 2 {
		t.Errorf("requests = %d", len(m.Requests()))
	}
}

func TestLookupPrice(t *testing.T) {
	tests := []struct {
		model string
		want  float64
		ok    bool
	}{
		{"gpt-4o-mini", 0.15, true},
		{"gpt-4o-2024-08-06", 2.5, true},
		{"gpt-4o-mini-2024-07-18", 0.15, true},
		{"claude-haiku-4-5-20251001", 1, true},
		{"claude-sonnet-4-5-20250929", 3, true},
		{"google/gemini-2.0-flash-001", 0.1, true},
		{"mock", 0, false},
	}
	for _, tt := range tests {
		p, ok := LookupPrice(tt.model)
		if ok != tt.ok || p.Input != tt.want {
			t.Errorf("LookupPrice(%q) = %+v, %v", tt.model, p, ok)
		}
	}
	if got := (Price{Input: 1, Output: 5}).Cost(1_000_000, 200_000); got != 2 {
		t.Errorf("Cost = %v", got)
	}
}
