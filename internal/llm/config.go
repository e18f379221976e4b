package llm

import (
	"fmt"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the provider used for translation.
type Config struct {
	Provider   string         `koanf:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`
	Anthropic  ProviderConfig `koanf:"anthropic"`
	OpenAI     ProviderConfig `koanf:"openai"`
	Gemini     ProviderConfig `koanf:"gemini"`
	OpenRouter ProviderConfig `koanf:"openrouter"`
	Retry      RetryConfig    `koanf:"retry"`

	// Timeout bounds one logical call, retries included.
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
}

// ProviderConfig holds the credentials and model of one provider.
// BaseURL is honoured by the OpenAI-compatible providers only.
type ProviderConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
}

// RetryConfig controls exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts" validate:"gte=1"`
	InitialWait time.Duration `koanf:"initial_wait"`
	MaxWait     time.Duration `koanf:"max_wait"`
	Multiplier  float64       `koanf:"multiplier" validate:"gte=1"`
}

// DefaultConfig leaves Provider empty so that Discover can pick one from
// the standard API key variables.
func DefaultConfig() Config {
	return Config{
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// discoveryOrder is the order in which vendor key variables are checked.
var discoveryOrder = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// Discover fills the provider and its key from the vendors' own env
// variables when none was configured explicitly. It reports whether a
// usable provider is set afterwards.
func (c *Config) Discover(getenv func(string) string) bool {
	if c.Provider != "" {
		if pc := c.providerConfig(c.Provider); pc != nil && pc.APIKey == "" {
			for _, d := range discoveryOrder {
				if d.provider == c.Provider {
					pc.APIKey = getenv(d.env)
				}
			}
		}
		return c.Validate() == nil
	}
	for _, d := range discoveryOrder {
		if key := getenv(d.env); key != "" {
			c.Provider = d.provider
			c.providerConfig(d.provider).APIKey = key
			return true
		}
	}
	return false
}

// Validate reports a missing provider or API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "":
		return fmt.Errorf("no llm provider configured; set llm.provider or an API key variable such as ANTHROPIC_API_KEY")
	case ProviderMock:
		return nil
	}
	pc := c.providerConfig(c.Provider)
	if pc == nil {
		return fmt.Errorf("unknown llm provider %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
	}
	return nil
}

func (c *Config) providerConfig(name string) *ProviderConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}
