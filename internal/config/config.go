// Package config loads vocabo settings from defaults, a YAML file, VOCABO_
// environment variables and command-line flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata" // progress.timezone must resolve on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/abhisek/vocabo/internal/llm"
)

// EnvPrefix prefixes every environment override. Nesting uses a double
// underscore: VOCABO_SESSION__NEW_CARD_LIMIT=5.
const EnvPrefix = "VOCABO_"

// Config is the complete runtime configuration.
type Config struct {
	DB        string          `koanf:"db"`
	User      string          `koanf:"user" validate:"required,max=64"`
	Session   SessionConfig   `koanf:"session"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Progress  ProgressConfig  `koanf:"progress"`
	Languages LanguagesConfig `koanf:"languages"`
	Log       LogConfig       `koanf:"log"`
	LLM       llm.Config      `koanf:"llm"`
}

type SessionConfig struct {
	NewCardLimit int    `koanf:"new_card_limit" validate:"gte=0"`
	Order        string `koanf:"order" validate:"oneof=shuffle due-first"`
}

type SchedulerConfig struct {
	// MaxIntervalDays caps review intervals; 0 leaves them unbounded.
	MaxIntervalDays int `koanf:"max_interval_days" validate:"gte=0"`
}

type ProgressConfig struct {
	DailyGoal int `koanf:"daily_goal" validate:"gte=1"`
	// Timezone is an IANA name; empty means the system zone.
	Timezone string `koanf:"timezone" validate:"omitempty,timezone"`
}

// Location resolves Timezone.
func (p ProgressConfig) Location() (*time.Location, error) {
	if p.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(p.Timezone)
}

type LanguagesConfig struct {
	Native string `koanf:"native" validate:"required,len=2,nefield=Target"`
	Target string `koanf:"target" validate:"required,len=2"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		User:      "local",
		Session:   SessionConfig{NewCardLimit: 10, Order: "shuffle"},
		Progress:  ProgressConfig{DailyGoal: 20},
		Languages: LanguagesConfig{Native: "uk", Target: "en"},
		Log:       LogConfig{Level: "info", Format: "text"},
		LLM:       llm.DefaultConfig(),
	}
}

// flagKeys maps command-line flag names onto config keys. Flags missing
// here are command options, not settings.
var flagKeys = map[string]string{
	"db":             "db",
	"user":           "user",
	"log-level":      "log.level",
	"new-card-limit": "session.new_card_limit",
	"order":          "session.order",
	"provider":       "llm.provider",
}

// Options tells Load where to look.
type Options struct {
	// File is an explicit config path. When empty, DefaultPath is used if
	// it exists.
	File string

	// Flags, when set, contributes every changed flag listed in flagKeys.
	Flags *pflag.FlagSet

	// Getenv resolves vendor API key variables for LLM discovery.
	// Defaults to os.Getenv.
	Getenv func(string) string
}

var validate = newValidator()

// newValidator reports fields by their koanf key rather than Go name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Load merges every layer on top of Default and validates the result.
func Load(opts Options) (Config, error) {
	k := koanf.New(".")

	path, explicit := opts.File, opts.File != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if opts.Flags != nil {
		fp := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, f.Value.String()
		})
		if err := k.Load(fp, nil); err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Languages.Native = strings.ToLower(cfg.Languages.Native)
	cfg.Languages.Target = strings.ToLower(cfg.Languages.Target)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.LLM.Discover(getenv)
	return cfg, nil
}

// envKey turns VOCABO_PROGRESS__DAILY_GOAL into progress.daily_goal.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate reports the first invalid setting by its config key.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid config: %w", err)
	}
	fe := verrs[0]
	// Namespace is "Config.session.order"; drop the type name.
	_, key, _ := strings.Cut(fe.Namespace(), ".")
	return fmt.Errorf("invalid config: %s=%v fails %q", key, fe.Value(), fe.Tag())
}

// DefaultPath is $XDG_CONFIG_HOME/vocabo/config.yaml, or "" when no config
// directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vocabo", "config.yaml")
}

// NewLogger builds the process logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
