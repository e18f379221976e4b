package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabo/internal/config"
	"github.com/abhisek/vocabo/internal/llm"
	"github.com/abhisek/vocabo/internal/progress"
	"github.com/abhisek/vocabo/internal/session"
	"github.com/abhisek/vocabo/internal/spacedrep"
	"github.com/abhisek/vocabo/internal/store"
	"github.com/abhisek/vocabo/internal/trainer"
	"github.com/abhisek/vocabo/internal/translate"
)

// env is everything a command needs, built from the merged config.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *store.Store
	trainer *trainer.Trainer

	// llmErr says why translation is unavailable, if it is.
	llmErr error
}

func (e *env) Close() error {
	return e.store.Close()
}

// loadConfig merges defaults, the config file, VOCABO_ variables and the
// command's changed flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{File: path, Flags: cmd.Flags()})
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore loads config and opens the database only. Commands that just
// read the event log use it.
func openStore(cmd *cobra.Command) (config.Config, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, st, nil
}

// setup opens the store and wires the trainer. Translation is wired only
// when an LLM provider is configured.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())

	loc, err := cfg.Progress.Location()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	order, err := session.ParseOrder(cfg.Session.Order)
	if err != nil {
		st.Close()
		return nil, err
	}
	tracker := progress.NewTracker(loc)

	sessions := session.NewService(session.ServiceConfig{
		Cards:     st.CardRepo(),
		Progress:  st.ProgressRepo(),
		Events:    st.EventRepo(),
		Composer:  session.NewComposer(order, nil),
		Scheduler: spacedrep.NewScheduler(spacedrep.Config{MaxIntervalDays: cfg.Scheduler.MaxIntervalDays}),
		Tracker:   tracker,
		Logger:    logger,
	})

	deps := trainer.Deps{
		Cards:     st.CardRepo(),
		Progress:  st.ProgressRepo(),
		Events:    st.EventRepo(),
		Sessions:  sessions,
		Tracker:   tracker,
		Logger:    logger,
		DailyGoal: cfg.Progress.DailyGoal,
	}
	tr, llmErr := newTranslator(cmd, cfg, st, logger)
	if llmErr != nil {
		logger.Debug("translation unavailable", "error", llmErr)
	} else {
		deps.Translator = tr
	}

	return &env{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		trainer: trainer.New(deps),
		llmErr:  llmErr,
	}, nil
}

func newTranslator(cmd *cobra.Command, cfg config.Config, st *store.Store, logger *slog.Logger) (*translate.Translator, error) {
	provider, err := llm.New(cmd.Context(), cfg.LLM, st.EventRepo(), logger)
	if err != nil {
		return nil, err
	}
	return translate.New(provider, cfg.Languages.Native, cfg.Languages.Target, logger)
}
