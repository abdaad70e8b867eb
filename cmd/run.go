package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/hotsquiz/internal/app"
	"github.com/abhisek/hotsquiz/internal/config"
	"github.com/abhisek/hotsquiz/internal/llm"
	"github.com/abhisek/hotsquiz/internal/logger"
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/screens/home"
	"github.com/abhisek/hotsquiz/internal/screens/play"
	"github.com/abhisek/hotsquiz/internal/selfupdate"
	"github.com/abhisek/hotsquiz/internal/store"
	"github.com/spf13/cobra"
)

// runtime holds what every command resolves first.
type runtime struct {
	cfg config.Config
	log *logger.Logger
}

// loadRuntime resolves configuration and builds the diagnostic logger.
func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("log-mode"); v != "" {
		cfg.Log.Mode = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return &runtime{cfg: cfg, log: log}, nil
}

func (rt *runtime) openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, rt.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// defaults returns the configured quiz parameters. Unknown subject or
// level values in the config are errors; an empty aspiration is allowed
// here and checked when a quiz starts.
func (rt *runtime) defaults() (quizgen.Params, error) {
	p := quizgen.Params{Aspiration: rt.cfg.Quiz.Aspiration, Count: rt.cfg.Quiz.Count}
	var err error
	if p.Subject, err = quizgen.ParseSubject(rt.cfg.Quiz.Subject); err != nil {
		return p, fmt.Errorf("config quiz.subject: %w", err)
	}
	if p.Level, err = quizgen.ParseLevel(rt.cfg.Quiz.Level); err != nil {
		return p, fmt.Errorf("config quiz.level: %w", err)
	}
	return p.WithDefaults(), nil
}

// generator builds the LLM-backed question generator. eventRepo may be nil
// to skip request logging.
func (rt *runtime) generator(ctx context.Context, eventRepo store.EventRepo) (quizgen.Generator, error) {
	provider, err := llm.NewProvider(ctx, rt.cfg.LLMProviderConfig(), eventRepo, rt.log)
	if err != nil {
		return nil, err
	}
	return quizgen.New(provider, quizgen.DefaultConfig(), rt.log), nil
}

// runApp opens the store, builds dependencies, and launches the TUI. With
// quick set, flags on cmd override the defaults and the quiz starts at once.
func runApp(cmd *cobra.Command, quick bool) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	defaults, err := rt.defaults()
	if err != nil {
		return err
	}
	if quick {
		if defaults, err = paramsFromFlags(cmd, defaults); err != nil {
			return err
		}
	}

	st, err := rt.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	deps := play.Deps{Events: eventRepo, Log: rt.log}
	gen, err := rt.generator(cmd.Context(), eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		if quick {
			return fmt.Errorf("cannot start a quiz without an LLM provider")
		}
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable.")
	} else {
		deps.Generator = gen
	}

	checker := selfupdate.NewChecker()
	opts := app.Options{
		QuickStart: quick,
		Home: home.Options{
			Deps:     deps,
			Defaults: defaults,
			CheckUpdate: func(ctx context.Context) (string, error) {
				res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: currentVersion()})
				if err != nil || !res.UpdateAvailable {
					return "", err
				}
				return res.LatestVersion, nil
			},
		},
	}
	return app.Run(opts)
}
