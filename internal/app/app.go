package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/five82/trellotally/internal/cache"
	"github.com/five82/trellotally/internal/config"
	"github.com/five82/trellotally/internal/logging"
	"github.com/five82/trellotally/internal/prefs"
	"github.com/five82/trellotally/internal/source"
	"github.com/five82/trellotally/internal/trello"
	"github.com/five82/trellotally/internal/ui"
	"github.com/five82/trellotally/internal/workflow"
)

// Options configure a run. Empty fields fall back to the config file.
type Options struct {
	ConfigPath   string
	CacheBackend string
	LogFile      string
	PrefsPath    string // empty uses ~/.config/trellotally/prefs.toml

	// Print renders the session to Stdout instead of starting the TUI.
	Print   bool
	BoardID string
	ListID  string
	Format  string // text or yaml
	Stdout  io.Writer
}

// Run boots trellotally until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Print {
		if err := validateFormat(opts.Format); err != nil {
			return err
		}
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err = cfg.WithCacheBackend(opts.CacheBackend)
	if err != nil {
		return err
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}

	logger, logFile, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	store, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("open %s cache: %w", cfg.Cache.Backend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("close cache")
		}
	}()

	client, err := trello.NewClient(cfg.Trello.BaseURL, trello.Credentials{
		APIKey: cfg.Trello.APIKey,
		Token:  cfg.Trello.Token,
	})
	if err != nil {
		return fmt.Errorf("init trello client: %w", err)
	}
	if cfg.Trello.APIKey == "" || cfg.Trello.Token == "" {
		logger.Warn("trello credentials missing; remote fetches will be rejected")
	}

	wf := workflow.New(store, source.NewRemote(client), workflow.WithLogger(logger))

	logger.WithFields(log.Fields{
		"cache":  cfg.Cache.Backend,
		"print":  opts.Print,
		"apiURL": cfg.Trello.BaseURL,
	}).Info("trellotally starting")

	if opts.Print {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return printSession(ctx, wf, out, opts, cfg.UI.Currency)
	}

	theme := cfg.UI.Theme
	if p := prefs.Load(opts.PrefsPath); p.Theme != "" {
		theme = p.Theme
	}

	err = ui.Run(ui.Options{
		Context:   ctx,
		Workflow:  wf,
		Logger:    logger,
		ThemeName: theme,
		Currency:  cfg.UI.Currency,
		PrefsPath: opts.PrefsPath,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
