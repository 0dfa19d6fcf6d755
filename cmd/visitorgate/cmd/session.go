package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/scango/visitorgate/internal/config"
	"github.com/scango/visitorgate/internal/database"
	"github.com/scango/visitorgate/internal/docstore"
	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/notify"
	"github.com/scango/visitorgate/internal/query"
)

// session is the state shared by commands that talk to the site.
type session struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *database.Manager
	querier *query.SiteQuerier
	store   *docstore.Store
	notes   notify.Notifier

	ctx    context.Context
	cancel context.CancelFunc
}

// loadConfig reads the config file, applies flag overrides and validates it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	o := GetCLIOverrides()
	cfg.ApplyOverrides(o.LogLevel, o.LogFormat, o.RowLimit, o.TimeoutSeconds)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession loads the config, connects to the site and wires the query
// layer. The caller must Close the session.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, stop := database.SignalContext(context.Background(), func(sig os.Signal) {
		log.Warnf("Received %s - cancelling", sig)
	})
	ctx, cancelTimeout := database.WithOptionalTimeout(ctx, cfg.Report.TimeoutSeconds)
	cancel := func() {
		cancelTimeout()
		stop()
	}

	dbManager := database.NewManager(cfg)
	if err := dbManager.Connect(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to connect to site database: %w", err)
	}

	q := query.NewSiteQuerier(dbManager.Site, log)
	return &session{
		cfg:     cfg,
		log:     log,
		db:      dbManager,
		querier: q,
		store:   docstore.New(q, dbManager.Site, log),
		notes:   notify.Multi(notify.NewConsoleNotifier(os.Stderr), notify.NewLogNotifier(log)),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Close releases the connection and the signal handler.
func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		s.log.Warnf("Failed to close site connection: %v", err)
	}
	s.cancel()
	_ = s.log.Sync()
}
