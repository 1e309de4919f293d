package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/panelsync/internal/adapter"
	"github.com/jonathan/panelsync/internal/browser"
	"github.com/jonathan/panelsync/internal/config"
	"github.com/jonathan/panelsync/internal/db"
	"github.com/jonathan/panelsync/internal/dispatch"
	"github.com/jonathan/panelsync/internal/observability"
	"github.com/jonathan/panelsync/internal/payload"
	"github.com/jonathan/panelsync/internal/proxy"
	"github.com/jonathan/panelsync/internal/vault"
)

// app bundles the wired collaborators every dispatch command needs. Build it
// once per command invocation and close it when done.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	vault   *vault.Vault
	db      *db.DB
	printer *observability.Printer
}

// newApp loads configuration (env, then config file overrides), connects to
// the database, and opens the credential vault.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return nil, err
	}

	if cfg.VaultKey == "" {
		return nil, fmt.Errorf("VAULT_KEY is required (set it in the environment or .env)")
	}
	v, err := vault.NewFromHex(cfg.VaultKey)
	if err != nil {
		return nil, fmt.Errorf("invalid vault key: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required (set it in the environment or .env)")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		vault:   v,
		db:      database,
		printer: observability.NewPrinter(os.Stdout),
	}, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// sessionFactory opens one Chrome session per target, picking a proxy from
// the rotation pool when the target opts in.
func (a *app) sessionFactory() dispatch.SessionFactory {
	rotator := proxy.NewRotator(a.cfg.Proxies)
	return func(ctx context.Context, target *dispatch.Target) (adapter.Page, error) {
		opts := browser.DefaultOptions()
		opts.Headless = a.cfg.Headless
		opts.ScreenshotDir = a.cfg.ScreenshotDir
		if a.cfg.UserAgent != "" {
			opts.UserAgent = a.cfg.UserAgent
		}
		if target.UseProxy {
			if ep, ok := rotator.Next(); ok {
				opts.ProxyServer = ep.Server()
			} else {
				a.logger.Warn("target wants a proxy but the pool is empty",
					zap.String("target", target.Name))
			}
		}
		return browser.NewSession(ctx, opts, a.logger)
	}
}

func (a *app) orchestrator() (*dispatch.Orchestrator, error) {
	return dispatch.New(dispatch.Options{
		Targets:  a.db,
		Vault:    a.vault,
		Registry: adapter.NewBuiltinRegistry(),
		Jar:      a.db,
		Sink:     a.db,
		Sessions: a.sessionFactory(),
		Logger:   a.logger,
	})
}

// resolveTargets turns the --targets flag into target ids. "all" selects
// every active browser-mode target; otherwise each element must be a UUID.
func (a *app) resolveTargets(ctx context.Context, specs []string) ([]uuid.UUID, error) {
	if len(specs) == 1 && strings.EqualFold(specs[0], "all") {
		targets, err := a.db.ListActiveTargets(ctx)
		if err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("no active targets in the registry")
		}
		ids := make([]uuid.UUID, len(targets))
		for i, t := range targets {
			ids[i] = t.ID
		}
		return ids, nil
	}

	ids := make([]uuid.UUID, 0, len(specs))
	for _, s := range specs {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid target id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// runJob dispatches one payload to the requested targets and prints the
// per-target report. A summary with failures sets a non-zero exit through the
// returned error so scripts can detect partial distribution.
func (a *app) runJob(ctx context.Context, p payload.Payload, targetSpecs []string, parallel int) error {
	ids, err := a.resolveTargets(ctx, targetSpecs)
	if err != nil {
		return err
	}

	job, err := dispatch.NewJob(p, ids)
	if err != nil {
		return err
	}
	a.printer.PrintJobHeader(job)

	orch, err := a.orchestrator()
	if err != nil {
		return err
	}

	if parallel == 0 {
		parallel = a.cfg.Parallel
	}

	var summary *dispatch.Summary
	if parallel > 1 {
		summary, err = orch.DispatchParallel(ctx, job, parallel)
	} else {
		summary, err = orch.Dispatch(ctx, job)
	}
	if err != nil {
		return err
	}

	a.printer.PrintSummary(summary)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d targets failed", summary.Failed, summary.Total)
	}
	return nil
}
