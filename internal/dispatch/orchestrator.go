package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/panelsync/internal/adapter"
	"github.com/jonathan/panelsync/internal/browser"
	"github.com/jonathan/panelsync/internal/cookiejar"
	"github.com/jonathan/panelsync/internal/payload"
	"github.com/jonathan/panelsync/internal/vault"
)

// Failure reasons recorded verbatim in audit attempts.
const (
	reasonInactiveTarget = "unsupported or inactive target"
	reasonNoAdapter      = "unimplemented target"
	reasonLoginFailed    = "login failed"
)

// TargetSource is the read boundary to the target platform registry, plus the
// single piece of bookkeeping this engine writes.
type TargetSource interface {
	Target(ctx context.Context, id uuid.UUID) (*Target, error)
	TouchLastDistributed(ctx context.Context, id uuid.UUID) error
}

// Sink receives audit attempts append-only. Implementations must tolerate
// concurrent appends; each call carries one whole record.
type Sink interface {
	Append(ctx context.Context, attempt *Attempt) error
}

// SessionFactory opens a fresh browser page for one target. The factory owns
// proxy selection; the orchestrator owns teardown.
type SessionFactory func(ctx context.Context, target *Target) (adapter.Page, error)

// Orchestrator runs distribution jobs. Instances are constructed explicitly
// per job or per worker and hold no hidden shared state; the audit sink is
// the only collaborator shared across concurrent attempts.
type Orchestrator struct {
	targets  TargetSource
	vault    *vault.Vault
	registry *adapter.Registry
	jar      cookiejar.Store
	sink     Sink
	sessions SessionFactory
	logger   *zap.Logger
}

// Options wires an Orchestrator's collaborators. Targets, Vault, Registry,
// Sink, and Sessions are required; Jar is optional (no cookie cache) and
// Logger defaults to a nop logger.
type Options struct {
	Targets  TargetSource
	Vault    *vault.Vault
	Registry *adapter.Registry
	Jar      cookiejar.Store
	Sink     Sink
	Sessions SessionFactory
	Logger   *zap.Logger
}

// New creates an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	switch {
	case opts.Targets == nil:
		return nil, fmt.Errorf("orchestrator needs a target source")
	case opts.Vault == nil:
		return nil, fmt.Errorf("orchestrator needs a vault")
	case opts.Registry == nil:
		return nil, fmt.Errorf("orchestrator needs an adapter registry")
	case opts.Sink == nil:
		return nil, fmt.Errorf("orchestrator needs an audit sink")
	case opts.Sessions == nil:
		return nil, fmt.Errorf("orchestrator needs a session factory")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		targets:  opts.Targets,
		vault:    opts.Vault,
		registry: opts.Registry,
		jar:      opts.Jar,
		sink:     opts.Sink,
		sessions: opts.Sessions,
		logger:   logger,
	}, nil
}

// Dispatch processes a job's targets sequentially in input order and returns
// the completed summary. Every target yields exactly one attempt; no failure
// of one target aborts the rest, and the job itself never fails once
// dispatched — the worst case is a summary full of recorded failures.
func (o *Orchestrator) Dispatch(ctx context.Context, job *Job) (*Summary, error) {
	return o.dispatch(ctx, job, 1)
}

// DispatchParallel is Dispatch with up to workers targets in flight at once,
// each on its own browser session. Attempt order still matches target input
// order.
func (o *Orchestrator) DispatchParallel(ctx context.Context, job *Job, workers int) (*Summary, error) {
	if workers < 1 {
		workers = 1
	}
	return o.dispatch(ctx, job, workers)
}

func (o *Orchestrator) dispatch(ctx context.Context, job *Job, workers int) (*Summary, error) {
	if job.Status != StatusPending {
		return nil, fmt.Errorf("job %s already dispatched", job.ID)
	}
	snapshot, err := payload.Snapshot(job.Payload)
	if err != nil {
		return nil, err
	}
	job.Status = StatusDispatching
	o.logger.Info("dispatching job",
		zap.String("job_id", job.ID.String()),
		zap.String("kind", string(job.Kind)),
		zap.Int("targets", len(job.TargetIDs)),
		zap.Int("workers", workers))

	attempts := make([]*Attempt, len(job.TargetIDs))
	if workers == 1 {
		for i, targetID := range job.TargetIDs {
			attempts[i] = o.attemptTarget(ctx, job, targetID, snapshot)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for i, targetID := range job.TargetIDs {
			g.Go(func() error {
				attempts[i] = o.attemptTarget(ctx, job, targetID, snapshot)
				return nil
			})
		}
		_ = g.Wait() // attemptTarget never returns an error
	}

	for _, a := range attempts {
		if err := o.sink.Append(ctx, a); err != nil {
			// The attempt itself stands; losing an audit row is an
			// operational problem to surface, not a reason to fail the job.
			o.logger.Warn("audit append failed",
				zap.String("target_id", a.TargetID.String()), zap.Error(err))
		}
		if a.Success {
			if err := o.targets.TouchLastDistributed(ctx, a.TargetID); err != nil {
				o.logger.Warn("last-distributed bookkeeping failed",
					zap.String("target_id", a.TargetID.String()), zap.Error(err))
			}
		}
	}

	job.Status = StatusCompleted
	summary := summarize(job.ID, attempts)
	o.logger.Info("job completed",
		zap.String("job_id", job.ID.String()),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// attemptTarget applies the job to one target. It is the per-target failure
// boundary: every error, timeout, and panic inside it becomes a recorded
// failed attempt, and the session is torn down on every path before the next
// target proceeds.
func (o *Orchestrator) attemptTarget(ctx context.Context, job *Job, targetID uuid.UUID, snapshot []byte) (attempt *Attempt) {
	start := time.Now()
	attempt = &Attempt{
		ID:        uuid.New(),
		JobID:     job.ID,
		TargetID:  targetID,
		StartedAt: start,
		Payload:   snapshot,
	}
	defer func() {
		if r := recover(); r != nil {
			attempt.Success = false
			attempt.Error = fmt.Sprintf("panic: %v", r)
			o.logger.Error("recovered panic during attempt",
				zap.String("target_id", targetID.String()),
				zap.Any("panic", r))
		}
		attempt.Duration = time.Since(start)
	}()

	target, err := o.targets.Target(ctx, targetID)
	if err != nil || target == nil || !target.Active || target.Mode != ModeBrowser {
		attempt.Error = reasonInactiveTarget
		return attempt
	}
	attempt.TargetName = target.Name

	creds, err := o.vault.DecryptCredentials(target.EncryptedSecret)
	if err != nil {
		attempt.Error = fmt.Sprintf("credential decryption failed: %v", err)
		return attempt
	}

	cfg, ok := o.registry.Lookup(target.Name)
	if !ok {
		attempt.Error = reasonNoAdapter
		return attempt
	}

	page, err := o.sessions(ctx, target)
	if err != nil {
		attempt.Error = fmt.Sprintf("browser session failed: %v", err)
		return attempt
	}
	engine := adapter.New(cfg, page, o.logger)
	defer engine.Close()

	var cached []browser.Cookie
	if o.jar != nil {
		cached, err = o.jar.Load(ctx, target.ID)
		if err != nil && !errors.Is(err, cookiejar.ErrNotFound) {
			o.logger.Warn("cookie cache load failed", zap.Error(err))
		}
	}

	login := engine.Login(ctx, creds, cached)
	if !login.OK() {
		if len(cached) > 0 && o.jar != nil {
			_ = o.jar.Delete(ctx, target.ID)
		}
		attempt.Error = reasonLoginFailed
		return attempt
	}
	if o.jar != nil && !login.ViaCookies {
		if len(cached) > 0 {
			// The cached set was rejected during login's probe; drop it
			// before saving the fresh one.
			_ = o.jar.Delete(ctx, target.ID)
		}
		if cookies, err := engine.Cookies(ctx); err == nil {
			if err := o.jar.Save(ctx, target.ID, cookies); err != nil {
				o.logger.Warn("cookie cache save failed", zap.Error(err))
			}
		}
	}

	result := engine.Apply(ctx, login.Session, job.Payload)
	attempt.Success = result.OK()
	if !result.OK() {
		attempt.Error = result.Reason
	}
	return attempt
}
