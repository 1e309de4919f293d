package adapter

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/panelsync/internal/browser"
	"github.com/jonathan/panelsync/internal/payload"
	"github.com/jonathan/panelsync/internal/selector"
	"github.com/jonathan/panelsync/internal/vault"
)

// Page is the browser surface the engine drives. browser.Session implements
// it; tests substitute a scripted fake so adapter logic runs without Chrome.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Fill(ctx context.Context, sel, text string) error
	Click(ctx context.Context, sel string) error
	Submit(ctx context.Context, sel string) error
	Upload(ctx context.Context, sel string, paths []string) error
	Present(ctx context.Context, sel string) bool
	CurrentURL(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
	Screenshot(ctx context.Context, label string)
	Cookies(ctx context.Context) ([]browser.Cookie, error)
	SetCookies(ctx context.Context, cookies []browser.Cookie) error
	Close()
}

// Engine drives one target panel through one login+operate cycle. One engine
// owns one page; it is not reused across targets or jobs.
type Engine struct {
	cfg    Config
	page   Page
	logger *zap.Logger
	closed bool
}

// New creates an engine for one target. The engine takes ownership of the
// page: Close tears it down.
func New(cfg Config, page Page, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:    cfg,
		page:   page,
		logger: logger.With(zap.String("target", cfg.Name)),
	}
}

// Login authenticates against the target. When a cached cookie set is
// supplied it is tried first: inject, navigate to the base URL, and accept if
// the success predicate holds — the credential fields are never touched on
// that path. Otherwise the full credential flow runs with diagnostic
// screenshots at the login-page, post-fill, and post-submit points.
//
// Every failure mode here — missing field, missing button, navigation
// timeout, a post-submit page that still looks like a login page — is an
// ordinary outcome carried in LoginResult.Reason, never a Go error: the
// orchestrator must continue to the next target.
func (e *Engine) Login(ctx context.Context, creds vault.Credentials, cached []browser.Cookie) LoginResult {
	if len(cached) > 0 {
		if res, ok := e.loginViaCookies(ctx, cached); ok {
			return res
		}
		e.logger.Info("cached cookies rejected, falling through to credential login")
	}

	if err := e.page.Navigate(ctx, e.cfg.LoginURL); err != nil {
		return LoginResult{Reason: fmt.Sprintf("login page unreachable: %v", err)}
	}
	e.page.Screenshot(ctx, "login-page")

	idSel, err := selector.Resolve(ctx, e.page, "login identifier", e.cfg.Login.Identifier)
	if err != nil {
		return LoginResult{Reason: err.Error()}
	}
	pwSel, err := selector.Resolve(ctx, e.page, "password", e.cfg.Login.Password)
	if err != nil {
		return LoginResult{Reason: err.Error()}
	}

	if err := e.page.Fill(ctx, idSel, creds.Identifier); err != nil {
		return LoginResult{Reason: fmt.Sprintf("failed to fill identifier: %v", err)}
	}
	if err := e.page.Fill(ctx, pwSel, creds.Secret); err != nil {
		return LoginResult{Reason: fmt.Sprintf("failed to fill password: %v", err)}
	}
	e.page.Screenshot(ctx, "login-filled")

	submitSel, err := selector.Resolve(ctx, e.page, "login submit", e.cfg.Login.Submit)
	if err != nil {
		return LoginResult{Reason: err.Error()}
	}
	if err := e.page.Submit(ctx, submitSel); err != nil {
		return LoginResult{Reason: fmt.Sprintf("login submit failed: %v", err)}
	}
	e.page.Screenshot(ctx, "login-result")

	if !e.authenticated(ctx) {
		return LoginResult{Reason: "post-login page still looks like a login page"}
	}

	e.logger.Info("login succeeded")
	return LoginResult{Session: &Session{engine: e}}
}

// loginViaCookies attempts the session-cache fast path. The second return is
// false when the cached set was rejected and full login should run.
func (e *Engine) loginViaCookies(ctx context.Context, cached []browser.Cookie) (LoginResult, bool) {
	if err := e.page.SetCookies(ctx, cached); err != nil {
		e.logger.Warn("cookie injection failed", zap.Error(err))
		return LoginResult{}, false
	}
	if err := e.page.Navigate(ctx, e.cfg.BaseURL); err != nil {
		return LoginResult{}, false
	}
	if !e.authenticated(ctx) {
		return LoginResult{}, false
	}
	e.logger.Info("login succeeded via cached session")
	return LoginResult{Session: &Session{engine: e}, ViaCookies: true}, true
}

// authenticated evaluates the target's success predicate against the current
// URL and rendered HTML.
func (e *Engine) authenticated(ctx context.Context) bool {
	finalURL, err := e.page.CurrentURL(ctx)
	if err != nil {
		return false
	}
	html, err := e.page.HTML(ctx)
	if err != nil {
		html = ""
	}
	return e.cfg.predicate()(finalURL, html)
}

// Cookies exposes the page's cookie set so the orchestrator can persist it
// after a credentialed login.
func (e *Engine) Cookies(ctx context.Context) ([]browser.Cookie, error) {
	return e.page.Cookies(ctx)
}

// PostDiary publishes a diary post. It requires an authenticated session and
// succeeds only if a submit control was found and activated; a target whose
// posting form cannot be located fails without throwing.
func (e *Engine) PostDiary(ctx context.Context, sess *Session, post *payload.DiaryPost) Result {
	if r, ok := e.checkSession(sess); !ok {
		return r
	}
	if e.cfg.Diary == nil {
		e.logger.Info("diary posting not configured for target")
		return unsupported("diary posting")
	}
	d := e.cfg.Diary

	listURL, err := e.cfg.resolveURL(d.ListPath)
	if err != nil {
		return failed(err.Error())
	}
	if err := e.page.Navigate(ctx, listURL); err != nil {
		return failed(fmt.Sprintf("diary page unreachable: %v", err))
	}

	newPostSel, err := selector.Resolve(ctx, e.page, "new post control", d.NewPost)
	if err != nil {
		return failed(err.Error())
	}
	if err := e.page.Click(ctx, newPostSel); err != nil {
		return failed(fmt.Sprintf("failed to open posting form: %v", err))
	}

	// Title and body fields are filled when present; single-textarea panels
	// have no separate title.
	if sel, err := selector.Resolve(ctx, e.page, "diary title", d.Title); err == nil {
		if err := e.page.Fill(ctx, sel, post.Title); err != nil {
			return failed(fmt.Sprintf("failed to fill title: %v", err))
		}
	}
	if sel, err := selector.Resolve(ctx, e.page, "diary body", d.Body); err == nil {
		if err := e.page.Fill(ctx, sel, post.Body); err != nil {
			return failed(fmt.Sprintf("failed to fill body: %v", err))
		}
	}

	if len(post.ImagePaths) > 0 {
		if sel, err := selector.Resolve(ctx, e.page, "diary image upload", d.Image); err == nil {
			if err := e.page.Upload(ctx, sel, post.ImagePaths); err != nil {
				e.logger.Warn("image upload failed, posting without images", zap.Error(err))
			}
		}
	}

	submitSel, err := selector.Resolve(ctx, e.page, "diary submit", d.Submit)
	if err != nil {
		return failed(err.Error())
	}
	if err := e.page.Submit(ctx, submitSel); err != nil {
		return failed(fmt.Sprintf("diary submit failed: %v", err))
	}
	e.page.Screenshot(ctx, "diary-posted")

	e.logger.Info("diary posted", zap.String("title", post.Title))
	return succeeded()
}

// UpdateCast applies a profile update through the target's field-mapping
// table. Targets without a cast table report Unsupported.
func (e *Engine) UpdateCast(ctx context.Context, sess *Session, profile *payload.CastProfile) Result {
	if r, ok := e.checkSession(sess); !ok {
		return r
	}
	if e.cfg.Cast == nil {
		e.logger.Info("cast profile update not configured for target")
		return unsupported("cast profile update")
	}
	c := e.cfg.Cast

	editURL, err := e.cfg.resolveURL(c.EditPath)
	if err != nil {
		return failed(err.Error())
	}
	if err := e.page.Navigate(ctx, editURL); err != nil {
		return failed(fmt.Sprintf("profile page unreachable: %v", err))
	}

	fields := []struct {
		name       string
		candidates []string
		value      string
	}{
		{"name", c.Name, profile.Name},
		{"age", c.Age, intField(profile.Age)},
		{"height", c.Height, intField(profile.Height)},
		{"bust", c.Bust, intField(profile.Bust)},
		{"waist", c.Waist, intField(profile.Waist)},
		{"hip", c.Hip, intField(profile.Hip)},
		{"cup", c.Cup, profile.CupSize},
		{"comment", c.Comment, profile.Comment},
	}
	for _, f := range fields {
		if len(f.candidates) == 0 || f.value == "" {
			continue
		}
		sel, err := selector.Resolve(ctx, e.page, f.name, f.candidates)
		if err != nil {
			// The panel dropped or renamed the field; skip rather than fail
			// the whole update.
			e.logger.Warn("profile field not found, skipping", zap.String("field", f.name))
			continue
		}
		if err := e.page.Fill(ctx, sel, f.value); err != nil {
			return failed(fmt.Sprintf("failed to fill %s: %v", f.name, err))
		}
	}

	submitSel, err := selector.Resolve(ctx, e.page, "profile submit", c.Submit)
	if err != nil {
		return failed(err.Error())
	}
	if err := e.page.Submit(ctx, submitSel); err != nil {
		return failed(fmt.Sprintf("profile submit failed: %v", err))
	}
	e.page.Screenshot(ctx, "cast-updated")

	e.logger.Info("cast profile updated", zap.String("cast_id", profile.CastID))
	return succeeded()
}

// UpdateSchedule replaces the target's work-schedule entries in input order.
// Targets without a schedule table report Unsupported.
func (e *Engine) UpdateSchedule(ctx context.Context, sess *Session, schedule *payload.Schedule) Result {
	if r, ok := e.checkSession(sess); !ok {
		return r
	}
	if e.cfg.Schedule == nil {
		e.logger.Info("schedule update not configured for target")
		return unsupported("schedule update")
	}
	s := e.cfg.Schedule

	pageURL, err := e.cfg.resolveURL(s.PagePath)
	if err != nil {
		return failed(err.Error())
	}
	if err := e.page.Navigate(ctx, pageURL); err != nil {
		return failed(fmt.Sprintf("schedule page unreachable: %v", err))
	}

	for i, entry := range schedule.Entries {
		if i > 0 && len(s.AddRow) > 0 {
			if sel, err := selector.Resolve(ctx, e.page, "add row", s.AddRow); err == nil {
				if err := e.page.Click(ctx, sel); err != nil {
					return failed(fmt.Sprintf("failed to add schedule row %d: %v", i+1, err))
				}
			}
		}

		rowFields := []struct {
			name       string
			candidates []string
			value      string
		}{
			{"date", s.Date, entry.Date},
			{"start time", s.Start, entry.Start},
			{"end time", s.End, entry.End},
			{"availability", s.Status, entry.Status},
		}
		for _, f := range rowFields {
			if len(f.candidates) == 0 {
				continue
			}
			sel, err := selector.Resolve(ctx, e.page, f.name, f.candidates)
			if err != nil {
				return failed(err.Error())
			}
			if err := e.page.Fill(ctx, sel, f.value); err != nil {
				return failed(fmt.Sprintf("failed to fill %s: %v", f.name, err))
			}
		}
	}

	submitSel, err := selector.Resolve(ctx, e.page, "schedule submit", s.Submit)
	if err != nil {
		return failed(err.Error())
	}
	if err := e.page.Submit(ctx, submitSel); err != nil {
		return failed(fmt.Sprintf("schedule submit failed: %v", err))
	}
	e.page.Screenshot(ctx, "schedule-updated")

	e.logger.Info("schedule updated", zap.Int("entries", len(schedule.Entries)))
	return succeeded()
}

// Apply dispatches a payload to the operation matching its kind.
func (e *Engine) Apply(ctx context.Context, sess *Session, p payload.Payload) Result {
	switch v := p.(type) {
	case *payload.DiaryPost:
		return e.PostDiary(ctx, sess, v)
	case *payload.CastProfile:
		return e.UpdateCast(ctx, sess, v)
	case *payload.Schedule:
		return e.UpdateSchedule(ctx, sess, v)
	default:
		return failed(fmt.Sprintf("unknown payload kind %q", p.Kind()))
	}
}

// Close tears down the page and its browser context. Idempotent, and
// reachable from every exit path.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.page.Close()
}

// checkSession enforces the fail-fast rule: operations require the session
// value this engine's own Login produced.
func (e *Engine) checkSession(sess *Session) (Result, bool) {
	if sess == nil || sess.engine != e {
		return failed("not logged in"), false
	}
	if e.closed {
		return failed("session closed"), false
	}
	return Result{}, true
}

func intField(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
