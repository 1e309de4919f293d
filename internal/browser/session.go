// Package browser provides the automation session: one isolated headless
// browsing context with one active page, driven through chromedp. A session
// lives for exactly one login+operate cycle against one target panel and must
// be closed on every exit path; the underlying Chrome process is expensive
// and a leak is observable as a dangling process.
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Options configures a session's browsing context. The evasion-related fields
// (user agent, locale, timezone, automation-signal suppression) are defensive
// measures for panels that reject scripted clients.
type Options struct {
	UserAgent       string
	Locale          string
	Timezone        string
	Headless        bool
	ProxyServer     string
	ScreenshotDir   string
	NavigateTimeout time.Duration
	ActionTimeout   time.Duration
	ProbeTimeout    time.Duration
	SettleDelay     time.Duration
}

// DefaultOptions returns session defaults tuned for Japanese target panels.
func DefaultOptions() Options {
	return Options{
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Locale:          "ja-JP",
		Timezone:        "Asia/Tokyo",
		Headless:        true,
		NavigateTimeout: 45 * time.Second,
		ActionTimeout:   20 * time.Second,
		ProbeTimeout:    2 * time.Second,
		SettleDelay:     2 * time.Second,
	}
}

// Session owns one browsing context and one page. It is not safe for
// concurrent use; operations are strictly sequential. Concurrency across
// targets is achieved by independent sessions, never by multiplexing one.
type Session struct {
	opts        Options
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
	logger      *zap.Logger
	closed      bool
}

// NewSession starts an isolated browser context. If the underlying browser
// process cannot be started, nothing is leaked: every partially created
// context is cancelled before the error is returned.
func NewSession(ctx context.Context, opts Options, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	flags := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", opts.Locale),
	)
	if opts.UserAgent != "" {
		flags = append(flags, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ProxyServer != "" {
		flags = append(flags, chromedp.ProxyServer(opts.ProxyServer))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, flags...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	s := &Session{
		opts:        opts,
		ctx:         browserCtx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		logger:      logger,
	}

	// Materialize the browser process and pin locale/timezone before any
	// navigation so the first request already carries the right fingerprint.
	startCtx, cancel := context.WithTimeout(browserCtx, opts.NavigateTimeout)
	defer cancel()
	err := chromedp.Run(startCtx,
		emulation.SetLocaleOverride().WithLocale(opts.Locale),
		emulation.SetTimezoneOverride(opts.Timezone),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	return s, nil
}

// Navigate loads a URL, waits for the body to be ready, then allows a settle
// delay for script-rendered content. A timeout is an ordinary error.
func (s *Session) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := s.runContext(ctx, s.opts.NavigateTimeout)
	defer cancel()

	s.logger.Debug("navigating", zap.String("url", url))
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.opts.SettleDelay),
	)
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

// Fill clears the element matched by sel and types text into it.
func (s *Session) Fill(ctx context.Context, sel, text string) error {
	runCtx, cancel := s.runContext(ctx, s.opts.ActionTimeout)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Clear(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, text, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to fill %s: %w", sel, err)
	}
	return nil
}

// Click activates the element matched by sel.
func (s *Session) Click(ctx context.Context, sel string) error {
	runCtx, cancel := s.runContext(ctx, s.opts.ActionTimeout)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Click(sel, chromedp.NodeVisible, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to click %s: %w", sel, err)
	}
	return nil
}

// Submit clicks sel and waits for the resulting navigation to settle.
func (s *Session) Submit(ctx context.Context, sel string) error {
	runCtx, cancel := s.runContext(ctx, s.opts.NavigateTimeout)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Click(sel, chromedp.NodeVisible, chromedp.ByQuery),
		chromedp.Sleep(s.opts.SettleDelay),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to submit via %s: %w", sel, err)
	}
	return nil
}

// Upload attaches local files to the file input matched by sel.
func (s *Session) Upload(ctx context.Context, sel string, paths []string) error {
	runCtx, cancel := s.runContext(ctx, s.opts.ActionTimeout)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.SetUploadFiles(sel, paths, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to upload files to %s: %w", sel, err)
	}
	return nil
}

// Present reports whether sel matches at least one element right now. It uses
// a short probe timeout and never waits for the element to appear; wait policy
// belongs to Navigate and the settle delay.
func (s *Session) Present(ctx context.Context, sel string) bool {
	runCtx, cancel := s.runContext(ctx, s.opts.ProbeTimeout)
	defer cancel()

	var count int
	err := chromedp.Run(runCtx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll(%q).length`, sel), &count),
	)
	return err == nil && count > 0
}

// CurrentURL returns the active page's location.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	runCtx, cancel := s.runContext(ctx, s.opts.ActionTimeout)
	defer cancel()

	var url string
	if err := chromedp.Run(runCtx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read current URL: %w", err)
	}
	return url, nil
}

// HTML returns the page's rendered outer HTML for content-based predicates.
func (s *Session) HTML(ctx context.Context) (string, error) {
	runCtx, cancel := s.runContext(ctx, s.opts.ActionTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return html, nil
}

// Screenshot captures the viewport and writes it under the configured
// screenshot directory. It is diagnostic and best-effort: with no directory
// configured it is a no-op, and failures are logged, never propagated.
func (s *Session) Screenshot(ctx context.Context, label string) {
	if s.opts.ScreenshotDir == "" {
		return
	}

	runCtx, cancel := s.runContext(ctx, s.opts.ActionTimeout)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(runCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		s.logger.Warn("screenshot capture failed", zap.String("label", label), zap.Error(err))
		return
	}

	name := fmt.Sprintf("%s-%s.png", time.Now().Format("20060102-150405"), sanitizeLabel(label))
	path := filepath.Join(s.opts.ScreenshotDir, name)
	if err := os.MkdirAll(s.opts.ScreenshotDir, 0o755); err != nil {
		s.logger.Warn("screenshot dir creation failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		s.logger.Warn("screenshot write failed", zap.String("path", path), zap.Error(err))
		return
	}
	s.logger.Debug("screenshot saved", zap.String("path", path))
}

// Close tears down the page context, then the allocator and its browser
// process. It is idempotent and safe to call from any exit path.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.cancelCtx != nil {
		s.cancelCtx()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
}

// runContext derives the context chromedp actions run under: the session's
// browser context bounded by the given timeout, abandoned early if the
// caller's context is done.
func (s *Session) runContext(caller context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	stop := context.AfterFunc(caller, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func sanitizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, label)
}
