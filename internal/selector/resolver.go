// Package selector resolves a logical form field ("username input", "submit
// button") to a concrete element by trying an ordered list of candidate CSS
// selectors against the live page. Selectors on externally-owned panels drift
// without notice, so candidate order is itself site-specific knowledge: the
// first present candidate always wins, and "none matched" is an ordinary
// outcome, not a fault. Waits and retries between attempts belong to the
// browser session, never to the resolver.
package selector

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no candidate matched the current page.
var ErrNotFound = errors.New("selector: no candidate matched")

// Prober reports whether an element matching a CSS selector is currently
// present on the page. The browser session implements this; tests use fakes.
type Prober interface {
	Present(ctx context.Context, selector string) bool
}

// Resolve tries each candidate in order and returns the first one present.
// It performs presence probes only; it never fills or clicks. After
// exhausting the list it returns ErrNotFound wrapped with the field name.
func Resolve(ctx context.Context, page Prober, field string, candidates []string) (string, error) {
	for _, sel := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if page.Present(ctx, sel) {
			return sel, nil
		}
	}
	return "", fmt.Errorf("%w: %s (tried %d candidates: %s)",
		ErrNotFound, field, len(candidates), strings.Join(candidates, ", "))
}
