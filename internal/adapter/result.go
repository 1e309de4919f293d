// Package adapter implements the common contract every target panel is driven
// through: login with stored credentials, then one posting operation. There is
// no subclass per site; one generic engine consumes a per-target Config of
// URLs and ordered selector candidate lists, so adding a target is data, not
// code. "Element not found" on an externally-owned panel is an ordinary,
// recoverable outcome — the orchestrator must always be able to continue to
// the next target.
package adapter

// Outcome classifies the result of one panel operation.
type Outcome int

const (
	// OutcomeFailed means the operation was attempted and did not complete.
	OutcomeFailed Outcome = iota
	// OutcomeSucceeded means the operation's submit control was found and
	// activated. The panel's own acceptance is not observable beyond that.
	OutcomeSucceeded
	// OutcomeUnsupported means this target's configuration carries no
	// selector table for the operation. It is a first-class outcome, not an
	// error: the orchestrator records it as an ordinary failure.
	OutcomeUnsupported
)

// String returns the outcome name for logs and audit reasons.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeUnsupported:
		return "unsupported"
	default:
		return "failed"
	}
}

// Result is the tagged outcome of one operation, with a human-readable reason
// on anything other than success.
type Result struct {
	Outcome Outcome
	Reason  string
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSucceeded
}

func succeeded() Result {
	return Result{Outcome: OutcomeSucceeded}
}

func failed(reason string) Result {
	return Result{Outcome: OutcomeFailed, Reason: reason}
}

func unsupported(op string) Result {
	return Result{Outcome: OutcomeUnsupported, Reason: op + " is not supported on this target"}
}

// LoginResult reports the outcome of Login. Session is nil unless the panel
// accepted the login; it is the only token of authenticated state — the
// engine keeps no logged-in flag of its own.
type LoginResult struct {
	Session    *Session
	ViaCookies bool
	Reason     string
}

// OK reports whether login produced an authenticated session.
func (r LoginResult) OK() bool {
	return r.Session != nil
}

// Session is the explicit authenticated-state value returned by a successful
// Login and required by every subsequent operation on the same engine.
type Session struct {
	engine *Engine
}
