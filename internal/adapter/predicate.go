package adapter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SuccessPredicate decides whether a post-login page represents an
// authenticated state, given the final URL and the rendered HTML. The URL
// heuristic alone misclassifies panels whose failure mode is a silent
// redirect to an unrelated error page, so the predicate is pluggable per
// target and composable.
type SuccessPredicate func(finalURL, html string) bool

// Predicate names accepted in JSON adapter configs.
const (
	PredicateURLClean    = "url-clean"
	PredicateNoLoginForm = "no-login-form"
)

// URLClean is the default heuristic: the final URL contains neither "login"
// nor "error". A heuristic, not a guarantee.
func URLClean(finalURL, _ string) bool {
	lower := strings.ToLower(finalURL)
	return lower != "" && !strings.Contains(lower, "login") && !strings.Contains(lower, "error")
}

// URLPrefix accepts any final URL under the given prefix.
func URLPrefix(prefix string) SuccessPredicate {
	return func(finalURL, _ string) bool {
		return strings.HasPrefix(finalURL, prefix)
	}
}

// NoLoginForm inspects the rendered HTML and rejects pages that still carry a
// password field, catching panels that re-render the login form on a URL the
// substring heuristic would call clean.
func NoLoginForm(_, html string) bool {
	if html == "" {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return doc.Find(`input[type="password"]`).Length() == 0
}

// All composes predicates; every one must accept.
func All(preds ...SuccessPredicate) SuccessPredicate {
	return func(finalURL, html string) bool {
		for _, p := range preds {
			if !p(finalURL, html) {
				return false
			}
		}
		return true
	}
}

// predicateByName maps a JSON config predicate name to its implementation.
func predicateByName(name string) (SuccessPredicate, bool) {
	switch name {
	case PredicateURLClean:
		return URLClean, true
	case PredicateNoLoginForm:
		return NoLoginForm, true
	}
	return nil, false
}
