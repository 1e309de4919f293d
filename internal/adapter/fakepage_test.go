package adapter

import (
	"context"
	"errors"

	"github.com/jonathan/panelsync/internal/browser"
)

// fakePage scripts a panel's behavior for engine tests: which selectors are
// present, where navigations land, and what the page looks like after submit.
type fakePage struct {
	present  map[string]bool
	redirect map[string]string // navigate target -> actual landing URL
	navErr   map[string]error

	currentURL      string
	html            string
	urlAfterSubmit  string
	htmlAfterSubmit string

	navigations []string
	fills       map[string]string
	fillOrder   []string
	clicks      []string
	submits     []string
	uploads     map[string][]string
	screenshots []string
	setCookies  [][]browser.Cookie
	cookies     []browser.Cookie
	cookiesErr  error
	closeCount  int
}

func newFakePage() *fakePage {
	return &fakePage{
		present:  map[string]bool{},
		redirect: map[string]string{},
		navErr:   map[string]error{},
		fills:    map[string]string{},
		uploads:  map[string][]string{},
	}
}

func (f *fakePage) Navigate(_ context.Context, url string) error {
	f.navigations = append(f.navigations, url)
	if err := f.navErr[url]; err != nil {
		return err
	}
	if landed, ok := f.redirect[url]; ok {
		f.currentURL = landed
	} else {
		f.currentURL = url
	}
	return nil
}

func (f *fakePage) Fill(_ context.Context, sel, text string) error {
	f.fills[sel] = text
	f.fillOrder = append(f.fillOrder, sel)
	return nil
}

func (f *fakePage) Click(_ context.Context, sel string) error {
	f.clicks = append(f.clicks, sel)
	return nil
}

func (f *fakePage) Submit(_ context.Context, sel string) error {
	f.submits = append(f.submits, sel)
	if f.urlAfterSubmit != "" {
		f.currentURL = f.urlAfterSubmit
	}
	if f.htmlAfterSubmit != "" {
		f.html = f.htmlAfterSubmit
	}
	return nil
}

func (f *fakePage) Upload(_ context.Context, sel string, paths []string) error {
	f.uploads[sel] = paths
	return nil
}

func (f *fakePage) Present(_ context.Context, sel string) bool {
	return f.present[sel]
}

func (f *fakePage) CurrentURL(_ context.Context) (string, error) {
	return f.currentURL, nil
}

func (f *fakePage) HTML(_ context.Context) (string, error) {
	return f.html, nil
}

func (f *fakePage) Screenshot(_ context.Context, label string) {
	f.screenshots = append(f.screenshots, label)
}

func (f *fakePage) Cookies(_ context.Context) ([]browser.Cookie, error) {
	if f.cookiesErr != nil {
		return nil, f.cookiesErr
	}
	return f.cookies, nil
}

func (f *fakePage) SetCookies(_ context.Context, cookies []browser.Cookie) error {
	f.setCookies = append(f.setCookies, cookies)
	return nil
}

func (f *fakePage) Close() {
	f.closeCount++
}

var errNetwork = errors.New("net::ERR_CONNECTION_TIMED_OUT")
