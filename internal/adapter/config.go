package adapter

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

// LoginSelectors holds the ordered candidate lists for the login form.
// Candidate order encodes site-specific knowledge and is preserved exactly.
type LoginSelectors struct {
	Identifier []string `json:"identifier" validate:"required,min=1"`
	Password   []string `json:"password" validate:"required,min=1"`
	Submit     []string `json:"submit" validate:"required,min=1"`
}

// DiarySelectors locates the diary surface and its posting form. Labels for
// the "new post" control vary across panels (新規投稿, 新規作成, icon buttons),
// hence the ordered candidates. Title/Body/Image are optional: some panels
// have a single text area, some no upload control.
type DiarySelectors struct {
	ListPath string   `json:"list_path" validate:"required"`
	NewPost  []string `json:"new_post" validate:"required,min=1"`
	Title    []string `json:"title,omitempty"`
	Body     []string `json:"body,omitempty"`
	Image    []string `json:"image,omitempty"`
	Submit   []string `json:"submit" validate:"required,min=1"`
}

// CastSelectors is the field-mapping table for profile updates. An empty
// candidate list means the panel has no such field and it is skipped.
type CastSelectors struct {
	EditPath string   `json:"edit_path" validate:"required"`
	Name     []string `json:"name,omitempty"`
	Age      []string `json:"age,omitempty"`
	Height   []string `json:"height,omitempty"`
	Bust     []string `json:"bust,omitempty"`
	Waist    []string `json:"waist,omitempty"`
	Hip      []string `json:"hip,omitempty"`
	Cup      []string `json:"cup,omitempty"`
	Comment  []string `json:"comment,omitempty"`
	Submit   []string `json:"submit" validate:"required,min=1"`
}

// ScheduleSelectors locates the work-schedule form. AddRow is optional; on
// panels with a fixed weekly grid the per-entry inputs are resolved in place.
type ScheduleSelectors struct {
	PagePath string   `json:"page_path" validate:"required"`
	AddRow   []string `json:"add_row,omitempty"`
	Date     []string `json:"date" validate:"required,min=1"`
	Start    []string `json:"start" validate:"required,min=1"`
	End      []string `json:"end" validate:"required,min=1"`
	Status   []string `json:"status,omitempty"`
	Submit   []string `json:"submit" validate:"required,min=1"`
}

// Config is the complete data-driven description of one target panel: its
// URLs, its selector tables, and its login-success predicate. Operations
// whose selector table is nil are unsupported on that target.
type Config struct {
	Name     string `json:"name" validate:"required,min=1"`
	BaseURL  string `json:"base_url" validate:"required,url"`
	LoginURL string `json:"login_url" validate:"required,url"`

	Login    LoginSelectors     `json:"login" validate:"required"`
	Diary    *DiarySelectors    `json:"diary,omitempty"`
	Cast     *CastSelectors     `json:"cast,omitempty"`
	Schedule *ScheduleSelectors `json:"schedule,omitempty"`

	// Success is the login-success predicate. Nil falls back to URLClean.
	Success SuccessPredicate `json:"-"`
	// SuccessChecks names the predicates for JSON-loaded configs.
	SuccessChecks []string `json:"success_checks,omitempty"`
}

// Validate validates the Config using the validator, then checks predicate
// names and URL resolvability.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	for _, name := range c.SuccessChecks {
		if _, ok := predicateByName(name); !ok {
			return fmt.Errorf("config %s: unknown success check %q", c.Name, name)
		}
	}
	return nil
}

// predicate returns the effective login-success predicate.
func (c *Config) predicate() SuccessPredicate {
	if c.Success != nil {
		return c.Success
	}
	if len(c.SuccessChecks) > 0 {
		preds := make([]SuccessPredicate, 0, len(c.SuccessChecks))
		for _, name := range c.SuccessChecks {
			if p, ok := predicateByName(name); ok {
				preds = append(preds, p)
			}
		}
		if len(preds) > 0 {
			return All(preds...)
		}
	}
	return URLClean
}

// resolveURL joins a possibly-relative panel path onto the target's base URL.
func (c *Config) resolveURL(path string) (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("config %s: invalid base URL: %w", c.Name, err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("config %s: invalid path %q: %w", c.Name, path, err)
	}
	return base.ResolveReference(ref).String(), nil
}
