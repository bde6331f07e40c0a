package domain

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by repositories and services when a record does not exist.
var ErrNotFound = errors.New("not found")

// Issue codes.
const (
	IssueInvalid     = "invalid"
	IssueInvalidForm = "invalid_form"
)

// Issue describes one rejected input field.
type Issue struct {
	Path    []string `json:"path"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
}

// ValidationError collects every issue found in an input.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, strings.Join(is.Path, ".")+": "+is.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add records an invalid field.
func (e *ValidationError) Add(path, message string) {
	e.Issues = append(e.Issues, Issue{Path: strings.Split(path, "."), Code: IssueInvalid, Message: message})
}

// AddForm records a form-level issue with no field path.
func (e *ValidationError) AddForm(message string) {
	e.Issues = append(e.Issues, Issue{Path: []string{}, Code: IssueInvalidForm, Message: message})
}

// Err returns e when it holds issues, nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}
