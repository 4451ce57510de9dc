// Package wizard collects a generation request through interactive
// prompts built on huh.
package wizard

import "errors"

// WizardResult is the set of answers a run produces.
type WizardResult struct {
	ProjectName    string // trimmed, non-empty
	Database       string // catalog database ID
	PackageManager string // catalog package manager ID
}

// Answer is the outcome of a single prompt: either a value or a
// cancellation. Callers must unwrap it before using the value.
type Answer[T any] struct {
	value     T
	cancelled bool
}

// Value wraps an answered prompt.
func Value[T any](v T) Answer[T] {
	return Answer[T]{value: v}
}

// Cancelled marks a prompt the user aborted.
func Cancelled[T any]() Answer[T] {
	return Answer[T]{cancelled: true}
}

// Unwrap returns the value and true, or the zero value and false when
// the prompt was cancelled.
func (a Answer[T]) Unwrap() (T, bool) {
	return a.value, !a.cancelled
}

// IsCancelled reports whether the prompt was aborted.
func (a Answer[T]) IsCancelled() bool {
	return a.cancelled
}

// QuestionType selects the prompt widget.
type QuestionType int

const (
	QuestionTypeSelect QuestionType = iota // pick one of Options
	QuestionTypeInput                      // free text
)

// Question is one prompt of the generator.
type Question struct {
	ID          string
	Type        QuestionType
	Title       string
	Description string
	Placeholder string
	Options     []Option
	Default     string
	Validate    func(string) error
}

// Option is one entry of a select question.
type Option struct {
	Label string
	Value string // catalog ID returned when chosen
	Hint  string // e.g. the driver a database choice uses
}

// Display returns the label with its hint, e.g. "pnpm" or
// "PostgreSQL + Drizzle (Driver: postgres-js)".
func (o Option) Display() string {
	if o.Hint == "" {
		return o.Label
	}
	return o.Label + " (" + o.Hint + ")"
}

var (
	// ErrCancelled is returned when the user aborts a prompt.
	ErrCancelled = errors.New("process cancelled by user")
	// ErrNoOptions is returned when a select question has nothing to offer.
	ErrNoOptions = errors.New("select question has no options")
)
