package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nazmul-nhb/nhb-express/internal/ui"
)

// Prompter asks single questions. A user abort is reported as a cancelled
// Answer; the error return is reserved for failures.
type Prompter interface {
	Input(ctx context.Context, q Question) (Answer[string], error)
	Select(ctx context.Context, q Question) (Answer[string], error)
	Confirm(ctx context.Context, title string, def bool) (Answer[bool], error)
}

// HuhPrompter implements Prompter with huh forms. Each question runs as
// its own form to avoid the huh v0.8.x YOffset scroll bug that occurs when
// multiple groups share a single viewport.
type HuhPrompter struct {
	theme      *huh.Theme
	accessible bool
}

// NewHuhPrompter creates a prompter. Accessible mode reads plain lines from
// stdin, which suits piped input and screen readers.
func NewHuhPrompter(accessible bool) *HuhPrompter {
	return &HuhPrompter{theme: newWizardTheme(), accessible: accessible}
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) (bool, error) {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithAccessible(p.accessible)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return false, nil
		}
		return false, fmt.Errorf("prompt error: %w", err)
	}
	return true, nil
}

// Input asks for free text.
func (p *HuhPrompter) Input(ctx context.Context, q Question) (Answer[string], error) {
	value := q.Default
	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Placeholder(q.Placeholder).
		Value(&value)
	if q.Validate != nil {
		inp = inp.Validate(q.Validate)
	}
	ok, err := p.run(ctx, inp)
	if err != nil || !ok {
		return Cancelled[string](), err
	}
	return Value(value), nil
}

// Select asks for one of q.Options, preselecting q.Default.
func (p *HuhPrompter) Select(ctx context.Context, q Question) (Answer[string], error) {
	if len(q.Options) == 0 {
		return Cancelled[string](), fmt.Errorf("%s: %w", q.ID, ErrNoOptions)
	}
	opts := make([]huh.Option[string], len(q.Options))
	for i, o := range q.Options {
		opts[i] = huh.NewOption(o.Display(), o.Value)
	}

	value := q.Default
	sel := huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(&value)
	ok, err := p.run(ctx, sel)
	if err != nil || !ok {
		return Cancelled[string](), err
	}
	return Value(value), nil
}

// Confirm asks a yes/no question.
func (p *HuhPrompter) Confirm(ctx context.Context, title string, def bool) (Answer[bool], error) {
	value := def
	c := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	ok, err := p.run(ctx, c)
	if err != nil || !ok {
		return Cancelled[bool](), err
	}
	return Value(value), nil
}

// Collector turns answers into a WizardResult, skipping questions whose
// value is already known.
type Collector struct {
	prompter Prompter
	logger   *slog.Logger
}

// NewCollector creates a Collector. A nil logger discards output.
func NewCollector(p Prompter, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Collector{prompter: p, logger: logger}
}

// Run asks every question in order. Valid fields already set in preset are
// kept and their questions skipped; an invalid preset is asked again. A cancelled answer stops the run with
// ErrCancelled.
func (c *Collector) Run(ctx context.Context, questions []Question, preset WizardResult) (*WizardResult, error) {
	result := preset
	for i := range questions {
		q := &questions[i]
		ask := *q
		if v := fieldValue(&result, q.ID); v != nil && *v != "" {
			verr := validate(q, *v)
			if verr == nil {
				c.logger.Debug("question answered by flag", "id", q.ID, "value", *v)
				continue
			}
			c.logger.Debug("preset answer rejected", "id", q.ID, "error", verr)
			ask.Description = verr.Error()
		}

		value, err := c.ask(ctx, ask)
		if err != nil {
			return nil, err
		}
		if q.ID == QuestionProjectName {
			value = strings.TrimSpace(value)
		}
		if dst := fieldValue(&result, q.ID); dst != nil {
			*dst = value
		}
	}
	return &result, nil
}

// ask prompts until the answer passes q.Validate. Prompters that check
// inline never loop; the rejection is shown as the description otherwise.
func (c *Collector) ask(ctx context.Context, q Question) (string, error) {
	for {
		var (
			ans Answer[string]
			err error
		)
		switch q.Type {
		case QuestionTypeSelect:
			ans, err = c.prompter.Select(ctx, q)
		default:
			ans, err = c.prompter.Input(ctx, q)
		}
		if err != nil {
			return "", err
		}
		value, ok := ans.Unwrap()
		if !ok {
			return "", ErrCancelled
		}
		verr := validate(&q, value)
		if verr == nil {
			return value, nil
		}
		c.logger.Debug("answer rejected", "id", q.ID, "error", verr)
		q.Description = verr.Error()
		q.Default = ""
	}
}

func validate(q *Question, value string) error {
	if q.Validate == nil {
		return nil
	}
	return q.Validate(value)
}

// ConfirmOverwrite asks whether an existing directory may be replaced.
// The answer defaults to no; an abort yields ErrCancelled.
func (c *Collector) ConfirmOverwrite(ctx context.Context, name string) (bool, error) {
	ans, err := c.prompter.Confirm(ctx, OverwriteTitle(name), false)
	if err != nil {
		return false, err
	}
	ok, answered := ans.Unwrap()
	if !answered {
		return false, ErrCancelled
	}
	return ok, nil
}

// fieldValue maps a question ID to the result field it fills.
func fieldValue(r *WizardResult, id string) *string {
	switch id {
	case QuestionProjectName:
		return &r.ProjectName
	case QuestionDatabase:
		return &r.Database
	case QuestionPackageManager:
		return &r.PackageManager
	}
	return nil
}

// adaptive pairs a light-terminal shade with the dark palette color.
func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// newWizardTheme styles prompts like the console frame: a thin left rule,
// a bold title and the green accent for the active choice.
func newWizardTheme() *huh.Theme {
	accent := adaptive("#15803D", ui.ColorPrimary)
	info := adaptive("#0369A1", ui.ColorSecondary)
	fail := adaptive("#DC2626", ui.ColorError)
	dim := adaptive("#6B7280", ui.ColorMuted)
	rule := adaptive("#D1D5DB", ui.ColorBorder)

	t := huh.ThemeBase()
	f := &t.Focused
	f.Base = f.Base.
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(accent)
	f.Card = f.Base
	f.Title = f.Title.Bold(true)
	f.Description = f.Description.Foreground(dim).Italic(true)
	f.ErrorIndicator = f.ErrorIndicator.Foreground(fail)
	f.ErrorMessage = f.ErrorMessage.Foreground(fail)
	f.SelectSelector = f.SelectSelector.Foreground(accent).SetString("› ")
	f.Option = f.Option.Foreground(dim)
	f.SelectedOption = f.SelectedOption.Foreground(accent).Bold(true)
	f.TextInput.Prompt = f.TextInput.Prompt.Foreground(info)
	f.TextInput.Cursor = f.TextInput.Cursor.Foreground(accent)
	f.TextInput.Placeholder = f.TextInput.Placeholder.Foreground(dim)
	f.FocusedButton = f.FocusedButton.Foreground(lipgloss.Color("#0B0F14")).Background(accent)
	f.BlurredButton = f.BlurredButton.Foreground(dim)

	// Answered questions keep their text but lose the accent rule.
	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(rule)
	t.Blurred.Card = t.Blurred.Base
	return t
}
