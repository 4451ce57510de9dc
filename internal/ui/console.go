package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

const (
	symbolStart   = "┌"
	symbolBar     = "│"
	symbolEnd     = "└"
	symbolStep    = "◇"
	symbolSuccess = "✔"
	symbolFailure = "✖"
	symbolWarning = "▲"
	symbolCancel  = "■"
)

// noteWidth is the word-wrap width for rendered notes.
const noteWidth = 60

// Console writes the framed, step-by-step output of a generator run.
type Console struct {
	theme *Theme
	w     io.Writer
}

// NewConsole creates a Console writing to w, or os.Stdout when w is nil.
func NewConsole(theme *Theme, w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{theme: theme, w: w}
}

func (c *Console) line(symbol, msg string) {
	_, _ = fmt.Fprintf(c.w, "%s  %s\n", symbol, msg)
}

// Intro opens the frame with a highlighted title.
func (c *Console) Intro(title string) {
	c.line(c.theme.Bar.Render(symbolStart), c.theme.Title.Render(title))
	c.gap()
}

func (c *Console) gap() {
	_, _ = fmt.Fprintln(c.w, c.theme.Bar.Render(symbolBar))
}

// Step reports a stage that is starting.
func (c *Console) Step(msg string) {
	c.line(c.theme.Muted.Render(symbolStep), msg)
}

// Success reports a stage that finished.
func (c *Console) Success(msg string) {
	c.line(c.theme.Success.Render(symbolSuccess), msg)
}

// Warn reports a non-fatal problem.
func (c *Console) Warn(msg string) {
	c.line(c.theme.Warning.Render(symbolWarning), msg)
}

// Error reports a fatal problem.
func (c *Console) Error(msg string) {
	c.line(c.theme.Error.Render(symbolFailure), msg)
}

// Note renders markdown inside a titled box.
func (c *Console) Note(title, markdown string) error {
	body, err := RenderMarkdown(markdown, c.theme.NoColor)
	if err != nil {
		return err
	}
	c.gap()
	c.line(c.theme.Muted.Render(symbolStep), title)
	_, _ = fmt.Fprintln(c.w, c.theme.Box.Render(body))
	c.gap()
	return nil
}

// Outro closes the frame.
func (c *Console) Outro(msg string) {
	c.line(c.theme.Bar.Render(symbolEnd), c.theme.Success.Render(msg))
}

// Cancelled closes the frame after the user aborted.
func (c *Console) Cancelled(msg string) {
	c.line(c.theme.Bar.Render(symbolEnd), c.theme.Error.Render(symbolCancel+" "+msg))
}

// RenderMarkdown renders markdown for the terminal. Plain rendering keeps
// the text free of escape sequences.
func RenderMarkdown(markdown string, plain bool) (string, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle(styles.NoTTYStyle)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(noteWidth))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}
