package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// progressImpl implements the Progress interface.
type progressImpl struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewProgress creates a Progress writing to w, or os.Stdout when w is nil.
func NewProgress(theme *Theme, hm *HeadlessManager, w io.Writer) Progress {
	if w == nil {
		w = os.Stdout
	}
	return &progressImpl{theme: theme, headless: hm, writer: w}
}

func (p *progressImpl) plain() bool {
	return p.headless.IsHeadless() || p.theme.NoColor
}

// Start creates a determinate progress bar. Headless sessions get a line
// per step instead of an animated bar.
func (p *progressImpl) Start(title string, total int) ProgressBar {
	if p.plain() {
		return &headlessProgressBar{title: title, total: total, writer: p.writer}
	}
	return newInteractiveProgressBar(p.theme, title, total, p.writer)
}

// Spinner creates an indeterminate spinner. Headless sessions print the
// title once and the result on Stop.
func (p *progressImpl) Spinner(title string) Spinner {
	if p.plain() {
		_, _ = fmt.Fprintf(p.writer, "%s %s\n", p.theme.Muted.Render(symbolStep), title)
		return &headlessSpinner{theme: p.theme, writer: p.writer}
	}
	return newInteractiveSpinner(p.theme, title, p.writer)
}

// startProgram runs a bubbletea program that renders to w without taking
// over stdin or signal handling.
func startProgram(m tea.Model, w io.Writer) *tea.Program {
	p := tea.NewProgram(m,
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	go func() {
		_, _ = p.Run()
	}()
	return p
}

// resultLine renders the final line of a spinner.
func resultLine(theme *Theme, ok bool, msg string) string {
	if ok {
		return theme.Success.Render(symbolSuccess) + " " + msg
	}
	return theme.Error.Render(symbolFailure) + " " + msg
}

// --- spinner ---

type spinnerTitleMsg string

type spinnerStopMsg struct {
	ok  bool
	msg string
}

// spinnerModel animates a spinner until stopped, then renders the result.
type spinnerModel struct {
	theme   *Theme
	spinner spinner.Model
	title   string
	result  *spinnerStopMsg
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	return spinnerModel{theme: theme, spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
	case spinnerStopMsg:
		m.result = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.result != nil {
		return resultLine(m.theme, m.result.ok, m.result.msg) + "\n"
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// interactiveSpinner drives a spinnerModel in the background.
type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveSpinner(theme *Theme, title string, w io.Writer) *interactiveSpinner {
	return &interactiveSpinner{program: startProgram(newSpinnerModel(theme, title), w)}
}

func (s *interactiveSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

// Stop renders the result and waits for the program to exit. Only the
// first call has an effect.
func (s *interactiveSpinner) Stop(ok bool, msg string) {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{ok: ok, msg: msg})
		s.program.Wait()
	})
}

// --- progress bar ---

type progressIncrMsg int

type progressTitleMsg string

type progressDoneMsg struct{}

// progressModel renders a bar plus a [current/total] counter.
type progressModel struct {
	bar     progress.Model
	title   string
	current int
	total   int
	done    bool
}

func newProgressModel(theme *Theme, title string, total int) progressModel {
	bar := progress.New(
		progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary),
		progress.WithWidth(32),
	)
	return progressModel{bar: bar, title: title, total: total}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressIncrMsg:
		m.current = min(m.current+int(msg), m.total)
	case progressTitleMsg:
		m.title = string(msg)
	case progressDoneMsg:
		m.current = m.total
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}
	return fmt.Sprintf("%s [%d/%d] %s\n", m.bar.ViewAs(pct), m.current, m.total, m.title)
}

// interactiveProgressBar drives a progressModel in the background.
type interactiveProgressBar struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveProgressBar(theme *Theme, title string, total int, w io.Writer) *interactiveProgressBar {
	return &interactiveProgressBar{program: startProgram(newProgressModel(theme, title, total), w)}
}

func (b *interactiveProgressBar) Increment(n int) {
	b.program.Send(progressIncrMsg(n))
}

func (b *interactiveProgressBar) SetTitle(title string) {
	b.program.Send(progressTitleMsg(title))
}

// Done clears the bar and waits for the program to exit.
func (b *interactiveProgressBar) Done() {
	b.once.Do(func() {
		b.program.Send(progressDoneMsg{})
		b.program.Wait()
	})
}

// --- headless fallbacks ---

// headlessProgressBar prints one line per increment.
type headlessProgressBar struct {
	title   string
	total   int
	current int
	writer  io.Writer
}

func (b *headlessProgressBar) Increment(n int) {
	b.current = min(b.current+n, b.total)
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}

func (b *headlessProgressBar) SetTitle(title string) {
	b.title = title
}

// Done is silent; the last increment already reported completion.
func (b *headlessProgressBar) Done() {
	b.current = b.total
}

// headlessSpinner prints its result when stopped.
type headlessSpinner struct {
	theme   *Theme
	writer  io.Writer
	stopped bool
}

func (s *headlessSpinner) SetTitle(title string) {
	_, _ = fmt.Fprintf(s.writer, "%s %s\n", s.theme.Muted.Render(symbolStep), title)
}

func (s *headlessSpinner) Stop(ok bool, msg string) {
	if s.stopped {
		return
	}
	s.stopped = true
	_, _ = fmt.Fprintln(s.writer, resultLine(s.theme, ok, msg))
}
