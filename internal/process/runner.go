package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Command describes one external invocation.
type Command struct {
	Name string
	Args []string
	Dir  string // working directory; empty means the current one
}

// String renders the command line separated by spaces.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes external commands to completion.
type Runner interface {
	// Run starts cmd and blocks until it exits. A non-zero exit is
	// reported as *ExitError.
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner implements Runner with os/exec. Child stdout and stderr are
// drained concurrently and relayed line by line to the configured writers.
type ExecRunner struct {
	stdout, stderr io.Writer
	outFn, errFn   Transform
	logger         *slog.Logger
}

// Compile-time interface compliance check.
var _ Runner = (*ExecRunner)(nil)

// Option configures an ExecRunner.
type Option func(*ExecRunner)

// WithOutput sets where child stdout and stderr are relayed.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *ExecRunner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithTransforms sets per-stream line transforms. Nil leaves a stream untouched.
func WithTransforms(stdout, stderr Transform) Option {
	return func(r *ExecRunner) {
		r.outFn = stdout
		r.errFn = stderr
	}
}

// WithLogger sets the logger for the runner.
func WithLogger(l *slog.Logger) Option {
	return func(r *ExecRunner) {
		r.logger = l
	}
}

// NewExecRunner creates an ExecRunner that relays to os.Stdout and os.Stderr.
func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: slog.Default().With("module", "process"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = os.Stdin

	if r.passthrough() {
		// The child writes to the terminal itself and keeps its TTY features.
		c.Stdout, c.Stderr = r.stdout, r.stderr
		r.logger.Debug("starting command", "cmd", cmd.String(), "dir", cmd.Dir, "relay", false)
		if err := c.Start(); err != nil {
			return fmt.Errorf("start %s: %w", cmd.Name, err)
		}
		return r.wait(c, cmd, nil)
	}

	stdout, err := c.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe for %s: %w", cmd.Name, err)
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe for %s: %w", cmd.Name, err)
	}

	r.logger.Debug("starting command", "cmd", cmd.String(), "dir", cmd.Dir, "relay", true)

	if err := c.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Name, err)
	}

	// Both pipes must be drained before Wait closes them. Relay keeps
	// reading after a failed write, so a broken destination cannot stall
	// the child.
	var g errgroup.Group
	g.Go(func() error { return Relay(r.stdout, stdout, r.outFn) })
	g.Go(func() error { return Relay(r.stderr, stderr, r.errFn) })
	return r.wait(c, cmd, g.Wait())
}

// passthrough reports whether the child can write to the destinations
// directly: no transforms and both destinations are files.
func (r *ExecRunner) passthrough() bool {
	if r.outFn != nil || r.errFn != nil {
		return false
	}
	_, outFile := r.stdout.(*os.File)
	_, errFile := r.stderr.(*os.File)
	return outFile && errFile
}

// wait reaps the child and reports its exit status before any relay error.
func (r *ExecRunner) wait(c *exec.Cmd, cmd Command, relayErr error) error {
	waitErr := c.Wait()
	if waitErr != nil {
		var ee *exec.ExitError
		if errors.As(waitErr, &ee) {
			r.logger.Debug("command failed", "cmd", cmd.String(), "code", ee.ExitCode())
			code := ee.ExitCode()
			if code < 0 {
				// killed by a signal, e.g. context cancellation
				code = 1
			}
			return &ExitError{Command: cmd.String(), Code: code, Err: waitErr}
		}
		return fmt.Errorf("wait %s: %w", cmd.Name, waitErr)
	}
	if relayErr != nil {
		return fmt.Errorf("relay output of %s: %w", cmd.Name, relayErr)
	}

	r.logger.Debug("command finished", "cmd", cmd.String())
	return nil
}
