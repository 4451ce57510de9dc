package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CopyResult lists what a copy created, relative to the destination.
type CopyResult struct {
	Dirs    []string
	Files   []string
	Renamed []string // dotfiles produced by RenameDotFiles, e.g. ".env"
}

// Copier mirrors a template tree into a destination directory.
type Copier interface {
	// Copy writes every directory and file of fsys under dest, byte for
	// byte. dest must already exist.
	Copy(ctx context.Context, fsys fs.FS, dest string) (*CopyResult, error)
}

// ProgressFunc is called after each file is written.
type ProgressFunc func(relPath string)

// copier is the concrete implementation of Copier.
type copier struct {
	onFile ProgressFunc
	logger *slog.Logger
}

// CopierOption configures a Copier.
type CopierOption func(*copier)

// WithProgress registers a callback invoked once per copied file.
func WithProgress(fn ProgressFunc) CopierOption {
	return func(c *copier) {
		c.onFile = fn
	}
}

// WithLogger sets the logger for the copier.
func WithLogger(l *slog.Logger) CopierOption {
	return func(c *copier) {
		c.logger = l
	}
}

// NewCopier creates a Copier.
func NewCopier(opts ...CopierOption) Copier {
	c := &copier{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy walks fsys and writes every entry to dest. Cancellation is checked
// before each entry.
func (c *copier) Copy(ctx context.Context, fsys fs.FS, dest string) (*CopyResult, error) {
	dest = filepath.Clean(dest)
	info, err := os.Stat(dest)
	if err != nil {
		return nil, fmt.Errorf("template copy: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template copy: %s is not a directory", dest)
	}

	result := &CopyResult{}
	err = fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if err := validateCopyPath(dest, p); err != nil {
			return err
		}

		target := filepath.Join(dest, filepath.FromSlash(p))
		if entry.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("template copy mkdir %q: %w", p, err)
			}
			result.Dirs = append(result.Dirs, p)
			return nil
		}

		if err := copyFile(fsys, p, target); err != nil {
			return err
		}
		result.Files = append(result.Files, p)
		if c.onFile != nil {
			c.onFile(p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("template copied", "dest", dest, "dirs", len(result.Dirs), "files", len(result.Files))
	return result, nil
}

// copyFile streams one file from fsys to target. Shell scripts keep the
// executable bit.
func copyFile(fsys fs.FS, name, target string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("template copy read %q: %w", name, err)
	}
	defer src.Close()

	perm := fs.FileMode(0o644)
	if strings.HasSuffix(name, ".sh") {
		perm = 0o755
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("template copy mkdir %q: %w", filepath.Dir(target), err)
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("template copy write %q: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("template copy write %q: %w", target, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("template copy close %q: %w", target, err)
	}
	return nil
}

// RenameDotFiles renames each plain-named file in dir to its dotfile form,
// e.g. "env" to ".env". Every name must exist; an existing dotfile is
// replaced.
func RenameDotFiles(dir string, names []string) ([]string, error) {
	renamed := make([]string, 0, len(names))
	for _, name := range names {
		from := filepath.Join(dir, name)
		to := filepath.Join(dir, "."+name)
		if err := os.Rename(from, to); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return renamed, fmt.Errorf("rename %s to .%s: template has no %s file: %w", name, name, name, err)
			}
			return renamed, fmt.Errorf("rename %s to .%s: %w", name, name, err)
		}
		renamed = append(renamed, "."+name)
	}
	return renamed, nil
}

// validateCopyPath ensures a template path does not escape dest.
func validateCopyPath(dest, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	absPath := filepath.Join(absDest, cleaned)
	if !strings.HasPrefix(absPath, absDest+string(filepath.Separator)) && absPath != absDest {
		return fmt.Errorf("%w: %q escapes destination", ErrPathTraversal, relPath)
	}
	return nil
}
