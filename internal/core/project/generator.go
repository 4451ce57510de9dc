package project

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/nazmul-nhb/nhb-express/internal/catalog"
	"github.com/nazmul-nhb/nhb-express/internal/defs"
	"github.com/nazmul-nhb/nhb-express/internal/template"
	"github.com/nazmul-nhb/nhb-express/internal/ui"
)

// Options configures one generation run.
type Options struct {
	Request     Request
	BaseDir     string // parent of the target; empty means the working directory
	Force       bool   // replace an existing target without asking
	SkipInstall bool   // stop after writing package.json
	Metadata    Metadata
}

// Result summarizes a generation run.
type Result struct {
	Target       string
	Replaced     bool // an existing directory was removed first
	Copied       *template.CopyResult
	ManifestPath string
	Installed    bool
}

// Generator creates a project from a validated request.
type Generator interface {
	Generate(ctx context.Context, opts Options) (*Result, error)
}

// Installer adds dependencies inside a project directory.
type Installer interface {
	Install(ctx context.Context, dir string, pm catalog.PackageManager, set catalog.DependencySet) error
}

// Migrator runs post-install schema tooling inside a project directory.
type Migrator interface {
	Migrate(ctx context.Context, dir string, db catalog.Database) error
}

// Confirmer asks whether an existing target may be replaced. It returns
// an error when the question itself was aborted.
type Confirmer interface {
	ConfirmOverwrite(ctx context.Context, name string) (bool, error)
}

// Reporter receives user-facing stage messages.
type Reporter interface {
	Step(msg string)
	Success(msg string)
}

// generator is the concrete implementation of Generator.
type generator struct {
	catalog      *catalog.Catalog
	installer    Installer
	migrator     Migrator
	confirmer    Confirmer // nil means an existing target is an error
	reporter     Reporter
	progress     ui.Progress // nil disables spinner and progress bar
	templatesDir string
	logger       *slog.Logger
}

// Option configures a Generator.
type Option func(*generator)

// WithConfirmer sets who is asked before an existing target is replaced.
func WithConfirmer(c Confirmer) Option {
	return func(g *generator) { g.confirmer = c }
}

// WithReporter sets where stage messages go.
func WithReporter(r Reporter) Option {
	return func(g *generator) { g.reporter = r }
}

// WithProgress enables the removal spinner and the copy progress bar.
func WithProgress(p ui.Progress) Option {
	return func(g *generator) { g.progress = p }
}

// WithTemplatesDir reads templates from dir instead of the embedded set.
func WithTemplatesDir(dir string) Option {
	return func(g *generator) { g.templatesDir = dir }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a Generator for the choices in cat.
func NewGenerator(cat *catalog.Catalog, installer Installer, migrator Migrator, opts ...Option) Generator {
	g := &generator{
		catalog:   cat,
		installer: installer,
		migrator:  migrator,
		reporter:  nopReporter{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the pipeline: validate, resolve the template, confirm and
// clear an existing target, copy, rename dotfiles, write the manifest,
// install, migrate. Stages run strictly in order. Nothing on disk changes
// until the overwrite decision is made.
func (g *generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	req := opts.Request
	db, pm, err := req.Validate(g.catalog)
	if err != nil {
		return nil, err
	}

	target, err := TargetDir(opts.BaseDir, req.ProjectName)
	if err != nil {
		return nil, err
	}

	src, err := template.Source(g.templatesDir, db.ID)
	if err != nil {
		return nil, err
	}
	files, err := template.Files(src)
	if err != nil {
		return nil, fmt.Errorf("list template %s: %w", db.ID, err)
	}

	g.logger.Info("generating project",
		"name", req.ProjectName,
		"database", db.ID,
		"packageManager", pm.ID,
		"target", target,
	)

	result := &Result{Target: target}

	found, err := exists(target)
	if err != nil {
		return nil, err
	}
	if found {
		if err := g.approveOverwrite(ctx, req.ProjectName, opts.Force); err != nil {
			return nil, err
		}
		if err := g.remove(req.ProjectName, target); err != nil {
			return nil, err
		}
		result.Replaced = true
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.Mkdir(target, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", req.ProjectName, err)
	}

	copied, err := g.copy(ctx, src, target, len(files))
	if err != nil {
		return nil, err
	}
	renamed, err := template.RenameDotFiles(target, defs.DotFiles)
	if err != nil {
		return nil, err
	}
	copied.Renamed = renamed
	result.Copied = copied

	manifest := BuildManifest(req, db, g.catalog.Scripts(db), opts.Metadata)
	result.ManifestPath, err = WriteManifest(target, manifest)
	if err != nil {
		return nil, err
	}

	if opts.SkipInstall {
		g.logger.Info("skipping dependency installation")
		return result, nil
	}

	g.reporter.Step("Installing dependencies...")
	if err := g.installer.Install(ctx, target, pm, g.catalog.Dependencies(db)); err != nil {
		return nil, err
	}
	if err := g.migrator.Migrate(ctx, target, db); err != nil {
		return nil, err
	}
	g.reporter.Success("Dependencies installed!")
	result.Installed = true

	g.logger.Info("project generated",
		"dirs", len(copied.Dirs),
		"files", len(copied.Files),
	)
	return result, nil
}

// approveOverwrite decides whether an existing target may be removed.
func (g *generator) approveOverwrite(ctx context.Context, name string, force bool) error {
	if force {
		g.logger.Debug("overwriting without confirmation", "name", name)
		return nil
	}
	if g.confirmer == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, name)
	}
	ok, err := g.confirmer.ConfirmOverwrite(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOverwriteDeclined
	}
	return nil
}

// remove deletes target recursively under a spinner.
func (g *generator) remove(name, target string) error {
	var sp ui.Spinner = nopSpinner{}
	if g.progress != nil {
		sp = g.progress.Spinner(fmt.Sprintf("Removing existing %q directory", name))
	}
	if err := os.RemoveAll(target); err != nil {
		sp.Stop(false, fmt.Sprintf("Failed to remove directory: %q!", name))
		return fmt.Errorf("remove %s: %w", name, err)
	}
	sp.Stop(true, fmt.Sprintf("Existing %q directory has been removed!", name))
	return nil
}

// copy mirrors the template into target, advancing a progress bar per file.
func (g *generator) copy(ctx context.Context, src fs.FS, target string, total int) (*template.CopyResult, error) {
	copts := []template.CopierOption{template.WithLogger(g.logger)}
	if g.progress != nil {
		bar := g.progress.Start("Copying template", total)
		defer bar.Done()
		copts = append(copts, template.WithProgress(func(p string) {
			bar.SetTitle(p)
			bar.Increment(1)
		}))
	}
	return template.NewCopier(copts...).Copy(ctx, src, target)
}

type nopReporter struct{}

func (nopReporter) Step(string)    {}
func (nopReporter) Success(string) {}

type nopSpinner struct{}

func (nopSpinner) SetTitle(string)   {}
func (nopSpinner) Stop(bool, string) {}
