// Package deps installs a generated project's dependencies and runs the
// schema tooling of the chosen database layer.
package deps

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nazmul-nhb/nhb-express/internal/catalog"
	"github.com/nazmul-nhb/nhb-express/internal/process"
)

// Installer adds dependencies with one package manager invocation per list.
type Installer struct {
	runner process.Runner
	logger *slog.Logger
}

// NewInstaller creates an Installer. A nil logger discards output.
func NewInstaller(runner process.Runner, logger *slog.Logger) *Installer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Installer{runner: runner, logger: logger}
}

// Install adds set.Runtime and then set.Dev inside dir. The dev call is not
// attempted when the runtime call fails. An empty list is skipped, since
// package managers treat a bare add as "install everything".
func (i *Installer) Install(ctx context.Context, dir string, pm catalog.PackageManager, set catalog.DependencySet) error {
	steps := []struct {
		kind string
		dev  bool
		pkgs []string
	}{
		{"runtime", false, set.Runtime},
		{"dev", true, set.Dev},
	}

	for _, s := range steps {
		if len(s.pkgs) == 0 {
			i.logger.Debug("no dependencies to add", "kind", s.kind)
			continue
		}
		line := pm.AddCommand(s.dev, s.pkgs)
		cmd := process.Command{Name: line.Name(), Args: line.Args(), Dir: dir}

		i.logger.Debug("installing dependencies", "kind", s.kind, "count", len(s.pkgs), "cmd", cmd.Name)
		if err := i.runner.Run(ctx, cmd); err != nil {
			return fmt.Errorf("install %s dependencies with %s: %w", s.kind, pm.ID, err)
		}
	}
	return nil
}
