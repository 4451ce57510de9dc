package deps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nazmul-nhb/nhb-express/internal/catalog"
	"github.com/nazmul-nhb/nhb-express/internal/process"
)

// Migrator runs a database layer's schema generation and migration
// commands after installation.
type Migrator struct {
	runner process.Runner
	logger *slog.Logger
}

// NewMigrator creates a Migrator. A nil logger discards output.
func NewMigrator(runner process.Runner, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Migrator{runner: runner, logger: logger}
}

// Migrate runs db.Migrations in order inside dir and stops at the first
// failure. Nothing already done is rolled back. Tools installed into the
// project's node_modules/.bin take precedence over ones on PATH.
func (m *Migrator) Migrate(ctx context.Context, dir string, db catalog.Database) error {
	if len(db.Migrations) == 0 {
		m.logger.Debug("no migrations", "database", db.ID)
		return nil
	}
	for i, line := range db.Migrations {
		cmd := process.Command{Name: localBin(dir, line.Name()), Args: line.Args(), Dir: dir}
		m.logger.Debug("running migration", "database", db.ID, "step", i+1, "cmd", line.String())
		if err := m.runner.Run(ctx, cmd); err != nil {
			return fmt.Errorf("migrate %s (%s): %w", db.ID, line, err)
		}
	}
	return nil
}

// localBin returns the project-local executable for name when one exists.
func localBin(dir, name string) string {
	candidates := []string{name}
	if runtime.GOOS == "windows" {
		candidates = []string{name + ".cmd", name + ".exe"}
	}
	for _, c := range candidates {
		p := filepath.Join(dir, "node_modules", ".bin", c)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return name
}
