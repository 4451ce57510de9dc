// Package cli provides the cobra command tree of nhb-express and the
// composition root that wires the generator's collaborators together.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nazmul-nhb/nhb-express/internal/catalog"
	"github.com/nazmul-nhb/nhb-express/internal/cli/wizard"
	"github.com/nazmul-nhb/nhb-express/internal/config"
	"github.com/nazmul-nhb/nhb-express/internal/process"
	"github.com/nazmul-nhb/nhb-express/internal/ui"
)

// Dependencies holds everything the commands use. It is the only place
// where concrete types are chosen; tests build their own instance.
type Dependencies struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Logger   *slog.Logger
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Console  *ui.Console
	Progress ui.Progress
	Prompter wizard.Prompter
	Runner   process.Runner
	Stdout   io.Writer
	Stderr   io.Writer
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"prefix_output": "prefix-output",
	"catalog":       "catalog",
	"templates_dir": "templates-dir",
}

// InitDependencies loads configuration and the catalog and builds the
// terminal and subprocess layers for cmd.
func InitDependencies(cmd *cobra.Command, flags *rootFlags) (*Dependencies, error) {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := newLogger(stderr, flags.verbose)

	loader := config.NewLoader(logger.With("module", "config"))
	for key, name := range flagKeys {
		if err := loader.BindFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return nil, err
		}
	}
	cfg, err := loader.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	theme := ui.NewTheme()
	hm := ui.NewHeadlessManager()

	runOpts := []process.Option{
		process.WithOutput(stdout, stderr),
		process.WithLogger(logger.With("module", "process")),
	}
	if cfg.PrefixOutput {
		gutter := process.Prefix(theme.Bar.Render("│") + "  ")
		runOpts = append(runOpts, process.WithTransforms(gutter, gutter))
	}

	logger.Debug("dependencies initialized",
		"catalog", cfg.Catalog,
		"templatesDir", cfg.TemplatesDir,
		"headless", hm.IsHeadless(),
	)

	return &Dependencies{
		Config:   cfg,
		Catalog:  cat,
		Logger:   logger,
		Theme:    theme,
		Headless: hm,
		Console:  ui.NewConsole(theme, stdout),
		Progress: ui.NewProgress(theme, hm, stdout),
		Prompter: wizard.NewHuhPrompter(hm.IsHeadless()),
		Runner:   process.NewExecRunner(runOpts...),
		Stdout:   stdout,
		Stderr:   stderr,
	}, nil
}

// loadCatalog returns the catalog at path, or the embedded one when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("embedded catalog: %w", err)
		}
		return cat, nil
	}
	return catalog.Load(path)
}
