package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nazmul-nhb/nhb-express/pkg/version"
)

// rootFlags holds the parsed global and generator flags.
type rootFlags struct {
	database       string
	packageManager string
	force          bool
	nonInteractive bool
	skipInstall    bool
	prefixOutput   bool
	catalog        string
	templatesDir   string
	configPath     string
	verbose        bool
}

// app carries the state shared by the command tree.
type app struct {
	deps  *Dependencies
	flags *rootFlags
}

// NewRootCmd builds the command tree with dependencies created on demand.
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

// newRootCmd builds the command tree. A non-nil injected set replaces
// InitDependencies.
func newRootCmd(injected *Dependencies) *cobra.Command {
	a := &app{deps: injected, flags: &rootFlags{}}

	cmd := &cobra.Command{
		Use:   "nhb-express [project-name]",
		Short: "Scaffold an Express + TypeScript server",
		Long: `nhb-express creates a ready-to-run Express + TypeScript server.

It asks for a project name, a database with its ODM/ORM and a package
manager, copies the matching template, writes package.json, installs the
dependencies and runs the schema tooling of the chosen ORM.

Flags preselect answers; with --non-interactive nothing is asked.`,
		Example: `  nhb-express
  nhb-express my-server -d drizzle -p pnpm
  nhb-express my-server --non-interactive --force --skip-install`,
		Version:       version.Get().Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.deps != nil {
				return nil
			}
			d, err := InitDependencies(cmd, a.flags)
			if err != nil {
				return err
			}
			a.deps = d
			return nil
		},
		RunE: a.runCreate,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("nhb-express %s\n", version.Get()))

	f := a.flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/nhb-express/config.yaml)")
	pf.StringVar(&f.catalog, "catalog", "", "catalog YAML replacing the built-in choices")
	pf.StringVar(&f.templatesDir, "templates-dir", "", "directory with one template per database choice")
	pf.BoolVar(&f.prefixOutput, "prefix-output", false, "prefix package manager output with a gutter")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "print debug logs to stderr")

	lf := cmd.Flags()
	lf.StringVarP(&f.database, "database", "d", "", "database + ODM/ORM choice (see 'nhb-express list')")
	lf.StringVarP(&f.packageManager, "package-manager", "p", "", "package manager: pnpm, npm or yarn")
	lf.BoolVar(&f.force, "force", false, "replace an existing directory without asking")
	lf.BoolVar(&f.nonInteractive, "non-interactive", false, "never prompt; use flags and configured defaults")
	lf.BoolVar(&f.skipInstall, "skip-install", false, "stop after writing package.json")

	cmd.AddCommand(newListCmd(a), newVersionCmd())
	return cmd
}

// ExecuteContext runs the command tree with ctx, which cancels prompts and
// child processes when done.
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
