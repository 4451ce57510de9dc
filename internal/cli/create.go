package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nazmul-nhb/nhb-express/internal/cli/wizard"
	"github.com/nazmul-nhb/nhb-express/internal/core/project"
	"github.com/nazmul-nhb/nhb-express/internal/deps"
)

const (
	introTitle   = `🚀 Create Express + TypeScript App with "nhb-express"`
	cancelledMsg = "🛑 Process cancelled by user!"
	nextStepsTag = "🛈 Next Steps"
)

// runCreate collects the answers and runs the generator.
func (a *app) runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, f := a.deps, a.flags
	con := d.Console

	con.Intro(introTitle)

	preset := wizard.WizardResult{
		Database:       strings.TrimSpace(f.database),
		PackageManager: strings.TrimSpace(f.packageManager),
	}
	if len(args) == 1 {
		preset.ProjectName = strings.TrimSpace(args[0])
	}

	var (
		answers   *wizard.WizardResult
		confirmer project.Confirmer
	)
	if f.nonInteractive {
		if preset.ProjectName == "" {
			return a.fail(ErrProjectNameRequired)
		}
		if preset.Database == "" {
			preset.Database = d.Config.Defaults.Database
		}
		if preset.PackageManager == "" {
			preset.PackageManager = d.Config.Defaults.PackageManager
		}
		answers = &preset
	} else {
		collector := wizard.NewCollector(d.Prompter, d.Logger.With("module", "wizard"))
		questions := wizard.DefaultQuestions(d.Catalog, wizard.WizardResult{
			Database:       d.Config.Defaults.Database,
			PackageManager: d.Config.Defaults.PackageManager,
		})
		var err error
		answers, err = collector.Run(ctx, questions, preset)
		if err != nil {
			return a.fail(err)
		}
		confirmer = collector
	}

	templatesDir := d.Config.TemplatesDir
	if f.templatesDir != "" {
		templatesDir = f.templatesDir
	}

	opts := []project.Option{
		project.WithReporter(con),
		project.WithProgress(d.Progress),
		project.WithTemplatesDir(templatesDir),
		project.WithLogger(d.Logger.With("module", "project")),
	}
	if confirmer != nil {
		opts = append(opts, project.WithConfirmer(confirmer))
	}
	gen := project.NewGenerator(d.Catalog,
		deps.NewInstaller(d.Runner, d.Logger.With("module", "installer")),
		deps.NewMigrator(d.Runner, d.Logger.With("module", "migrator")),
		opts...,
	)

	req := project.NewRequest(answers.ProjectName, answers.Database, answers.PackageManager)
	result, err := gen.Generate(ctx, project.Options{
		Request:     req,
		Force:       f.force,
		SkipInstall: f.skipInstall,
		Metadata: project.Metadata{
			Author:  d.Config.Author,
			License: d.Config.License,
			Version: d.Config.Version,
		},
	})
	if err != nil {
		return a.fail(err)
	}

	if !result.Installed {
		con.Warn("Dependency installation skipped, run the install step below.")
	}
	if err := con.Note(nextStepsTag, nextSteps(req, result.Installed)); err != nil {
		d.Logger.Debug("render next steps", "error", err)
	}
	con.Outro(fmt.Sprintf("🎉 Project %q has been created successfully!", req.ProjectName))
	return nil
}

// nextSteps is the markdown shown after a successful run.
func nextSteps(req project.Request, installed bool) string {
	var b strings.Builder
	b.WriteString("```sh\n")
	fmt.Fprintf(&b, "cd %s\n", req.ProjectName)
	if !installed {
		fmt.Fprintf(&b, "%s install\n", req.PackageManager)
	}
	fmt.Fprintf(&b, "%s run dev\n", req.PackageManager)
	b.WriteString("```\n")
	return b.String()
}

// fail reports err on the console. A cancellation ends the run cleanly;
// anything else becomes an already-printed ExitError.
func (a *app) fail(err error) error {
	con := a.deps.Console
	if errors.Is(err, wizard.ErrCancelled) || errors.Is(err, project.ErrOverwriteDeclined) {
		con.Cancelled(cancelledMsg)
		return nil
	}

	msg := err.Error()
	if errors.Is(err, project.ErrTargetExists) {
		msg += " (use --force to replace it)"
	}
	con.Error(msg)
	return &ExitError{Err: err, Code: ExitCodeFromError(err), Printed: true}
}
