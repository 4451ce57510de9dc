package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List database choices and package managers",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runList()
		},
	}
}

// runList prints the catalog as two tables.
func (a *app) runList() error {
	d := a.deps
	theme := d.Theme

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	style := func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}
		return cell
	}

	dbs := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Muted).
		StyleFunc(style).
		Headers("ID", "DATABASE + ODM/ORM", "ENGINE", "STATUS")
	for _, db := range d.Catalog.Databases {
		status := "available"
		if db.ComingSoon {
			status = "coming soon"
		}
		dbs.Row(db.ID, db.Label, string(db.Engine), status)
	}

	pms := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Muted).
		StyleFunc(style).
		Headers("ID", "PACKAGE MANAGER", "RUNTIME", "DEV")
	for _, pm := range d.Catalog.PackageManagers {
		label := pm.Label
		if label == "" {
			label = pm.ID
		}
		pms.Row(pm.ID, label,
			pm.AddCommand(false, []string{"<deps>"}).String(),
			pm.AddCommand(true, []string{"<deps>"}).String(),
		)
	}

	_, err := fmt.Fprintf(d.Stdout, "%s\n%s\n\n%s\n%s\n",
		theme.Title.Render("Databases"), dbs.Render(),
		theme.Title.Render("Package managers"), pms.Render(),
	)
	return err
}
