package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nazmul-nhb/nhb-express/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// Needs neither config nor catalog.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "nhb-express %s\n", version.Get())
			return err
		},
	}
}
