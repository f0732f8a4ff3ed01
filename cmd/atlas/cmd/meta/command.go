// Package meta implements `atlas meta`.
package meta

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/atlas/internal/appcontext"
	"github.com/agentstation/atlas/internal/cmd/output"
)

// NewCommand creates the meta command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "meta",
		GroupID: "management",
		Short:   "Show catalog metadata",
		Long: `Meta prints the catalog version, the number of descriptors and the
creation and modification times.

Opening a catalog loads it, and every load bumps the version by one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ResolveFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			return output.Metadata(cmd.OutOrStdout(), format, client.Root(), client.Metadata())
		},
	}
}
