// Package show implements `atlas show`.
package show

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/atlas/internal/appcontext"
	"github.com/agentstation/atlas/internal/cmd/output"
)

// NewCommand creates the show command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		GroupID: "core",
		Short:   "Show one descriptor",
		Example: `  atlas show ch.swisstopo.swissimage10
  atlas show ch.swisstopo.swissimage10 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ResolveFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			d, err := client.Descriptor(args[0])
			if err != nil {
				return err
			}

			return output.Descriptor(cmd.OutOrStdout(), format, d)
		},
	}
}
