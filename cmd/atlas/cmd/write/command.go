// Package write implements `atlas write`.
package write

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/atlas/internal/appcontext"
	"github.com/agentstation/atlas/internal/cmd/output"
	"github.com/agentstation/atlas/pkg/save"
)

// NewCommand creates the write command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		force    bool
		noUpdate bool
	)

	cmd := &cobra.Command{
		Use:     "write",
		GroupID: "core",
		Short:   "Write all descriptors and bump the catalog version",
		Long: `Write opens the catalog, reconciles every descriptor with its file and
refreshes the catalog metadata.

Descriptors without a file are always written. A descriptor newer than
its file replaces it unless --no-update is given. --force overwrites
every file, keeping the earlier creation and the later modification time.`,
		Example: `  atlas write             # Reconcile and bump the version
  atlas write --force     # Rewrite every descriptor file
  atlas write -o json     # Print the outcomes as JSON`,
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

			results, err := client.WriteAll(
				save.WithUpdateExisting(!noUpdate),
				save.WithForceOverwrite(force),
			)
			if err != nil {
				return err
			}

			meta := client.Metadata()
			app.Logger().Info().
				Int("version", meta.Version).
				Int("sources", meta.SourceCount).
				Msg("Catalog written")

			return output.WriteResults(cmd.OutOrStdout(), format, results)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite files even when they are newer")
	cmd.Flags().BoolVar(&noUpdate, "no-update", false, "do not replace existing files with newer descriptors")

	return cmd
}
