// Package list implements `atlas list`.
package list

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/atlas"
	"github.com/agentstation/atlas/internal/cmd/output"
	"github.com/agentstation/atlas/pkg/datasources"
)

// AppContext defines what the list command needs from the app.
type AppContext interface {
	Client() (atlas.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the list command.
func NewCommand(app AppContext) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List catalog descriptors",
		Example: `  atlas list                          # All descriptors
  atlas list -o wide                  # Include URL, EPSG and timestamps
  atlas list --prefix ch.swisstopo.   # Only one issuer`,
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

			ds := filter(client.Descriptors(), prefix)
			app.Logger().Debug().Int("count", len(ds)).Str("prefix", prefix).Msg("Listing descriptors")

			return output.Descriptors(cmd.OutOrStdout(), format, ds)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only list identifiers starting with this prefix")

	return cmd
}

// filter keeps the descriptors whose identifier starts with prefix.
func filter(ds []*datasources.Descriptor, prefix string) []*datasources.Descriptor {
	if prefix == "" {
		return ds
	}
	registry := datasources.NewRegistry()
	for _, d := range ds {
		registry.Set(d.ID, d)
	}
	if matched := registry.Filter(prefix); matched != nil {
		return matched
	}
	return []*datasources.Descriptor{}
}
