// Package initialize implements `atlas init`.
package initialize

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/atlas/internal/appcontext"
	"github.com/agentstation/atlas/internal/cmd/output"
	"github.com/agentstation/atlas/pkg/constants"
	"github.com/agentstation/atlas/pkg/errors"
)

// NewCommand creates the init command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:     "init [path]",
		GroupID: "management",
		Short:   "Create a new catalog",
		Long: `Init creates an empty catalog directory with version 0 metadata.

Without arguments the configured root is used. With --parent the catalog is
created as an "atlas" directory below the given path. Init fails when the
target already exists.`,
		Example: `  atlas init                     # Create the configured root
  atlas init ./geodata/atlas     # Create a catalog at a path
  atlas init --parent ./geodata  # Create ./geodata/atlas`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ResolveFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			root, err := targetRoot(args, parent)
			if err != nil {
				return err
			}

			client, err := app.InitClient(root)
			if err != nil {
				return err
			}

			app.Logger().Debug().Str("root", client.Root()).Msg("Catalog initialized")
			return output.Metadata(cmd.OutOrStdout(), format, client.Root(), client.Metadata())
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "create the catalog as an \""+constants.DefaultRootName+"\" directory below this path")

	return cmd
}

// targetRoot resolves the catalog directory from the arguments. An empty
// result selects the configured root.
func targetRoot(args []string, parent string) (string, error) {
	switch {
	case parent != "" && len(args) > 0:
		return "", errors.NewValidationError("parent", parent, "cannot be combined with a path argument")
	case parent != "":
		return filepath.Join(parent, constants.DefaultRootName), nil
	case len(args) > 0:
		return args[0], nil
	}
	return "", nil
}
