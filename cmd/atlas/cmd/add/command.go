// Package add implements `atlas add`.
package add

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/atlas/internal/appcontext"
	"github.com/agentstation/atlas/internal/catalog"
	"github.com/agentstation/atlas/internal/cmd/output"
	"github.com/agentstation/atlas/pkg/datasources"
	"github.com/agentstation/atlas/pkg/errors"
	"github.com/agentstation/atlas/pkg/save"
)

// flags holds the values of the descriptor flags.
type flags struct {
	nameFull    string
	nameShort   string
	urlInfo     string
	versionDate string
	epsg        string
	extent      string
	set         []string
	force       bool
}

// NewCommand creates the add command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "add <id>",
		GroupID: "core",
		Short:   "Add or update one descriptor",
		Long: `Add creates a descriptor and writes its file. For an identifier that is
already in the catalog only the given flags change and the modification
time is advanced, so the file is updated.

--epsg is stored as an integer when it parses as one. --extent and --set
values are stored as JSON when they parse as JSON, as text otherwise.`,
		Example: `  atlas add ch.swisstopo.swissimage10 --name-short SWISSIMAGE10 --epsg 2056
  atlas add ch.swisstopo.swissimage10 --version-date 2024
  atlas add ch.swisstopo.pixelkarte --extent '[2485000,1075000,2834000,1296000]'
  atlas add ch.swisstopo.pixelkarte --set urlDownload=https://example.org/pk.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ResolveFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			id := args[0]
			if err := datasources.ValidateIdentifier(id); err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			d, err := client.Descriptor(id)
			switch {
			case errors.IsNotFound(err):
				d = datasources.New(id)
			case err != nil:
				return err
			default:
				d.Touch(time.Now())
			}

			if err := f.apply(cmd, d); err != nil {
				return err
			}

			result, err := client.Write(d, save.WithForceOverwrite(f.force))
			if err != nil {
				return err
			}

			app.Logger().Debug().
				Str("layer_id", result.ID).
				Str("outcome", result.Outcome.String()).
				Msg("Descriptor added")

			return output.WriteResults(cmd.OutOrStdout(), format, []catalog.WriteResult{result})
		},
	}

	cmd.Flags().StringVar(&f.nameFull, "name-full", "", "full display name")
	cmd.Flags().StringVar(&f.nameShort, "name-short", "", "short display name")
	cmd.Flags().StringVar(&f.urlInfo, "url-info", "", "reference URL")
	cmd.Flags().StringVar(&f.versionDate, "version-date", "", "version label")
	cmd.Flags().StringVar(&f.epsg, "epsg", "", "coordinate reference, e.g. 2056")
	cmd.Flags().StringVar(&f.extent, "extent", "", "spatial extent, JSON or text")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "additional key=value, repeatable")
	cmd.Flags().BoolVar(&f.force, "force", false, "overwrite the file even when it is newer")

	return cmd
}

// apply copies the flags that were set on the command line to d.
func (f *flags) apply(cmd *cobra.Command, d *datasources.Descriptor) error {
	changed := cmd.Flags().Changed

	if changed("name-full") {
		d.NameFull = f.nameFull
	}
	if changed("name-short") {
		d.NameShort = f.nameShort
	}
	if changed("url-info") {
		d.URLInfo = f.urlInfo
	}
	if changed("version-date") {
		d.VersionDate = f.versionDate
	}
	if changed("epsg") {
		d.EPSG = parseEPSG(f.epsg)
	}
	if changed("extent") {
		d.Extent = parseValue(f.extent)
	}

	for _, kv := range f.set {
		key, value, err := parseAssignment(kv)
		if err != nil {
			return err
		}
		if d.Extra == nil {
			d.Extra = make(map[string]any)
		}
		d.Extra[key] = value
	}

	return nil
}
