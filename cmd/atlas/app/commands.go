package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/atlas/cmd/atlas/cmd/add"
	"github.com/agentstation/atlas/cmd/atlas/cmd/initialize"
	"github.com/agentstation/atlas/cmd/atlas/cmd/list"
	"github.com/agentstation/atlas/cmd/atlas/cmd/meta"
	"github.com/agentstation/atlas/cmd/atlas/cmd/show"
	"github.com/agentstation/atlas/cmd/atlas/cmd/write"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(show.NewCommand(a))
	rootCmd.AddCommand(add.NewCommand(a))
	rootCmd.AddCommand(write.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(initialize.NewCommand(a))
	rootCmd.AddCommand(meta.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("atlas %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
