package app

import (
	"github.com/spf13/cobra"

	configcmd "github.com/agentstation/assetmap/cmd/assetmap/cmd/config"
	"github.com/agentstation/assetmap/cmd/assetmap/cmd/history"
	"github.com/agentstation/assetmap/cmd/assetmap/cmd/reconcile"
	"github.com/agentstation/assetmap/cmd/assetmap/cmd/sources"
	"github.com/agentstation/assetmap/cmd/assetmap/cmd/summary"
	"github.com/agentstation/assetmap/cmd/assetmap/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(reconcile.NewCommand(a))
	rootCmd.AddCommand(sources.NewCommand(a))
	rootCmd.AddCommand(summary.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(history.NewCommand(a))
	rootCmd.AddCommand(configcmd.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
