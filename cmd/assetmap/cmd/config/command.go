// Package config implements the config command.
package config

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/assetmap/internal/appcontext"
	"github.com/agentstation/assetmap/internal/cmd/output"
)

// NewCommand creates the config command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:     "config",
		GroupID: "management",
		Short:   "Print the effective run configuration",
		Long: `Config prints the reconciliation settings after merging defaults, the config
file, .env files and ASSETMAP_ environment variables. The output is YAML
unless --format json is given, and can be saved as .assetmap.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.RunConfig()
			if validate {
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			format := output.Format(app.OutputFormat())
			if format != output.FormatJSON {
				format = output.FormatYAML
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "fail when the configuration is invalid")
	return cmd
}
