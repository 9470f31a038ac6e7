// Package summary implements the summary command.
package summary

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/assetmap/internal/appcontext"
	"github.com/agentstation/assetmap/internal/cmd/output"
	"github.com/agentstation/assetmap/internal/tabular"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/logging"
)

// NewCommand creates the summary command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		column   string
		markdown bool
	)

	cmd := &cobra.Command{
		Use:     "summary [file]",
		GroupID: "core",
		Short:   "Count the rows of an inventory file by status",
		Long: `Summary reads an inventory file, by default the configured output file, and
counts its rows per value of a column (Status unless --column is given).`,
		Example: `  assetmap summary
  assetmap summary Inventory.csv --column Location
  assetmap summary --markdown >> "$GITHUB_STEP_SUMMARY"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.RunConfig()
			path := cfg.OutputPath
			if len(args) == 1 {
				path = args[0]
			} else if !filepath.IsAbs(path) {
				path = filepath.Join(cfg.InputDir, path)
			}

			ctx := logging.WithFile(cmd.Context(), path)
			t, warnings, err := tabular.ReadFile(ctx, path, tabular.Options{})
			if err != nil {
				return err
			}
			for _, w := range warnings {
				logging.FromContext(ctx).Warn().Int("line", w.Line).Msg(w.Message)
			}

			w := cmd.OutOrStdout()
			if markdown {
				return inventory.Summarize(t).WriteMarkdown(w, cfg.SummaryTitle)
			}

			if !t.HasColumn(column) {
				return errors.NewNotFoundError("column", column)
			}
			counts := inventory.ValueCounts(t, column)
			format := output.DetectFormat(app.OutputFormat())
			if format != output.FormatTable {
				if column == inventory.ColumnStatus {
					return output.NewFormatter(format).Format(w, inventory.Summarize(t))
				}
				return output.NewFormatter(format).Format(w, counts)
			}
			data := output.ValueCountsData(column, counts, output.Colorize(app.NoColor()))
			return output.NewFormatter(format).Format(w, data)
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", inventory.ColumnStatus, "column to count values of")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the status summary as markdown")
	return cmd
}
