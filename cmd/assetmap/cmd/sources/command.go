// Package sources implements the sources command.
package sources

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/assetmap"
	"github.com/agentstation/assetmap/internal/appcontext"
	"github.com/agentstation/assetmap/internal/cmd/emoji"
	"github.com/agentstation/assetmap/internal/cmd/output"
	"github.com/agentstation/assetmap/pkg/constants"
)

// NewCommand creates the sources command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var inputDir string

	cmd := &cobra.Command{
		Use:     "sources",
		GroupID: "core",
		Short:   "Show which export each source category would read",
		Long: `Sources runs file discovery without reconciling. For every category it shows
the newest matching file in the input directory, or why none was found.`,
		Example: `  assetmap sources
  assetmap sources -d exports -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.RunConfig()
			if cmd.Flags().Changed("input-dir") {
				cfg.InputDir = inputDir
			}
			// discovery never writes, so an empty output path is fine
			cfg.DryRun = true

			client, err := app.Client(cfg)
			if err != nil {
				return err
			}
			selections, err := client.Discover(cmd.Context())
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			var data any = selections
			if format == output.FormatTable {
				data = tableData(selections)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input-dir", "d", "", "directory holding the exports")
	return cmd
}

func tableData(selections []assetmap.Selection) output.Data {
	rows := make([][]string, 0, len(selections))
	for _, s := range selections {
		modified := ""
		if !s.ModTime.IsZero() {
			modified = s.ModTime.Format(constants.TimeFormatISO8601)
		}
		var status string
		switch {
		case s.Found():
			status = emoji.Success + " ok"
		case !s.Enabled:
			status = emoji.Optional + " " + s.Message
		default:
			status = emoji.Error + " " + s.Message
		}
		rows = append(rows, []string{
			s.Source.String(),
			s.Path,
			modified,
			strconv.Itoa(s.Candidates),
			status,
		})
	}
	return output.Data{
		Headers:         []string{"Source", "File", "Modified", "Matches", "Status"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight, output.AlignLeft},
	}
}
