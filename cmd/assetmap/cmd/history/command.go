// Package history implements the history command.
package history

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/assetmap/internal/appcontext"
	"github.com/agentstation/assetmap/internal/cmd/output"
	"github.com/agentstation/assetmap/pkg/constants"
	"github.com/agentstation/assetmap/pkg/errors"
	ledger "github.com/agentstation/assetmap/pkg/history"
)

// NewCommand creates the history command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		db    string
		limit int
	)

	cmd := &cobra.Command{
		Use:     "history",
		GroupID: "management",
		Short:   "List recorded reconciliation runs",
		Long: `History lists the runs recorded in the SQLite run ledger, newest first.
Runs are recorded when reconcile is given --history-db or history_db is set.`,
		Example: `  assetmap history --db runs.db
  assetmap history --limit 5 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("db") {
				db = app.RunConfig().HistoryDB
			}
			if db == "" {
				return &errors.ValidationError{Field: "db", Message: "no run ledger configured, set --db or history_db"}
			}

			store, err := app.History(cmd.Context(), db)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			var data any = runs
			if format == output.FormatTable {
				data = tableData(runs)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "SQLite run ledger (default history_db)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show, 0 for all")
	return cmd
}

func tableData(runs []ledger.Run) output.Data {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		id := r.RunID
		if len(id) > 8 {
			id = id[:8]
		}
		written := "yes"
		if r.DryRun {
			written = "no"
		}
		rows = append(rows, []string{
			id,
			r.StartedAt.Local().Format(constants.TimeFormatISO8601),
			strconv.Itoa(r.Existing),
			strconv.Itoa(r.Removed),
			strconv.Itoa(r.NewlyAdded),
			strconv.Itoa(r.Purged),
			strconv.Itoa(r.TotalRows),
			written,
		})
	}
	right := output.AlignRight
	return output.Data{
		Headers:         []string{"Run", "Started", "Existing", "Removed", "Newly Added", "Purged", "Total", "Written"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, right, right, right, right, right, output.AlignLeft},
	}
}
