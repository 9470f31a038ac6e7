// Package reconcile implements the reconcile command.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/assetmap"
	"github.com/agentstation/assetmap/internal/appcontext"
	"github.com/agentstation/assetmap/internal/cmd/emoji"
	"github.com/agentstation/assetmap/internal/cmd/output"
	"github.com/agentstation/assetmap/pkg/config"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/logging"
	"github.com/agentstation/assetmap/pkg/sources"
)

// Flags holds the reconcile command flags.
type Flags struct {
	InputDir            string
	Master              string
	Output              string
	VMware              string
	Proxmox             string
	Coverage            string
	Skip                []string
	Precedence          []string
	Purge               string
	PurgePattern        string
	SummaryFile         string
	SummaryTitle        string
	HistoryDB           string
	DryRun              bool
	LocationPassthrough bool
}

// NewCommand creates the reconcile command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "reconcile",
		GroupID: "core",
		Short:   "Reconcile the master inventory against discovery exports",
		Long: `Reconcile reads the master inventory, picks the newest VMware, Proxmox and
THS coverage export in the input directory and writes the reconciled inventory.

A master inventory that cannot be read aborts the run. Missing or unreadable
source exports are skipped with a warning.`,
		Example: `  assetmap reconcile                                # Use ./Inventory.csv and the newest exports in .
  assetmap reconcile -d exports --dry-run           # Preview without writing
  assetmap reconcile --proxmox px.xlsx --skip coverage
  assetmap reconcile --purge after-synthesis        # Drop Windows 10/11 rows`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.Apply(cmd, app.RunConfig())
			if err != nil {
				return err
			}
			return run(cmd, app, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.InputDir, "input-dir", "d", "", "directory holding the master inventory and exports")
	f.StringVarP(&flags.Master, "master", "m", "", "master inventory file")
	f.StringVar(&flags.Output, "output-file", "", "reconciled inventory file")
	f.StringVar(&flags.VMware, "vmware", "", "VMware export, relative to the input directory (skips discovery)")
	f.StringVar(&flags.Proxmox, "proxmox", "", "Proxmox export, relative to the input directory (skips discovery)")
	f.StringVar(&flags.Coverage, "coverage", "", "THS coverage report, relative to the input directory (skips discovery)")
	f.StringSliceVar(&flags.Skip, "skip", nil, "source categories to leave out: vmware, proxmox, coverage")
	f.StringSliceVar(&flags.Precedence, "precedence", nil, "discovery source order, later sources win collisions")
	f.StringVar(&flags.Purge, "purge", "", "purge policy: off, after-synthesis, before-synthesis")
	f.StringVar(&flags.PurgePattern, "purge-pattern", "", "OS regex of rows removed by the purge")
	f.StringVar(&flags.SummaryFile, "summary-file", "", "markdown file the run summary is appended to")
	f.StringVar(&flags.SummaryTitle, "summary-title", "", "heading of the run summary")
	f.StringVar(&flags.HistoryDB, "history-db", "", "SQLite run ledger")
	f.BoolVar(&flags.DryRun, "dry-run", false, "reconcile without writing the output file")
	f.BoolVar(&flags.LocationPassthrough, "location-passthrough", false, "keep unmatched location values instead of Unknown")

	return cmd
}

// Apply overrides cfg with every flag set on the command line.
func (f *Flags) Apply(cmd *cobra.Command, cfg *config.Run) (*config.Run, error) {
	changed := cmd.Flags().Changed

	if changed("input-dir") {
		cfg.InputDir = f.InputDir
	}
	if changed("master") {
		cfg.MasterPath = f.Master
	}
	if changed("output-file") {
		cfg.OutputPath = f.Output
	}
	if changed("vmware") {
		cfg.Sources.VMware.Path = f.VMware
		cfg.Sources.VMware.Enabled = true
	}
	if changed("proxmox") {
		cfg.Sources.Proxmox.Path = f.Proxmox
		cfg.Sources.Proxmox.Enabled = true
	}
	if changed("coverage") {
		cfg.Sources.Coverage.Path = f.Coverage
		cfg.Sources.Coverage.Enabled = true
	}
	for _, name := range f.Skip {
		id, err := sources.ParseID(name)
		if err != nil {
			return nil, err
		}
		switch id {
		case sources.VMwareID:
			cfg.Sources.VMware.Enabled = false
		case sources.ProxmoxID:
			cfg.Sources.Proxmox.Enabled = false
		case sources.CoverageID:
			cfg.Sources.Coverage.Enabled = false
		}
	}
	if changed("precedence") {
		cfg.Precedence = f.Precedence
	}
	if changed("purge") {
		cfg.PurgePolicy = f.Purge
	}
	if changed("purge-pattern") {
		cfg.PurgePattern = f.PurgePattern
	}
	if changed("summary-file") {
		cfg.SummaryFile = f.SummaryFile
	}
	if changed("summary-title") {
		cfg.SummaryTitle = f.SummaryTitle
	}
	if changed("history-db") {
		cfg.HistoryDB = f.HistoryDB
	}
	if changed("dry-run") {
		cfg.DryRun = f.DryRun
	}
	if changed("location-passthrough") {
		cfg.Sources.VMware.LocationPassthrough = f.LocationPassthrough
		cfg.Sources.Proxmox.LocationPassthrough = f.LocationPassthrough
	}
	return cfg, nil
}

func run(cmd *cobra.Command, app appcontext.Interface, cfg *config.Run) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	var opts []assetmap.Option
	if cfg.HistoryDB != "" {
		store, err := app.History(ctx, cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, assetmap.WithHistory(store))
	}

	client, err := app.Client(cfg, opts...)
	if err != nil {
		return err
	}
	client.OnNewlyAdded(func(row map[string]string) {
		logger.Debug().
			Str("name", row[inventory.ColumnName]).
			Str("technology", row[inventory.ColumnTechnology]).
			Msg("Newly added asset")
	})
	client.OnRemoved(func(row map[string]string) {
		logger.Debug().Str("name", row[inventory.ColumnName]).Msg("Asset no longer reported")
	})

	report, err := client.Run(ctx)
	if err != nil {
		if errors.IsCanceled(err) {
			logger.Warn().Msg("Reconciliation interrupted, output not written")
		}
		return err
	}

	return printReport(cmd, app, report)
}

func printReport(cmd *cobra.Command, app appcontext.Interface, report *assetmap.Report) error {
	w := cmd.OutOrStdout()
	format := output.DetectFormat(app.OutputFormat())
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(w, report)
	}

	colorize := output.Colorize(app.NoColor())
	counts := inventory.ValueCounts(report.Table, inventory.ColumnStatus)
	if err := output.NewFormatter(format).Format(w, output.ValueCountsData(inventory.ColumnStatus, counts, colorize)); err != nil {
		return err
	}

	var degraded []string
	for _, s := range report.Sources {
		if s.Degraded {
			degraded = append(degraded, s.Source.String())
		}
	}
	if len(degraded) > 0 {
		fmt.Fprintf(w, "%s Reconciled without: %s\n", emoji.Warning, strings.Join(degraded, ", "))
	}

	if report.Written {
		fmt.Fprintf(w, "%s Reconciled inventory saved as %s\n", emoji.Success, report.OutputPath)
	} else {
		fmt.Fprintf(w, "%s Dry run: %s not written\n", emoji.Warning, report.OutputPath)
	}
	return nil
}
