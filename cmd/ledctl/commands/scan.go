package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/chaz8081/ledctl/internal/ble"
)

// newScanCommand creates the scan command
func newScanCommand() *cobra.Command {
	var (
		all      bool
		duration time.Duration
		retries  int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Discover nearby LED controllers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFromCmd(cmd)
			if duration <= 0 {
				duration = a.cfg.Scan.Duration
			}
			if retries <= 0 {
				retries = a.cfg.Scan.Retries
			}

			spinner, _ := pterm.DefaultSpinner.Start("Scanning...")
			devices, err := a.scanner().ScanWithRetry(cmd.Context(), duration, !all, retries)
			if spinner != nil {
				_ = spinner.Stop()
			}
			if err != nil {
				return err
			}

			if err := pterm.DefaultTable.WithHasHeader().WithData(DeviceTableData(ble.SortBySignal(devices))).Render(); err != nil {
				return err
			}
			pterm.Info.Printfln("%d device(s) found", len(devices))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include devices that are not recognised LED controllers")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Scan duration per attempt (default from config)")
	cmd.Flags().IntVarP(&retries, "retries", "r", 0, "Scan attempts before giving up (default from config)")
	return cmd
}
