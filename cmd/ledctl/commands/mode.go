package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/chaz8081/ledctl/internal/ble"
	"github.com/chaz8081/ledctl/internal/ble/protocol"
)

func newModeCommand() *cobra.Command {
	var speed int
	cmd := &cobra.Command{
		Use:     "mode NAME|0xNN",
		Short:   "Start a built-in animation",
		Example: "  ledctl mode MODE_7 --speed 20\n  ledctl mode 0x2b",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := protocol.ParseMode(args[0])
			if err != nil {
				return err
			}
			label := m.String()
			if info, ok := m.Info(); ok {
				label = fmt.Sprintf("%s (%s)", info.DisplayName, m)
			}
			return runIntent(cmd, "Mode set to "+label, func(s *ble.Session) error {
				return s.SetMode(m, speed)
			})
		},
	}
	cmd.Flags().IntVarP(&speed, "speed", "s", protocol.DefaultSpeed, "Animation speed (0-255)")
	return cmd
}

// newModesCommand lists modes grouped by category.
func newModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List built-in modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := protocol.ModesByCategory()
			for _, cat := range protocol.Categories {
				modes := groups[cat]
				if len(modes) == 0 {
					continue
				}
				pterm.DefaultSection.Println(string(cat))
				if err := pterm.DefaultTable.WithHasHeader().WithData(ModeTableData(modes)).Render(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
