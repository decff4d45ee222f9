package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/chaz8081/ledctl/internal/ble"
	"github.com/chaz8081/ledctl/internal/ble/protocol"
	"github.com/chaz8081/ledctl/internal/config"
)

// newPresetCommand creates the preset command
func newPresetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named colour presets",
	}

	cmd.AddCommand(
		newPresetSaveCommand(),
		newPresetListCommand(),
		newPresetRemoveCommand(),
		newPresetApplyCommand(),
	)

	return cmd
}

func newPresetSaveCommand() *cobra.Command {
	var brightness int
	cmd := &cobra.Command{
		Use:   "save NAME R,G,B|#rrggbb|COLOUR",
		Short: "Save a colour under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFromCmd(cmd)
			c, err := parseColor(args[1], brightness)
			if err != nil {
				return err
			}
			if err := a.cfg.SetPreset(args[0], config.PresetFromColor(c)); err != nil {
				return err
			}
			if err := a.saveConfig(); err != nil {
				return err
			}
			pterm.Success.Printfln("Preset %q saved (%s)", args[0], c)
			return nil
		},
	}
	cmd.Flags().IntVarP(&brightness, "brightness", "b", protocol.DefaultBrightness, "Brightness percentage (0-100)")
	return cmd
}

func newPresetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFromCmd(cmd)
			names := a.cfg.PresetNames()
			if len(names) == 0 {
				pterm.Info.Println("No presets saved")
				return nil
			}
			data := pterm.TableData{{"Name", "Colour", "Brightness"}}
			for _, name := range names {
				p := a.cfg.Presets[name]
				c, err := p.Color()
				if err != nil {
					return fmt.Errorf("preset %q: %w", name, err)
				}
				data = append(data, []string{name, c.Hex(), fmt.Sprintf("%d%%", p.Brightness)})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}

func newPresetRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFromCmd(cmd)
			if err := a.cfg.RemovePreset(args[0]); err != nil {
				return err
			}
			if err := a.saveConfig(); err != nil {
				return err
			}
			pterm.Success.Printfln("Preset %q removed", args[0])
			return nil
		},
	}
}

func newPresetApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply NAME",
		Short: "Set the strip to a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFromCmd(cmd)
			p, err := a.cfg.Preset(args[0])
			if err != nil {
				return err
			}
			c, err := p.Color()
			if err != nil {
				return err
			}
			return runIntent(cmd, fmt.Sprintf("Preset %q applied", args[0]), func(s *ble.Session) error {
				return s.SetColor(c)
			})
		},
	}
}
