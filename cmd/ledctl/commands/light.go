package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chaz8081/ledctl/internal/ble"
	"github.com/chaz8081/ledctl/internal/ble/protocol"
)

func newOnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "on",
		Short: "Turn the strip on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntent(cmd, "Turned on", (*ble.Session).TurnOn)
		},
	}
}

func newOffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "off",
		Short: "Turn the strip off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntent(cmd, "Turned off", (*ble.Session).TurnOff)
		},
	}
}

// newColorCommand creates the color command
func newColorCommand() *cobra.Command {
	var brightness int
	cmd := &cobra.Command{
		Use:   "color R,G,B|#rrggbb|NAME",
		Short: "Set a static colour",
		Example: `  ledctl color 255,0,0
  ledctl color "#ff8800" -b 40
  ledctl color warm_white`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseColor(args[0], brightness)
			if err != nil {
				return err
			}
			return runIntent(cmd, fmt.Sprintf("Colour set to %s", c), func(s *ble.Session) error {
				return s.SetColor(c)
			})
		},
	}
	cmd.Flags().IntVarP(&brightness, "brightness", "b", protocol.DefaultBrightness, "Brightness percentage (0-100)")
	return cmd
}

func newWhiteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "white PCT",
		Short: "Switch to warm white at a brightness percentage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid brightness %q", args[0])
			}
			return runIntent(cmd, fmt.Sprintf("White at %d%%", pct), func(s *ble.Session) error {
				return s.SetWhite(pct)
			})
		},
	}
}

func newSpeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "speed N",
		Short: "Change the speed of the running mode (0-255)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			speed, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid speed %q", args[0])
			}
			return runIntent(cmd, fmt.Sprintf("Speed set to %d", speed), func(s *ble.Session) error {
				return s.SetSpeed(speed)
			})
		},
	}
}

func newMusicCommand() *cobra.Command {
	var lineIn bool
	cmd := &cobra.Command{
		Use:   "music R,G",
		Short: "Enable music-reactive mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(args[0], 2)
			if err != nil {
				return err
			}
			source := "microphone"
			if lineIn {
				source = "line-in"
			}
			return runIntent(cmd, "Music mode on ("+source+")", func(s *ble.Session) error {
				return s.SetMusicMode(v[0], v[1], !lineIn)
			})
		},
	}
	cmd.Flags().BoolVar(&lineIn, "line-in", false, "Use the line-in source instead of the microphone")
	return cmd
}
