package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/chaz8081/ledctl/internal/ble"
	"github.com/chaz8081/ledctl/internal/ble/protocol"
)

// newTimerCommand programs one of the on-device timer slots.
func newTimerCommand() *cobra.Command {
	var (
		days      string
		offAction bool
		disable   bool
	)
	cmd := &cobra.Command{
		Use:   "timer SLOT HH:MM[:SS]",
		Short: "Program an on-device timer (slots 0-5)",
		Example: `  ledctl timer 0 07:30 --days workdays
  ledctl timer 1 23:00 --off-action
  ledctl timer 1 00:00 --disable`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid slot %q", args[0])
			}
			hour, minute, second, err := parseClock(args[1])
			if err != nil {
				return err
			}
			mask, err := parseDays(days)
			if err != nil {
				return err
			}
			t := protocol.Timer{
				Slot:    slot,
				Hour:    hour,
				Minute:  minute,
				Second:  second,
				Days:    mask,
				Enabled: !disable,
				TurnOn:  !offAction,
			}
			action := "on"
			if offAction {
				action = "off"
			}
			done := fmt.Sprintf("Timer %d set: turn %s at %02d:%02d:%02d", slot, action, hour, minute, second)
			if disable {
				done = fmt.Sprintf("Timer %d disabled", slot)
			}
			return runIntent(cmd, done, func(s *ble.Session) error {
				return s.SetTimer(t)
			})
		},
	}
	cmd.Flags().StringVar(&days, "days", "all", "Days to repeat: all, weekend, workdays or a list such as mon,wed,fri")
	cmd.Flags().BoolVar(&offAction, "off-action", false, "Turn the strip off instead of on when the timer fires")
	cmd.Flags().BoolVar(&disable, "disable", false, "Disarm the slot")
	return cmd
}

func newSyncTimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-time",
		Short: "Set the controller clock to local time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			return runIntent(cmd, "Clock set to "+now.Format(time.DateTime), func(s *ble.Session) error {
				return s.SyncTime(now)
			})
		},
	}
}
