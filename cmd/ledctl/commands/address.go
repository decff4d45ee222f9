package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newDefaultAddressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "default-address",
		Short: "Manage the device used when --address is not given",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set ADDRESS",
			Short: "Store a default device address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFromCmd(cmd)
				if err := a.cfg.SetDefaultAddress(args[0]); err != nil {
					return err
				}
				if err := a.saveConfig(); err != nil {
					return err
				}
				pterm.Success.Printfln("Default address set to %s", a.cfg.DefaultAddress)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget the default device address",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFromCmd(cmd)
				a.cfg.ClearDefaultAddress()
				if err := a.saveConfig(); err != nil {
					return err
				}
				pterm.Success.Println("Default address cleared")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the default device address",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				a := appFromCmd(cmd)
				if a.cfg.DefaultAddress == "" {
					pterm.Info.Println("No default address set")
					return
				}
				pterm.Println(a.cfg.DefaultAddress)
			},
		},
	)

	return cmd
}
