package commands

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/chaz8081/ledctl/internal/ble"
)

// newStatusCommand sends the status, clock and info queries and prints
// whatever the controller notifies back within the wait window.
func newStatusCommand() *cobra.Command {
	var wait time.Duration
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query the controller and print raw replies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				mu      sync.Mutex
				replies [][]byte
			)
			err := withSession(cmd, func(s *ble.Session) error {
				id := s.AddNotificationCallback(func(payload []byte) error {
					mu.Lock()
					defer mu.Unlock()
					replies = append(replies, payload)
					return nil
				})
				defer s.RemoveNotificationCallback(id)

				for _, query := range []func() error{s.GetLightData, s.GetTimeData, s.ReadDeviceInfo} {
					if err := query(); err != nil {
						return err
					}
				}

				select {
				case <-time.After(wait):
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}

			mu.Lock()
			defer mu.Unlock()
			if len(replies) == 0 {
				pterm.Warning.Println("No reply received")
				return nil
			}
			data := pterm.TableData{{"#", "Bytes", "Data"}}
			for i, r := range replies {
				data = append(data, []string{fmt.Sprint(i + 1), fmt.Sprint(len(r)), formatHex(r)})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
	cmd.Flags().DurationVarP(&wait, "wait", "w", 2*time.Second, "How long to collect replies")
	return cmd
}

func formatHex(b []byte) string {
	parts := make([]string, len(b))
	for i := range b {
		parts[i] = strings.ToUpper(hex.EncodeToString(b[i : i+1]))
	}
	return strings.Join(parts, " ")
}
