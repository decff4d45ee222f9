package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/chaz8081/ledctl/internal/ble"
	"github.com/chaz8081/ledctl/internal/ble/protocol"
)

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

func formatRSSI(rssi int) string {
	if rssi == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d dBm", rssi)
}

// DeviceTableData returns the table data for a scan result, header first
func DeviceTableData(devices []ble.DeviceDescriptor) pterm.TableData {
	data := pterm.TableData{{"Address", "Name", "Family", "RSSI"}}
	for _, d := range devices {
		data = append(data, []string{d.Address, displayName(d.Name), d.Family.String(), formatRSSI(d.RSSI)})
	}
	return data
}

// ModeTableData returns the table data for the mode list
func ModeTableData(modes []protocol.ModeInfo) pterm.TableData {
	data := pterm.TableData{{"Name", "Code", "Display Name", "Speed", "Description"}}
	for _, m := range modes {
		data = append(data, []string{
			m.Mode.String(),
			fmt.Sprintf("0x%02X", m.Code),
			m.DisplayName,
			fmt.Sprintf("%d-%d", m.SpeedMin, m.SpeedMax),
			m.Description,
		})
	}
	return data
}

// parseInts splits "a,b,c" into exactly n integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// parseColor accepts R,G,B, #rrggbb or a colour name.
func parseColor(s string, brightness int) (protocol.Color, error) {
	var c protocol.Color
	switch {
	case strings.Contains(s, ","):
		v, err := parseInts(s, 3)
		if err != nil {
			return protocol.Color{}, err
		}
		return protocol.NewRGBBrightness(v[0], v[1], v[2], brightness)
	case strings.HasPrefix(s, "#"):
		var err error
		if c, err = protocol.ParseHexColor(s); err != nil {
			return protocol.Color{}, err
		}
	default:
		var ok bool
		if c, ok = protocol.NamedColor(s); !ok {
			return protocol.Color{}, fmt.Errorf("unknown colour %q (known: %s)", s, strings.Join(protocol.ColorNames(), ", "))
		}
	}
	return c.WithBrightness(brightness)
}

var dayNames = map[string]protocol.Weekdays{
	"sun": protocol.Sunday,
	"mon": protocol.Monday,
	"tue": protocol.Tuesday,
	"wed": protocol.Wednesday,
	"thu": protocol.Thursday,
	"fri": protocol.Friday,
	"sat": protocol.Saturday,

	"all":      protocol.EveryDay,
	"everyday": protocol.EveryDay,
	"weekend":  protocol.Weekend,
	"workdays": protocol.Workdays,
}

// parseDays turns "mon,wed,fri" or "weekend" into a weekday mask.
func parseDays(s string) (protocol.Weekdays, error) {
	var mask protocol.Weekdays
	for _, part := range strings.Split(s, ",") {
		key := strings.ToLower(strings.TrimSpace(part))
		if len(key) > 3 {
			if _, ok := dayNames[key]; !ok {
				key = key[:3]
			}
		}
		d, ok := dayNames[key]
		if !ok {
			return 0, fmt.Errorf("unknown day %q", part)
		}
		mask |= d
	}
	return mask, nil
}

// parseClock parses HH:MM or HH:MM:SS. Range checks are left to the encoder.
func parseClock(s string) (hour, minute, second int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("expected HH:MM[:SS], got %q", s)
	}
	v := make([]int, 3)
	for i, p := range parts {
		if v[i], err = strconv.Atoi(p); err != nil {
			return 0, 0, 0, fmt.Errorf("expected HH:MM[:SS], got %q", s)
		}
	}
	return v[0], v[1], v[2], nil
}
