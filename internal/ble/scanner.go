package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/chaz8081/ledctl/internal/ble/protocol"
)

// DefaultScanDuration is how long Scan listens when the caller has no preference.
const DefaultScanDuration = 5 * time.Second

// DeviceDescriptor is a discovered peripheral. RSSI is 0 when the radio
// did not report one.
type DeviceDescriptor struct {
	Address string
	Name    string
	Family  protocol.Family
	RSSI    int
}

// IsLEDController reports whether the advertised name matched a supported family.
func (d DeviceDescriptor) IsLEDController() bool {
	return d.Family.Supported()
}

// ScannerOptions configures scan behaviour.
type ScannerOptions struct {
	RetryDelay time.Duration // pause between ScanWithRetry attempts
	Logger     *slog.Logger
}

// DefaultScannerOptions returns sensible defaults.
func DefaultScannerOptions() ScannerOptions {
	return ScannerOptions{
		RetryDelay: 2 * time.Second,
	}
}

// Scanner discovers controllers through an Adapter.
type Scanner struct {
	adapter Adapter
	opts    ScannerOptions
	logger  *slog.Logger
}

// NewScanner creates a Scanner.
func NewScanner(adapter Adapter, opts ScannerOptions) *Scanner {
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{adapter: adapter, opts: opts, logger: logger}
}

// errEmptyScan marks an attempt that completed without matches.
var errEmptyScan = errors.New("scan returned no devices")

// Scan listens for duration and returns one descriptor per address in
// discovery order. With ledOnly set, only supported families are kept.
func (s *Scanner) Scan(ctx context.Context, duration time.Duration, ledOnly bool) ([]DeviceDescriptor, error) {
	if duration <= 0 {
		duration = DefaultScanDuration
	}
	if err := s.adapter.Enable(); err != nil {
		return nil, fmt.Errorf("ble: enable adapter: %w", err)
	}

	scanCtx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	var mu sync.Mutex
	var found []DeviceDescriptor
	index := make(map[string]int)

	s.logger.Debug("[BLE] scanning", "duration", duration, "led_only", ledOnly)
	err := s.adapter.Scan(scanCtx, func(adv Advertisement) {
		mu.Lock()
		defer mu.Unlock()
		if i, ok := index[adv.Address]; ok {
			// Keep discovery position; refresh what may have changed.
			if adv.Name != "" && found[i].Name == "" {
				found[i].Name = adv.Name
				found[i].Family = protocol.Classify(adv.Name)
			}
			if adv.RSSI != 0 {
				found[i].RSSI = adv.RSSI
			}
			return
		}
		index[adv.Address] = len(found)
		found = append(found, DeviceDescriptor{
			Address: adv.Address,
			Name:    adv.Name,
			Family:  protocol.Classify(adv.Name),
			RSSI:    adv.RSSI,
		})
	})
	// Errors after the window closed only report the stop.
	if err != nil && scanCtx.Err() == nil {
		return nil, fmt.Errorf("ble: scan: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	if !ledOnly {
		return found, nil
	}
	leds := make([]DeviceDescriptor, 0, len(found))
	for _, d := range found {
		if d.IsLEDController() {
			leds = append(leds, d)
		}
	}
	s.logger.Debug("[BLE] scan complete", "seen", len(found), "matched", len(leds))
	return leds, nil
}

// ScanWithRetry runs Scan up to maxRetries times, stopping at the first
// non-empty result. Scan errors and empty results are both retried. When
// every attempt comes back empty the error wraps ErrNoDeviceFound.
func (s *Scanner) ScanWithRetry(ctx context.Context, duration time.Duration, ledOnly bool, maxRetries int) ([]DeviceDescriptor, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var devices []DeviceDescriptor
	attempt := 0
	op := func() error {
		attempt++
		found, err := s.Scan(ctx, duration, ledOnly)
		if err == nil && len(found) == 0 {
			err = errEmptyScan
		}
		if err != nil {
			if attempt >= maxRetries {
				return backoff.Permanent(err)
			}
			return err
		}
		devices = found
		return nil
	}
	notify := func(err error, next time.Duration) {
		s.logger.Warn("[BLE] scan attempt failed", "attempt", attempt, "max", maxRetries, "error", err, "retry_in", next)
	}

	// The attempt limit is enforced in op: WithMaxRetries treats 0 as unlimited.
	b := backoff.WithContext(backoff.NewConstantBackOff(s.opts.RetryDelay), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("ble: %d scan attempts, last: %v: %w", attempt, err, ErrNoDeviceFound)
	}
	return devices, nil
}

// SortBySignal orders devices strongest first. Devices without an RSSI
// sort last. The input is not modified.
func SortBySignal(devices []DeviceDescriptor) []DeviceDescriptor {
	out := make([]DeviceDescriptor, len(devices))
	copy(out, devices)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].RSSI, out[j].RSSI
		if a == 0 || b == 0 {
			return a != 0 && b == 0
		}
		return a > b
	})
	return out
}
