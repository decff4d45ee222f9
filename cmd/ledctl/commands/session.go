package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/chaz8081/ledctl/internal/ble"
)

func (a *app) scanner() *ble.Scanner {
	return ble.NewScanner(a.adapter, ble.ScannerOptions{
		RetryDelay: a.cfg.Scan.RetryDelay,
		Logger:     a.logger,
	})
}

// resolveAddress picks the target: --address, then the configured default,
// then the first LED controller discovered.
func (a *app) resolveAddress(ctx context.Context) (string, error) {
	if addr, ok := a.cfg.ResolveAddress(a.address); ok {
		return addr, nil
	}

	a.logger.Info("no address configured, scanning")
	devices, err := a.scanner().ScanWithRetry(ctx, a.cfg.Scan.Duration, true, a.cfg.Scan.Retries)
	if err != nil {
		return "", err
	}
	d := devices[0]
	pterm.Info.Printfln("Using %s (%s)", d.Address, displayName(d.Name))
	return d.Address, nil
}

// withSession connects to the resolved device, runs fn and disconnects.
func withSession(cmd *cobra.Command, fn func(s *ble.Session) error) error {
	a := appFromCmd(cmd)
	ctx := cmd.Context()

	address, err := a.resolveAddress(ctx)
	if err != nil {
		return err
	}

	s := ble.NewSession(a.adapter, address, ble.WithLogger(a.logger))
	if err := s.Connect(ctx, a.cfg.Connect.Timeout); err != nil {
		return err
	}
	defer func() {
		if err := s.Disconnect(); err != nil {
			a.logger.Warn("disconnect failed", "address", address, "error", err)
		}
	}()

	return fn(s)
}

// runIntent is withSession for a single intent followed by a success line.
func runIntent(cmd *cobra.Command, done string, fn func(s *ble.Session) error) error {
	err := withSession(cmd, fn)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	pterm.Success.Println(done)
	return nil
}
