package ble

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

const stopScanRetry = 20 * time.Millisecond

// TinygoAdapter wraps tinygo-org/bluetooth. On Linux addresses are MAC
// addresses; on macOS they are CoreBluetooth UUIDs. Both are carried as
// opaque strings.
type TinygoAdapter struct {
	adapter *bluetooth.Adapter

	// mu protects enabled and the connections map.
	mu          sync.Mutex
	enabled     bool
	connections map[string]*tinygoConnection // keyed by Address.String()
}

// NewTinygoAdapter creates a new BLE adapter using the system default radio.
func NewTinygoAdapter() *TinygoAdapter {
	return &TinygoAdapter{
		adapter:     bluetooth.DefaultAdapter,
		connections: make(map[string]*tinygoConnection),
	}
}

// Enable powers up the radio once; later calls are no-ops.
func (a *TinygoAdapter) Enable() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled {
		return nil
	}
	if err := a.adapter.Enable(); err != nil {
		return err
	}
	a.enabled = true

	// The adapter-level handler fires with connected=false when a
	// peripheral drops; route it to that connection's callback.
	a.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		if connected {
			return
		}
		id := device.Address.String()
		a.mu.Lock()
		conn, ok := a.connections[id]
		delete(a.connections, id)
		a.mu.Unlock()
		if ok {
			conn.fireDisconnect()
		}
	})

	return nil
}

func (a *TinygoAdapter) Scan(ctx context.Context, onAdvert func(Advertisement)) error {
	// StopScan before the scan starts is a no-op, which would leave Scan
	// running forever.
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		// Retry until the scan has actually started and stopped.
		ticker := time.NewTicker(stopScanRetry)
		defer ticker.Stop()
		for a.adapter.StopScan() != nil {
			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()

	err := a.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		onAdvert(Advertisement{
			Address: result.Address.String(),
			Name:    result.LocalName(),
			RSSI:    int(result.RSSI),
		})
	})
	close(done)

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("ble: scan: %w", err)
	}
	return nil
}

func (a *TinygoAdapter) Connect(ctx context.Context, address string) (Connection, error) {
	var addr bluetooth.Address
	addr.Set(address)

	// tinygo/bluetooth's Connect blocks internally with its own timeout.
	// We wrap it to also respect ctx cancellation.
	type connectResult struct {
		device bluetooth.Device
		err    error
	}
	ch := make(chan connectResult, 1)
	go func() {
		device, err := a.adapter.Connect(addr, bluetooth.ConnectionParams{})
		ch <- connectResult{device, err}
	}()

	select {
	case <-ctx.Done():
		// The radio may still complete the connection; drop it if so.
		go func() {
			if r := <-ch; r.err == nil {
				_ = r.device.Disconnect()
			}
		}()
		return nil, ctx.Err()
	case result := <-ch:
		if result.err != nil {
			return nil, result.err
		}
		conn := &tinygoConnection{device: result.device}

		a.mu.Lock()
		a.connections[result.device.Address.String()] = conn
		a.mu.Unlock()

		return conn, nil
	}
}

// Compile-time check that TinygoAdapter implements Adapter.
var _ Adapter = (*TinygoAdapter)(nil)

type tinygoConnection struct {
	device bluetooth.Device

	mu           sync.Mutex
	disconnectCb func()
}

func (c *tinygoConnection) DiscoverCharacteristic(serviceUUID, charUUID string) (Characteristic, error) {
	svcUUID, err := bluetooth.ParseUUID(serviceUUID)
	if err != nil {
		return nil, err
	}
	charUUIDParsed, err := bluetooth.ParseUUID(charUUID)
	if err != nil {
		return nil, err
	}

	svcs, err := c.device.DiscoverServices([]bluetooth.UUID{svcUUID})
	if err != nil {
		return nil, fmt.Errorf("ble: discover services: %w", err)
	}
	if len(svcs) == 0 {
		return nil, fmt.Errorf("ble: service %s not found", serviceUUID)
	}

	chars, err := svcs[0].DiscoverCharacteristics([]bluetooth.UUID{charUUIDParsed})
	if err != nil {
		return nil, fmt.Errorf("ble: discover characteristics: %w", err)
	}
	if len(chars) == 0 {
		return nil, fmt.Errorf("ble: characteristic %s not found", charUUID)
	}

	return &tinygoCharacteristic{char: chars[0]}, nil
}

func (c *tinygoConnection) Disconnect() error {
	return c.device.Disconnect()
}

func (c *tinygoConnection) OnDisconnect(cb func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnectCb = cb
}

func (c *tinygoConnection) fireDisconnect() {
	c.mu.Lock()
	cb := c.disconnectCb
	c.mu.Unlock()
	if cb != nil {
		cb()
	}
}

type tinygoCharacteristic struct {
	char bluetooth.DeviceCharacteristic
}

func (c *tinygoCharacteristic) Write(data []byte) error {
	_, err := c.char.WriteWithoutResponse(data)
	return err
}

func (c *tinygoCharacteristic) Subscribe(cb func([]byte)) error {
	return c.char.EnableNotifications(cb)
}

func (c *tinygoCharacteristic) Unsubscribe() error {
	return c.char.EnableNotifications(nil)
}
