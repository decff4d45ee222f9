// Package ble drives LED strip controllers over Bluetooth Low Energy. It
// owns the per-device connection lifecycle, the notification dispatch and
// device discovery; frame encoding lives in the protocol subpackage.
package ble

import "context"

// Controller GATT UUIDs
const (
	ServiceUUID    = "0000ffd5-0000-1000-8000-00805f9b34fb"
	WriteCharUUID  = "0000ffd9-0000-1000-8000-00805f9b34fb"
	NotifyCharUUID = "0000ffd4-0000-1000-8000-00805f9b34fb"
)

// Characteristic represents a BLE GATT characteristic.
type Characteristic interface {
	// Write sends data to the characteristic.
	Write(data []byte) error
	// Subscribe registers a callback for notifications on this characteristic.
	Subscribe(callback func(data []byte)) error
	// Unsubscribe stops notifications started by Subscribe.
	Unsubscribe() error
}

// Advertisement is one sighting reported during a scan. Name is empty
// when the peripheral did not advertise one.
type Advertisement struct {
	Address string
	Name    string
	RSSI    int
}

// Connection represents an active BLE connection to a peripheral.
type Connection interface {
	// DiscoverCharacteristic finds a characteristic by UUID within a service.
	DiscoverCharacteristic(serviceUUID, charUUID string) (Characteristic, error)
	// Disconnect terminates the connection.
	Disconnect() error
	// OnDisconnect registers a callback invoked when the connection drops.
	OnDisconnect(callback func())
}

// Adapter abstracts the BLE hardware adapter for testing.
type Adapter interface {
	// Enable powers on the BLE adapter.
	Enable() error
	// Scan reports advertisements to onAdvert until ctx is done. The same
	// peripheral may be reported more than once.
	Scan(ctx context.Context, onAdvert func(Advertisement)) error
	// Connect establishes a connection to the device with the given address.
	// It must give up when ctx is done.
	Connect(ctx context.Context, address string) (Connection, error)
}
