package ble

import (
	"time"

	"github.com/chaz8081/ledctl/internal/ble/protocol"
)

// Each intent encodes first, so a validation error is returned before any
// transport I/O, then sends exactly one frame.

// send is the shared encode-then-send step for intents that can fail validation.
func (s *Session) send(cmd protocol.Command, err error) error {
	if err != nil {
		return err
	}
	return s.Send(cmd)
}

// TurnOn powers the strip on.
func (s *Session) TurnOn() error {
	return s.Send(protocol.EncodePowerOn())
}

// TurnOff powers the strip off.
func (s *Session) TurnOff() error {
	return s.Send(protocol.EncodePowerOff())
}

// SetColor sets a static colour, scaled by its brightness.
func (s *Session) SetColor(c protocol.Color) error {
	return s.Send(protocol.EncodeColor(c))
}

// SetRGB sets an RGB colour (0-255 each) at brightness (0-100).
func (s *Session) SetRGB(red, green, blue, brightness int) error {
	return s.send(protocol.EncodeRGB(red, green, blue, brightness))
}

// SetWhite switches to the warm-white channel only at brightness (0-100).
func (s *Session) SetWhite(brightness int) error {
	return s.send(protocol.EncodeWhite(brightness))
}

// SetMode starts a built-in animation. Use protocol.DefaultSpeed when the
// caller has no preference.
func (s *Session) SetMode(m protocol.Mode, speed int) error {
	return s.send(protocol.EncodeMode(m, speed))
}

// SetModeByCode is SetMode keyed by the device byte.
func (s *Session) SetModeByCode(code byte, speed int) error {
	return s.send(protocol.EncodeModeCode(code, speed))
}

// SetSpeed changes the speed of the running animation.
func (s *Session) SetSpeed(speed int) error {
	return s.send(protocol.EncodeSpeed(speed))
}

// SetMusicMode enables music-reactive mode using the microphone (mic) or
// line-in.
func (s *Session) SetMusicMode(red, green int, mic bool) error {
	return s.send(protocol.EncodeMusic(red, green, mic))
}

// SetTimer programs one on-device timer slot.
func (s *Session) SetTimer(t protocol.Timer) error {
	return s.send(protocol.EncodeTimer(t))
}

// SetDateTime sets the controller clock.
func (s *Session) SetDateTime(d protocol.DateTime) error {
	return s.send(protocol.EncodeDateTime(d))
}

// SyncTime sets the controller clock from t in t's location.
func (s *Session) SyncTime(t time.Time) error {
	return s.SetDateTime(protocol.DateTimeOf(t))
}

// GetLightData asks for the current light status; the reply arrives
// as a notification.
func (s *Session) GetLightData() error {
	return s.Send(protocol.EncodeQueryStatus())
}

// GetTimeData asks for the clock and timer table.
func (s *Session) GetTimeData() error {
	return s.Send(protocol.EncodeQueryTime())
}

// ReadColorData asks for the stored colour data.
func (s *Session) ReadColorData() error {
	return s.Send(protocol.EncodeReadColors())
}

// ReadDeviceInfo asks for device information.
func (s *Session) ReadDeviceInfo() error {
	return s.Send(protocol.EncodeReadDeviceInfo())
}
