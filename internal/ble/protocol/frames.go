package protocol

import "fmt"

// Frame markers.
const (
	colorHead       = 0x56
	colorExt        = 0xF0
	colorTail       = 0xAA
	powerHead       = 0xCC
	powerOnByte     = 0x23
	powerOffByte    = 0x24
	powerTail       = 0x33
	modeHead        = 0xBB
	modeTail        = 0x44
	musicHead       = 0x64
	musicTail       = 0x76
	musicMic        = 0xF0
	musicLineIn     = 0x0F
	speedHead       = 0xFF
	flagTrue        = 0xF0
	flagFalse       = 0x0F
	queryHead       = 0xEF
	queryTail       = 0x77
	dateTimeHead    = 0x10
	dateTimeCentury = 0x14
)

// DefaultSpeed is the animation speed used when the caller has no preference.
const DefaultSpeed = 50

// EncodeColor builds 56 R G B WW F0 AA with each channel scaled by the
// colour's brightness.
func EncodeColor(c Color) Command {
	s := c.Scaled()
	return newCommand(TagColor, colorHead, s[0], s[1], s[2], s[3], colorExt, colorTail)
}

// EncodeRGB validates and encodes an RGB colour at the given brightness.
func EncodeRGB(red, green, blue, brightness int) (Command, error) {
	c, err := NewRGBBrightness(red, green, blue, brightness)
	if err != nil {
		return Command{}, err
	}
	return EncodeColor(c), nil
}

// EncodeWhite builds 56 00 00 00 WW F0 AA, WW being brightness (0-100)
// scaled to 0-255.
func EncodeWhite(brightness int) (Command, error) {
	if err := checkRange("brightness", brightness, 0, 100); err != nil {
		return Command{}, err
	}
	ww := scalePercent(255, uint8(brightness))
	return newCommand(TagWhite, colorHead, 0, 0, 0, ww, colorExt, colorTail), nil
}

// EncodePowerOn returns CC 23 33.
func EncodePowerOn() Command {
	return newCommand(TagPowerOn, powerHead, powerOnByte, powerTail)
}

// EncodePowerOff returns CC 24 33.
func EncodePowerOff() Command {
	return newCommand(TagPowerOff, powerHead, powerOffByte, powerTail)
}

// EncodeMode builds BB <code> <speed> 44.
func EncodeMode(m Mode, speed int) (Command, error) {
	if !m.Valid() {
		return Command{}, fmt.Errorf("protocol: mode %d: %w", uint8(m), ErrUnknownModeName)
	}
	if err := checkRange("speed", speed, 0, 255); err != nil {
		return Command{}, err
	}
	return newCommand(TagMode, modeHead, m.Code(), byte(speed), modeTail), nil
}

// EncodeModeCode is EncodeMode keyed by the device byte. Unknown codes fail
// with ErrUnknownModeCode.
func EncodeModeCode(code byte, speed int) (Command, error) {
	m, err := ModeFromCode(code)
	if err != nil {
		return Command{}, err
	}
	return EncodeMode(m, speed)
}

// EncodeSpeed builds FF <speed> 00 00, changing the speed of the running mode.
func EncodeSpeed(speed int) (Command, error) {
	if err := checkRange("speed", speed, 0, 255); err != nil {
		return Command{}, err
	}
	return newCommand(TagSpeed, speedHead, byte(speed), 0, 0), nil
}

// EncodeMusic builds the music-reactive frame. With mic set the controller
// listens on its microphone (64 F0 R G 00 F0 76); otherwise it uses line-in
// (64 0F R G 00 0F 76).
func EncodeMusic(red, green int, mic bool) (Command, error) {
	if err := checkRange("red", red, 0, 255); err != nil {
		return Command{}, err
	}
	if err := checkRange("green", green, 0, 255); err != nil {
		return Command{}, err
	}
	src := byte(musicLineIn)
	if mic {
		src = musicMic
	}
	return newCommand(TagMusic, musicHead, src, byte(red), byte(green), 0, src, musicTail), nil
}

// EncodeQueryStatus returns EF 01 77. The reply arrives as a notification.
func EncodeQueryStatus() Command {
	return newCommand(TagQueryStatus, queryHead, 0x01, queryTail)
}

// EncodeQueryTime returns 24 2A 2B 42.
func EncodeQueryTime() Command {
	return newCommand(TagQueryTime, 0x24, 0x2A, 0x2B, 0x42)
}

// EncodeReadColors returns 1D F0 00 F1.
func EncodeReadColors() Command {
	return newCommand(TagReadColors, 0x1D, 0xF0, 0x00, 0xF1)
}

// EncodeReadDeviceInfo returns E5 F0 5E.
func EncodeReadDeviceInfo() Command {
	return newCommand(TagReadInfo, 0xE5, 0xF0, 0x5E)
}

func flagByte(b bool) byte {
	if b {
		return flagTrue
	}
	return flagFalse
}
