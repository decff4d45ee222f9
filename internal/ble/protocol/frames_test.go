package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func mustRGB(t *testing.T, r, g, b, brightness int) Color {
	t.Helper()
	c, err := NewRGBBrightness(r, g, b, brightness)
	if err != nil {
		t.Fatalf("NewRGBBrightness(%d, %d, %d, %d) error = %v", r, g, b, brightness, err)
	}
	return c
}

func TestEncodeColor(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want []byte
	}{
		{"red full", mustRGB(t, 255, 0, 0, 100), []byte{0x56, 0xFF, 0x00, 0x00, 0x00, 0xF0, 0xAA}},
		{"green half truncates", mustRGB(t, 0, 255, 0, 50), []byte{0x56, 0x00, 0x7F, 0x00, 0x00, 0xF0, 0xAA}},
		{"off", mustRGB(t, 10, 20, 30, 0), []byte{0x56, 0x00, 0x00, 0x00, 0x00, 0xF0, 0xAA}},
		{"mixed 80", mustRGB(t, 100, 200, 3, 80), []byte{0x56, 80, 160, 2, 0x00, 0xF0, 0xAA}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeColor(tt.c)
			if !bytes.Equal(got.Bytes(), tt.want) {
				t.Errorf("EncodeColor() = %x, want %x", got.Bytes(), tt.want)
			}
			if got.Tag() != TagColor {
				t.Errorf("Tag() = %q, want %q", got.Tag(), TagColor)
			}
		})
	}
}

func TestEncodeColorFrameShape(t *testing.T) {
	for _, brightness := range []int{0, 1, 33, 50, 99, 100} {
		for _, v := range []int{0, 1, 127, 128, 254, 255} {
			c, err := NewRGBW(v, 255-v, v/2, v/3, brightness)
			if err != nil {
				t.Fatalf("NewRGBW() error = %v", err)
			}
			frame := EncodeColor(c).Bytes()
			if len(frame) != 7 || frame[0] != 0x56 || frame[5] != 0xF0 || frame[6] != 0xAA {
				t.Fatalf("EncodeColor(%v) = %x, bad framing", c, frame)
			}
			want := []byte{
				byte(v * brightness / 100),
				byte((255 - v) * brightness / 100),
				byte(v / 2 * brightness / 100),
				byte(v / 3 * brightness / 100),
			}
			if !bytes.Equal(frame[1:5], want) {
				t.Errorf("EncodeColor(%v) channels = %x, want %x", c, frame[1:5], want)
			}
		}
	}
}

func TestEncodeRGBRejectsOutOfRange(t *testing.T) {
	cases := [][4]int{
		{256, 0, 0, 100},
		{0, -1, 0, 100},
		{0, 0, 300, 100},
		{0, 0, 0, 101},
		{0, 0, 0, -5},
	}
	for _, c := range cases {
		cmd, err := EncodeRGB(c[0], c[1], c[2], c[3])
		if !errors.Is(err, ErrValidation) {
			t.Errorf("EncodeRGB(%v) error = %v, want ErrValidation", c, err)
		}
		if !cmd.IsZero() {
			t.Errorf("EncodeRGB(%v) returned a frame alongside an error", c)
		}
	}
}

func TestEncodeWhite(t *testing.T) {
	tests := []struct {
		brightness int
		ww         byte
	}{
		{100, 0xFF},
		{80, 204},
		{50, 0x7F},
		{0, 0x00},
	}
	for _, tt := range tests {
		got, err := EncodeWhite(tt.brightness)
		if err != nil {
			t.Fatalf("EncodeWhite(%d) error = %v", tt.brightness, err)
		}
		want := []byte{0x56, 0x00, 0x00, 0x00, tt.ww, 0xF0, 0xAA}
		if !bytes.Equal(got.Bytes(), want) {
			t.Errorf("EncodeWhite(%d) = %x, want %x", tt.brightness, got.Bytes(), want)
		}
	}

	if _, err := EncodeWhite(101); !IsValidation(err) {
		t.Errorf("EncodeWhite(101) error = %v, want validation error", err)
	}
}

func TestEncodePower(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := EncodePowerOn().Bytes(); !bytes.Equal(got, []byte{0xCC, 0x23, 0x33}) {
			t.Errorf("EncodePowerOn() = %x", got)
		}
		if got := EncodePowerOff().Bytes(); !bytes.Equal(got, []byte{0xCC, 0x24, 0x33}) {
			t.Errorf("EncodePowerOff() = %x", got)
		}
	}
}

func TestCommandBytesIsCopy(t *testing.T) {
	cmd := EncodePowerOn()
	b := cmd.Bytes()
	b[0] = 0x00
	if cmd.Bytes()[0] != 0xCC {
		t.Error("mutating Bytes() result changed the command")
	}
}

func TestEncodeMode(t *testing.T) {
	got, err := EncodeMode(ModeRainbow, 100)
	if err != nil {
		t.Fatalf("EncodeMode() error = %v", err)
	}
	want := []byte{0xBB, 0x2B, 100, 0x44}
	if !bytes.Equal(got.Bytes(), want) {
		t.Errorf("EncodeMode(Rainbow, 100) = %x, want %x", got.Bytes(), want)
	}

	got, err = EncodeMode(ModeStatic, DefaultSpeed)
	if err != nil {
		t.Fatalf("EncodeMode() error = %v", err)
	}
	if got.Bytes()[2] != 50 {
		t.Errorf("default speed byte = %d, want 50", got.Bytes()[2])
	}
}

func TestEncodeModeByNameAndCodeAgree(t *testing.T) {
	for _, info := range Modes() {
		byName, err := ModeByName(info.Mode.String())
		if err != nil {
			t.Fatalf("ModeByName(%q) error = %v", info.Mode, err)
		}
		a, err := EncodeMode(byName, 77)
		if err != nil {
			t.Fatalf("EncodeMode(%v) error = %v", byName, err)
		}
		b, err := EncodeModeCode(info.Code, 77)
		if err != nil {
			t.Fatalf("EncodeModeCode(0x%02x) error = %v", info.Code, err)
		}
		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Errorf("%v: by name %x != by code %x", info.Mode, a.Bytes(), b.Bytes())
		}
	}
}

func TestEncodeModeErrors(t *testing.T) {
	if _, err := EncodeMode(ModeUnknown, 10); !errors.Is(err, ErrUnknownModeName) {
		t.Errorf("EncodeMode(ModeUnknown) error = %v, want ErrUnknownModeName", err)
	}
	if _, err := EncodeModeCode(0x99, 10); !errors.Is(err, ErrUnknownModeCode) {
		t.Errorf("EncodeModeCode(0x99) error = %v, want ErrUnknownModeCode", err)
	}
	if _, err := EncodeMode(ModeStatic, 256); !IsValidation(err) {
		t.Errorf("EncodeMode(speed=256) error = %v, want validation error", err)
	}
	if _, err := EncodeMode(ModeStatic, -1); !IsValidation(err) {
		t.Errorf("EncodeMode(speed=-1) error = %v, want validation error", err)
	}
}

func TestEncodeSpeed(t *testing.T) {
	got, err := EncodeSpeed(200)
	if err != nil {
		t.Fatalf("EncodeSpeed() error = %v", err)
	}
	if want := []byte{0xFF, 200, 0x00, 0x00}; !bytes.Equal(got.Bytes(), want) {
		t.Errorf("EncodeSpeed(200) = %x, want %x", got.Bytes(), want)
	}
}

func TestEncodeMusic(t *testing.T) {
	mic, err := EncodeMusic(0x12, 0x34, true)
	if err != nil {
		t.Fatalf("EncodeMusic(mic) error = %v", err)
	}
	if want := []byte{0x64, 0xF0, 0x12, 0x34, 0x00, 0xF0, 0x76}; !bytes.Equal(mic.Bytes(), want) {
		t.Errorf("EncodeMusic(mic) = %x, want %x", mic.Bytes(), want)
	}

	line, err := EncodeMusic(0x12, 0x34, false)
	if err != nil {
		t.Fatalf("EncodeMusic(line-in) error = %v", err)
	}
	if want := []byte{0x64, 0x0F, 0x12, 0x34, 0x00, 0x0F, 0x76}; !bytes.Equal(line.Bytes(), want) {
		t.Errorf("EncodeMusic(line-in) = %x, want %x", line.Bytes(), want)
	}

	if _, err := EncodeMusic(256, 0, true); !IsValidation(err) {
		t.Errorf("EncodeMusic(256) error = %v, want validation error", err)
	}
}

func TestEncodeQueries(t *testing.T) {
	tests := []struct {
		cmd  Command
		want []byte
		tag  Tag
	}{
		{EncodeQueryStatus(), []byte{0xEF, 0x01, 0x77}, TagQueryStatus},
		{EncodeQueryTime(), []byte{0x24, 0x2A, 0x2B, 0x42}, TagQueryTime},
		{EncodeReadColors(), []byte{0x1D, 0xF0, 0x00, 0xF1}, TagReadColors},
		{EncodeReadDeviceInfo(), []byte{0xE5, 0xF0, 0x5E}, TagReadInfo},
	}
	for _, tt := range tests {
		if !bytes.Equal(tt.cmd.Bytes(), tt.want) {
			t.Errorf("%s = %x, want %x", tt.tag, tt.cmd.Bytes(), tt.want)
		}
		if tt.cmd.Tag() != tt.tag {
			t.Errorf("Tag() = %q, want %q", tt.cmd.Tag(), tt.tag)
		}
	}
}
