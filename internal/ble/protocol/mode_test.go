package protocol

import (
	"errors"
	"testing"
)

func TestModeRoundTrip(t *testing.T) {
	for m := ModeStatic; m < modeCount; m++ {
		got, err := ModeFromCode(m.Code())
		if err != nil {
			t.Fatalf("ModeFromCode(0x%02x) error = %v", m.Code(), err)
		}
		if got != m {
			t.Errorf("ModeFromCode(%v.Code()) = %v", m, got)
		}
		byName, err := ModeByName(m.String())
		if err != nil || byName != m {
			t.Errorf("ModeByName(%q) = %v, %v", m.String(), byName, err)
		}
	}
}

func TestModeCodes(t *testing.T) {
	tests := map[Mode]byte{
		ModeStatic:  0x25,
		ModeRain:    0x35,
		ModeMusic3:  0x38,
		ModeCustom1: 0x61,
		ModeCustom3: 0x63,
	}
	for m, code := range tests {
		if m.Code() != code {
			t.Errorf("%v.Code() = 0x%02x, want 0x%02x", m, m.Code(), code)
		}
	}
	if ModeStatic.String() != "MODE_1" || ModeCustom3.String() != "MODE_23" {
		t.Errorf("symbolic names wrong: %s, %s", ModeStatic, ModeCustom3)
	}
}

func TestModeLookupFailuresAreDistinct(t *testing.T) {
	_, codeErr := ModeFromCode(0x40)
	if !errors.Is(codeErr, ErrUnknownModeCode) || errors.Is(codeErr, ErrUnknownModeName) {
		t.Errorf("ModeFromCode(0x40) error = %v, want only ErrUnknownModeCode", codeErr)
	}

	for _, name := range []string{"MODE_0", "MODE_24", "MODE_257", "rainbow", "", "MODE_x"} {
		_, nameErr := ModeByName(name)
		if !errors.Is(nameErr, ErrUnknownModeName) || errors.Is(nameErr, ErrUnknownModeCode) {
			t.Errorf("ModeByName(%q) error = %v, want only ErrUnknownModeName", name, nameErr)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"MODE_1", ModeStatic},
		{"mode_7", ModeRainbow},
		{"0x25", ModeStatic},
		{"0X2b", ModeRainbow},
		{" 0x63 ", ModeCustom3},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseMode("0xzz"); !errors.Is(err, ErrUnknownModeCode) {
		t.Errorf("ParseMode(0xzz) error = %v, want ErrUnknownModeCode", err)
	}
	if _, err := ParseMode("0x99"); !errors.Is(err, ErrUnknownModeCode) {
		t.Errorf("ParseMode(0x99) error = %v, want ErrUnknownModeCode", err)
	}
}

func TestModeUnknown(t *testing.T) {
	var m Mode
	if m != ModeUnknown || m.Valid() || m.Code() != 0 {
		t.Errorf("zero Mode = %v valid=%v code=%d", m, m.Valid(), m.Code())
	}
	if _, ok := Mode(200).Info(); ok {
		t.Error("Mode(200).Info() ok = true")
	}
}

func TestModesByCategory(t *testing.T) {
	groups := ModesByCategory()
	total := 0
	for _, c := range Categories {
		total += len(groups[c])
	}
	if total != len(Modes()) || total != 23 {
		t.Errorf("categorised %d modes, Modes() has %d, want 23", total, len(Modes()))
	}
	if len(groups[CategoryMusic]) != 3 {
		t.Errorf("music modes = %d, want 3", len(groups[CategoryMusic]))
	}
}
