package protocol

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultBrightness is the brightness used by constructors that do not take one.
const DefaultBrightness = 100

// Color is an RGBW colour with a brightness percentage. The zero value is
// black at 0% brightness; use the constructors to get validated values.
type Color struct {
	red, green, blue, warmWhite uint8
	brightness                  uint8
}

// NewRGB returns an RGB colour at full brightness. Warm white is 0.
func NewRGB(red, green, blue int) (Color, error) {
	return NewRGBW(red, green, blue, 0, DefaultBrightness)
}

// NewRGBBrightness returns an RGB colour at the given brightness (0-100).
func NewRGBBrightness(red, green, blue, brightness int) (Color, error) {
	return NewRGBW(red, green, blue, 0, brightness)
}

// NewRGBW returns a colour with an explicit warm-white channel.
func NewRGBW(red, green, blue, warmWhite, brightness int) (Color, error) {
	for _, ch := range []struct {
		name string
		v    int
	}{
		{"red", red},
		{"green", green},
		{"blue", blue},
		{"warm white", warmWhite},
	} {
		if err := checkRange(ch.name, ch.v, 0, 255); err != nil {
			return Color{}, err
		}
	}
	if err := checkRange("brightness", brightness, 0, 100); err != nil {
		return Color{}, err
	}
	return Color{
		red:        uint8(red),
		green:      uint8(green),
		blue:       uint8(blue),
		warmWhite:  uint8(warmWhite),
		brightness: uint8(brightness),
	}, nil
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into a full-brightness colour.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("protocol: hex colour %q must have 6 digits: %w", s, ErrValidation)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("protocol: hex colour %q: %w", s, ErrValidation)
	}
	return NewRGB(int(v>>16&0xFF), int(v>>8&0xFF), int(v&0xFF))
}

// WithBrightness returns a copy of c with a different brightness.
func (c Color) WithBrightness(brightness int) (Color, error) {
	return NewRGBW(int(c.red), int(c.green), int(c.blue), int(c.warmWhite), brightness)
}

func (c Color) Red() uint8 { return c.red }
func (c Color) Green() uint8 { return c.green }
func (c Color) Blue() uint8 { return c.blue }
func (c Color) WarmWhite() uint8 { return c.warmWhite }
func (c Color) Brightness() uint8 { return c.brightness }

// Scaled returns the four channels scaled by brightness, in R, G, B, WW order.
func (c Color) Scaled() [4]byte {
	return [4]byte{
		scalePercent(c.red, c.brightness),
		scalePercent(c.green, c.brightness),
		scalePercent(c.blue, c.brightness),
		scalePercent(c.warmWhite, c.brightness),
	}
}

// Hex returns the unscaled RGB channels as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.red, c.green, c.blue)
}

func (c Color) String() string {
	if c.warmWhite != 0 {
		return fmt.Sprintf("%s ww=%d @%d%%", c.Hex(), c.warmWhite, c.brightness)
	}
	return fmt.Sprintf("%s @%d%%", c.Hex(), c.brightness)
}

// scalePercent maps v by pct/100, truncating toward zero.
// 255 at 50% is 127 (0x7F).
func scalePercent(v, pct uint8) byte {
	return byte(int(v) * int(pct) / 100)
}

var namedColors = map[string][4]int{
	"red":         {255, 0, 0, 0},
	"green":       {0, 255, 0, 0},
	"blue":        {0, 0, 255, 0},
	"yellow":      {255, 255, 0, 0},
	"cyan":        {0, 255, 255, 0},
	"magenta":     {255, 0, 255, 0},
	"white":       {255, 255, 255, 0},
	"warm_white":  {0, 0, 0, 255},
	"orange":      {255, 165, 0, 0},
	"pink":        {255, 105, 180, 0},
	"purple":      {128, 0, 128, 0},
	"light_blue":  {173, 216, 230, 0},
	"light_green": {144, 238, 144, 0},
}

// NamedColor looks up one of the built-in colour names (case-insensitive).
func NamedColor(name string) (Color, bool) {
	v, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return Color{}, false
	}
	c, err := NewRGBW(v[0], v[1], v[2], v[3], DefaultBrightness)
	return c, err == nil
}

// ColorNames returns the built-in colour names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for n := range namedColors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
