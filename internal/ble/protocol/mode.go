package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is one of the controller's built-in animation programs. The zero
// value is ModeUnknown, which never encodes.
type Mode uint8

const (
	ModeUnknown Mode = iota
	ModeStatic
	ModeBreathing
	ModeCrossFade
	ModeStrobe
	ModeColorJump
	ModeColorCycle
	ModeRainbow
	ModeWave
	ModeCandle
	ModeFireplace
	ModeTwinkle
	ModeSparks
	ModePlasma
	ModeMood
	ModeOcean
	ModeForest
	ModeRain
	ModeMusic1
	ModeMusic2
	ModeMusic3
	ModeCustom1
	ModeCustom2
	ModeCustom3

	modeCount
)

// Category groups modes for listing.
type Category string

const (
	CategoryStatic       Category = "Static"
	CategoryFading       Category = "Fading"
	CategoryStrobe       Category = "Strobe"
	CategoryColorEffects Category = "Color Effects"
	CategoryNature       Category = "Nature"
	CategorySpecial      Category = "Special"
	CategoryMusic        Category = "Music"
	CategoryCustom       Category = "Custom"
)

// Categories lists the categories in display order.
var Categories = []Category{
	CategoryStatic, CategoryFading, CategoryStrobe, CategoryColorEffects,
	CategoryNature, CategorySpecial, CategoryMusic, CategoryCustom,
}

// ModeInfo describes a mode. SpeedMin and SpeedMax are both 0 for modes
// that ignore speed.
type ModeInfo struct {
	Mode        Mode
	Code        byte
	DisplayName string
	Description string
	SpeedMin    uint8
	SpeedMax    uint8
	Category    Category
}

var modeTable = [modeCount]ModeInfo{
	ModeStatic:     {ModeStatic, 0x25, "Static", "Solid color, no animation", 0, 0, CategoryStatic},
	ModeBreathing:  {ModeBreathing, 0x26, "Breathing", "Smooth fade in and out", 5, 200, CategoryFading},
	ModeCrossFade:  {ModeCrossFade, 0x27, "Cross-fade", "Fade between colors", 5, 200, CategoryFading},
	ModeStrobe:     {ModeStrobe, 0x28, "Strobe", "Rapid blinking", 10, 255, CategoryStrobe},
	ModeColorJump:  {ModeColorJump, 0x29, "Color jump", "Jump between colors", 10, 200, CategoryColorEffects},
	ModeColorCycle: {ModeColorCycle, 0x2a, "Color cycle", "Cycle through colors", 5, 200, CategoryColorEffects},
	ModeRainbow:    {ModeRainbow, 0x2b, "Rainbow", "Rainbow color spectrum", 5, 200, CategoryColorEffects},
	ModeWave:       {ModeWave, 0x2c, "Wave", "Color wave effect", 10, 200, CategoryColorEffects},
	ModeCandle:     {ModeCandle, 0x2d, "Candle", "Candle-like flickering", 20, 150, CategoryNature},
	ModeFireplace:  {ModeFireplace, 0x2e, "Fireplace", "Flickering fire effect", 20, 150, CategoryNature},
	ModeTwinkle:    {ModeTwinkle, 0x2f, "Twinkle", "Stars twinkle effect", 10, 150, CategorySpecial},
	ModeSparks:     {ModeSparks, 0x30, "Sparks", "Sparkle effect", 10, 150, CategorySpecial},
	ModePlasma:     {ModePlasma, 0x31, "Plasma", "Liquid plasma effect", 10, 200, CategorySpecial},
	ModeMood:       {ModeMood, 0x32, "Mood", "Mood lighting transitions", 5, 150, CategoryFading},
	ModeOcean:      {ModeOcean, 0x33, "Ocean", "Ocean wave colors", 10, 200, CategoryNature},
	ModeForest:     {ModeForest, 0x34, "Forest", "Nature green colors", 10, 200, CategoryNature},
	ModeRain:       {ModeRain, 0x35, "Rain", "Rain drop effect", 10, 200, CategoryNature},
	ModeMusic1:     {ModeMusic1, 0x36, "Music 1", "Music sync - mode 1", 0, 0, CategoryMusic},
	ModeMusic2:     {ModeMusic2, 0x37, "Music 2", "Music sync - mode 2", 0, 0, CategoryMusic},
	ModeMusic3:     {ModeMusic3, 0x38, "Music 3", "Music sync - mode 3", 0, 0, CategoryMusic},
	ModeCustom1:    {ModeCustom1, 0x61, "Custom 1", "User custom pattern", 5, 200, CategoryCustom},
	ModeCustom2:    {ModeCustom2, 0x62, "Custom 2", "User custom pattern", 5, 200, CategoryCustom},
	ModeCustom3:    {ModeCustom3, 0x63, "Custom 3", "User custom pattern", 5, 200, CategoryCustom},
}

var modeByCode = func() map[byte]Mode {
	m := make(map[byte]Mode, modeCount-1)
	for i := ModeStatic; i < modeCount; i++ {
		m[modeTable[i].Code] = i
	}
	return m
}()

// Valid reports whether m is a known mode (not ModeUnknown or out of range).
func (m Mode) Valid() bool {
	return m > ModeUnknown && m < modeCount
}

// Code returns the device byte for m, or 0 for an invalid mode.
func (m Mode) Code() byte {
	if !m.Valid() {
		return 0
	}
	return modeTable[m].Code
}

// Info returns the metadata for m. ok is false for invalid modes.
func (m Mode) Info() (ModeInfo, bool) {
	if !m.Valid() {
		return ModeInfo{}, false
	}
	return modeTable[m], true
}

// String returns the symbolic name, MODE_1 through MODE_23.
func (m Mode) String() string {
	if !m.Valid() {
		return "UNKNOWN"
	}
	return "MODE_" + strconv.Itoa(int(m))
}

// ModeFromCode maps a device byte to its mode.
func ModeFromCode(code byte) (Mode, error) {
	if m, ok := modeByCode[code]; ok {
		return m, nil
	}
	return ModeUnknown, fmt.Errorf("protocol: 0x%02x: %w", code, ErrUnknownModeCode)
}

// ModeByName maps a symbolic name (MODE_n, case-insensitive) to its mode.
func ModeByName(name string) (Mode, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if n, ok := strings.CutPrefix(upper, "MODE_"); ok {
		if i, err := strconv.Atoi(n); err == nil && i > 0 && i < int(modeCount) {
			return Mode(i), nil
		}
	}
	return ModeUnknown, fmt.Errorf("protocol: %q: %w", name, ErrUnknownModeName)
}

// ParseMode accepts either a symbolic name or a hex code such as "0x25".
func ParseMode(s string) (Mode, error) {
	t := strings.TrimSpace(s)
	if len(t) > 2 && (t[:2] == "0x" || t[:2] == "0X") {
		v, err := strconv.ParseUint(t[2:], 16, 8)
		if err != nil {
			return ModeUnknown, fmt.Errorf("protocol: mode code %q: %w", s, ErrUnknownModeCode)
		}
		return ModeFromCode(byte(v))
	}
	return ModeByName(t)
}

// Modes returns every mode in device-code order.
func Modes() []ModeInfo {
	out := make([]ModeInfo, 0, modeCount-1)
	for i := ModeStatic; i < modeCount; i++ {
		out = append(out, modeTable[i])
	}
	return out
}

// ModesByCategory groups Modes() by category.
func ModesByCategory() map[Category][]ModeInfo {
	out := make(map[Category][]ModeInfo, len(Categories))
	for _, info := range Modes() {
		out[info.Category] = append(out[info.Category], info)
	}
	return out
}
