package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chaz8081/ledctl/internal/ble/protocol"
)

// ErrPresetNotFound is returned when a named preset does not exist.
var ErrPresetNotFound = errors.New("preset not found")

// Config holds all application configuration.
type Config struct {
	DefaultAddress string            `yaml:"default_address,omitempty"`
	Presets        map[string]Preset `yaml:"presets,omitempty"`
	Scan           ScanConfig        `yaml:"scan"`
	Connect        ConnectConfig     `yaml:"connect"`
	LogLevel       string            `yaml:"log_level"`
}

// Preset is a named colour.
type Preset struct {
	Red        int `yaml:"r"`
	Green      int `yaml:"g"`
	Blue       int `yaml:"b"`
	WarmWhite  int `yaml:"ww,omitempty"`
	Brightness int `yaml:"brightness"`
}

// ScanConfig holds discovery settings.
type ScanConfig struct {
	Duration   time.Duration `yaml:"duration"`
	Retries    int           `yaml:"retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// ConnectConfig holds connection settings.
type ConnectConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

const fileHeader = "# ledctl configuration\n"

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ledctl")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Presets: map[string]Preset{},
		Scan: ScanConfig{
			Duration:   5 * time.Second,
			Retries:    3,
			RetryDelay: 2 * time.Second,
		},
		Connect: ConnectConfig{
			Timeout: 10 * time.Second,
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Presets == nil {
		cfg.Presets = map[string]Preset{}
	}

	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.Scan.Duration <= 0 {
		return fmt.Errorf("scan.duration must be > 0")
	}
	if c.Scan.Retries < 1 {
		return fmt.Errorf("scan.retries must be >= 1")
	}
	if c.Scan.RetryDelay < 0 {
		return fmt.Errorf("scan.retry_delay must not be negative")
	}
	if c.Connect.Timeout <= 0 {
		return fmt.Errorf("connect.timeout must be > 0")
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	for name, p := range c.Presets {
		if _, err := p.Color(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}

	return nil
}

// ParseLogLevel maps debug, info, warn or error to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be debug, info, warn, or error, got %q", level)
	}
}

// Color validates the preset and converts it.
func (p Preset) Color() (protocol.Color, error) {
	return protocol.NewRGBW(p.Red, p.Green, p.Blue, p.WarmWhite, p.Brightness)
}

// PresetFromColor stores a colour's channels and brightness.
func PresetFromColor(c protocol.Color) Preset {
	return Preset{
		Red:        int(c.Red()),
		Green:      int(c.Green()),
		Blue:       int(c.Blue()),
		WarmWhite:  int(c.WarmWhite()),
		Brightness: int(c.Brightness()),
	}
}

func presetKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SetPreset stores or replaces a preset. Names are case-insensitive.
func (c *Config) SetPreset(name string, p Preset) error {
	key := presetKey(name)
	if key == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if _, err := p.Color(); err != nil {
		return fmt.Errorf("preset %q: %w", key, err)
	}
	if c.Presets == nil {
		c.Presets = map[string]Preset{}
	}
	c.Presets[key] = p
	return nil
}

// Preset looks up a preset by name.
func (c *Config) Preset(name string) (Preset, error) {
	p, ok := c.Presets[presetKey(name)]
	if !ok {
		return Preset{}, fmt.Errorf("%q: %w", name, ErrPresetNotFound)
	}
	return p, nil
}

// RemovePreset deletes a preset.
func (c *Config) RemovePreset(name string) error {
	key := presetKey(name)
	if _, ok := c.Presets[key]; !ok {
		return fmt.Errorf("%q: %w", name, ErrPresetNotFound)
	}
	delete(c.Presets, key)
	return nil
}

// PresetNames returns preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetDefaultAddress stores the address used when none is given.
func (c *Config) SetDefaultAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("default address must not be empty")
	}
	c.DefaultAddress = address
	return nil
}

// ClearDefaultAddress removes the stored default address.
func (c *Config) ClearDefaultAddress() {
	c.DefaultAddress = ""
}

// ResolveAddress returns the explicit address if set, else the configured
// default. ok is false when neither is available and the caller should scan.
func (c *Config) ResolveAddress(explicit string) (address string, ok bool) {
	if a := strings.TrimSpace(explicit); a != "" {
		return a, true
	}
	if c.DefaultAddress != "" {
		return c.DefaultAddress, true
	}
	return "", false
}
