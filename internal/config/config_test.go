package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaz8081/ledctl/internal/ble/protocol"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.DefaultAddress)
	assert.NotNil(t, cfg.Presets)
	assert.Equal(t, 5*time.Second, cfg.Scan.Duration)
	assert.Equal(t, 3, cfg.Scan.Retries)
	assert.Equal(t, 2*time.Second, cfg.Scan.RetryDelay)
	assert.Equal(t, 10*time.Second, cfg.Connect.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfigPath(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	assert.Equal(t, filepath.Join(tmpHome, ".config", "ledctl", "config.yaml"), DefaultConfigPath())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
default_address: "AA:BB:CC:DD:EE:FF"
presets:
  sunset:
    r: 255
    g: 80
    b: 0
    brightness: 60
scan:
  duration: 8s
  retries: 5
  retry_delay: 500ms
connect:
  timeout: 15s
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "AA:BB:CC:DD:EE:FF", cfg.DefaultAddress)
	assert.Equal(t, Preset{Red: 255, Green: 80, Blue: 0, Brightness: 60}, cfg.Presets["sunset"])
	assert.Equal(t, 8*time.Second, cfg.Scan.Duration)
	assert.Equal(t, 5, cfg.Scan.Retries)
	assert.Equal(t, 500*time.Millisecond, cfg.Scan.RetryDelay)
	assert.Equal(t, 15*time.Second, cfg.Connect.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
scan:
  retries: 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Scan.Retries)
	assert.Equal(t, 5*time.Second, cfg.Scan.Duration)
	assert.Equal(t, 10*time.Second, cfg.Connect.Timeout)
	assert.NotNil(t, cfg.Presets)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "scan: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := writeConfig(t, "log_level: warn\n")
	cfg, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	require.NoError(t, cfg.SetDefaultAddress("11:22:33:44:55:66"))
	require.NoError(t, cfg.SetPreset("Reading", Preset{Red: 255, Green: 200, Blue: 120, Brightness: 80}))
	cfg.Scan.Duration = 3 * time.Second
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# ledctl"), "written config should start with header comment")
	assert.Contains(t, string(data), "duration: 3s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid default config",
			modify: func(c *Config) {},
		},
		{
			name:    "zero scan duration",
			modify:  func(c *Config) { c.Scan.Duration = 0 },
			wantErr: true,
		},
		{
			name:    "zero retries",
			modify:  func(c *Config) { c.Scan.Retries = 0 },
			wantErr: true,
		},
		{
			name:    "negative retry delay",
			modify:  func(c *Config) { c.Scan.RetryDelay = -time.Second },
			wantErr: true,
		},
		{
			name:   "zero retry delay",
			modify: func(c *Config) { c.Scan.RetryDelay = 0 },
		},
		{
			name:    "zero connect timeout",
			modify:  func(c *Config) { c.Connect.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: true,
		},
		{
			name:    "preset out of range",
			modify:  func(c *Config) { c.Presets["bad"] = Preset{Red: 300, Brightness: 50} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("trace")
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.SetPreset("  Movie ", Preset{Red: 10, Green: 0, Blue: 40, Brightness: 20}))
	require.NoError(t, cfg.SetPreset("alarm", Preset{Red: 255, Brightness: 100}))

	p, err := cfg.Preset("MOVIE")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Red)
	assert.Equal(t, []string{"alarm", "movie"}, cfg.PresetNames())

	assert.ErrorIs(t, cfg.RemovePreset("nope"), ErrPresetNotFound)
	require.NoError(t, cfg.RemovePreset("Alarm"))
	_, err = cfg.Preset("alarm")
	assert.ErrorIs(t, err, ErrPresetNotFound)

	assert.Error(t, cfg.SetPreset("", Preset{}))
	err = cfg.SetPreset("bright", Preset{Brightness: 101})
	assert.True(t, protocol.IsValidation(err))
	assert.NotContains(t, cfg.Presets, "bright")
}

func TestPresetColor(t *testing.T) {
	c, err := Preset{Red: 255, Green: 0, Blue: 0, Brightness: 50}.Color()
	require.NoError(t, err)
	assert.Equal(t, [4]byte{0x7F, 0x00, 0x00, 0x00}, c.Scaled())

	c2, err := protocol.NewRGBBrightness(1, 2, 3, 40)
	require.NoError(t, err)
	assert.Equal(t, Preset{Red: 1, Green: 2, Blue: 3, Brightness: 40}, PresetFromColor(c2))
}

func TestDefaultAddress(t *testing.T) {
	cfg := Default()

	_, ok := cfg.ResolveAddress("")
	assert.False(t, ok, "nothing configured means scan")

	require.NoError(t, cfg.SetDefaultAddress(" AA:BB:CC:DD:EE:FF "))
	addr, ok := cfg.ResolveAddress("")
	assert.True(t, ok)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", addr)

	addr, ok = cfg.ResolveAddress("11:11:11:11:11:11")
	assert.True(t, ok)
	assert.Equal(t, "11:11:11:11:11:11", addr, "explicit address wins")

	cfg.ClearDefaultAddress()
	_, ok = cfg.ResolveAddress("  ")
	assert.False(t, ok)

	assert.Error(t, cfg.SetDefaultAddress(""))
}
