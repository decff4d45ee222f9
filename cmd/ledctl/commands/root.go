package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chaz8081/ledctl/internal/ble"
	"github.com/chaz8081/ledctl/internal/config"
)

type appContextKey struct{}

// app is the state shared by every subcommand. It is built in the root
// PersistentPreRunE and stored on the command context.
type app struct {
	adapter    ble.Adapter
	logger     *slog.Logger
	cfg        *config.Config
	configPath string
	address    string
}

func appFromCmd(cmd *cobra.Command) *app {
	if a, ok := cmd.Context().Value(appContextKey{}).(*app); ok {
		return a
	}
	panic("commands: app not initialised")
}

// saveConfig persists the loaded config back to the file it came from.
func (a *app) saveConfig() error {
	return a.cfg.Save(a.configPath)
}

// NewRootCommand creates the root command
func NewRootCommand(adapter ble.Adapter, version, commit, buildDate string) *cobra.Command {
	var (
		configPath string
		logLevel   string
		address    string
	)

	cmd := &cobra.Command{
		Use:           "ledctl",
		Short:         "Control Bluetooth LE RGB LED strip controllers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.DefaultConfigPath()
			}
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			// --log-level only affects this run and is never saved.
			levelName := cfg.LogLevel
			if logLevel != "" {
				levelName = logLevel
			}
			level, err := config.ParseLogLevel(levelName)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			a := &app{
				adapter:    adapter,
				logger:     logger,
				cfg:        cfg,
				configPath: configPath,
				address:    address,
			}
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			cmd.SetContext(context.WithValue(parent, appContextKey{}, a))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/ledctl/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&address, "address", "a", "", "Device address (default: configured default, else first device found)")

	cmd.AddCommand(
		newVersionCommand(version, commit, buildDate),
		newScanCommand(),
		newOnCommand(),
		newOffCommand(),
		newColorCommand(),
		newWhiteCommand(),
		newModeCommand(),
		newModesCommand(),
		newSpeedCommand(),
		newMusicCommand(),
		newTimerCommand(),
		newSyncTimeCommand(),
		newStatusCommand(),
		newPresetCommand(),
		newDefaultAddressCommand(),
	)

	return cmd
}

// newVersionCommand creates the version command
func newVersionCommand(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version:    %s\n", version)
			fmt.Fprintf(out, "Commit:     %s\n", commit)
			fmt.Fprintf(out, "Build Date: %s\n", buildDate)
		},
	}
}
