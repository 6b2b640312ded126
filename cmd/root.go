package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/waypoint/internal/config"
	"github.com/zjrosen/waypoint/internal/demo"
	"github.com/zjrosen/waypoint/log"
	"github.com/zjrosen/waypoint/navigation"
	"github.com/zjrosen/waypoint/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "waypoint",
	Short:   "A navigation library demo for Bubble Tea",
	Long:    `Demo application for the waypoint navigation library: hosts, viewmodel resolution, and the sync/async navigation lifecycle, driven from a terminal UI.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/waypoint/config.yaml)")
	rootCmd.Flags().Bool("debug", false,
		"write debug logs to .waypoint/debug.log")
	rootCmd.Flags().String("start-view", "",
		"view shown at startup (home, settings, about)")
	rootCmd.Flags().Bool("trace", false,
		"export navigation spans to .waypoint/traces.jsonl")

	_ = viper.BindPFlag("start_view", rootCmd.Flags().Lookup("start-view"))
	_ = viper.BindPFlag("tracing.enabled", rootCmd.Flags().Lookup("trace"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("start_view", defaults.StartView)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.highlight", defaults.UI.Highlight)
	viper.SetDefault("ui.navigate_timeout", defaults.UI.NavigateTimeout)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .waypoint/config.yaml (current directory)
		// 2. ~/.config/waypoint/config.yaml (user config)
		if _, err := os.Stat(".waypoint/config.yaml"); err == nil {
			viper.SetConfigFile(".waypoint/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "waypoint"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .waypoint/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".waypoint/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cleanup, err := log.Init(".waypoint/debug.log")
		if err != nil {
			return fmt.Errorf("setting up debug log: %w", err)
		}
		defer cleanup()
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	var opts []navigation.Option
	if provider.Enabled() {
		opts = append(opts, navigation.WithTracer(provider.Tracer()))
	}

	model, err := demo.NewModel(cfg, opts...)
	if err != nil {
		return fmt.Errorf("assembling application: %w", err)
	}
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
