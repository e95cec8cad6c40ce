package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vimgolf-core/vimgolf/internal/config"
	"github.com/vimgolf-core/vimgolf/internal/log"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	viperlib "github.com/spf13/viper"
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
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	debugFlag bool

	viper = viperlib.New()
)

var rootCmd = &cobra.Command{
	Use:     "vimgolf",
	Short:   "A deterministic vim-golf evaluator",
	Long:    `A headless vim emulator that scores and replays keystroke solutions against vim-golf challenge fixtures.`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vimgolf/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug mode with logging (also: VIMGOLF_DEBUG=1)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("challenge_dirs", defaults.ChallengeDirs)
	viper.SetDefault("max_tokens", defaults.MaxTokens)
	viper.SetDefault("editor.ignore_case", defaults.Editor.IgnoreCase)
	viper.SetDefault("editor.smart_case", defaults.Editor.SmartCase)
	viper.SetDefault("editor.auto_indent", defaults.Editor.AutoIndent)
	viper.SetDefault("editor.inc_search", defaults.Editor.IncSearch)
	viper.SetDefault("editor.shift_width", defaults.Editor.ShiftWidth)
	viper.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)
	viper.SetDefault("cache.cleanup_seconds", defaults.Cache.CleanupSeconds)
	viper.SetDefault("store.db_path", defaults.Store.DBPath)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .vimgolf.yaml (current directory)
		// 2. ~/.config/vimgolf/config.yaml (user config)
		if _, err := os.Stat(".vimgolf.yaml"); err == nil {
			viper.SetConfigFile(".vimgolf.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "vimgolf"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viperlib.ConfigFileNotFoundError
		if errors.As(err, &configNotFound) {
			defaultPath := ".vimgolf.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
				log.Info(log.CatConfig, "config loaded", "path", defaultPath)
			}
		}
	} else {
		log.Info(log.CatConfig, "config loaded", "path", viper.ConfigFileUsed())
	}

	_ = viper.Unmarshal(&cfg)
	if cfg.Store.DBPath == "" {
		cfg.Store.DBPath = config.DefaultDBPath()
	}

	debug := os.Getenv("VIMGOLF_DEBUG") != "" || debugFlag
	if debug {
		logPath := os.Getenv("VIMGOLF_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		if _, err := log.Init(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "initializing logging: %v\n", err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
