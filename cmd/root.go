// Package cmd wires configuration, logging, and tracing into the TUI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/okvern/quill/internal/app"
	"github.com/okvern/quill/internal/cachemanager"
	"github.com/okvern/quill/internal/config"
	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/keys"
	"github.com/okvern/quill/internal/log"
	"github.com/okvern/quill/internal/markdown"
	"github.com/okvern/quill/internal/seed"
	"github.com/okvern/quill/internal/tracing"
	"github.com/okvern/quill/internal/ui/shared"
	"github.com/okvern/quill/internal/ui/styles"
	"github.com/okvern/quill/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color BEFORE
	// the Bubble Tea program starts, so the OSC response does not race the
	// input loop and leak into text fields.
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
	Use:     "quill",
	Short:   "A terminal diary",
	Long:    `A terminal user interface for keeping a personal diary: write, browse, search, and review journal entries per author.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/quill/config.yaml)")
	rootCmd.Flags().Bool("debug", false,
		"write a debug log next to the config file")
	rootCmd.Flags().Bool("demo", false,
		"start with demo authors and entries")
	rootCmd.Flags().Bool("trace", false,
		"export spans even when tracing is disabled in the config")

	_ = viper.BindPFlag("demo", rootCmd.Flags().Lookup("demo"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("demo", defaults.Demo)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.preview_words", defaults.UI.PreviewWords)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .quill/config.yaml (current directory)
		// 2. ~/.config/quill/config.yaml (user config)
		if _, err := os.Stat(".quill/config.yaml"); err == nil {
			viper.SetConfigFile(".quill/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "quill"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .quill/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".quill/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// reloadConfig re-reads the config file for hot reload.
func reloadConfig() (*config.Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("re-reading config: %w", err)
	}
	var next config.Config
	if err := viper.Unmarshal(&next); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := config.Validate(next); err != nil {
		return nil, err
	}
	return &next, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = ".quill/config.yaml"
	}
	configDir := filepath.Dir(configFilePath)

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cleanup, err := log.Init(filepath.Join(configDir, "quill.log"))
		if err != nil {
			return fmt.Errorf("initializing log: %w", err)
		}
		defer cleanup()
		log.SetMinLevel(log.LevelDebug)
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Highlight: cfg.Theme.Highlight,
		Subtle:    cfg.Theme.Subtle,
		Error:     cfg.Theme.Error,
		Success:   cfg.Theme.Success,
	}); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	traceCfg := tracing.Config{
		Enabled:  cfg.Tracing.Enabled,
		Exporter: cfg.Tracing.Exporter,
		FilePath: cfg.Tracing.FilePath,
	}
	if forced, _ := cmd.Flags().GetBool("trace"); forced {
		traceCfg.Enabled = true
	}
	if traceCfg.Enabled && traceCfg.Exporter == "file" && traceCfg.FilePath == "" {
		traceCfg.FilePath = filepath.Join(configDir, "traces.jsonl")
	}
	provider, err := tracing.NewProvider(traceCfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	renderer, err := markdown.New(80, cfg.UI.MarkdownStyle)
	if err != nil {
		return fmt.Errorf("initializing markdown renderer: %w", err)
	}

	services := &shared.Services{
		Authors:  author.NewRegister(),
		Entries:  entry.NewRegister(),
		Config:   &cfg,
		Keys:     keys.DefaultKeyMap(),
		Markdown: renderer,
		Renders: cachemanager.NewInMemory[string]("markdown",
			cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
	}

	if cfg.Demo {
		if err := seed.Load(services.Authors, services.Entries); err != nil {
			return fmt.Errorf("loading demo data: %w", err)
		}
	}

	opts := app.Options{
		Services:     services,
		ConfigPath:   configFilePath,
		Tracer:       provider.Tracer(),
		ReloadConfig: reloadConfig,
	}

	var w *watcher.Watcher
	if _, err := os.Stat(configFilePath); err == nil {
		w, err = watcher.New(watcher.DefaultConfig(configFilePath))
		if err != nil {
			log.ErrorErr(log.CatWatch, "config watcher unavailable", err)
		} else if reloads, err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatch, "config watcher failed to start", err)
		} else {
			opts.ConfigReloads = reloads
		}
	}

	model := app.New(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	if w != nil {
		if err := w.Stop(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
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
