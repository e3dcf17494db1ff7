package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maragym/gymlog/internal/app"
	"github.com/maragym/gymlog/internal/config"
	"github.com/maragym/gymlog/internal/log"
	"github.com/maragym/gymlog/internal/tracing"
	"github.com/maragym/gymlog/internal/tui"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply cannot land in the input stream.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config directory.
const localConfigPath = ".gymlog/config.yaml"

// skipAppAnnotation marks commands that run without opening the store.
const skipAppAnnotation = "gymlog/skip-app"

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config

	// gymApp is opened in PersistentPreRunE and closed after the command.
	gymApp *app.App
	// finishSpan ends the span of the running command.
	finishSpan func(err error)
)

var rootCmd = &cobra.Command{
	Use:   "gymlog",
	Short: "A terminal gym training log",
	Long: `Track a push/pull/legs routine from the terminal.

Exercises and logged sets are stored locally in SQLite by default (or Redis),
with per-exercise history and progress trends. Running gymlog without a
subcommand opens the interactive interface.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  openApp,
	PersistentPostRunE: closeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/gymlog/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug logging (also GYMLOG_DEBUG=1)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("storage.driver", defaults.Storage.Driver)
	viper.SetDefault("storage.path", defaults.Storage.Path)
	viper.SetDefault("storage.prefix", defaults.Storage.Prefix)
	viper.SetDefault("storage.redis.addr", defaults.Storage.Redis.Addr)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("locale", defaults.Locale)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("backup.s3.region", defaults.Backup.S3.Region)
	viper.SetDefault("backup.s3.prefix", defaults.Backup.S3.Prefix)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	viper.SetEnvPrefix("GYMLOG")
	_ = viper.BindEnv("log.debug", "GYMLOG_DEBUG")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .gymlog/config.yaml (current directory)
		// 2. ~/.config/gymlog/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(config.DefaultDataDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the user default
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			defaultPath := filepath.Join(config.DefaultDataDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// configFilePath returns the config file in use, or the default location.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(config.DefaultDataDir(), "config.yaml")
}

// setupLogging enables the logger for --debug or a configured log file.
// The returned cleanup closes the log file.
func setupLogging() (func(), error) {
	if !debug && !cfg.Log.Debug && cfg.Log.Path == "" {
		return func() {}, nil
	}
	path := cfg.Log.Path
	if path == "" {
		path = filepath.Join(config.DefaultDataDir(), "debug.log")
	}
	cleanup, err := log.Init(path)
	if err != nil {
		return nil, fmt.Errorf("initializing log: %w", err)
	}
	if !debug && !cfg.Log.Debug {
		log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
	}
	return cleanup, nil
}

func openApp(cmd *cobra.Command, args []string) error {
	if !needsApp(cmd) {
		return nil
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, err := setupLogging()
	if err != nil {
		return err
	}
	log.Info(log.CatConfig, "starting", "version", version, "config", viper.ConfigFileUsed(),
		"driver", cfg.Storage.Driver)

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	})
	if err != nil {
		cleanup()
		return fmt.Errorf("initializing tracing: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, finish := tracing.StartCommand(ctx, provider.Tracer(), cmd.CommandPath(), args)
	cmd.SetContext(ctx)

	var opts []app.Option
	if provider.Enabled() {
		log.Debug(log.CatConfig, "tracing enabled", "exporter", cfg.Tracing.Exporter)
		opts = append(opts, app.WithTracer(provider.Tracer()))
	}
	a, err := app.Open(ctx, cfg, opts...)
	if err != nil {
		finish(err)
		_ = provider.Shutdown(context.Background())
		cleanup()
		return err
	}
	a.OnClose(func() error {
		return provider.Shutdown(context.Background())
	})
	a.OnClose(func() error {
		cleanup()
		return nil
	})
	gymApp = a
	finishSpan = finish
	return nil
}

// needsApp reports whether cmd works on the stored data.
func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipAppAnnotation] == "true" {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func closeApp(cmd *cobra.Command, args []string) error {
	return shutdownApp(nil)
}

// shutdownApp ends the command span with cmdErr and closes the App,
// flushing spans before the store goes away.
func shutdownApp(cmdErr error) error {
	if finishSpan != nil {
		finishSpan(cmdErr)
		finishSpan = nil
	}
	if gymApp == nil {
		return nil
	}
	err := gymApp.Close()
	gymApp = nil
	return err
}

func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := tui.Run(ctx, gymApp); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface",
	Long: `Open the interactive interface.

Tab switches between the routine and the history. Enter on a routine or
history row opens the log form for that exercise; n opens an empty form.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// PersistentPostRunE does not run when RunE fails
		_ = shutdownApp(err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
