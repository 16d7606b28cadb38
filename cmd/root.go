package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/corrgraph/internal/config"
	"github.com/KaramelBytes/corrgraph/internal/logging"
)

var (
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration; nil when loading failed.
	cfg *cfgpkg.Global
	log = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "corrgraph",
	Short: "corrgraph: turn tabular data into correlation networks",
	Long: `corrgraph reads CSV, TSV and XLSX datasets, links numeric columns whose
Pearson correlation clears a threshold, lays the graph out and renders it as
SVG, interactive HTML or JSON. Workspaces keep datasets and saved networks.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	defer func() { _ = log.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.corrgraph/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
	} else {
		cfg = c
	}

	level := settings().LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if debug {
		level = "debug"
	}
	l, err := logging.New(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		l = logging.NewNop()
	}
	log = l
	log.Debug("config loaded", zap.String("file", cfgFile), zap.Bool("defaults_only", cfg == nil))
}

// settings returns the loaded config or built-in defaults.
func settings() cfgpkg.Global {
	if cfg != nil {
		return *cfg
	}
	return cfgpkg.Defaults()
}
