package main

import (
	"os"

	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagSettings  string
	flagLogLevel  string
	flagLogFormat string

	v        = config.NewViper()
	settings *config.Settings
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "rpcash",
	Short: "Retirement cashflow and IRR estimator",
	Long: "Project monthly savings until retirement and inflation-adjusted expenses after it,\n" +
		"then solve for the portfolio return needed to fund each replacement cost.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { _ = logger.Sync() },
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagSettings, "settings", "", "application settings file (yaml, json or toml)")
	pf.StringVar(&flagLogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFormat, "log-format", config.DefaultLogFormat, "log format (console, json)")

	_ = v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", pf.Lookup("log-format"))
}

// setup layers settings and builds the logger before any subcommand runs.
func setup(_ *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(v, flagSettings)
	if err != nil {
		return err
	}
	l, err := initializeLogger(s.Logging)
	if err != nil {
		return err
	}
	settings, logger = s, l
	return nil
}

// newEngine returns a calculation engine that logs through the CLI logger.
func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger.Sugar())
	return engine
}
