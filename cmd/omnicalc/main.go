package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iwvelando/omnicalc/internal/config"
	"github.com/iwvelando/omnicalc/pkg/constants"
	"github.com/iwvelando/omnicalc/pkg/output"
	"github.com/iwvelando/omnicalc/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "time/tzdata"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries the state shared by every subcommand once the root command's
// pre-run has loaded configuration and logging.
type app struct {
	configPath   string
	logLevel     string
	outputFormat string

	conf   *config.Configuration
	logger *zap.Logger
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// loadConfiguration reads the config file. The default file is optional;
// an explicitly requested one is not.
func (a *app) loadConfiguration(explicit bool) (*config.Configuration, error) {
	if _, err := os.Stat(a.configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return config.Defaults()
		}
		return nil, fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	conf, err := config.LoadConfiguration(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	return conf, nil
}

func (a *app) setup(cmd *cobra.Command) error {
	conf, err := a.loadConfiguration(cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Determine output format (CLI override takes precedence over config)
	if a.outputFormat == "" {
		a.outputFormat = conf.Output.Format
	}
	if a.outputFormat == "" {
		a.outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(a.outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.setup"),
		)
	}

	a.conf = conf
	a.logger = logger
	return nil
}

// render writes a report to the command's output in the selected format.
func (a *app) render(cmd *cobra.Command, report output.Report) error {
	return output.Write(cmd.OutOrStdout(), a.outputFormat, report)
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "omnicalc",
		Short:         "Date, calendar, financial, health and unit calculators",
		Long:          "omnicalc converts between the Gregorian and Bikram Sambat calendars and bundles everyday calculators, on the command line or as a JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, json")

	root.AddCommand(
		newServeCommand(a),
		newDateCommand(a),
		newLoanCommand(a),
		newMortgageCommand(a),
		newInvestmentCommand(a),
		newAmortizeCommand(a),
		newBMICommand(a),
		newBMRCommand(a),
		newIdealWeightCommand(a),
		newUnitCommand(a),
		newCurrencyCommand(a),
		newCalcCommand(a),
		newVersionCommand(a),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}
