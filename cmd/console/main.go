// Package main is the entry point for the console command line client.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/pradeshm/infinispan-console/internal/config"
	"github.com/pradeshm/infinispan-console/internal/observability"
)

// Version information (set at build time).
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// cliFlags holds command line flags.
type cliFlags struct {
	configPath  string
	serverURL   string
	logLevel    string
	logFormat   string
	metricsFile string
	showVersion bool

	keyContentType   string
	valueContentType string
	ttl              string
	maxIdle          string
	flags            []string
	update           bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one command. Results are written to stdout; logs go to the
// configured log output.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags, commandArgs, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.showVersion {
		printVersion(stdout)
		return nil
	}
	if len(commandArgs) == 0 {
		return errors.New("missing command, expected one of: " + commandNames())
	}

	cfg, err := loadAndValidateConfig(flags)
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := initApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.close(context.Background())

	return runCommand(ctx, app, flags, commandArgs, stdout)
}

// parseFlags parses command line flags.
func parseFlags(args []string) (cliFlags, []string, error) {
	var flags cliFlags

	fs := pflag.NewFlagSet("console", pflag.ContinueOnError)
	fs.StringVarP(&flags.configPath, "config", "c", getEnvOrDefault("CONSOLE_CONFIG_PATH", ""),
		"Path to configuration file")
	fs.StringVar(&flags.serverURL, "server", getEnvOrDefault("CONSOLE_SERVER_URL", ""),
		"Management server URL, overrides the configuration")
	fs.StringVar(&flags.logLevel, "log-level", getEnvOrDefault("CONSOLE_LOG_LEVEL", ""),
		"Log level (debug, info, warn, error)")
	fs.StringVar(&flags.logFormat, "log-format", getEnvOrDefault("CONSOLE_LOG_FORMAT", ""),
		"Log format (json, console)")
	fs.StringVar(&flags.metricsFile, "metrics-file", getEnvOrDefault("CONSOLE_METRICS_FILE", ""),
		"Write Prometheus metrics to this file on exit")
	fs.BoolVar(&flags.showVersion, "version", false, "Show version information")

	fs.StringVar(&flags.keyContentType, "key-content-type", "String", "Content type of entry keys, or a protobuf scalar type name")
	fs.StringVar(&flags.valueContentType, "value-content-type", "String", "Content type of entry values, or a protobuf scalar type name")
	fs.StringVar(&flags.ttl, "ttl", "", "Entry lifespan in seconds")
	fs.StringVar(&flags.maxIdle, "max-idle", "", "Entry max idle time in seconds")
	fs.StringSliceVar(&flags.flags, "flags", nil, "Cache operation flags")
	fs.BoolVar(&flags.update, "update", false, "Replace an existing entry on put")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, nil, err
	}
	return flags, fs.Args(), nil
}

// printVersion prints version information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "console version %s\n", version)
	fmt.Fprintf(w, "  Build time: %s\n", buildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", gitCommit)
}

// loadAndValidateConfig loads the configuration file, or the defaults when
// no file is given, and applies flag overrides.
func loadAndValidateConfig(flags cliFlags) (*config.ConsoleConfig, error) {
	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		loaded, err := config.LoadConfig(flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	if flags.serverURL != "" {
		cfg.Server.URL = flags.serverURL
	}
	if flags.logLevel != "" {
		cfg.Observability.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Observability.Logging.Format = flags.logFormat
	}
	if flags.metricsFile != "" {
		cfg.Observability.Metrics.File = flags.metricsFile
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogger initializes the logger.
func initLogger(cfg *config.ConsoleConfig) (observability.Logger, error) {
	logging := cfg.Observability.Logging
	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  logging.Level,
		Format: logging.Format,
		Output: logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
