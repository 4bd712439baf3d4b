package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.simpledb/internal/config"
	"go.simpledb/internal/engine"
	"go.simpledb/internal/logger"
	"go.simpledb/internal/metrics"
)

var (
	homeFlag    string
	configFlag  string
	levelFlag   string
	metricsFlag string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "simpledb <file>",
	Short:         "simpledb - single table SQL-ish database",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(homeFlag, configFlag)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = levelFlag
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr = metricsFlag
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closeLog, err := openLog(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		m := metrics.New()
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if cfg.MetricsAddr != "" {
			go func() {
				if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
					log.Errorf("metrics: %v", err)
				}
			}()
			log.Infof("metrics: serving on %s", cfg.MetricsAddr)
		}

		db, err := engine.Open(args[0], cfg, log, m)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		rl, err := newLineReader(cfg)
		if err != nil {
			db.Close()
			return err
		}
		defer rl.Close()

		return runREPL(NewSession(db, cmd.OutOrStdout(), log), rl)
	},
}

// openLog returns the shell logger writing to the configured log file
func openLog(cfg *config.Config) (*logger.Logger, func(), error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(cfg.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log := logger.New(f, level)
	return log, func() {
		_ = log.Sync()
		f.Close()
	}, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&homeFlag, "home", "", "application home directory (default $SIMPLEDB_HOME or ~/.local/share/simpledb)")
	flags.StringVar(&configFlag, "config", "", "path to config.yaml")
	flags.StringVar(&levelFlag, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&metricsFlag, "metrics-addr", "", "serve prometheus metrics on this address")

	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(btreeCmd)
}
