package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vytor/syncstore/internal/config"
	"github.com/vytor/syncstore/internal/logger"
	"github.com/vytor/syncstore/internal/repository/xmlfile"
	"github.com/vytor/syncstore/internal/services"
)

var (
	flagPrimary   string
	flagSecondary string
	flagLogLevel  string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "syncstore",
	Short: "Manage stored sync profiles",
	Long: `syncstore inspects and edits the on-disk sync profile store.

Profiles are XML documents laid out as <root>/<type>/<name>.xml under two
roots: a read-write primary and a read-only secondary fallback. Sync
execution history lives next to them at <root>/sync/logs/<name>.log.xml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if flagPrimary != "" {
			cfg.PrimaryPath = flagPrimary
		}
		if flagSecondary != "" {
			cfg.SecondaryPath = flagSecondary
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		opts := []logger.Option{
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithColors(true),
		}
		if cfg.LogFile != "" {
			opts = []logger.Option{
				logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
				logger.WithOutput(&lumberjack.Logger{
					Filename:   cfg.LogFile,
					MaxSize:    10, // megabytes
					MaxBackups: 3,
					MaxAge:     28, // days
				}),
			}
		}
		logger.SetDefault(logger.New(opts...))
		return nil
	},
}

// newManager builds the service stack for one command invocation.
func newManager() services.ProfileManager {
	return services.NewProfileManager(
		xmlfile.NewProfileStore(cfg.PrimaryPath, cfg.SecondaryPath),
		xmlfile.NewLogStore(cfg.PrimaryPath),
	)
}

func joinNames(names []string) string {
	return strings.Join(names, "\n")
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagPrimary, "primary", "", "read-write profile root (overrides SYNC_PRIMARY_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagSecondary, "secondary", "", "read-only fallback root (overrides SYNC_SECONDARY_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
