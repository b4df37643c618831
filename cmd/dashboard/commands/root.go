package commands

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/api"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/config"
)

var (
	configPath string
	logLevel   string
	apiURL     string
)

func Execute() error {
	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Building energy-management dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(configPath); err != nil {
				return err
			}
			if apiURL != "" {
				viper.Set("API_BASE_URL", apiURL)
			}
			if logLevel != "" {
				viper.Set("LOG_LEVEL", logLevel)
			}
			setupLogging()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "telemetry API base URL (default http://localhost:8000/api/)")

	root.AddCommand(serveCmd(), snapshotCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(strings.ToLower(config.LogLevel()))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.LogFormat() == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func newAPIClient() (*api.Client, error) {
	return api.New(config.APIBaseURL(), config.APITimeout())
}
