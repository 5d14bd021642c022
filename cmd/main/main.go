package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"eventdeck/pkg/api"
	"eventdeck/pkg/config"
	"eventdeck/pkg/controller"
)

func main() {
	var (
		configPath string
		serverURL  string
		logFile    string
		logLevel   string
	)

	root := &cobra.Command{
		Use:           "eventdeck",
		Short:         "Terminal client for the events service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if serverURL != "" {
				cfg.ServerURL = serverURL
			}

			if logFile != "" {
				cfg.LogFile = logFile
			}

			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			return run(cmd.Context(), cfg)
		},
	}

	root.Flags().StringVar(&configPath, "config", config.DefaultPath(), "path to the config file")
	root.Flags().StringVar(&serverURL, "server", "", "events service base URL (overrides the config)")
	root.Flags().StringVar(&logFile, "log-file", "", "log file path (overrides the config)")
	root.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides the config)")

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	filePerms := 0o666

	logOut, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		return fmt.Errorf("error opening log file %s: %w", cfg.LogFile, err)
	}

	defer logOut.Close()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zerolog.SetGlobalLevel(level)

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logOut, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Str("server", cfg.ServerURL).Msg("starting application...")

	client := api.NewClient(cfg.ServerURL)

	c, err := controller.NewController(ctx, client, cfg)
	if err != nil {
		return err
	}

	c.Go()

	return nil
}
