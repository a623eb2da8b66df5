package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kilianp07/chargereport/app"
	"github.com/kilianp07/chargereport/config"
	"github.com/kilianp07/chargereport/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "chargereport",
	Short:        "EV charging session report",
	Long:         "Loads charging transactions and the vehicle roster, then serves or prints the consumption report.",
	RunE:         runServe,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads .env when present, then the configuration file. The
// default file may be absent, an explicit one may not.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	_ = godotenv.Load()
	path := cfgPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Configure(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

func newService(cmd *cobra.Command) (*app.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg)
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)
	return svc.Run(ctx)
}
