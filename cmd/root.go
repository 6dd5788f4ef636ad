package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/factorysh/solsta/config"
	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

var (
	configPath string
	cfg        *config.Config
	logger     *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "solsta",
	Short: "Solsta deploys build products with release_deploy",
	Long: `Solsta runs the SolstaDeploy tasks of a build graph definition.
		`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = cfg.Logger()
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
}

func Execute() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     dsn,
			Release: Version,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		sentry.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("service", "solsta")
		})
	}

	if err := rootCmd.Execute(); err != nil {
		if dsn != "" {
			sentry.CaptureException(err)
			// Flush buffered events before the program terminates.
			sentry.Flush(2 * time.Second)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
