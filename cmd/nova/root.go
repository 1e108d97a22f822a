package main

import (
	"nova-hris/internal/app"
	"nova-hris/internal/config"
	"nova-hris/internal/logger"
	"nova-hris/internal/shared/apperror"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "nova",
		Short:         "Administrative tasks for the nova-hris service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.yaml (defaults to ./config or .)")

	cmd.AddCommand(newMigrateCmd(opts), newCreateAdminCmd(opts))
	return cmd
}

// connect loads config, installs the global logger and opens the database.
func (o *rootOptions) connect() (*app.Infra, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	apperror.Init()

	return app.Connect(cfg, log, false)
}
