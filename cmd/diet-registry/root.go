// cmd/diet-registry/root.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mcp-diet-registry/internal/api"
	"mcp-diet-registry/internal/config"
	"mcp-diet-registry/internal/logger"
)

const version = "1.0.0"

// app carries what every subcommand needs once the config is loaded.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	log    *logger.Logger
	config string
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "diet-registry",
		Short:         "Dietary registry export and administration service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	root.SetVersionTemplate("mcp-diet-registry version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.config, "config", "", "Config file (default ./diet-registry.yaml)")
	flags.String("api-url", "", "Base URL of the registry API")
	flags.String("api-token", "", "Bearer token for the registry API")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-mode", "", "Log mode: production or development")
	bindFlags(a.v, root, map[string]string{
		"api.baseURL":   "api-url",
		"api.token":     "api-token",
		"logging.level": "log-level",
		"logging.mode":  "log-mode",
	})

	root.AddCommand(newServeCmd(a), newExportCmd(a), newAdminCmd(a))
	return root
}

// bindFlags binds each config key to a flag of cmd. Unset flags keep the
// viper default.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.config)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logging.Mode, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) client() *api.Client {
	return api.NewClient(a.cfg.API.BaseURL, a.cfg.API.Token, a.cfg.API.Timeout, api.WithLogger(a.log))
}
