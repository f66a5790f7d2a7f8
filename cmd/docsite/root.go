package main

import (
	"github.com/spf13/cobra"

	"finitefield.org/docsite/internal/config"
)

type rootOptions struct {
	cfgFile    string
	contentDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "docsite",
		Short:         "Server-rendered documentation site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", config.DefaultFile, "config file path")
	cmd.PersistentFlags().StringVar(&opts.contentDir, "content", "", "content directory (overrides content_dir)")

	cmd.AddCommand(newServeCmd(opts), newRoutesCmd(opts))
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}
	if o.contentDir != "" {
		cfg.ContentDir = o.contentDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
