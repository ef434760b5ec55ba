package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/localsearch/internal/config"
	"github.com/kailas-cloud/localsearch/internal/version"
)

type rootFlags struct {
	env        string
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "localsearch",
		Short: "Fuzzy full-text search over small document sets",
		Long: `localsearch keeps documents with short text tags in memory and ranks
them against free-text queries with fuzzy token matching.

Run 'localsearch serve' to start the HTTP API.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetVersionTemplate("localsearch version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flags.env, "env", config.GetEnv(), "Environment name, selects config/<env>.yaml")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a config file (overrides --env)")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (f *rootFlags) load() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load(f.env)
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
