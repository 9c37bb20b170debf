package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relario/recordsync/pkg/config"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configFile == "" {
				return fmt.Errorf("check requires --config")
			}
			cfg, err := config.NewLoader().LoadFromFile(opts.configFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ok: source %q -> %s\n", cfg.Name, cfg.Remote.Host)
			return nil
		},
	}
}
