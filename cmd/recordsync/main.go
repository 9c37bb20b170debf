package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/relario/recordsync/pkg/config"
)

type rootOptions struct {
	configFile string
	verbose    bool
}

func main() {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "recordsync",
		Short:         "Push record transforms at a JSON:API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to a yaml or json config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newPushCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	if opts.configFile == "" {
		return config.LoadConfiguration("")
	}
	if strings.HasSuffix(opts.configFile, ".yaml") ||
		strings.HasSuffix(opts.configFile, ".yml") ||
		strings.HasSuffix(opts.configFile, ".json") {
		return config.NewLoader().LoadFromFile(opts.configFile)
	}
	return config.LoadConfiguration(opts.configFile)
}
