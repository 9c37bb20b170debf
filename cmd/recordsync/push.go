package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/relario/recordsync/pkg/jsonapi"
	"github.com/relario/recordsync/pkg/record"
)

func newPushCommand(opts *rootOptions) *cobra.Command {
	var (
		timeout     time.Duration
		maxRequests int
		include     []string
	)

	cmd := &cobra.Command{
		Use:   "push <transform-file>",
		Short: "Push a transform read from a JSON file",
		Long: `Push a transform read from a JSON file at the configured server.

The file holds a JSON object with an "operations" array; an id is
generated when the file carries none. On success the ids of every
logged transform (the pushed one plus any synthesized from server
responses) are printed in order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read transform file: %w", err)
			}
			t := &record.Transform{}
			if err := json.Unmarshal(data, t); err != nil {
				return fmt.Errorf("failed to parse transform file: %w", err)
			}
			if t.ID == "" {
				t = record.NewTransform(t.Operations...)
			}

			source, err := jsonapi.New(cfg)
			if err != nil {
				return err
			}

			result, pushErr := source.Push(cmd.Context(), t, &jsonapi.PushOptions{
				Timeout:     timeout,
				MaxRequests: maxRequests,
				Include:     include,
			})
			if result != nil {
				for _, logged := range result.Transforms {
					fmt.Fprintln(cmd.OutOrStdout(), logged.ID)
				}
			}
			if pushErr != nil {
				if result != nil && len(result.Transforms) > 0 {
					log.Warn().Int("logged", len(result.Transforms)).
						Msg("push failed after partial progress; logged transforms are kept")
				}
				return pushErr
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout (overrides config)")
	cmd.Flags().IntVar(&maxRequests, "max-requests", 0, "request ceiling per transform (overrides config)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "relationships to side-load")
	return cmd
}
