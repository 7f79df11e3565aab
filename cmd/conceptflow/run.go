package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd(s *settings) *cobra.Command {
	var (
		values []string
		format string
	)
	cmd := &cobra.Command{
		Use:   "run <workflow-url>",
		Short: "Run a workflow and print its concepts",
		Long: `Run a workflow and print the resulting concepts ordered by level.

Init values declared by the workflow can be overridden with --set.

Examples:
  # Run a local workflow
  conceptflow run otters.yaml

  # Override a seed concept and print JSON
  conceptflow run otters.yaml --set topic=beavers --format json

  # Run branches of every threads step in parallel
  conceptflow run otters.yaml --concurrency 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := newPrinter(format)
			if err != nil {
				return err
			}
			overrides, err := parseValues(values)
			if err != nil {
				return err
			}
			srv, err := s.newService(cmd)
			if err != nil {
				return err
			}
			defer s.shutdown(cmd, srv)
			rt := srv.Runtime()
			wf, err := rt.LoadWorkflow(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			run, runErr := rt.RunWorkflow(cmd.Context(), wf, overrides)
			if run != nil {
				if err := printer(cmd.OutOrStdout(), run); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cmd.Flags().StringArrayVar(&values, "set", nil, "seed value as name=value (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

// parseValues converts name=value pairs into a map
func parseValues(pairs []string) (map[string]string, error) {
	ret := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected name=value", pair)
		}
		ret[strings.TrimSpace(name)] = value
	}
	return ret, nil
}
