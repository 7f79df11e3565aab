package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <workflow-url>",
		Short: "Check workflow structure and concept dependencies without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			issues := rt.Validate(cmd.Context(), wf)
			out := cmd.OutOrStdout()
			for _, issue := range issues {
				_, _ = fmt.Fprintf(out, "- %v\n", issue)
			}
			if len(issues) > 0 {
				return fmt.Errorf("workflow %v has %d issue(s)", wf.Name, len(issues))
			}
			_, _ = fmt.Fprintf(out, "workflow %v is valid\n", wf.Name)
			return nil
		},
	}
}
