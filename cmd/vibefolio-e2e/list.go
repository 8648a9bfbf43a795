package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vibefolio/vibefolio-e2e/internal/cases"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the recorded scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tc := range cases.All() {
				note := ""
				if tc.KnownFailure != "" {
					note = "expected to fail"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", tc.ID, tc.Title, note)
			}
			return tw.Flush()
		},
	}
}
