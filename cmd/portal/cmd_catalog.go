package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/sources/eventdata"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with event data files",
}

// catalogCheckCmd validates a catalog file without starting the service
var catalogCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a startups catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startups, err := eventdata.ReadStartups(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %d startups\n", args[0], len(startups))
		return nil
	},
}
