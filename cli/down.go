package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down CLUSTER",
	Short: "Terminate a cluster by cancelling its bid",
	Long: "Cancel the cluster's bid, which immediately terminates every member instance.\n" +
		"Individual instances cannot be terminated: Mithril bids are all-or-nothing.",
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvider()
		if err != nil {
			return err
		}
		if err := p.Terminate(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.PrintErrln(color.HiGreenString("Terminated cluster '%s'", args[0]))
		return nil
	},
}
