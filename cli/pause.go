package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause CLUSTER",
	Short: "Pause a cluster's bid, stopping all its instances",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvider()
		if err != nil {
			return err
		}
		if err := p.Stop(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.PrintErrln(color.HiGreenString("Paused cluster '%s'", args[0]))
		return nil
	},
}
