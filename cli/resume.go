package main

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume CLUSTER",
	Short: "Resume a cluster's paused bid",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvider()
		if err != nil {
			return err
		}
		resumed, err := p.Resume(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(resumed) == 0 {
			cmd.PrintErrln(color.HiYellowString("Nothing to resume for cluster '%s'", args[0]))
			return nil
		}
		cmd.PrintErrln(color.HiGreenString("Resumed cluster '%s' (%s)", args[0], strings.Join(resumed, ", ")))
		return nil
	},
}
