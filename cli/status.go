package main

import (
	"sort"

	"github.com/fatih/color"
	"github.com/gammadia/mithril/provider"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status CLUSTER",
	Short: "Show the status of a cluster's instances",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvider()
		if err != nil {
			return err
		}

		all := lo.Must(cmd.Flags().GetBool("all"))
		statuses, err := p.QueryInstances(cmd.Context(), args[0], !all)
		if err != nil {
			return err
		}
		if len(statuses) == 0 {
			cmd.PrintErrln("No instances found")
			return nil
		}

		ids := lo.Keys(statuses)
		sort.Strings(ids)
		for _, id := range ids {
			cmd.Printf("%-24s %s\n", id, renderStatus(statuses[id]))
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("all", false, "include terminated instances")
}

func renderStatus(status provider.ClusterStatus) string {
	switch status {
	case provider.StatusUp:
		return color.HiGreenString(string(status))
	case provider.StatusInit:
		return color.HiYellowString(string(status))
	case provider.StatusStopped:
		return color.HiBlueString(string(status))
	default:
		return color.HiBlackString("TERMINATED")
	}
}
