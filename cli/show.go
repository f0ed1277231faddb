package main

import (
	"sort"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show CLUSTER",
	Short: "Show a cluster's reachable instances and head",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvider()
		if err != nil {
			return err
		}

		info, err := p.ClusterInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		cmd.Printf("%-12s %s\n", "Cluster:", color.HiCyanString(args[0]))
		if info.HeadInstanceID == "" {
			cmd.Printf("%-12s %s\n", "Head:", color.HiYellowString("none reachable yet"))
		} else {
			cmd.Printf("%-12s %s\n", "Head:", info.HeadInstanceID)
		}
		cmd.Printf("%-12s %s\n", "SSH user:", info.SSHUser)

		if len(info.Instances) == 0 {
			return nil
		}

		cmd.Println()
		cmd.Printf("%-24s %-18s %-18s %s\n", "INSTANCE", "INTERNAL", "EXTERNAL", "PORT")

		ids := lo.Keys(info.Instances)
		sort.Strings(ids)
		for _, id := range ids {
			endpoint := info.Instances[id]
			cmd.Printf("%-24s %-18s %-18s %d\n", id, endpoint.InternalIP, endpoint.ExternalIP, endpoint.SSHPort)
		}
		return nil
	},
}
