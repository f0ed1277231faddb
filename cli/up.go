package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gammadia/mithril/cli/ui"
	"github.com/gammadia/mithril/provider"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var upCmd = &cobra.Command{
	Use:   "up CLUSTER",
	Short: "Reconcile a cluster to its desired size",
	Long: "Reconcile the cluster against the market: resume its paused bid if one exists,\n" +
		"wait for pending instances, or launch a fresh bid covering the full size.",
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		cluster := args[0]

		p, err := newProvider()
		if err != nil {
			return err
		}

		var s *ui.Spinner
		if term.IsTerminal(int(os.Stderr.Fd())) {
			s = ui.NewSpinner(fmt.Sprintf("Reconciling cluster '%s'", cluster))
		}

		record, err := p.RunInstances(cmd.Context(), provider.ProvisionSpec{
			ClusterName:   cluster,
			Region:        lo.Must(cmd.Flags().GetString("region")),
			Count:         lo.Must(cmd.Flags().GetInt("count")),
			InstanceType:  lo.Must(cmd.Flags().GetString("instance-type")),
			SSHKeyID:      lo.Must(cmd.Flags().GetString("ssh-key")),
			ResumeStopped: !lo.Must(cmd.Flags().GetBool("no-resume")),
		})
		if err != nil {
			s.Fail(fmt.Sprintf("Failed to reconcile cluster '%s'", cluster))
			return err
		}
		s.Success(fmt.Sprintf("Cluster '%s' is up", cluster))

		cmd.Printf("%-10s %s\n", "Head:", color.HiCyanString(record.HeadInstanceID))
		if len(record.ResumedInstanceIDs) > 0 {
			cmd.Printf("%-10s %s\n", "Resumed:", strings.Join(record.ResumedInstanceIDs, ", "))
		}
		if len(record.CreatedInstanceIDs) > 0 {
			cmd.Printf("%-10s %s\n", "Created:", strings.Join(record.CreatedInstanceIDs, ", "))
		}
		if record.Region != "" {
			cmd.Printf("%-10s %s\n", "Region:", record.Region)
		}
		return nil
	},
}

func init() {
	upCmd.Flags().Int("count", 1, "number of instances")
	upCmd.Flags().String("instance-type", "", "instance type to bid for")
	upCmd.Flags().String("ssh-key", "", "ssh key registered with Mithril")
	upCmd.Flags().String("region", "", "region to launch in")
	upCmd.Flags().Bool("no-resume", false, "never resume a paused bid")
}
