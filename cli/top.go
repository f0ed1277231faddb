package main

import (
	"context"
	"sort"
	"time"

	"github.com/gammadia/mithril/provider"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var topCmd = &cobra.Command{
	Use:   "top CLUSTER",
	Short: "Live view of a cluster's instances",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		cluster := args[0]
		interval := lo.Must(cmd.Flags().GetDuration("interval"))

		p, err := newProvider()
		if err != nil {
			return err
		}

		app := tview.NewApplication()

		table := tview.NewTable().SetFixed(1, 0)
		table.SetBorder(true).SetTitle(" " + cluster + " ")

		app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			if event.Rune() == 'q' || event.Key() == tcell.KeyEscape {
				app.Stop()
				return nil
			}
			return event
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		refresh := func() {
			statuses, err := p.QueryInstances(ctx, cluster, false)
			if err != nil {
				return
			}
			info, err := p.ClusterInfo(ctx, cluster)
			if err != nil {
				return
			}
			app.QueueUpdateDraw(func() {
				renderTop(table, statuses, info)
			})
		}

		go func() {
			refresh()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					refresh()
				}
			}
		}()

		return app.SetRoot(table, true).Run()
	},
}

func init() {
	topCmd.Flags().Duration("interval", 5*time.Second, "refresh interval")
}

func renderTop(table *tview.Table, statuses map[string]provider.ClusterStatus, info *provider.ClusterInfo) {
	table.Clear()
	for column, title := range []string{"INSTANCE", "STATUS", "ENDPOINT", "ROLE"} {
		table.SetCell(0, column, tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}

	ids := lo.Keys(statuses)
	sort.Strings(ids)
	for row, id := range ids {
		endpoint := ""
		if instance, ok := info.Instances[id]; ok {
			endpoint = instance.ExternalIP
		}
		role := ""
		if id == info.HeadInstanceID {
			role = "head"
		}

		table.SetCell(row+1, 0, tview.NewTableCell(id))
		table.SetCell(row+1, 1, tview.NewTableCell(topStatusLabel(statuses[id])).
			SetTextColor(topStatusColor(statuses[id])))
		table.SetCell(row+1, 2, tview.NewTableCell(endpoint))
		table.SetCell(row+1, 3, tview.NewTableCell(role))
	}
}

func topStatusLabel(status provider.ClusterStatus) string {
	if status == "" {
		return "TERMINATED"
	}
	return string(status)
}

func topStatusColor(status provider.ClusterStatus) tcell.Color {
	switch status {
	case provider.StatusUp:
		return tcell.ColorGreen
	case provider.StatusInit:
		return tcell.ColorYellow
	case provider.StatusStopped:
		return tcell.ColorBlue
	default:
		return tcell.ColorGray
	}
}
