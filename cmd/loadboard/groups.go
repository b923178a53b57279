package main

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/loadboard/pkg/keyed"
	"github.com/vango-dev/loadboard/pkg/workload"
)

func groupsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the configured groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			groups, err := loadGroups(cmd.Context(), cfg, cfg.Log.NewLogger(io.Discard))
			if err != nil {
				return err
			}
			return printGroups(cmd.OutOrStdout(), groups)
		},
	}
}

// printGroups renders one line per group id through a keyed list, so a
// repeated id prints once with its last definition.
func printGroups(w io.Writer, groups []workload.Group) error {
	var rows []*string
	list := keyed.New[workload.Group, string, *string](keyed.HostFuncs[workload.Group, *string]{
		CreateFunc: func(index int, ctx keyed.Context[workload.Group]) *string {
			g := ctx.Item
			row := fmt.Sprintf("%s\t%s\t%d\t%.1f\t%.0f",
				g.ID, g.Name, len(g.Data.Series(workload.Aerob)),
				g.Data.Total(workload.Aerob), g.Data.Total(workload.Sport))
			rows = slices.Insert(rows, index, &row)
			return &row
		},
	}, keyed.WithName("groups-cli"))
	defer list.Close()

	if _, err := list.Reconcile(groups, func(_ int, g workload.Group) string { return g.ID }); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWEEKS\tAEROB KM\tSPORT H")
	for _, row := range rows {
		fmt.Fprintln(tw, *row)
	}
	return tw.Flush()
}
