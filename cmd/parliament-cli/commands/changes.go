package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"parliament-backend/lib/serviceutil"
	"parliament-backend/services/members"
	membersdb "parliament-backend/services/members/db"
)

var (
	changesPrev *string
	changesCurr *string
)

func init() {
	changesPrev = changesCmd.Flags().String("prev", "", "Older run date, defaults to the second most recent snapshot.")
	changesCurr = changesCmd.Flags().String("curr", "", "Newer run date, defaults to the most recent snapshot.")
	rootCmd.AddCommand(changesCmd)
}

var changesCmd = &cobra.Command{
	Use:   "changes [--prev <YYYYMMDD>] [--curr <YYYYMMDD>]",
	Short: "Shows member-level differences between two snapshots.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg := readConfig()
		db := openDB(cfg, membersdb.Schema)
		defer db.Close()

		prev, curr := *changesPrev, *changesCurr
		if prev == "" || curr == "" {
			runs, err := membersdb.New(db).ListRunDates(ctx)
			if err != nil {
				serviceutil.Fatal("failed to list run dates", err)
			}
			if len(runs) < 2 {
				serviceutil.Fatal(
					"not enough snapshots to compare",
					fmt.Errorf("found %d run dates, need 2", len(runs)),
				)
			}
			if curr == "" {
				curr = runs[len(runs)-1]
			}
			if prev == "" {
				prev = runs[len(runs)-2]
			}
		}

		service := members.NewService(db, nil, members.Options{})
		changes, err := service.Changes(ctx, prev, curr)
		if err != nil {
			serviceutil.Fatal("failed to diff snapshots", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("%s -> %s", prev, curr)
		t.AppendHeader(table.Row{"Kind", "Member ID", "Name", "Field", "Previous", "Current"})
		for _, c := range changes {
			t.AppendRow(table.Row{c.Kind, c.IDParliament, c.Name, c.Field, c.Previous, c.Current})
		}
		t.Render()
	},
}
