package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"parliament-backend/lib/serviceutil"
	"parliament-backend/lib/telemetry"
	"parliament-backend/lib/timezone"
	"parliament-backend/services/members"
	membersdb "parliament-backend/services/members/db"
)

var (
	membersDate        *string
	membersCurrentOnly *bool
	membersSkipExport  *bool
)

func init() {
	membersDate = membersCmd.Flags().String("date", "", "Run date in YYYYMMDD form, defaults to today.")
	membersCurrentOnly = membersCmd.Flags().Bool("current-only", false, "Restrict the snapshot to current members.")
	membersSkipExport = membersCmd.Flags().Bool("skip-export", false, "Skip the CSV export after storing the snapshot.")
	rootCmd.AddCommand(membersCmd)
}

var membersCmd = &cobra.Command{
	Use:   "members [--date <YYYYMMDD>] [--current-only] [--skip-export]",
	Short: "Fetches members of both houses, normalizes their histories and stores a snapshot.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx)

		cfg := readConfig()
		db := openDB(cfg, membersdb.Schema)
		defer db.Close()

		runDate := timezone.Now()
		if *membersDate != "" {
			var err error
			runDate, err = timezone.ParseRunDate(*membersDate)
			if err != nil {
				serviceutil.Fatal("failed to parse run date", err)
			}
		}

		service := members.NewService(db, newApiClient(cfg), members.Options{
			CurrentOnly: *membersCurrentOnly,
		})

		t1 := time.Now()
		result, err := service.Snapshot(ctx, runDate)
		if err != nil {
			serviceutil.Fatal("failed to take snapshot", err)
		}
		slog.Info("snapshot time", "seconds", time.Since(t1).Seconds())

		if !*membersSkipExport {
			err = service.ExportCSV(ctx, result.RunDate, cfg.DataDir)
			if err != nil {
				serviceutil.Fatal("failed to export csv files", err)
			}
		}
	},
}
