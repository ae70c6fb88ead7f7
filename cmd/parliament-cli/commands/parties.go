package commands

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"parliament-backend/lib/scrapers/membersapi"
	"parliament-backend/lib/serviceutil"
	"parliament-backend/lib/timezone"
	"parliament-backend/services/parties"
	partiesdb "parliament-backend/services/parties/db"
)

var (
	partiesHouse *string
	partiesStart *string
	partiesEnd   *string
	partiesCsv   *string
)

func init() {
	partiesHouse = partiesCmd.Flags().String("house", "commons", "House to query, either 'commons' or 'lords'.")
	partiesStart = partiesCmd.Flags().String("start", "", "First date of the range, YYYY-MM-DD. Defaults to today.")
	partiesEnd = partiesCmd.Flags().String("end", "", "Last date of the range, YYYY-MM-DD. Defaults to the start date.")
	partiesCsv = partiesCmd.Flags().String("csv", "", "Also export the stored range to a csv file at this path.")
	rootCmd.AddCommand(partiesCmd)
}

func parseHouse(name string) (int, error) {
	switch strings.ToLower(name) {
	case "commons":
		return membersapi.HouseCommons, nil
	case "lords":
		return membersapi.HouseLords, nil
	}
	return 0, fmt.Errorf("unknown house: %q", name)
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, timezone.Location)
}

var partiesCmd = &cobra.Command{
	Use:   "parties [--house <commons|lords>] [--start <date>] [--end <date>]",
	Short: "Fetches and stores the state of the parties over a date range.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg := readConfig()
		db := openDB(cfg, partiesdb.Schema)
		defer db.Close()

		house, err := parseHouse(*partiesHouse)
		if err != nil {
			serviceutil.Fatal("failed to parse house", err)
		}

		start := timezone.Midnight(timezone.Now())
		if *partiesStart != "" {
			start, err = parseDay(*partiesStart)
			if err != nil {
				serviceutil.Fatal("failed to parse start date", err)
			}
		}
		end := start
		if *partiesEnd != "" {
			end, err = parseDay(*partiesEnd)
			if err != nil {
				serviceutil.Fatal("failed to parse end date", err)
			}
		}

		service := parties.NewService(db, newApiClient(cfg))
		stored, err := service.Extract(ctx, house, start, end)
		if err != nil {
			serviceutil.Fatal("failed to extract state of the parties", err)
		}
		slog.Info("extracted state of the parties", "rows", stored)

		if *partiesCsv != "" {
			err = service.ExportCSV(ctx, house, start, end, *partiesCsv)
			if err != nil {
				serviceutil.Fatal("failed to export csv", err)
			}
		}
	},
}
