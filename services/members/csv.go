package members

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ExportCSV writes the snapshot for a run date as flat files under
// `<dataDir>/<run_date>/`, one per record set. These are the artifacts
// committed to version control by the scheduled job.
func (s Service) ExportCSV(ctx context.Context, run string, dataDir string) error {
	ctx, span := tracer.Start(ctx, "ExportCSV")
	defer span.End()
	span.SetAttributes(attribute.String("run_date", run))

	dir := filepath.Join(dataDir, run)
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create data directory")
		return err
	}

	err = s.exportMembers(ctx, run, filepath.Join(dir, "members.csv"))
	if err == nil {
		err = s.exportNameHistories(ctx, run, filepath.Join(dir, "name_histories.csv"))
	}
	if err == nil {
		err = s.exportPartyHistories(ctx, run, filepath.Join(dir, "party_histories.csv"))
	}
	if err == nil {
		err = s.exportHouseMembershipHistories(ctx, run, filepath.Join(dir, "house_membership_histories.csv"))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to export csv")
		return err
	}
	return nil
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write(header)
	if err != nil {
		return err
	}
	err = w.WriteAll(records)
	if err != nil {
		return err
	}
	w.Flush()
	if w.Error() != nil {
		return w.Error()
	}
	return f.Close()
}

func nullable(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

func (s Service) exportMembers(ctx context.Context, run, path string) error {
	rows, err := s.qry.ListMembers(ctx, run)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.ID, strconv.FormatInt(r.IDParliament, 10),
			r.NameDisplayAs, r.Name, r.ShortName, r.Gender,
			strconv.FormatBool(r.IsMp), strconv.FormatBool(r.IsPeer),
			strconv.FormatBool(r.IsCurrent), r.Party, r.Constituency,
		}
	}
	return writeCSV(path, []string{
		"id", "id_parliament", "name_display_as", "name", "short_name",
		"gender", "is_mp", "is_peer", "is_current", "party", "constituency",
	}, records)
}

func (s Service) exportNameHistories(ctx context.Context, run, path string) error {
	rows, err := s.qry.ListNameHistories(ctx, run)
	if err != nil {
		return fmt.Errorf("list name histories: %w", err)
	}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.ID, strconv.FormatInt(r.IDParliament, 10),
			r.Name, r.ShortName, nullable(r.StartDate), nullable(r.EndDate),
		}
	}
	return writeCSV(path, []string{
		"id", "id_parliament", "name", "short_name", "start_date", "end_date",
	}, records)
}

func (s Service) exportPartyHistories(ctx context.Context, run, path string) error {
	rows, err := s.qry.ListPartyHistories(ctx, run)
	if err != nil {
		return fmt.Errorf("list party histories: %w", err)
	}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.ID, strconv.FormatInt(r.IDParliament, 10),
			r.Party, nullable(r.StartDate), nullable(r.EndDate),
		}
	}
	return writeCSV(path, []string{
		"id", "id_parliament", "party", "start_date", "end_date",
	}, records)
}

func (s Service) exportHouseMembershipHistories(ctx context.Context, run, path string) error {
	rows, err := s.qry.ListHouseMembershipHistories(ctx, run)
	if err != nil {
		return fmt.Errorf("list house membership histories: %w", err)
	}
	records := make([][]string, len(rows))
	for i, r := range rows {
		var constituencyId string
		if r.ConstituencyIDParliament.Valid {
			constituencyId = strconv.FormatInt(r.ConstituencyIDParliament.Int64, 10)
		}
		records[i] = []string{
			r.ID, strconv.FormatInt(r.IDParliament, 10), r.House,
			nullable(r.Type), nullable(r.ConstituencyID), constituencyId,
			nullable(r.ConstituencyName), nullable(r.StartDate), nullable(r.EndDate),
		}
	}
	return writeCSV(path, []string{
		"id", "id_parliament", "house", "type", "constituency_id",
		"constituency_id_parliament", "constituency_name", "start_date", "end_date",
	}, records)
}
