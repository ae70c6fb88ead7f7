package parties

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ExportCSV writes the stored party strengths for a house over a date
// range as one flat file.
func (s Service) ExportCSV(ctx context.Context, house int, start, end time.Time, path string) error {
	ctx, span := tracer.Start(ctx, "ExportCSV")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	rows, err := s.List(ctx, house, start, end)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list party states")
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create data directory")
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create csv file")
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write([]string{
		"id", "date", "house", "male", "female", "non_binary", "total",
		"party_id_parliament", "party_name", "party_abbreviation",
		"background_colour", "foreground_colour", "is_lords_main_party",
		"is_lords_spiritual_party", "government_type", "is_independent_party",
	})
	if err != nil {
		return err
	}
	for _, r := range rows {
		var governmentType string
		if r.GovernmentType.Valid {
			governmentType = strconv.FormatInt(r.GovernmentType.Int64, 10)
		}
		err = w.Write([]string{
			r.ID, r.Date, r.House,
			strconv.FormatInt(r.Male, 10), strconv.FormatInt(r.Female, 10),
			strconv.FormatInt(r.NonBinary, 10), strconv.FormatInt(r.Total, 10),
			strconv.FormatInt(r.PartyIDParliament, 10), r.PartyName,
			r.PartyAbbreviation, r.BackgroundColour, r.ForegroundColour,
			strconv.FormatBool(r.IsLordsMainParty),
			strconv.FormatBool(r.IsLordsSpiritualParty),
			governmentType, strconv.FormatBool(r.IsIndependentParty),
		})
		if err != nil {
			return err
		}
	}
	w.Flush()
	if w.Error() != nil {
		return w.Error()
	}
	return f.Close()
}
