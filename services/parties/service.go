package parties

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"parliament-backend/lib/scrapers/membersapi"
	"parliament-backend/lib/timezone"
	"parliament-backend/services/parties/db"
)

var tracer = otel.Tracer("services/parties")

// Source is the slice of the Members API the service needs. Satisfied by
// *membersapi.Client.
type Source interface {
	StateOfTheParties(ctx context.Context, house int, date time.Time) ([]membersapi.PartyState, error)
}

type Service struct {
	db     *sql.DB
	qry    *db.Queries
	source Source
}

func NewService(database *sql.DB, source Source) Service {
	return Service{
		db:     database,
		qry:    db.New(database),
		source: source,
	}
}

func houseName(house int) string {
	if house == membersapi.HouseLords {
		return "Lords"
	}
	return "Commons"
}

// Extract pulls party strengths for every date in [start, end] and
// stores one row per party per date. A date already stored is replaced.
func (s Service) Extract(ctx context.Context, house int, start, end time.Time) (int, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(
		attribute.Int("house", house),
		attribute.String("start", start.Format("2006-01-02")),
		attribute.String("end", end.Format("2006-01-02")),
	)

	stored := 0
	for date := timezone.Midnight(start); !date.After(timezone.Midnight(end)); date = date.AddDate(0, 0, 1) {
		states, err := s.source.StateOfTheParties(ctx, house, date)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch state of the parties")
			return stored, err
		}

		err = s.storeDay(ctx, house, date, states)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to store state of the parties")
			return stored, err
		}
		stored += len(states)
	}

	slog.InfoContext(
		ctx, "stored state of the parties",
		"house", houseName(house),
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
		"rows", stored,
	)
	return stored, nil
}

func (s Service) storeDay(ctx context.Context, house int, date time.Time, states []membersapi.PartyState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	day := date.Format("2006-01-02")
	err = txqry.DeletePartyStates(ctx, db.DeletePartyStatesParams{
		Date:  day,
		House: houseName(house),
	})
	if err != nil {
		return err
	}

	for _, state := range states {
		if state.Party == nil {
			slog.WarnContext(ctx, "party state without a party", "date", day)
			continue
		}
		row := db.PartyState{
			ID:                    uuid.New().String(),
			Date:                  day,
			House:                 houseName(house),
			Male:                  int64(state.Male),
			Female:                int64(state.Female),
			NonBinary:             int64(state.NonBinary),
			Total:                 int64(state.Total),
			PartyIDParliament:     int64(state.Party.ID),
			PartyName:             state.Party.Name,
			PartyAbbreviation:     state.Party.Abbreviation,
			BackgroundColour:      state.Party.BackgroundColour,
			ForegroundColour:      state.Party.ForegroundColour,
			IsLordsMainParty:      state.Party.IsLordsMainParty,
			IsLordsSpiritualParty: state.Party.IsLordsSpiritualParty,
			IsIndependentParty:    state.Party.IsIndependentParty,
		}
		if state.Party.GovernmentType != nil {
			row.GovernmentType = sql.NullInt64{
				Int64: int64(*state.Party.GovernmentType),
				Valid: true,
			}
		}
		err := txqry.CreatePartyState(ctx, row)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// List returns the stored rows for a house over a date range.
func (s Service) List(ctx context.Context, house int, start, end time.Time) ([]db.PartyState, error) {
	return s.qry.ListPartyStates(ctx, db.ListPartyStatesParams{
		After:  start.Format("2006-01-02"),
		Before: end.Format("2006-01-02"),
		House:  houseName(house),
	})
}
