package members

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"parliament-backend/lib/scrapers/membersapi"
	"parliament-backend/lib/timezone"
	"parliament-backend/services/members/db"
)

var tracer = otel.Tracer("services/members")

// Source is the slice of the Members API the service needs. Satisfied by
// *membersapi.Client.
type Source interface {
	SearchMembers(ctx context.Context, house int, currentOnly bool) ([]membersapi.SearchMember, error)
	GetHistory(ctx context.Context, memberId int) (membersapi.MemberHistory, error)
}

type Options struct {
	// restrict the snapshot to current members only
	CurrentOnly bool
}

type Service struct {
	db      *sql.DB
	qry     *db.Queries
	source  Source
	options Options
}

func NewService(database *sql.DB, source Source, options Options) Service {
	return Service{
		db:      database,
		qry:     db.New(database),
		source:  source,
		options: options,
	}
}

type SnapshotResult struct {
	RunDate          string
	Members          int
	Names            int
	Parties          int
	HouseMemberships int
}

// Snapshot fetches every member of both houses, normalizes their
// histories and stores the result as the snapshot for the given run
// date. Re-running for the same date replaces that snapshot.
func (s Service) Snapshot(ctx context.Context, runDate time.Time) (SnapshotResult, error) {
	ctx, span := tracer.Start(ctx, "Snapshot")
	defer span.End()

	run := timezone.RunDate(runDate)
	span.SetAttributes(attribute.String("run_date", run))

	commons, err := s.source.SearchMembers(ctx, membersapi.HouseCommons, s.options.CurrentOnly)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to search commons members")
		return SnapshotResult{}, err
	}
	lords, err := s.source.SearchMembers(ctx, membersapi.HouseLords, s.options.CurrentOnly)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to search lords members")
		return SnapshotResult{}, err
	}

	raw := append(commons, lords...)
	rows, err := ExtractMembers(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract members")
		return SnapshotResult{}, err
	}

	constituencies := NewConstituencyIndex()
	normalized := make([]Normalized, len(rows))
	for i, m := range raw {
		hist, err := s.source.GetHistory(ctx, m.ID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch member history")
			return SnapshotResult{}, fmt.Errorf("history for member %d: %w", m.ID, err)
		}

		norm, err := NormalizeHistory(hist, constituencies)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to normalize member history")
			return SnapshotResult{}, err
		}
		normalized[i] = norm

		if statusStart, membershipStart, bad := StatusStartAnomaly(m, hist); bad {
			slog.WarnContext(
				ctx, "statusStartDate precedes house membership start",
				"member_id", m.ID,
				"status_start", statusStart.String(),
				"membership_start", membershipStart.String(),
			)
		}
		for _, dupe := range FindNearDuplicateNames(norm.Names) {
			slog.WarnContext(
				ctx, "near-duplicate name records",
				"member_id", dupe.IDParliament,
				"left", dupe.Left,
				"right", dupe.Right,
				"similarity", dupe.Similarity,
			)
		}
	}

	result, err := s.store(ctx, run, rows, normalized)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store snapshot")
		return SnapshotResult{}, err
	}

	slog.InfoContext(
		ctx, "stored members snapshot",
		"run_date", run,
		"members", result.Members,
		"names", result.Names,
		"parties", result.Parties,
		"house_memberships", result.HouseMemberships,
	)
	return result, nil
}

func (s Service) store(ctx context.Context, run string, rows []Member, normalized []Normalized) (SnapshotResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SnapshotResult{}, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteSnapshot(ctx, run)
	if err != nil {
		return SnapshotResult{}, err
	}

	result := SnapshotResult{RunDate: run}
	for i, m := range rows {
		err := txqry.CreateMember(ctx, memberRow(run, m))
		if err != nil {
			return SnapshotResult{}, err
		}
		result.Members++

		for _, r := range normalized[i].Names {
			err := txqry.CreateNameHistory(ctx, nameRow(run, r))
			if err != nil {
				return SnapshotResult{}, err
			}
			result.Names++
		}
		for _, r := range normalized[i].Parties {
			err := txqry.CreatePartyHistory(ctx, partyRow(run, r))
			if err != nil {
				return SnapshotResult{}, err
			}
			result.Parties++
		}
		for _, r := range normalized[i].HouseMemberships {
			err := txqry.CreateHouseMembershipHistory(ctx, houseRow(run, r))
			if err != nil {
				return SnapshotResult{}, err
			}
			result.HouseMemberships++
		}
	}

	err = tx.Commit()
	if err != nil {
		return SnapshotResult{}, err
	}
	return result, nil
}

func dateColumn(d membersapi.Date) sql.NullString {
	return sql.NullString{String: d.String(), Valid: !d.IsZero()}
}

func memberRow(run string, m Member) db.Member {
	return db.Member{
		ID:            m.ID.String(),
		RunDate:       run,
		IDParliament:  int64(m.IDParliament),
		NameDisplayAs: m.NameDisplayAs,
		Name:          m.Name,
		ShortName:     m.ShortName,
		Gender:        m.Gender,
		IsMp:          m.IsMP,
		IsPeer:        m.IsPeer,
		IsCurrent:     m.IsCurrent,
		Party:         m.Party,
		Constituency:  m.Constituency,
	}
}

func nameRow(run string, r NameRecord) db.NameHistory {
	return db.NameHistory{
		ID:           r.ID.String(),
		RunDate:      run,
		IDParliament: int64(r.IDParliament),
		Name:         r.Name,
		ShortName:    r.ShortName,
		StartDate:    dateColumn(r.StartDate),
		EndDate:      dateColumn(r.EndDate),
	}
}

func partyRow(run string, r PartyRecord) db.PartyHistory {
	return db.PartyHistory{
		ID:           r.ID.String(),
		RunDate:      run,
		IDParliament: int64(r.IDParliament),
		Party:        r.Party,
		StartDate:    dateColumn(r.StartDate),
		EndDate:      dateColumn(r.EndDate),
	}
}

func houseRow(run string, r HouseMembershipRecord) db.HouseMembershipHistory {
	row := db.HouseMembershipHistory{
		ID:           r.ID.String(),
		RunDate:      run,
		IDParliament: int64(r.IDParliament),
		House:        r.House,
		StartDate:    dateColumn(r.StartDate),
		EndDate:      dateColumn(r.EndDate),
	}
	if r.Type != "" {
		row.Type = sql.NullString{String: r.Type, Valid: true}
	}
	if r.House == HouseCommons {
		row.ConstituencyID = sql.NullString{String: r.ConstituencyID.String(), Valid: true}
		row.ConstituencyName = sql.NullString{String: r.ConstituencyName, Valid: true}
		if r.ConstituencyIDParliament != nil {
			row.ConstituencyIDParliament = sql.NullInt64{
				Int64: int64(*r.ConstituencyIDParliament),
				Valid: true,
			}
		}
	}
	return row
}
