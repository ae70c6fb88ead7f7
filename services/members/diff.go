package members

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"parliament-backend/services/members/db"
)

type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
)

// Change is one row-level difference between two snapshots. Modified
// members produce one change per differing field.
type Change struct {
	Kind         ChangeKind
	IDParliament int64
	Name         string
	Field        string
	Previous     string
	Current      string
}

// comparableFields lists the member columns compared between snapshots.
// Snapshot-local identifiers (uuid, run date) are excluded on purpose.
func comparableFields(m db.Member) map[string]string {
	return map[string]string{
		"name_display_as": m.NameDisplayAs,
		"name":            m.Name,
		"short_name":      m.ShortName,
		"gender":          m.Gender,
		"is_mp":           fmt.Sprint(m.IsMp),
		"is_peer":         fmt.Sprint(m.IsPeer),
		"is_current":      fmt.Sprint(m.IsCurrent),
		"party":           m.Party,
		"constituency":    m.Constituency,
	}
}

// DiffMembers compares two member sets keyed by the upstream member id.
func DiffMembers(prev, curr []db.Member) []Change {
	prevById := make(map[int64]db.Member, len(prev))
	for _, m := range prev {
		prevById[m.IDParliament] = m
	}
	currById := make(map[int64]db.Member, len(curr))
	for _, m := range curr {
		currById[m.IDParliament] = m
	}

	var changes []Change
	for _, m := range curr {
		old, existed := prevById[m.IDParliament]
		if !existed {
			changes = append(changes, Change{
				Kind:         ChangeAdded,
				IDParliament: m.IDParliament,
				Name:         m.Name,
			})
			continue
		}

		oldFields := comparableFields(old)
		newFields := comparableFields(m)
		fields := make([]string, 0, len(newFields))
		for field := range newFields {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			if oldFields[field] != newFields[field] {
				changes = append(changes, Change{
					Kind:         ChangeModified,
					IDParliament: m.IDParliament,
					Name:         m.Name,
					Field:        field,
					Previous:     oldFields[field],
					Current:      newFields[field],
				})
			}
		}
	}
	for _, m := range prev {
		if _, exists := currById[m.IDParliament]; !exists {
			changes = append(changes, Change{
				Kind:         ChangeRemoved,
				IDParliament: m.IDParliament,
				Name:         m.Name,
			})
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].IDParliament < changes[j].IDParliament
	})
	return changes
}

// Changes diffs the member sets of two stored snapshots.
func (s Service) Changes(ctx context.Context, prevRun, currRun string) ([]Change, error) {
	ctx, span := tracer.Start(ctx, "Changes")
	defer span.End()
	span.SetAttributes(
		attribute.String("prev_run", prevRun),
		attribute.String("curr_run", currRun),
	)

	prev, err := s.qry.ListMembers(ctx, prevRun)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list previous snapshot")
		return nil, err
	}
	curr, err := s.qry.ListMembers(ctx, currRun)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list current snapshot")
		return nil, err
	}

	return DiffMembers(prev, curr), nil
}
