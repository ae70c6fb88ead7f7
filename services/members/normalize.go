package members

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"parliament-backend/lib/scrapers/membersapi"
	"parliament-backend/lib/textutil"
)

// ErrMalformedRecord marks an upstream record whose shape could not be
// understood. It is always surfaced to the caller, never dropped.
var ErrMalformedRecord = errors.New("malformed member record")

// The May 2015 general election. Upstream record semantics change here:
// from this election onwards, party and house membership end dates are
// the start of the pre-election period rather than the election date.
var election2015 = membersapi.NewDate(2015, time.May, 7)

// maps the start of each pre-election period since 2015 to the date of
// the election itself, so post-2015 records carry the same end-date
// semantics as older ones
var preelectionPeriodToElectionDate = map[string]membersapi.Date{
	"2015-03-30": membersapi.NewDate(2015, time.May, 7),
	"2017-05-03": membersapi.NewDate(2017, time.June, 8),
	"2019-11-06": membersapi.NewDate(2019, time.December, 12),
	"2024-05-30": membersapi.NewDate(2024, time.July, 4),
}

// upstream peerage-type spellings that should not just be capitalized
var peerageTypeRenamings = map[string]string{
	"Excepted Hereditary": "Excepted hereditary peer",
	"Hereditary":          "Hereditary peer",
	"Life peer":           "Life peer",
	"Life Peerage":        "Life peer",
	"Bishops":             "Bishop",
	"Law Life Peerage":    "Law lord",
}

// NormalizeHistory turns one member's raw history payload into canonical
// name, party and house membership records.
func NormalizeHistory(hist membersapi.MemberHistory, constituencies *ConstituencyIndex) (Normalized, error) {
	for _, hm := range hist.HouseMembershipHistory {
		if hm.House != membersapi.HouseCommons && hm.House != membersapi.HouseLords {
			return Normalized{}, fmt.Errorf(
				"%w: member %d has unknown house %d",
				ErrMalformedRecord, hist.ID, hm.House,
			)
		}
	}

	names, err := normalizeNames(hist)
	if err != nil {
		return Normalized{}, err
	}
	parties, err := normalizeParties(hist)
	if err != nil {
		return Normalized{}, err
	}
	houses := normalizeHouseMemberships(hist, constituencies)

	return Normalized{
		Names:            names,
		Parties:          parties,
		HouseMemberships: houses,
	}, nil
}

func remapEndDate(d membersapi.Date) membersapi.Date {
	if mapped, ok := preelectionPeriodToElectionDate[d.String()]; ok {
		return mapped
	}
	return d
}

// absent start dates sort first, they mean "unknown, historical"
func beforeStart(a, b membersapi.Date) bool {
	if a.IsZero() {
		return !b.IsZero()
	}
	if b.IsZero() {
		return false
	}
	return a.Before(b.Time)
}

// absent end dates sort last, they mean "ongoing"
func beforeEnd(a, b membersapi.Date) bool {
	if b.IsZero() {
		return !a.IsZero()
	}
	if a.IsZero() {
		return false
	}
	return a.Before(b.Time)
}

// earliest start of a group, absent dominating: if any member of the
// group has an unknown start, the merged start is unknown
func earliestMasked(dates []membersapi.Date) membersapi.Date {
	var min membersapi.Date
	for i, d := range dates {
		if d.IsZero() {
			return membersapi.Date{}
		}
		if i == 0 || d.Before(min.Time) {
			min = d
		}
	}
	return min
}

// latest end of a group, absent dominating: an absent end means ongoing
// and must not lose to a known date
func latestMasked(dates []membersapi.Date) membersapi.Date {
	var max membersapi.Date
	for i, d := range dates {
		if d.IsZero() {
			return membersapi.Date{}
		}
		if i == 0 || d.After(max.Time) {
			max = d
		}
	}
	return max
}

// ---- names ----

func normalizeNames(hist membersapi.MemberHistory) ([]NameRecord, error) {
	recs := make([]NameRecord, 0, len(hist.NameHistory))
	for _, e := range hist.NameHistory {
		if e.NameDisplayAs == "" {
			return nil, fmt.Errorf(
				"%w: member %d has a name history entry without nameDisplayAs",
				ErrMalformedRecord, hist.ID,
			)
		}
		name := textutil.CleanName(e.NameDisplayAs)
		recs = append(recs, NameRecord{
			ID:           uuid.New(),
			IDParliament: hist.ID,
			Name:         name,
			ShortName:    textutil.ShortName(name),
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
		})
	}
	return CollapseNameRecords(recs), nil
}

// CollapseNameRecords merges records sharing a cleaned (name, short name)
// pair, taking the earliest start and latest end with absent dates
// dominating. Redundant records appear upstream when another name form
// (e.g. nameAddressAs) changed while nameDisplayAs did not, and when
// cleaning maps two raw forms to the same name. Idempotent.
func CollapseNameRecords(recs []NameRecord) []NameRecord {
	type key struct {
		name      string
		shortName string
	}
	groups := map[key][]NameRecord{}
	order := []key{}
	for _, r := range recs {
		k := key{name: r.Name, shortName: r.ShortName}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]NameRecord, 0, len(order))
	for _, k := range order {
		group := groups[k]
		merged := group[0]
		if len(group) > 1 {
			starts := make([]membersapi.Date, len(group))
			ends := make([]membersapi.Date, len(group))
			for i, r := range group {
				starts[i] = r.StartDate
				ends[i] = r.EndDate
			}
			merged.StartDate = earliestMasked(starts)
			merged.EndDate = latestMasked(ends)
		}
		out = append(out, merged)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return beforeStart(out[i].StartDate, out[j].StartDate)
	})
	return out
}

// ---- parties ----

func normalizeParties(hist membersapi.MemberHistory) ([]PartyRecord, error) {
	lords := lordsPeriods(hist)

	var mp []PartyRecord
	var peer []PartyRecord
	for _, e := range hist.PartyHistory {
		if e.Party == nil || e.Party.Name == "" {
			return nil, fmt.Errorf(
				"%w: member %d has a party history entry without a party",
				ErrMalformedRecord, hist.ID,
			)
		}
		rec := PartyRecord{
			ID:           uuid.New(),
			IDParliament: hist.ID,
			Party:        e.Party.Name,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
		}
		// entries carry no house of their own: a period spent in the
		// Lords is peer context, everything else is MP context
		if overlapsAny(e.StartDate, e.EndDate, lords) {
			peer = append(peer, rec)
		} else {
			rec.EndDate = remapEndDate(rec.EndDate)
			mp = append(mp, rec)
		}
	}

	out := CollapsePreElectionParties(mp)
	if len(peer) > 0 {
		out = append(out, mergePartyRecords(peer))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return beforeStart(out[i].StartDate, out[j].StartDate)
	})
	return out, nil
}

type period struct {
	start membersapi.Date
	end   membersapi.Date
}

func lordsPeriods(hist membersapi.MemberHistory) []period {
	var out []period
	for _, hm := range hist.HouseMembershipHistory {
		if hm.House == membersapi.HouseLords {
			out = append(out, period{start: hm.MembershipStartDate, end: hm.MembershipEndDate})
		}
	}
	return out
}

// overlap with absent treated as an open bound on that side
func overlapsAny(start, end membersapi.Date, periods []period) bool {
	for _, p := range periods {
		startsBeforePeriodEnds := p.end.IsZero() || start.IsZero() || !start.After(p.end.Time)
		endsAfterPeriodStarts := p.start.IsZero() || end.IsZero() || !end.Before(p.start.Time)
		if startsBeforePeriodEnds && endsAfterPeriodStarts {
			return true
		}
	}
	return false
}

// CollapsePreElectionParties merges every MP party record that ended on
// or before the May 2015 general election into a single record, keeping
// later records one per parliament. The merged record carries the party
// of the latest pre-2015 entry, the earliest start and the latest end.
// Idempotent: a list with at most one pre-2015 record passes through
// unchanged.
func CollapsePreElectionParties(recs []PartyRecord) []PartyRecord {
	var pre []PartyRecord
	var post []PartyRecord
	for _, r := range recs {
		if !r.EndDate.IsZero() && !r.EndDate.After(election2015.Time) {
			pre = append(pre, r)
		} else {
			post = append(post, r)
		}
	}

	out := make([]PartyRecord, 0, len(post)+1)
	if len(pre) == 1 {
		out = append(out, pre[0])
	} else if len(pre) > 1 {
		out = append(out, mergePartyRecords(pre))
	}
	out = append(out, post...)
	sort.SliceStable(out, func(i, j int) bool {
		return beforeStart(out[i].StartDate, out[j].StartDate)
	})
	return out
}

// merges party records into one continuous record, keeping the identity
// and party of the latest entry
func mergePartyRecords(recs []PartyRecord) PartyRecord {
	latest := recs[0]
	starts := make([]membersapi.Date, len(recs))
	ends := make([]membersapi.Date, len(recs))
	for i, r := range recs {
		starts[i] = r.StartDate
		ends[i] = r.EndDate
		if beforeEnd(latest.EndDate, r.EndDate) {
			latest = r
		}
	}
	latest.StartDate = earliestMasked(starts)
	latest.EndDate = latestMasked(ends)
	return latest
}

// ---- house memberships ----

func normalizeHouseMemberships(hist membersapi.MemberHistory, constituencies *ConstituencyIndex) []HouseMembershipRecord {
	var out []HouseMembershipRecord
	var lords []membersapi.HouseMembershipHistoryEntry

	for _, hm := range hist.HouseMembershipHistory {
		if hm.House == membersapi.HouseLords {
			lords = append(lords, hm)
			continue
		}
		// Commons: one record per parliament across all eras
		constituencyId := hm.MembershipFromID
		out = append(out, HouseMembershipRecord{
			ID:                       uuid.New(),
			IDParliament:             hist.ID,
			House:                    HouseCommons,
			ConstituencyID:           constituencies.Get(constituencyId),
			ConstituencyIDParliament: &constituencyId,
			ConstituencyName:         hm.MembershipFrom,
			StartDate:                hm.MembershipStartDate,
			EndDate:                  remapEndDate(hm.MembershipEndDate),
		})
	}

	// Lords: exactly one record regardless of how many entries upstream
	// holds, with the constituency fields cleared
	if len(lords) > 0 {
		starts := make([]membersapi.Date, len(lords))
		ends := make([]membersapi.Date, len(lords))
		latest := lords[0]
		for i, hm := range lords {
			starts[i] = hm.MembershipStartDate
			ends[i] = hm.MembershipEndDate
			if beforeEnd(latest.MembershipEndDate, hm.MembershipEndDate) {
				latest = hm
			}
		}
		out = append(out, HouseMembershipRecord{
			ID:           uuid.New(),
			IDParliament: hist.ID,
			House:        HouseLords,
			Type:         peerageType(latest),
			StartDate:    earliestMasked(starts),
			EndDate:      latestMasked(ends),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return beforeStart(out[i].StartDate, out[j].StartDate)
	})
	return out
}

// peerageType classifies a Lords entry. The id guard matters: some old
// Commons records erroneously carry membershipFromId <= 10, which is why
// classification only ever runs on Lords entries.
func peerageType(hm membersapi.HouseMembershipHistoryEntry) string {
	if hm.MembershipFromID > membersapi.MaxPeerageTypeID {
		return ""
	}
	if renamed, ok := peerageTypeRenamings[hm.MembershipFrom]; ok {
		return renamed
	}
	return capitalize(hm.MembershipFrom)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + strings.ToLower(s[size:])
}

// StatusStartAnomaly reports the known upstream inconsistency where a
// member's statusStartDate precedes the start of their earliest house
// membership. The status date is not carried into the normalized set;
// callers log the anomaly and move on.
func StatusStartAnomaly(m membersapi.SearchMember, hist membersapi.MemberHistory) (statusStart, membershipStart membersapi.Date, anomalous bool) {
	status := m.LatestHouseMembership.MembershipStatus
	if status == nil || status.StatusStartDate.IsZero() {
		return membersapi.Date{}, membersapi.Date{}, false
	}

	starts := make([]membersapi.Date, 0, len(hist.HouseMembershipHistory))
	for _, hm := range hist.HouseMembershipHistory {
		if hm.MembershipStartDate.IsZero() {
			// unknown historical start, nothing to compare against
			return membersapi.Date{}, membersapi.Date{}, false
		}
		starts = append(starts, hm.MembershipStartDate)
	}
	if len(starts) == 0 {
		return membersapi.Date{}, membersapi.Date{}, false
	}

	earliest := earliestMasked(starts)
	if status.StatusStartDate.Before(earliest.Time) {
		return status.StatusStartDate, earliest, true
	}
	return membersapi.Date{}, membersapi.Date{}, false
}
