package members

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"parliament-backend/lib/scrapers/membersapi"
)

func date(year int, month time.Month, day int) membersapi.Date {
	return membersapi.NewDate(year, month, day)
}

func labour() *membersapi.Party {
	return &membersapi.Party{ID: 15, Name: "Labour"}
}

func conservative() *membersapi.Party {
	return &membersapi.Party{ID: 4, Name: "Conservative"}
}

// an MP whose party history spans several pre-2015 parliaments and two
// post-2015 ones, in the upstream per-parliament shape
func mpHistory() membersapi.MemberHistory {
	return membersapi.MemberHistory{
		ID: 172,
		NameHistory: []membersapi.NameHistoryEntry{
			{NameDisplayAs: "Ms Diane Abbott", StartDate: date(1987, time.June, 11)},
		},
		PartyHistory: []membersapi.PartyHistoryEntry{
			{Party: labour(), StartDate: date(1987, time.June, 11), EndDate: date(1992, time.March, 16)},
			{Party: labour(), StartDate: date(1992, time.April, 9), EndDate: date(2010, time.April, 12)},
			// ends at the start of the 2015 pre-election period upstream
			{Party: labour(), StartDate: date(2010, time.May, 6), EndDate: date(2015, time.March, 30)},
			{Party: labour(), StartDate: date(2015, time.May, 8), EndDate: date(2017, time.May, 3)},
			{Party: labour(), StartDate: date(2017, time.June, 9), EndDate: membersapi.Date{}},
		},
		HouseMembershipHistory: []membersapi.HouseMembershipHistoryEntry{
			{MembershipFrom: "Hackney North and Stoke Newington", MembershipFromID: 4074, House: membersapi.HouseCommons,
				MembershipStartDate: date(2010, time.May, 6), MembershipEndDate: date(2015, time.March, 30)},
			{MembershipFrom: "Hackney North and Stoke Newington", MembershipFromID: 4074, House: membersapi.HouseCommons,
				MembershipStartDate: date(2015, time.May, 8), MembershipEndDate: date(2017, time.May, 3)},
			{MembershipFrom: "Hackney North and Stoke Newington", MembershipFromID: 4074, House: membersapi.HouseCommons,
				MembershipStartDate: date(2017, time.June, 9)},
		},
	}
}

func TestPreElectionPartyEntriesCollapse(t *testing.T) {
	norm, err := NormalizeHistory(mpHistory(), NewConstituencyIndex())
	if err != nil {
		t.Fatal(err)
	}

	// three pre-2015 entries collapse into one, two post-2015 survive
	require.Len(t, norm.Parties, 3)

	merged := norm.Parties[0]
	require.Equal(t, "Labour", merged.Party)
	require.Equal(t, date(1987, time.June, 11), merged.StartDate)
	// the 2015-03-30 pre-election end is remapped to the election date
	require.Equal(t, date(2015, time.May, 7), merged.EndDate)

	// post-2015 records stay per parliament, with remapped end dates
	require.Equal(t, date(2017, time.June, 8), norm.Parties[1].EndDate)
	require.True(t, norm.Parties[2].EndDate.IsZero())
}

func TestMPHouseMembershipsKeptPerParliament(t *testing.T) {
	idx := NewConstituencyIndex()
	norm, err := NormalizeHistory(mpHistory(), idx)
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, norm.HouseMemberships, 3)
	for _, hm := range norm.HouseMemberships {
		require.Equal(t, HouseCommons, hm.House)
		require.Empty(t, hm.Type)
		require.NotNil(t, hm.ConstituencyIDParliament)
		require.Equal(t, 4074, *hm.ConstituencyIDParliament)
		require.Equal(t, "Hackney North and Stoke Newington", hm.ConstituencyName)
	}
	// the same constituency maps to one uuid within a snapshot
	require.Equal(t, norm.HouseMemberships[0].ConstituencyID, norm.HouseMemberships[1].ConstituencyID)
	// era reconciliation applies to membership end dates too
	require.Equal(t, date(2015, time.May, 7), norm.HouseMemberships[0].EndDate)
	require.Equal(t, date(2017, time.June, 8), norm.HouseMemberships[1].EndDate)
}

func TestPeerGetsExactlyOneHouseMembership(t *testing.T) {
	hist := membersapi.MemberHistory{
		ID: 3898,
		NameHistory: []membersapi.NameHistoryEntry{
			{NameDisplayAs: "Baroness Smith of Basildon", StartDate: date(2010, time.June, 27)},
		},
		PartyHistory: []membersapi.PartyHistoryEntry{
			{Party: labour(), StartDate: date(2010, time.June, 27), EndDate: date(2015, time.March, 30)},
			{Party: labour(), StartDate: date(2015, time.May, 8)},
		},
		HouseMembershipHistory: []membersapi.HouseMembershipHistoryEntry{
			{MembershipFrom: "Life peer", MembershipFromID: 6, House: membersapi.HouseLords,
				MembershipStartDate: date(2010, time.June, 27), MembershipEndDate: date(2014, time.January, 1)},
			{MembershipFrom: "Life peer", MembershipFromID: 6, House: membersapi.HouseLords,
				MembershipStartDate: date(2014, time.January, 2)},
		},
	}

	norm, err := NormalizeHistory(hist, NewConstituencyIndex())
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, norm.HouseMemberships, 1)
	hm := norm.HouseMemberships[0]
	require.Equal(t, HouseLords, hm.House)
	require.Equal(t, "Life peer", hm.Type)
	require.Nil(t, hm.ConstituencyIDParliament)
	require.Empty(t, hm.ConstituencyName)
	require.Equal(t, date(2010, time.June, 27), hm.StartDate)
	require.True(t, hm.EndDate.IsZero())

	// peer party entries are one continuous record, elections do not
	// split them
	require.Len(t, norm.Parties, 1)
	require.Equal(t, date(2010, time.June, 27), norm.Parties[0].StartDate)
	require.True(t, norm.Parties[0].EndDate.IsZero())
}

func TestMPTurnedPeer(t *testing.T) {
	hist := membersapi.MemberHistory{
		ID: 36,
		NameHistory: []membersapi.NameHistoryEntry{
			{NameDisplayAs: "Sir Kenneth Clarke", StartDate: date(1970, time.June, 18)},
			{NameDisplayAs: "Lord Clarke of Nottingham", StartDate: date(2020, time.July, 31)},
		},
		PartyHistory: []membersapi.PartyHistoryEntry{
			// Commons-era entries, per parliament
			{Party: conservative(), StartDate: date(1997, time.May, 1), EndDate: date(2010, time.April, 12)},
			{Party: conservative(), StartDate: date(2010, time.May, 6), EndDate: date(2015, time.March, 30)},
			// Lords-era entry, overlapping the Lords membership below
			{Party: conservative(), StartDate: date(2020, time.July, 31)},
		},
		HouseMembershipHistory: []membersapi.HouseMembershipHistoryEntry{
			{MembershipFrom: "Rushcliffe", MembershipFromID: 1510, House: membersapi.HouseCommons,
				MembershipStartDate: date(1997, time.May, 1), MembershipEndDate: date(2010, time.April, 12)},
			{MembershipFrom: "Rushcliffe", MembershipFromID: 1510, House: membersapi.HouseCommons,
				MembershipStartDate: date(2010, time.May, 6), MembershipEndDate: date(2015, time.March, 30)},
			{MembershipFrom: "Life peer", MembershipFromID: 6, House: membersapi.HouseLords,
				MembershipStartDate: date(2020, time.July, 31)},
		},
	}

	norm, err := NormalizeHistory(hist, NewConstituencyIndex())
	if err != nil {
		t.Fatal(err)
	}

	// the Commons-era entries collapse as pre-2015 MP records; the
	// Lords-era entry stays a separate single peer record
	require.Len(t, norm.Parties, 2)
	require.Equal(t, date(1997, time.May, 1), norm.Parties[0].StartDate)
	require.Equal(t, date(2015, time.May, 7), norm.Parties[0].EndDate)
	require.Equal(t, date(2020, time.July, 31), norm.Parties[1].StartDate)
	require.True(t, norm.Parties[1].EndDate.IsZero())

	// two per-parliament Commons records plus exactly one Lords record
	require.Len(t, norm.HouseMemberships, 3)
	require.Equal(t, HouseCommons, norm.HouseMemberships[0].House)
	require.Equal(t, HouseCommons, norm.HouseMemberships[1].House)
	require.Equal(t, date(2015, time.May, 7), norm.HouseMemberships[1].EndDate)
	lords := norm.HouseMemberships[2]
	require.Equal(t, HouseLords, lords.House)
	require.Equal(t, "Life peer", lords.Type)
	require.Nil(t, lords.ConstituencyIDParliament)

	// both name forms survive the collapse, they clean differently
	require.Len(t, norm.Names, 2)
}

func TestMissingPeerageStartDate(t *testing.T) {
	hist := membersapi.MemberHistory{
		ID: 2462,
		NameHistory: []membersapi.NameHistoryEntry{
			{NameDisplayAs: "The Earl of Devon"},
		},
		HouseMembershipHistory: []membersapi.HouseMembershipHistoryEntry{
			// some historical peerage records carry no membershipStartDate
			{MembershipFrom: "Excepted Hereditary", MembershipFromID: 4, House: membersapi.HouseLords},
		},
	}

	norm, err := NormalizeHistory(hist, NewConstituencyIndex())
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, norm.HouseMemberships, 1)
	require.True(t, norm.HouseMemberships[0].StartDate.IsZero())
	require.Equal(t, "Excepted hereditary peer", norm.HouseMemberships[0].Type)
}

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Hereditary peer", capitalize("hereditary PEER"))
	// the first rune can be multi-byte
	require.Equal(t, "Épiscopal", capitalize("épiscopal"))
	require.Equal(t, "", capitalize(""))
}

func TestCanonicalNameKeptVerbatim(t *testing.T) {
	raw := []membersapi.SearchMember{{
		ID:            172,
		NameDisplayAs: "Ms Diane Abbott",
		Gender:        "F",
		LatestParty:   labour(),
		LatestHouseMembership: membersapi.HouseMembership{
			MembershipFrom:   "Hackney North and Stoke Newington",
			MembershipFromID: 4074,
			House:            membersapi.HouseCommons,
			MembershipStatus: &membersapi.MembershipStatus{StatusIsActive: true},
		},
	}}

	members, err := ExtractMembers(raw)
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, members, 1)
	require.Equal(t, "Ms Diane Abbott", members[0].NameDisplayAs)
	require.Equal(t, "Diane Abbott", members[0].Name)
	require.Equal(t, "Abbott", members[0].ShortName)
	require.True(t, members[0].IsMP)
	require.False(t, members[0].IsPeer)
	require.True(t, members[0].IsCurrent)
	require.Equal(t, "Hackney North and Stoke Newington", members[0].Constituency)
}

func TestNameHistoryCollapse(t *testing.T) {
	hist := membersapi.MemberHistory{
		ID: 4753,
		NameHistory: []membersapi.NameHistoryEntry{
			// redundant records arise upstream when a different name
			// form changes while nameDisplayAs does not
			{NameDisplayAs: "Mary Foy", StartDate: date(2019, time.December, 12), EndDate: date(2021, time.March, 1)},
			{NameDisplayAs: "Mary Foy", StartDate: date(2021, time.March, 2), EndDate: membersapi.Date{}},
		},
	}

	norm, err := NormalizeHistory(hist, NewConstituencyIndex())
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, norm.Names, 1)
	require.Equal(t, date(2019, time.December, 12), norm.Names[0].StartDate)
	// the ongoing record keeps the merged record ongoing
	require.True(t, norm.Names[0].EndDate.IsZero())
}

func TestCollapseIsIdempotent(t *testing.T) {
	norm, err := NormalizeHistory(mpHistory(), NewConstituencyIndex())
	if err != nil {
		t.Fatal(err)
	}

	ignoreIds := cmpopts.IgnoreFields(PartyRecord{}, "ID")
	again := CollapsePreElectionParties(norm.Parties)
	if diff := cmp.Diff(norm.Parties, again, ignoreIds); diff != "" {
		t.Fatal("re-collapsing party records changed them:\n" + diff)
	}

	ignoreNameIds := cmpopts.IgnoreFields(NameRecord{}, "ID")
	namesAgain := CollapseNameRecords(norm.Names)
	if diff := cmp.Diff(norm.Names, namesAgain, ignoreNameIds); diff != "" {
		t.Fatal("re-collapsing name records changed them:\n" + diff)
	}
}

func TestMalformedRecordsSurface(t *testing.T) {
	hist := membersapi.MemberHistory{
		ID: 999,
		HouseMembershipHistory: []membersapi.HouseMembershipHistoryEntry{
			{MembershipFrom: "Somewhere", House: 3},
		},
	}
	_, err := NormalizeHistory(hist, NewConstituencyIndex())
	require.ErrorIs(t, err, ErrMalformedRecord)

	hist = membersapi.MemberHistory{
		ID: 999,
		PartyHistory: []membersapi.PartyHistoryEntry{
			{StartDate: date(2020, time.January, 1)},
		},
	}
	_, err = NormalizeHistory(hist, NewConstituencyIndex())
	require.ErrorIs(t, err, ErrMalformedRecord)

	_, err = ExtractMembers([]membersapi.SearchMember{{ID: 1}})
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestStatusStartAnomaly(t *testing.T) {
	member := membersapi.SearchMember{
		ID:            100,
		NameDisplayAs: "Lord Example",
		LatestHouseMembership: membersapi.HouseMembership{
			House: membersapi.HouseLords,
			MembershipStatus: &membersapi.MembershipStatus{
				StatusStartDate: date(1999, time.November, 1),
			},
		},
	}
	hist := membersapi.MemberHistory{
		ID: 100,
		HouseMembershipHistory: []membersapi.HouseMembershipHistoryEntry{
			{MembershipFrom: "Life peer", MembershipFromID: 6, House: membersapi.HouseLords,
				MembershipStartDate: date(2000, time.July, 25)},
		},
	}

	statusStart, membershipStart, anomalous := StatusStartAnomaly(member, hist)
	require.True(t, anomalous)
	require.Equal(t, date(1999, time.November, 1), statusStart)
	require.Equal(t, date(2000, time.July, 25), membershipStart)

	// consistent dates are not an anomaly
	hist.HouseMembershipHistory[0].MembershipStartDate = date(1999, time.November, 1)
	_, _, anomalous = StatusStartAnomaly(member, hist)
	require.False(t, anomalous)
}
