package membersapi

import (
	"bytes"
	"fmt"
	"time"

	"parliament-backend/lib/timezone"
)

// House identifiers as used by the upstream API.
const (
	HouseCommons = 1
	HouseLords   = 2
)

// peerage-type classifications occupy the low end of the membershipFromId
// space on Lords records
const MaxPeerageTypeID = 10

// Date is a civil date from the upstream API. The API serves dates as
// `2015-03-30T00:00:00` (and occasionally bare `2015-03-30`), with null
// meaning absent or ongoing. The zero value means absent.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, timezone.Location)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if string(data) == "null" || len(data) == 0 {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, string(data), timezone.Location)
		if err == nil {
			d.Time = timezone.Midnight(t)
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", data)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02T15:04:05") + `"`), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// Party is the party object embedded in several API payloads.
type Party struct {
	ID                    int    `json:"id"`
	Name                  string `json:"name"`
	Abbreviation          string `json:"abbreviation"`
	BackgroundColour      string `json:"backgroundColour"`
	ForegroundColour      string `json:"foregroundColour"`
	IsLordsMainParty      bool   `json:"isLordsMainParty"`
	IsLordsSpiritualParty bool   `json:"isLordsSpiritualParty"`
	GovernmentType        *int   `json:"governmentType"`
	IsIndependentParty    bool   `json:"isIndependentParty"`
}

// MembershipStatus is null on former members.
type MembershipStatus struct {
	StatusIsActive    bool   `json:"statusIsActive"`
	StatusDescription string `json:"statusDescription"`
	StatusStartDate   Date   `json:"statusStartDate"`
}

type HouseMembership struct {
	MembershipFrom      string            `json:"membershipFrom"`
	MembershipFromID    int               `json:"membershipFromId"`
	House               int               `json:"house"`
	MembershipStartDate Date              `json:"membershipStartDate"`
	MembershipEndDate   Date              `json:"membershipEndDate"`
	MembershipStatus    *MembershipStatus `json:"membershipStatus"`
}

// SearchMember is one `value` object from the Members Search API.
type SearchMember struct {
	ID                    int             `json:"id"`
	NameListAs            string          `json:"nameListAs"`
	NameDisplayAs         string          `json:"nameDisplayAs"`
	NameFullTitle         string          `json:"nameFullTitle"`
	NameAddressAs         string          `json:"nameAddressAs"`
	Gender                string          `json:"gender"`
	LatestParty           *Party          `json:"latestParty"`
	LatestHouseMembership HouseMembership `json:"latestHouseMembership"`
}

type searchItem struct {
	Value SearchMember `json:"value"`
}

type searchResponse struct {
	Items        []searchItem `json:"items"`
	TotalResults int          `json:"totalResults"`
	Skip         int          `json:"skip"`
	Take         int          `json:"take"`
}

// NameHistoryEntry is one entry of a member's name history.
type NameHistoryEntry struct {
	NameListAs    string `json:"nameListAs"`
	NameDisplayAs string `json:"nameDisplayAs"`
	NameFullTitle string `json:"nameFullTitle"`
	NameAddressAs string `json:"nameAddressAs"`
	StartDate     Date   `json:"startDate"`
	EndDate       Date   `json:"endDate"`
}

type PartyHistoryEntry struct {
	Party     *Party `json:"party"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
}

type HouseMembershipHistoryEntry struct {
	MembershipFrom      string `json:"membershipFrom"`
	MembershipFromID    int    `json:"membershipFromId"`
	House               int    `json:"house"`
	MembershipStartDate Date   `json:"membershipStartDate"`
	MembershipEndDate   Date   `json:"membershipEndDate"`
}

// MemberHistory is one `value` object from the Members History API.
type MemberHistory struct {
	ID                     int                           `json:"id"`
	NameHistory            []NameHistoryEntry            `json:"nameHistory"`
	PartyHistory           []PartyHistoryEntry           `json:"partyHistory"`
	HouseMembershipHistory []HouseMembershipHistoryEntry `json:"houseMembershipHistory"`
}

type historyItem struct {
	Value MemberHistory `json:"value"`
}

// PartyState is one `value` object from the State of the Parties API.
type PartyState struct {
	Male      int    `json:"male"`
	Female    int    `json:"female"`
	NonBinary int    `json:"nonBinary"`
	Total     int    `json:"total"`
	Party     *Party `json:"party"`
}

type partyStateItem struct {
	Value PartyState `json:"value"`
}

type partyStateResponse struct {
	Items []partyStateItem `json:"items"`
}
