package members

import (
	"github.com/google/uuid"

	"parliament-backend/lib/scrapers/membersapi"
)

// House names in the normalized dataset.
const (
	HouseCommons = "Commons"
	HouseLords   = "Lords"
)

// Member is one row of the canonical member set. NameDisplayAs is kept
// verbatim as the canonical display name; Name and ShortName are the
// cleaned lookup forms.
type Member struct {
	ID            uuid.UUID
	IDParliament  int
	NameDisplayAs string
	Name          string
	ShortName     string
	Gender        string
	IsMP          bool
	IsPeer        bool
	IsCurrent     bool
	Party         string
	Constituency  string
}

// NameRecord is one period during which a member was known by a cleaned
// name form. An absent EndDate means the name is still in use.
type NameRecord struct {
	ID           uuid.UUID
	IDParliament int
	Name         string
	ShortName    string
	StartDate    membersapi.Date
	EndDate      membersapi.Date
}

// PartyRecord is one period of party affiliation. An absent EndDate
// means ongoing.
type PartyRecord struct {
	ID           uuid.UUID
	IDParliament int
	Party        string
	StartDate    membersapi.Date
	EndDate      membersapi.Date
}

// HouseMembershipRecord is one period of membership of a house. MPs get
// one record per parliament; peers exactly one. Constituency fields are
// only set on Commons records, Type only on Lords ones. StartDate can be
// absent on old peerage records.
type HouseMembershipRecord struct {
	ID           uuid.UUID
	IDParliament int
	House        string
	// peerage type ("Life peer", "Excepted hereditary peer", ...),
	// empty for MPs
	Type string
	// stable id shared by every record for the same constituency
	// within a snapshot, zero for Lords records
	ConstituencyID uuid.UUID
	// upstream constituency id, nil for Lords records
	ConstituencyIDParliament *int
	ConstituencyName         string
	StartDate                membersapi.Date
	EndDate                  membersapi.Date
}

// Normalized is the output of normalizing one member's history.
type Normalized struct {
	Names            []NameRecord
	Parties          []PartyRecord
	HouseMemberships []HouseMembershipRecord
}

// ConstituencyIndex assigns one UUID per upstream constituency id for
// the duration of a snapshot.
type ConstituencyIndex struct {
	ids map[int]uuid.UUID
}

func NewConstituencyIndex() *ConstituencyIndex {
	return &ConstituencyIndex{ids: map[int]uuid.UUID{}}
}

func (c *ConstituencyIndex) Get(constituencyIdParliament int) uuid.UUID {
	id, ok := c.ids[constituencyIdParliament]
	if !ok {
		id = uuid.New()
		c.ids[constituencyIdParliament] = id
	}
	return id
}
