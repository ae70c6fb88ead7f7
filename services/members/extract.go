package members

import (
	"fmt"

	"github.com/google/uuid"

	"parliament-backend/lib/scrapers/membersapi"
	"parliament-backend/lib/textutil"
)

// ExtractMembers maps Members Search API results onto canonical member
// rows. The display name is kept verbatim; cleaned forms are derived
// next to it.
func ExtractMembers(raw []membersapi.SearchMember) ([]Member, error) {
	out := make([]Member, 0, len(raw))
	for _, m := range raw {
		if m.NameDisplayAs == "" {
			return nil, fmt.Errorf(
				"%w: member %d has no nameDisplayAs",
				ErrMalformedRecord, m.ID,
			)
		}
		house := m.LatestHouseMembership.House
		if house != membersapi.HouseCommons && house != membersapi.HouseLords {
			return nil, fmt.Errorf(
				"%w: member %d has unknown house %d",
				ErrMalformedRecord, m.ID, house,
			)
		}

		var party string
		if m.LatestParty != nil {
			party = m.LatestParty.Name
		}

		name := textutil.CleanName(m.NameDisplayAs)
		isMp := house == membersapi.HouseCommons

		member := Member{
			ID:            uuid.New(),
			IDParliament:  m.ID,
			NameDisplayAs: m.NameDisplayAs,
			Name:          name,
			ShortName:     textutil.ShortName(name),
			Gender:        m.Gender,
			IsMP:          isMp,
			IsPeer:        !isMp,
			// membershipStatus is null on former members
			IsCurrent: m.LatestHouseMembership.MembershipStatus != nil,
			Party:     party,
		}
		if isMp {
			member.Constituency = m.LatestHouseMembership.MembershipFrom
		}
		out = append(out, member)
	}
	return out, nil
}
