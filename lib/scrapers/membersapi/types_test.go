package membersapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const searchPayload = `{
	"items": [{
		"value": {
			"id": 172,
			"nameListAs": "Abbott, Ms Diane",
			"nameDisplayAs": "Ms Diane Abbott",
			"nameFullTitle": "Rt Hon Diane Abbott MP",
			"nameAddressAs": null,
			"gender": "F",
			"latestParty": {"id": 15, "name": "Labour", "abbreviation": "Lab"},
			"latestHouseMembership": {
				"membershipFrom": "Hackney North and Stoke Newington",
				"membershipFromId": 4074,
				"house": 1,
				"membershipStartDate": "2019-12-12T00:00:00",
				"membershipEndDate": null,
				"membershipStatus": {
					"statusIsActive": true,
					"statusDescription": "Current Member",
					"statusStartDate": "2019-12-12T00:00:00"
				}
			}
		}
	}],
	"totalResults": 650,
	"skip": 0,
	"take": 20
}`

func TestDecodeSearchResponse(t *testing.T) {
	var res searchResponse
	err := json.Unmarshal([]byte(searchPayload), &res)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 650, res.TotalResults)
	require.Len(t, res.Items, 1)

	m := res.Items[0].Value
	require.Equal(t, 172, m.ID)
	require.Equal(t, "Ms Diane Abbott", m.NameDisplayAs)
	require.Equal(t, "Labour", m.LatestParty.Name)
	require.Equal(t, HouseCommons, m.LatestHouseMembership.House)
	require.Equal(t, NewDate(2019, time.December, 12), m.LatestHouseMembership.MembershipStartDate)
	require.True(t, m.LatestHouseMembership.MembershipEndDate.IsZero())
	require.True(t, m.LatestHouseMembership.MembershipStatus.StatusIsActive)
}

func TestDateForms(t *testing.T) {
	cases := []struct {
		in     string
		expect Date
	}{
		{in: `"2015-03-30T00:00:00"`, expect: NewDate(2015, time.March, 30)},
		{in: `"2015-03-30"`, expect: NewDate(2015, time.March, 30)},
		{in: `null`, expect: Date{}},
	}
	for _, test := range cases {
		var d Date
		err := json.Unmarshal([]byte(test.in), &d)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, test.expect, d, "input: %s", test.in)
	}

	var d Date
	err := json.Unmarshal([]byte(`"yesterday"`), &d)
	require.Error(t, err)
}
