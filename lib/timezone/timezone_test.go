package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunDateRoundTrip(t *testing.T) {
	cases := []struct {
		in     time.Time
		expect string
	}{
		{
			in:     time.Date(2024, time.July, 9, 23, 30, 0, 0, Location),
			expect: "20240709",
		},
		{
			// 23:30 UTC in July is 00:30 the next day in London
			in:     time.Date(2024, time.July, 9, 23, 30, 0, 0, time.UTC),
			expect: "20240710",
		},
		{
			in:     time.Date(2015, time.May, 7, 0, 0, 0, 0, Location),
			expect: "20150507",
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, RunDate(test.in))

		parsed, err := ParseRunDate(test.expect)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, test.expect, RunDate(parsed))
		require.Equal(t, parsed, Midnight(parsed))
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, time.December, 12, 18, 45, 12, 999, Location)
	out := Midnight(in)
	require.Equal(t, time.Date(2024, time.December, 12, 0, 0, 0, 0, Location), out)
}
