package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{in: "Ms Diane Abbott", expect: "Diane Abbott"},
		{in: "Rt Hon Sir John Major", expect: "John Major"},
		{in: "Angela, E. Smith", expect: "Angela E Smith"},
		{in: "Dr. Thérèse Coffey", expect: "Thérèse Coffey"},
		// peerage titles survive cleaning
		{in: "Lord Alton of Liverpool", expect: "Lord Alton of Liverpool"},
		{in: "Baroness Smith of Basildon", expect: "Baroness Smith of Basildon"},
		{in: "Mrs", expect: "Mrs"},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, CleanName(test.in), "input: %q", test.in)
	}
}

func TestShortName(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{in: "Diane Abbott", expect: "Abbott"},
		{in: "Baroness Smith of Basildon", expect: "Smith"},
		{in: "The Earl of Devon", expect: "Devon"},
		{in: "Lord Alton of Liverpool", expect: "Alton"},
		{in: "Daniel van der Berg", expect: "van der Berg"},
		{in: "", expect: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, ShortName(test.in), "input: %q", test.in)
	}
}

func TestSplitPeerageTitle(t *testing.T) {
	title, family, place := SplitPeerageTitle("Baroness Smith of Basildon")
	require.Equal(t, "Baroness", title)
	require.Equal(t, "Smith", family)
	require.Equal(t, "Basildon", place)

	title, family, place = SplitPeerageTitle("The Earl of Devon")
	require.Equal(t, "The Earl", title)
	require.Equal(t, "", family)
	require.Equal(t, "Devon", place)

	title, family, place = SplitPeerageTitle("Diane Abbott")
	require.Equal(t, "", title)
	require.Equal(t, "", family)
	require.Equal(t, "", place)
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "dianeabbott", NormalizeName("  Diane\tAbbott\n"))
}
