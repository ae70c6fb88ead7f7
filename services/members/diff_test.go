package members

import (
	"testing"

	"github.com/stretchr/testify/require"

	"parliament-backend/services/members/db"
)

func TestDiffMembers(t *testing.T) {
	prev := []db.Member{
		{IDParliament: 172, Name: "Diane Abbott", Party: "Labour", IsCurrent: true},
		{IDParliament: 300, Name: "Old Member", Party: "Conservative", IsCurrent: true},
	}
	curr := []db.Member{
		// party changed
		{IDParliament: 172, Name: "Diane Abbott", Party: "Independent", IsCurrent: true},
		// new member
		{IDParliament: 500, Name: "New Member", Party: "Labour", IsCurrent: true},
	}

	changes := DiffMembers(prev, curr)
	require.Len(t, changes, 3)

	require.Equal(t, ChangeModified, changes[0].Kind)
	require.Equal(t, int64(172), changes[0].IDParliament)
	require.Equal(t, "party", changes[0].Field)
	require.Equal(t, "Labour", changes[0].Previous)
	require.Equal(t, "Independent", changes[0].Current)

	require.Equal(t, ChangeRemoved, changes[1].Kind)
	require.Equal(t, int64(300), changes[1].IDParliament)

	require.Equal(t, ChangeAdded, changes[2].Kind)
	require.Equal(t, int64(500), changes[2].IDParliament)
}

func TestDiffMembersNoChanges(t *testing.T) {
	rows := []db.Member{
		{IDParliament: 172, Name: "Diane Abbott", Party: "Labour", IsCurrent: true},
	}
	// uuid and run date differ between snapshots but are not compared
	prev := rows[0]
	prev.ID = "aaaa"
	prev.RunDate = "20240708"
	curr := rows[0]
	curr.ID = "bbbb"
	curr.RunDate = "20240709"

	require.Empty(t, DiffMembers([]db.Member{prev}, []db.Member{curr}))
}
