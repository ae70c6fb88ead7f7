package parties

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"parliament-backend/lib/scrapers/membersapi"
	"parliament-backend/lib/testutil"
	"parliament-backend/lib/timezone"
	"parliament-backend/services/parties/db"
)

type fakeSource struct {
	states map[string][]membersapi.PartyState
}

func (f *fakeSource) StateOfTheParties(ctx context.Context, house int, date time.Time) ([]membersapi.PartyState, error) {
	return f.states[date.Format("2006-01-02")], nil
}

func TestExtract(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/parties",
		DbSchema: db.Schema,
	})
	defer cleanup()

	labour := &membersapi.Party{ID: 15, Name: "Labour", Abbreviation: "Lab"}
	tories := &membersapi.Party{ID: 4, Name: "Conservative", Abbreviation: "Con"}

	source := &fakeSource{states: map[string][]membersapi.PartyState{
		"2024-07-08": {
			{Male: 100, Female: 102, Total: 202, Party: labour},
			{Male: 120, Female: 80, Total: 200, Party: tories},
		},
		"2024-07-09": {
			{Male: 210, Female: 201, Total: 411, Party: labour},
		},
	}}
	service := NewService(setup.DB, source)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	start := time.Date(2024, time.July, 8, 0, 0, 0, 0, timezone.Location)
	end := time.Date(2024, time.July, 9, 0, 0, 0, 0, timezone.Location)

	stored, err := service.Extract(ctx, membersapi.HouseCommons, start, end)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 3, stored)

	rows, err := service.List(ctx, membersapi.HouseCommons, start, end)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, rows, 3)
	require.Equal(t, "2024-07-08", rows[0].Date)
	require.Equal(t, "Conservative", rows[0].PartyName)
	require.Equal(t, int64(411), rows[2].Total)

	// re-extracting a date replaces its rows
	stored, err = service.Extract(ctx, membersapi.HouseCommons, end, end)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 1, stored)

	rows, err = service.List(ctx, membersapi.HouseCommons, start, end)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, rows, 3)

	csvPath := filepath.Join(t.TempDir(), "state_of_the_parties.csv")
	err = service.ExportCSV(ctx, membersapi.HouseCommons, start, end, csvPath)
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// header + 3 rows
	require.Len(t, records, 4)
	require.Equal(t, "date", records[0][1])
}
