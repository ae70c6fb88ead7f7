package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type PartyState struct {
	ID                    string
	Date                  string
	House                 string
	Male                  int64
	Female                int64
	NonBinary             int64
	Total                 int64
	PartyIDParliament     int64
	PartyName             string
	PartyAbbreviation     string
	BackgroundColour      string
	ForegroundColour      string
	IsLordsMainParty      bool
	IsLordsSpiritualParty bool
	GovernmentType        sql.NullInt64
	IsIndependentParty    bool
}

const deletePartyStates = `
DELETE FROM party_states WHERE date = ? AND house = ?
`

type DeletePartyStatesParams struct {
	Date  string
	House string
}

func (q *Queries) DeletePartyStates(ctx context.Context, arg DeletePartyStatesParams) error {
	_, err := q.db.ExecContext(ctx, deletePartyStates, arg.Date, arg.House)
	return err
}

const createPartyState = `
INSERT INTO party_states (
    id, date, house, male, female, non_binary, total,
    party_id_parliament, party_name, party_abbreviation,
    background_colour, foreground_colour, is_lords_main_party,
    is_lords_spiritual_party, government_type, is_independent_party
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreatePartyState(ctx context.Context, arg PartyState) error {
	_, err := q.db.ExecContext(ctx, createPartyState,
		arg.ID, arg.Date, arg.House, arg.Male, arg.Female, arg.NonBinary,
		arg.Total, arg.PartyIDParliament, arg.PartyName,
		arg.PartyAbbreviation, arg.BackgroundColour, arg.ForegroundColour,
		arg.IsLordsMainParty, arg.IsLordsSpiritualParty,
		arg.GovernmentType, arg.IsIndependentParty,
	)
	return err
}

const listPartyStates = `
SELECT id, date, house, male, female, non_binary, total,
    party_id_parliament, party_name, party_abbreviation,
    background_colour, foreground_colour, is_lords_main_party,
    is_lords_spiritual_party, government_type, is_independent_party
FROM party_states
WHERE date >= ? AND date <= ? AND house = ?
ORDER BY date, party_name
`

type ListPartyStatesParams struct {
	After  string
	Before string
	House  string
}

func (q *Queries) ListPartyStates(ctx context.Context, arg ListPartyStatesParams) ([]PartyState, error) {
	rows, err := q.db.QueryContext(ctx, listPartyStates, arg.After, arg.Before, arg.House)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PartyState
	for rows.Next() {
		var i PartyState
		err := rows.Scan(
			&i.ID, &i.Date, &i.House, &i.Male, &i.Female, &i.NonBinary,
			&i.Total, &i.PartyIDParliament, &i.PartyName,
			&i.PartyAbbreviation, &i.BackgroundColour, &i.ForegroundColour,
			&i.IsLordsMainParty, &i.IsLordsSpiritualParty,
			&i.GovernmentType, &i.IsIndependentParty,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
