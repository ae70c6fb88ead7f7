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

type Member struct {
	ID            string
	RunDate       string
	IDParliament  int64
	NameDisplayAs string
	Name          string
	ShortName     string
	Gender        string
	IsMp          bool
	IsPeer        bool
	IsCurrent     bool
	Party         string
	Constituency  string
}

type NameHistory struct {
	ID           string
	RunDate      string
	IDParliament int64
	Name         string
	ShortName    string
	StartDate    sql.NullString
	EndDate      sql.NullString
}

type PartyHistory struct {
	ID           string
	RunDate      string
	IDParliament int64
	Party        string
	StartDate    sql.NullString
	EndDate      sql.NullString
}

type HouseMembershipHistory struct {
	ID                       string
	RunDate                  string
	IDParliament             int64
	House                    string
	Type                     sql.NullString
	ConstituencyID           sql.NullString
	ConstituencyIDParliament sql.NullInt64
	ConstituencyName         sql.NullString
	StartDate                sql.NullString
	EndDate                  sql.NullString
}

const deleteSnapshot = `
DELETE FROM members WHERE run_date = ?
`

const deleteNameHistories = `
DELETE FROM name_histories WHERE run_date = ?
`

const deletePartyHistories = `
DELETE FROM party_histories WHERE run_date = ?
`

const deleteHouseMembershipHistories = `
DELETE FROM house_membership_histories WHERE run_date = ?
`

// DeleteSnapshot removes every row belonging to a run date, so a re-run
// for the same day replaces its snapshot rather than duplicating it.
func (q *Queries) DeleteSnapshot(ctx context.Context, runDate string) error {
	for _, query := range []string{
		deleteSnapshot,
		deleteNameHistories,
		deletePartyHistories,
		deleteHouseMembershipHistories,
	} {
		_, err := q.db.ExecContext(ctx, query, runDate)
		if err != nil {
			return err
		}
	}
	return nil
}

const createMember = `
INSERT INTO members (
    id, run_date, id_parliament, name_display_as, name, short_name,
    gender, is_mp, is_peer, is_current, party, constituency
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateMember(ctx context.Context, arg Member) error {
	_, err := q.db.ExecContext(ctx, createMember,
		arg.ID, arg.RunDate, arg.IDParliament, arg.NameDisplayAs,
		arg.Name, arg.ShortName, arg.Gender, arg.IsMp, arg.IsPeer,
		arg.IsCurrent, arg.Party, arg.Constituency,
	)
	return err
}

const createNameHistory = `
INSERT INTO name_histories (
    id, run_date, id_parliament, name, short_name, start_date, end_date
) VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateNameHistory(ctx context.Context, arg NameHistory) error {
	_, err := q.db.ExecContext(ctx, createNameHistory,
		arg.ID, arg.RunDate, arg.IDParliament, arg.Name, arg.ShortName,
		arg.StartDate, arg.EndDate,
	)
	return err
}

const createPartyHistory = `
INSERT INTO party_histories (
    id, run_date, id_parliament, party, start_date, end_date
) VALUES (?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreatePartyHistory(ctx context.Context, arg PartyHistory) error {
	_, err := q.db.ExecContext(ctx, createPartyHistory,
		arg.ID, arg.RunDate, arg.IDParliament, arg.Party,
		arg.StartDate, arg.EndDate,
	)
	return err
}

const createHouseMembershipHistory = `
INSERT INTO house_membership_histories (
    id, run_date, id_parliament, house, type, constituency_id,
    constituency_id_parliament, constituency_name, start_date, end_date
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateHouseMembershipHistory(ctx context.Context, arg HouseMembershipHistory) error {
	_, err := q.db.ExecContext(ctx, createHouseMembershipHistory,
		arg.ID, arg.RunDate, arg.IDParliament, arg.House, arg.Type,
		arg.ConstituencyID, arg.ConstituencyIDParliament,
		arg.ConstituencyName, arg.StartDate, arg.EndDate,
	)
	return err
}

const listMembers = `
SELECT id, run_date, id_parliament, name_display_as, name, short_name,
    gender, is_mp, is_peer, is_current, party, constituency
FROM members WHERE run_date = ? ORDER BY id_parliament
`

func (q *Queries) ListMembers(ctx context.Context, runDate string) ([]Member, error) {
	rows, err := q.db.QueryContext(ctx, listMembers, runDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Member
	for rows.Next() {
		var i Member
		err := rows.Scan(
			&i.ID, &i.RunDate, &i.IDParliament, &i.NameDisplayAs,
			&i.Name, &i.ShortName, &i.Gender, &i.IsMp, &i.IsPeer,
			&i.IsCurrent, &i.Party, &i.Constituency,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listNameHistories = `
SELECT id, run_date, id_parliament, name, short_name, start_date, end_date
FROM name_histories WHERE run_date = ? ORDER BY id_parliament, start_date
`

func (q *Queries) ListNameHistories(ctx context.Context, runDate string) ([]NameHistory, error) {
	rows, err := q.db.QueryContext(ctx, listNameHistories, runDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []NameHistory
	for rows.Next() {
		var i NameHistory
		err := rows.Scan(
			&i.ID, &i.RunDate, &i.IDParliament, &i.Name, &i.ShortName,
			&i.StartDate, &i.EndDate,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listPartyHistories = `
SELECT id, run_date, id_parliament, party, start_date, end_date
FROM party_histories WHERE run_date = ? ORDER BY id_parliament, start_date
`

func (q *Queries) ListPartyHistories(ctx context.Context, runDate string) ([]PartyHistory, error) {
	rows, err := q.db.QueryContext(ctx, listPartyHistories, runDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PartyHistory
	for rows.Next() {
		var i PartyHistory
		err := rows.Scan(
			&i.ID, &i.RunDate, &i.IDParliament, &i.Party,
			&i.StartDate, &i.EndDate,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listHouseMembershipHistories = `
SELECT id, run_date, id_parliament, house, type, constituency_id,
    constituency_id_parliament, constituency_name, start_date, end_date
FROM house_membership_histories WHERE run_date = ? ORDER BY id_parliament, start_date
`

func (q *Queries) ListHouseMembershipHistories(ctx context.Context, runDate string) ([]HouseMembershipHistory, error) {
	rows, err := q.db.QueryContext(ctx, listHouseMembershipHistories, runDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []HouseMembershipHistory
	for rows.Next() {
		var i HouseMembershipHistory
		err := rows.Scan(
			&i.ID, &i.RunDate, &i.IDParliament, &i.House, &i.Type,
			&i.ConstituencyID, &i.ConstituencyIDParliament,
			&i.ConstituencyName, &i.StartDate, &i.EndDate,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listRunDates = `
SELECT DISTINCT run_date FROM members ORDER BY run_date
`

func (q *Queries) ListRunDates(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listRunDates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var runDate string
		if err := rows.Scan(&runDate); err != nil {
			return nil, err
		}
		items = append(items, runDate)
	}
	return items, rows.Err()
}

const getLatestRunDate = `
SELECT run_date FROM members ORDER BY run_date DESC LIMIT 1
`

func (q *Queries) GetLatestRunDate(ctx context.Context) (string, error) {
	row := q.db.QueryRowContext(ctx, getLatestRunDate)
	var runDate string
	err := row.Scan(&runDate)
	return runDate, err
}
