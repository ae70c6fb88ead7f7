package configlibsql

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct is the database section of a config file. A `file` opens a
// local sqlite database, a `url` (with optional auth token) opens a
// remote libsql one; `file` wins when both are set so a local override
// can point a deployment at a scratch database.
type Struct struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// OpenDB opens the configured database and applies the schema. Schemas
// use CREATE ... IF NOT EXISTS so applying them on every start is safe.
func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	switch {
	case config.File != "":
		db, err = sql.Open("sqlite", config.File)
	case config.Url != "":
		query := url.Values{}
		if config.AuthToken != "" {
			query.Add("authToken", config.AuthToken)
		}
		db, err = sql.Open("libsql", config.Url+"?"+query.Encode())
	default:
		return nil, fmt.Errorf("neither a database file nor a url was configured")
	}
	if err != nil {
		return nil, err
	}

	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}
