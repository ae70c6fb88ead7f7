package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"parliament-backend/lib/configutil"
	configlibsql "parliament-backend/lib/configutil/libsql"
	"parliament-backend/lib/scrapers/membersapi"
	"parliament-backend/lib/serviceutil"
)

type ApiConfig struct {
	BaseUrl string            `json:"base_url"`
	Headers map[string]string `json:"headers"`
}

type Config struct {
	Api      ApiConfig           `json:"api"`
	Database configlibsql.Struct `json:"database"`
	DataDir  string              `json:"data_dir"`
}

var rootCmd = &cobra.Command{
	Use:   "parliament-cli",
	Short: "parliament-cli extracts and normalizes UK Parliament member data.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.Api.BaseUrl == "" {
		cfg.Api.BaseUrl = "https://members-api.parliament.uk"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return cfg
}

func openDB(cfg Config, schema string) *sql.DB {
	db, err := cfg.Database.OpenDB(schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	return db
}

func newApiClient(cfg Config) *membersapi.Client {
	return membersapi.NewClient(cfg.Api.BaseUrl, cfg.Api.Headers)
}
