package cmd

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/prestafix/fixturedump/config"
)

func OpenDB(cfg *config.Config) (*sql.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	return sql.Open("mysql", dsn)
}
