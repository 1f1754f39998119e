package adapter

import (
	"database/sql"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

// Open connects a DB adapter for driver:
//
//	mysql            go-sql-driver/mysql
//	postgres, pgx    jackc/pgx through database/sql
//	pq               lib/pq
//	sqlite           modernc.org/sqlite, dsn is a path or ":memory:"
func Open(driver, dsn string) (*DB, error) {
	switch strings.ToLower(driver) {
	case "mysql":
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "adapter: parse mysql dsn")
		}
		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "adapter: mysql connector")
		}
		return New(sql.OpenDB(connector), MySQL), nil

	case "postgres", "postgresql", "pgx":
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "adapter: parse postgres dsn")
		}
		return New(stdlib.OpenDB(*cfg), Postgres), nil

	case "pq":
		connector, err := pq.NewConnector(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "adapter: pq connector")
		}
		return New(sql.OpenDB(connector), Postgres), nil

	case "sqlite", "sqlite3":
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, errors.Wrap(err, "adapter: open sqlite")
		}
		// one connection, or every pooled conn of ":memory:" is a separate database
		db.SetMaxOpenConns(1)
		return New(db, SQLite), nil
	}

	return nil, errors.Errorf("adapter: unsupported driver %q", driver)
}
