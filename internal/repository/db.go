package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Navneet-kaur7/todo-app/internal/config"
)

// DB is the shared connection pool together with the SQL dialect it speaks.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Dialect returns the SQL dialect of the pool.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// NewDB creates a database connection pool for the configured driver and verifies it with a ping.
func NewDB(ctx context.Context, cfg config.Database) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn, err := normalizeDSN(dialect, cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "invalid database DSN")
	}

	sqlDB, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	configurePool(sqlDB, dialect, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, errors.Wrapf(err, "cannot connect to %s", dialect)
	}

	log.Info().Str("driver", string(dialect)).Msg("database connected")

	return &DB{DB: sqlDB, dialect: dialect}, nil
}

func configurePool(db *sql.DB, dialect Dialect, cfg config.Database) {
	if dialect == SQLite {
		// An in-memory database lives and dies with its only connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// normalizeDSN forces the MySQL options the repositories rely on: DATETIME scanned
// into time.Time in UTC, and RowsAffected counting matched rather than changed rows.
func normalizeDSN(dialect Dialect, dsn string) (string, error) {
	if dialect != MySQL {
		return dsn, nil
	}

	mcfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	mcfg.ParseTime = true
	mcfg.ClientFoundRows = true
	mcfg.Loc = time.UTC

	return mcfg.FormatDSN(), nil
}
