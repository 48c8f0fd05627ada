package repository

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// Dialect identifies the SQL flavour behind a connection pool.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var ErrUnknownDialect = errors.New("unknown database dialect")

const (
	mysqlDuplicateEntry     = 1062
	postgresUniqueViolation = "23505"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(name)); d {
	case MySQL, Postgres, SQLite:
		return d, nil
	default:
		return "", ErrUnknownDialect
	}
}

func (d Dialect) driverName() string {
	if d == Postgres {
		return "pgx"
	}
	return string(d)
}

// Rebind rewrites "?" placeholders into the positional "$n" form PostgreSQL expects.
// Queries in this package never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}

	return b.String()
}

// isDuplicateEntryError checks whether err is a unique constraint violation for the dialect.
func (d Dialect) isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}

	switch d {
	case MySQL:
		var myErr *mysql.MySQLError
		return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
	case Postgres:
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolation
	case SQLite:
		return strings.Contains(err.Error(), "UNIQUE constraint failed")
	default:
		return false
	}
}
