package repository

import (
	"context"
	"embed"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate creates the users and tasks tables if they do not exist yet.
// Statements are executed one by one so the MySQL driver does not need multiStatements.
func Migrate(ctx context.Context, db *DB) error {
	raw, err := schemaFS.ReadFile("schema/" + string(db.dialect) + ".sql")
	if err != nil {
		return errors.Wrapf(err, "no schema for dialect %s", db.dialect)
	}

	statements := splitStatements(string(raw))
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to apply schema")
		}
	}

	log.Info().Int("statements", len(statements)).Str("driver", string(db.dialect)).Msg("schema up to date")
	return nil
}

func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
