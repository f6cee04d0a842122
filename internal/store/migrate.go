package store

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-catalog/db/migrations"
)

const createMigrationsTable = `
    CREATE TABLE IF NOT EXISTS schema_migrations (
        filename   TEXT PRIMARY KEY,
        checksum   TEXT NOT NULL,
        applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )
`

// ErrMigrationModified reports an applied migration whose embedded contents no
// longer match the checksum recorded when it ran.
var ErrMigrationModified = errors.New("store: applied migration was modified")

// ApplyMigrations runs every embedded migration that is not yet recorded in
// schema_migrations. Each file is applied in its own transaction together
// with its bookkeeping row. Already applied files must still match their
// recorded checksum.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) ([]string, error) {
	if logger == nil {
		logger = log.Default()
	}
	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	applied, err := appliedMigrations(ctx, pool)
	if err != nil {
		return nil, err
	}

	names, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	ran := make([]string, 0, len(names))
	for _, name := range names {
		payload, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return ran, fmt.Errorf("read migration %s: %w", name, err)
		}
		if sum, ok := applied[name]; ok {
			if sum != checksum(payload) {
				return ran, fmt.Errorf("%w: %s", ErrMigrationModified, name)
			}
			continue
		}

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(payload)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (filename, checksum) VALUES ($1, $2)`,
				name, checksum(payload))
			return err
		})
		if err != nil {
			return ran, fmt.Errorf("apply migration %s: %w", name, err)
		}
		logger.Printf("store: applied migration %s", name)
		ran = append(ran, name)
	}
	return ran, nil
}

// appliedMigrations maps each recorded filename to its checksum.
func appliedMigrations(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, `SELECT filename, checksum FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]string)
	for rows.Next() {
		var name, sum string
		if err := rows.Scan(&name, &sum); err != nil {
			return nil, fmt.Errorf("scan migration row: %w", err)
		}
		applied[name] = sum
	}
	return applied, rows.Err()
}

func checksum(payload []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(payload))
}
