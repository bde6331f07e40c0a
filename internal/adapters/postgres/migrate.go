package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Migration is one numbered schema change with its rollback.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// LoadMigrations reads NNN_name.up.sql / NNN_name.down.sql pairs from fsys,
// sorted by version. Every version needs an up script; down is optional.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		base := strings.TrimSuffix(name, ".sql")
		var direction string
		switch {
		case strings.HasSuffix(base, ".up"):
			direction, base = "up", strings.TrimSuffix(base, ".up")
		case strings.HasSuffix(base, ".down"):
			direction, base = "down", strings.TrimSuffix(base, ".down")
		default:
			return nil, fmt.Errorf("migration %s: expected .up.sql or .down.sql", name)
		}
		num, label, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: expected NNN_name", name)
		}
		version, err := strconv.Atoi(num)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: bad version %q", name, num)
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: label}
			byVersion[version] = m
		} else if m.Name != label {
			return nil, fmt.Errorf("migration %d: conflicting names %q and %q", version, m.Name, label)
		}
		if direction == "up" {
			m.Up = string(data)
		} else {
			m.Down = string(data)
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" {
			return nil, fmt.Errorf("migration %03d_%s has no up script", m.Version, m.Name)
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    integer PRIMARY KEY,
		name       text NOT NULL,
		applied_at timestamptz NOT NULL DEFAULT now()
	)`

// AppliedVersions returns the versions recorded in schema_migrations.
func AppliedVersions(ctx context.Context, db *DB) (map[int]bool, error) {
	if _, err := db.Pool.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	rows, err := db.Pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int32])
	if err != nil {
		return nil, err
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[int(v)] = true
	}
	return applied, nil
}

// MigrateUp applies every pending migration, each in its own transaction.
// It returns the number applied.
func MigrateUp(ctx context.Context, db *DB, migrations []Migration) (int, error) {
	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.Up); err != nil {
				return err
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name)
			return err
		})
		if err != nil {
			return n, fmt.Errorf("apply %03d_%s: %w", m.Version, m.Name, err)
		}
		slog.InfoContext(ctx, "migration applied", "version", m.Version, "name", m.Name)
		n++
	}
	return n, nil
}

// MigrateDown rolls back the latest steps applied migrations.
func MigrateDown(ctx context.Context, db *DB, migrations []Migration, steps int) (int, error) {
	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := len(migrations) - 1; i >= 0 && n < steps; i-- {
		m := migrations[i]
		if !applied[m.Version] {
			continue
		}
		if m.Down == "" {
			return n, fmt.Errorf("migration %03d_%s has no down script", m.Version, m.Name)
		}
		err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.Down); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, m.Version)
			return err
		})
		if err != nil {
			return n, fmt.Errorf("roll back %03d_%s: %w", m.Version, m.Name, err)
		}
		slog.InfoContext(ctx, "migration rolled back", "version", m.Version, "name", m.Name)
		n++
	}
	return n, nil
}
