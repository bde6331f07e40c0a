package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CatalogSeed lists the nuisance types of one family.
type CatalogSeed struct {
	Family      string
	Description string
	Types       []string
}

// DefaultCatalog is loaded by "migrate seed".
var DefaultCatalog = []CatalogSeed{
	{Family: "Noise", Description: "Sound nuisances", Types: []string{"Traffic", "Construction", "Nightlife", "Neighbours"}},
	{Family: "Smell", Description: "Odour nuisances", Types: []string{"Sewage", "Industry", "Waste"}},
	{Family: "Light", Description: "Light pollution", Types: []string{"Street lighting", "Advertising"}},
	{Family: "Air", Description: "Air quality", Types: []string{"Smoke", "Dust"}},
}

// SeedCatalog inserts families and types that do not exist yet, in a
// single batch. It is idempotent.
func SeedCatalog(ctx context.Context, db *DB, catalog []CatalogSeed) error {
	batch := &pgx.Batch{}
	for _, c := range catalog {
		batch.Queue(`
			INSERT INTO nuisance_families (label, description)
			VALUES ($1, $2)
			ON CONFLICT (label) DO NOTHING
		`, c.Family, c.Description)
		for _, t := range c.Types {
			batch.Queue(`
				INSERT INTO nuisance_types (family_id, label)
				SELECT id, $2 FROM nuisance_families WHERE label = $1
				ON CONFLICT (family_id, label) DO NOTHING
			`, c.Family, t)
		}
	}

	br := db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}
