package postgres_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/signuis/internal/adapters/postgres"
	"github.com/samirrijal/signuis/migrations"
)

func TestLoadMigrations_Sorted(t *testing.T) {
	fsys := fstest.MapFS{
		"002_reports.up.sql":   {Data: []byte("CREATE TABLE b ();")},
		"002_reports.down.sql": {Data: []byte("DROP TABLE b;")},
		"001_init.up.sql":      {Data: []byte("CREATE TABLE a ();")},
		"README.md":            {Data: []byte("ignored")},
	}

	got, err := postgres.LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "init", got[0].Name)
	assert.Empty(t, got[0].Down)
	assert.Equal(t, 2, got[1].Version)
	assert.Equal(t, "DROP TABLE b;", got[1].Down)
}

func TestLoadMigrations_Rejects(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"no direction": {"001_init.sql": {Data: []byte("x")}},
		"no name":      {"001.up.sql": {Data: []byte("x")}},
		"bad version":  {"abc_init.up.sql": {Data: []byte("x")}},
		"down only":    {"001_init.down.sql": {Data: []byte("x")}},
		"name clash": {
			"001_init.up.sql":    {Data: []byte("x")},
			"001_other.down.sql": {Data: []byte("y")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := postgres.LoadMigrations(fsys)
			assert.Error(t, err)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	got, err := postgres.LoadMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	first := got[0]
	assert.Equal(t, 1, first.Version)
	assert.Contains(t, first.Up, "location_ewkb bytea NOT NULL")
	assert.Contains(t, first.Up, "UNIQUE (family_id, label)")
	assert.NotEmpty(t, first.Down)
}
