package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/signuis/internal/pkg/config"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("signuis-test")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "signuis-test", cfg.Telemetry.ServiceName)
	assert.Equal(t, uint32(4326), cfg.Geometry.DefaultSRID)
	assert.Equal(t, "signuis:", cfg.Valkey.KeyPrefix)

	order, err := cfg.Geometry.Order()
	require.NoError(t, err)
	assert.Equal(t, ewkb.LittleEndian, order)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SIGNUIS_DATABASE_HOST", "db.internal")
	t.Setenv("SIGNUIS_SERVER_PORT", "9090")
	t.Setenv("SIGNUIS_GEOMETRY_BYTE_ORDER", "big")
	t.Setenv("SIGNUIS_GEOMETRY_DEFAULT_SRID", "25830")

	cfg, err := config.Load("api")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, uint32(25830), cfg.Geometry.DefaultSRID)

	order, err := cfg.Geometry.Order()
	require.NoError(t, err)
	assert.Equal(t, ewkb.BigEndian, order)
}

func TestLoadRejectsBadByteOrder(t *testing.T) {
	t.Setenv("SIGNUIS_GEOMETRY_BYTE_ORDER", "middle")

	_, err := config.Load("api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geometry.byte_order")
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{Port: 0, ReadTimeout: 10, WriteTimeout: 10, BodyLimit: 1},
		Log:    config.LogConfig{Format: "xml"},
	}
	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"server.port",
		"database.host",
		"nats.url",
		"valkey.addr",
		"log.format",
		"geometry.default_srid",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestDSN(t *testing.T) {
	d := config.DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", d.DSN())
}
