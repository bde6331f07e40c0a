package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/signuis/internal/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "info", "json", "api")

	logger.Debug("hidden")
	logger.Info("report stored", "kind", "PointS")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "report stored", rec["msg"])
	assert.Equal(t, "api", rec["service"])
	assert.Equal(t, "PointS", rec["kind"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, "debug", "text", "realtime").Debug("indexed")

	assert.Contains(t, buf.String(), "msg=indexed")
	assert.Contains(t, buf.String(), "service=realtime")
}
