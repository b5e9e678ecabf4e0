package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-inventario/pkg/logger"
)

func TestNew_JSONConServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Service: "inventario", Output: &buf})

	l.Info().Msg("no se escribe")
	l.Warn().Str("product_id", "p1").Msg("stock bajo")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var ev map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &ev))
	assert.Equal(t, "inventario", ev["service"])
	assert.Equal(t, "p1", ev["product_id"])
	assert.Equal(t, "warn", ev["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("desconocido"))
}
