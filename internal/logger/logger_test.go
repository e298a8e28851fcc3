package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	var buf bytes.Buffer
	Logger{Level: "warn", Format: "json"}.SetupWriter(&buf)

	log.Info().Msg("hidden")
	log.Warn().Str("kind", "Point").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Point", entry["kind"])
	assert.Equal(t, "shown", entry["message"])
}

func TestSetupText(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	var buf bytes.Buffer
	Logger{Level: "DEBUG", Format: "text", NoColor: true}.SetupWriter(&buf)

	log.Debug().Int("count", 3).Msg("converted")
	assert.Contains(t, buf.String(), "converted")
	assert.Contains(t, buf.String(), "count=3")
}

func TestLevelFallback(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, Logger{}.level())
	assert.Equal(t, zerolog.InfoLevel, Logger{Level: "loud"}.level())
	assert.Equal(t, zerolog.Disabled, Logger{Level: "disabled"}.level())
}
