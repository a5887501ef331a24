package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_StructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info().Str("gateway", "mercadopago").Msg("webhook received")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "each log line must be valid JSON")

	assert.Equal(t, "webhook received", line["message"])
	assert.Equal(t, "mercadopago", line["gateway"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "time")
}

func TestNewWithWriter_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Debug().Msg("reconcile input")
	assert.NotEmpty(t, buf.String())
}

func TestNewWithWriter_InfoFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Debug().Msg("should not appear")
	assert.Empty(t, buf.String())
}

func TestNewWithWriter_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)

	log.Info().Msg("should not appear")
	assert.Empty(t, buf.String())

	log.Error().Msg("gateway unreachable")
	assert.NotEmpty(t, buf.String())
}

func TestNewWithWriter_UnknownLevelMeansInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("verbose", &buf)

	log.Debug().Msg("should not appear")
	assert.Empty(t, buf.String())

	log.Info().Msg("should appear")
	assert.NotEmpty(t, buf.String())
}

func TestNewWithWriter_LevelIsCaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("ERROR", &buf)

	log.Warn().Msg("should not appear")
	assert.Empty(t, buf.String())
}

func TestNew_PrettyMode(t *testing.T) {
	// Console writer goes to stdout; this only asserts it constructs and logs
	// without panicking.
	log := New("info", true)
	log.Info().Msg("console writer smoke test")
}
