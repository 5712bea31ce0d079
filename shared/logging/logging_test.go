package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("levelc", "1.0.0", "json", &buf)

	logger.Info("compiled level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "Failed to parse JSON: %s", buf.String())

	assert.Equal(t, "compiled level", entry["msg"])
	assert.Equal(t, "levelc", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Contains(t, entry, "level")
}

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("jlvl", "dev", "", &buf)

	logger.Debug("tick")

	output := buf.String()
	assert.Contains(t, output, "tick")
	assert.Contains(t, output, "service=jlvl")
}
