package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerWritesComponent(t *testing.T) {
	//** Arrange
	var buffer bytes.Buffer
	log := NewWithWriter(&buffer, "planner", "info")

	//** Act
	log.Infof("generated %d schedules", 3)

	//** Assert
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "planner", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "generated 3 schedules", entry["message"])
}

func TestZerologLoggerLevel(t *testing.T) {
	var buffer bytes.Buffer
	log := NewWithWriter(&buffer, "filter", "warn")

	log.Debugf("dropped")
	log.Infof("kept")
	assert.Empty(t, buffer.String())

	log.Warnf("lenient parse")
	log.Errorf("failure")
	assert.Equal(t, 2, strings.Count(buffer.String(), "\n"))
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buffer bytes.Buffer
	log := NewWithWriter(&buffer, "test", "loud")

	log.Debugf("hidden")
	log.Infof("shown")
	assert.Contains(t, buffer.String(), "shown")
	assert.NotContains(t, buffer.String(), "hidden")
}

func TestNopLogger(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewNop()
	l.Debugf("debug %d", 1)
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
	assert.NotNil(t, New("dev"))
}
