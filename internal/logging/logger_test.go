package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithService(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithService("socialfeed", "debug")
	l.SetOutput(&buf)

	l.WithField("k", "v").Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "socialfeed", entry["service"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	l := NewLogger("loud")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
