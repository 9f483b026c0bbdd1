package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"dispatch/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogConfig(level string) *config.Config {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "dispatch"
	cfg.Env.Env = "test"
	cfg.Env.Log.Level = level

	return cfg
}

func TestBuild_RecordsCarryServiceAttrs(t *testing.T) {
	var buf bytes.Buffer

	logger, err := build(testLogConfig("info"), &buf)
	require.NoError(t, err)

	logger.Info("registration saved", slog.String("token", "T1"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "dispatch", record["service"])
	assert.Equal(t, "test", record["env"])
	assert.Equal(t, "registration saved", record["msg"])
	assert.Equal(t, "T1", record["token"])
}

func TestBuild_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer

	logger, err := build(testLogConfig("warn"), &buf)
	require.NoError(t, err)

	logger.Info("suppressed")
	assert.Zero(t, buf.Len())

	logger.Warn("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tc := range cases {
		got, err := parseLogLevel(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}
