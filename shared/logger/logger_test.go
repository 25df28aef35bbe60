package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"folio/config"
	"folio/shared/constant"
	"folio/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestProductionLogsJSON(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.App.Name = "folio"

	var buf bytes.Buffer
	logger.InitLoggerTo(&buf, cfg)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Info().Str("event_id", "e1").Msg("event created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "folio", line["app"])
	assert.Equal(t, "e1", line["event_id"])
	assert.Equal(t, "event created", line["message"])
}

func TestDevelopmentLogsConsole(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment

	var buf bytes.Buffer
	logger.InitLoggerTo(&buf, cfg)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Info().Msg("listening")

	assert.Contains(t, buf.String(), "listening")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestSetLogLevel(t *testing.T) {
	restore(t)

	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{level: "", expected: zerolog.InfoLevel},
		{level: "debug", expected: zerolog.DebugLevel},
		{level: "warn", expected: zerolog.WarnLevel},
		{level: "disabled", expected: zerolog.Disabled},
		{level: "loud", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("upload failed"))

	assert.Contains(t, buf.String(), "upload failed")
	assert.Contains(t, buf.String(), "logger_test")
}
