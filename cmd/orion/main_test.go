package main

import (
	"testing"

	"github.com/felixgeelhaar/orion/pkg/config"
	"github.com/felixgeelhaar/orion/pkg/observability"
	"github.com/stretchr/testify/assert"
)

func TestLogConfig(t *testing.T) {
	tests := []struct {
		name       string
		appEnv     string
		format     string
		level      string
		wantFormat observability.LogFormat
		wantLevel  observability.LogLevel
		wantSource bool
	}{
		{"development adds source", "development", "text", "warn", observability.LogFormatText, observability.LogLevelWarn, true},
		{"production forces json", "production", "text", "info", observability.LogFormatJSON, observability.LogLevelInfo, false},
		{"json format honored", "staging", "json", "debug", observability.LogFormatJSON, observability.LogLevelDebug, false},
		{"staging text", "staging", "text", "error", observability.LogFormatText, observability.LogLevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.AppEnv = tt.appEnv
			cfg.LogFormat = tt.format
			cfg.LogLevel = tt.level

			got := logConfig(cfg)

			assert.Equal(t, tt.wantFormat, got.Format)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantSource, got.AddSource)
		})
	}
}

func TestRecoveredNotice(t *testing.T) {
	notice := recoveredNotice("data/orion.json.corrupt")

	assert.Contains(t, notice, "data/orion.json.corrupt")
	assert.Contains(t, notice, "empty list")
}
