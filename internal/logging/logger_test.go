package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/cssmachine/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOptions_FansOut(t *testing.T) {
	var text, js bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Level: slog.LevelDebug, Output: &text, JSON: &js})

	logger.Debug("compiled", "rules", 21, "error", errors.New("boom"))

	assert.Contains(t, text.String(), "msg=compiled")
	assert.Contains(t, text.String(), "err=boom")

	var record map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &record))
	assert.Equal(t, "compiled", record["msg"])
	assert.Equal(t, "boom", record["err"])
	assert.EqualValues(t, 21, record["rules"])
}

func TestNewWithOptions_Level(t *testing.T) {
	var text bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Level: slog.LevelWarn, Output: &text})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, text.String(), "hidden")
	assert.Contains(t, text.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}
