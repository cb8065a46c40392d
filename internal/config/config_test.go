package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Size:          64,
		Seconds:       5,
		FrameRate:     60,
		Seed:          0,
		Database:      "sortplay.db",
		MaxOperations: 50_000_000,
	}, cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SORTPLAY_SIZE", "10")
	t.Setenv("SORTPLAY_SECONDS", "2.5")
	t.Setenv("SORTPLAY_FRAME_RATE", "30")
	t.Setenv("SORTPLAY_SEED", "-9")
	t.Setenv("SORTPLAY_DB", "/tmp/x.db")
	t.Setenv("SORTPLAY_MAX_OPERATIONS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Size)
	assert.Equal(t, 2.5, cfg.Seconds)
	assert.Equal(t, 30.0, cfg.FrameRate)
	assert.Equal(t, int64(-9), cfg.Seed)
	assert.Equal(t, "/tmp/x.db", cfg.Database)
	assert.Equal(t, 0, cfg.MaxOperations)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("SORTPLAY_SIZE", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoad_ValidationError(t *testing.T) {
	tests := map[string]string{
		"SORTPLAY_SIZE":           "-1",
		"SORTPLAY_FRAME_RATE":     "0",
		"SORTPLAY_MAX_OPERATIONS": "-5",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
