package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"DRIVE_FOLDER_ID":   " folder-1 ",
		"PROCESSOR_URL":     "https://processor.example.com/ingest",
		"CHECKPOINT_BUCKET": "checkpoints",
	})
	require.NoError(t, err)

	assert.Equal(t, "folder-1", cfg.FolderID)
	assert.Equal(t, ModeScheduled, cfg.Mode)
	assert.Equal(t, 5*time.Minute, cfg.PollInterval)
	assert.Equal(t, BackendGCS, cfg.Checkpoint.Backend)
	assert.Equal(t, "last_checked.txt", cfg.Checkpoint.Object)
	assert.Equal(t, filepath.Join(DEFAULT_WORKDIR, "last_checked.txt"), cfg.Checkpoint.File)
	assert.Equal(t, "localhost:6379", cfg.Checkpoint.Redis.Addr)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		environment map[string]string
		expected    error
	}{
		{
			name:        "missing folder",
			environment: map[string]string{"PROCESSOR_URL": "https://example.com", "CHECKPOINT_BUCKET": "b"},
			expected:    ErrMissing,
		},
		{
			name:        "missing processor URL",
			environment: map[string]string{"DRIVE_FOLDER_ID": "F", "CHECKPOINT_BUCKET": "b"},
			expected:    ErrMissing,
		},
		{
			name:        "missing bucket",
			environment: map[string]string{"DRIVE_FOLDER_ID": "F", "PROCESSOR_URL": "https://example.com"},
			expected:    ErrMissing,
		},
		{
			name:        "unknown mode",
			environment: map[string]string{"DRIVE_FOLDER_ID": "F", "PROCESSOR_URL": "https://example.com", "CHECKPOINT_BUCKET": "b", "MODE": "cron"},
			expected:    ErrInvalid,
		},
		{
			name:        "unknown backend",
			environment: map[string]string{"DRIVE_FOLDER_ID": "F", "PROCESSOR_URL": "https://example.com", "CHECKPOINT_BACKEND": "s3"},
			expected:    ErrInvalid,
		},
		{
			name:        "local mode with override only",
			environment: map[string]string{"DRIVE_FOLDER_ID": "F", "LOCAL_PROCESSOR_URL": "http://localhost:9000", "MODE": "local", "CHECKPOINT_BACKEND": "file"},
			expected:    nil,
		},
		{
			name:        "local mode with zero interval",
			environment: map[string]string{"DRIVE_FOLDER_ID": "F", "LOCAL_PROCESSOR_URL": "http://localhost:9000", "MODE": "local", "CHECKPOINT_BACKEND": "file", "POLL_INTERVAL": "0s"},
			expected:    ErrInvalid,
		},
		{
			name:        "redis backend",
			environment: map[string]string{"DRIVE_FOLDER_ID": "F", "PROCESSOR_URL": "https://example.com", "CHECKPOINT_BACKEND": "redis"},
			expected:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.environment)
			require.NoError(t, err)

			err = cfg.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestExecutionModeScheduled(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"DRIVE_FOLDER_ID":     "F",
		"PROCESSOR_URL":       "https://processor.example.com/ingest",
		"LOCAL_PROCESSOR_URL": "http://localhost:9000",
		"CHECKPOINT_BUCKET":   "b",
	})
	require.NoError(t, err)

	mode, err := cfg.ExecutionMode()
	require.NoError(t, err)

	assert.Equal(t, "scheduled", mode.String())
	assert.Equal(t, "https://processor.example.com/ingest", mode.Endpoint())

	audience, ok := mode.IdentityToken()
	assert.True(t, ok)
	assert.Equal(t, "https://processor.example.com/ingest", audience)
}

func TestExecutionModeScheduledWithAudience(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"DRIVE_FOLDER_ID":   "F",
		"PROCESSOR_URL":     "https://processor.example.com/ingest",
		"RELAY_AUDIENCE":    "https://processor.example.com",
		"CHECKPOINT_BUCKET": "b",
	})
	require.NoError(t, err)

	mode, err := cfg.ExecutionMode()
	require.NoError(t, err)

	audience, ok := mode.IdentityToken()
	assert.True(t, ok)
	assert.Equal(t, "https://processor.example.com", audience)
}

func TestExecutionModeLocal(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"DRIVE_FOLDER_ID":     "F",
		"PROCESSOR_URL":       "https://processor.example.com/ingest",
		"LOCAL_PROCESSOR_URL": "http://localhost:9000",
		"MODE":                "LOCAL",
		"POLL_INTERVAL":       "30s",
	})
	require.NoError(t, err)

	mode, err := cfg.ExecutionMode()
	require.NoError(t, err)

	assert.Equal(t, "local", mode.String())
	assert.Equal(t, "http://localhost:9000", mode.Endpoint())
	assert.Equal(t, 30*time.Second, mode.(Local).Interval)

	_, ok := mode.IdentityToken()
	assert.False(t, ok)
}
