package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GCLOUD_PROJECT", "servitec-dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "servitec-dev", cfg.Firebase.ProjectID)
	assert.Equal(t, "servitec-dev.appspot.com", cfg.Firebase.StorageBucket)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10, cfg.Uploads.ThumbAttempts)
	assert.Equal(t, time.Second, cfg.Uploads.ThumbBaseDelay)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GCLOUD_PROJECT", "servitec-peru")
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BUCKET", "custom-bucket")
	t.Setenv("UPLOAD_THUMB_ATTEMPTS", "5")
	t.Setenv("UPLOAD_THUMB_MAX_DELAY", "8s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "custom-bucket", cfg.Firebase.StorageBucket)
	assert.Equal(t, 5, cfg.Uploads.ThumbAttempts)
	assert.Equal(t, 8*time.Second, cfg.Uploads.ThumbMaxDelay)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRequiresProject(t *testing.T) {
	t.Setenv("GCLOUD_PROJECT", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GCLOUD_PROJECT")
}

func TestInvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("GCLOUD_PROJECT", "servitec-dev")
	t.Setenv("UPLOAD_THUMB_ATTEMPTS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Uploads.ThumbAttempts)
}
