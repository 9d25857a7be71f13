package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Run("missing env file falls back to defaults", func(t *testing.T) {
		require.NoError(t, LoadEnvConfig(filepath.Join(t.TempDir(), "nope.env")))

		assert.Equal(t, "8080", DefaultEnvConfig.APP_PORT)
		assert.Equal(t, "sqlite", DefaultEnvConfig.DB_DRIVER)
		assert.Equal(t, int64(5*1024*1024), DefaultEnvConfig.PHOTO_MAX_BYTES)
		assert.Equal(t, 30*24*time.Hour, DefaultEnvConfig.RECENT_WINDOW)
	})

	t.Run("env file values are applied", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		content := "DB_DRIVER=Postgres\nDB_PORT=6543\nRECENT_WINDOW=48h\nDB_CONN_MAX_LIFETIME=90\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		for _, k := range []string{"DB_DRIVER", "DB_PORT", "RECENT_WINDOW", "DB_CONN_MAX_LIFETIME"} {
			t.Cleanup(func() { os.Unsetenv(k) })
		}

		require.NoError(t, LoadEnvConfig(path))

		assert.Equal(t, "postgres", DefaultEnvConfig.DB_DRIVER)
		assert.Equal(t, 6543, DefaultEnvConfig.DB_PORT)
		assert.Equal(t, 48*time.Hour, DefaultEnvConfig.RECENT_WINDOW)
		assert.Equal(t, 90*time.Second, DefaultEnvConfig.DB_CONN_MAX_LIFETIME)
	})
}
