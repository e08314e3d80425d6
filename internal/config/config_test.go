package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.Equal(t, 8, cfg.Reminders.StartHour)
	assert.Equal(t, 21, cfg.Reminders.EndHour)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("STUDYTRACK_DB_DRIVER", "postgres")
	t.Setenv("STUDYTRACK_DB_DSN", "postgres://localhost/studytrack?sslmode=disable")
	t.Setenv("STUDYTRACK_REMINDERS_START_HOUR", "6")
	t.Setenv("STUDYTRACK_TIMEZONE", "Europe/London")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 6, cfg.Reminders.StartHour)
	assert.Equal(t, "Europe/London", cfg.Location.String())
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studytrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\nlog:\n  format: json\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestInvalid(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("STUDYTRACK_DB_DRIVER", "mysql")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("window", func(t *testing.T) {
		t.Setenv("STUDYTRACK_REMINDERS_START_HOUR", "22")
		t.Setenv("STUDYTRACK_REMINDERS_END_HOUR", "7")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("timezone", func(t *testing.T) {
		t.Setenv("STUDYTRACK_TIMEZONE", "Mars/Olympus")
		_, err := Load("")
		assert.Error(t, err)
	})
}
