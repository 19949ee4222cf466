package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Storage, cfg.Storage)
	assert.Equal(t, time.Second, cfg.Autosave.Delay)
	assert.True(t, cfg.Autosave.Enabled)
	assert.Equal(t, DefaultUpdateURL, cfg.Update.URL)
	assert.Equal(t, 5*time.Second, cfg.Update.Timeout)
	assert.Equal(t, "(no mood)", cfg.Placeholders.Mood)
	assert.False(t, cfg.Reminder.Enabled)
	assert.Equal(t, def.Reminder.Workdays, cfg.Reminder.Workdays)
	assert.Empty(t, cfg.Reminder.Holidays)
}

func TestLoadFileShorterListsReplaceDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
reminder:
  workdays: [sunday]
  holidays: ["2025-12-25"]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sun"}, cfg.Reminder.Workdays)
	assert.Equal(t, []string{"2025-12-25"}, cfg.Reminder.Holidays)
	assert.Len(t, Default().Reminder.Workdays, 7)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
storage:
  backend: SQLite
  path: /tmp/diary.db
autosave:
  delay: 2500ms
placeholders:
  mood: "（未填心情）"
  body: "(空白)"
update:
  url: http://localhost/version.txt
  timeout: 2s
reminder:
  enabled: true
  time: "20:30"
  workdays: [monday, TUE, wed]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/diary.db", cfg.Storage.Path)
	assert.Equal(t, 2500*time.Millisecond, cfg.Autosave.Delay)
	assert.Equal(t, "（未填心情）", cfg.Placeholders.Mood)
	assert.Equal(t, "(空白)", cfg.Placeholders.Body)
	assert.Equal(t, "http://localhost/version.txt", cfg.Update.URL)
	assert.Equal(t, 2*time.Second, cfg.Update.Timeout)
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, "20:30", cfg.Reminder.Time)
	assert.Equal(t, []string{"Mon", "Tue", "Wed"}, cfg.Reminder.Workdays)
}

func TestLoadFileEnvOverride(t *testing.T) {
	t.Setenv("DIARY_STORAGE_BACKEND", "sqlite")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
}

func TestLocation(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Reminder.Timezone = "Asia/Taipei"
	assert.Equal(t, "Asia/Taipei", cfg.Location().String())

	cfg.Reminder.Timezone = "Nowhere/Special"
	assert.Equal(t, time.Local, cfg.Location())
}
