package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStore(t *testing.T) *journal.Store {
	t.Helper()
	s := journal.NewStore()
	for _, in := range []journal.Input{
		{Date: "2025-02-01", Mood: "開心", Body: "今天去了公園\n第二行"},
		{Date: "2025-01-15", Mood: "", Body: "<b>tags & quotes \"kept\"</b>"},
		{Date: "2024-12-31", Mood: "tired", Body: ""},
	} {
		_, err := s.Upsert(in)
		require.NoError(t, err)
	}
	return s
}

func backends(t *testing.T) map[string]journal.Backend {
	dir := t.TempDir()
	return map[string]journal.Backend{
		"json":   NewJSONFile(filepath.Join(dir, "nested", "diary.json")),
		"sqlite": NewSQLite(filepath.Join(dir, "nested", "diary.db")),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, be := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			src := journal.NewDiary(sampleStore(t), be)
			require.NoError(t, src.Flush(ctx))

			dst := journal.NewDiary(journal.NewStore(), be)
			n, err := dst.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
			assert.Equal(t, src.Store().List(), dst.Store().List())
		})
	}
}

func TestSaveReplacesPreviousContents(t *testing.T) {
	for name, be := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			d := journal.NewDiary(sampleStore(t), be)
			require.NoError(t, d.Flush(ctx))
			require.NoError(t, d.Delete(ctx, "2025-02-01"))
			require.NoError(t, d.Delete(ctx, "2025-01-15"))

			got, err := be.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "2024-12-31", got[0].Date)
		})
	}
}

func TestLoadMissingReportsNotFound(t *testing.T) {
	for name, be := range backends(t) {
		t.Run(name, func(t *testing.T) {
			d := journal.NewDiary(journal.NewStore(), be)
			n, err := d.Load(context.Background())
			require.ErrorIs(t, err, journal.ErrNotFound)
			assert.Zero(t, n)
			assert.Equal(t, 0, d.Store().Len())
		})
	}
}

func TestJSONDocumentShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	be := NewJSONFile(path)
	s := journal.NewStore()
	_, err := s.Upsert(journal.Input{Date: "2025-11-09", Mood: "開心", Body: "a < b"})
	require.NoError(t, err)
	require.NoError(t, be.Save(context.Background(), s.List()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "[\n  {\n    \"date\": \"2025-11-09\",\n    \"mood\": \"開心\",\n    \"body\": \"a < b\"\n  }\n]\n"
	assert.Equal(t, want, string(b))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestJSONEmptyStoreWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	require.NoError(t, NewJSONFile(path).Save(context.Background(), nil))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(b)))
}

func TestJSONLoadLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary_gui.json")
	legacy := `[
  {"日期": "2025-11-09", "心情": "（未填心情）", "內容": "(空白)"},
  {"日期": "2025-11-10", "心情": "好", "內容": "寫日記"}
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	d := journal.NewDiary(journal.NewStore(), NewJSONFile(path))
	n, err := d.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	e, err := d.Store().Get("2025-11-10")
	require.NoError(t, err)
	assert.Equal(t, "寫日記", e.Body)
}

func TestJSONLoadCorruptKeepsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := sampleStore(t)
	d := journal.NewDiary(s, NewJSONFile(path))
	_, err := d.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, journal.ErrNotFound)
	assert.Equal(t, 3, s.Len())
}

func TestJSONLoadInvalidDateKeepsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"date":"2025-13-40","mood":"x","body":"y"}]`), 0o644))

	s := sampleStore(t)
	d := journal.NewDiary(s, NewJSONFile(path))
	_, err := d.Load(context.Background())
	require.ErrorIs(t, err, journal.ErrValidation)
	assert.Equal(t, 3, s.Len())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	be, err := Open(config.StorageConfig{Backend: "json", Path: filepath.Join(dir, "d.json")})
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, be)
	assert.Equal(t, filepath.Join(dir, "d.json"), be.Location())

	be, err = Open(config.StorageConfig{Backend: "sqlite", Path: filepath.Join(dir, "d.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, be)

	_, err = Open(config.StorageConfig{Backend: "csv"})
	assert.Error(t, err)
}
