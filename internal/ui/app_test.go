package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/journal"
	"github.com/ramanasai/diary/internal/storage"
	"github.com/ramanasai/diary/internal/update"
)

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diary.json")
	return openModel(t, path), path
}

// openModel builds a form over the diary file at path with an empty store,
// the way Run does before the startup load.
func openModel(t *testing.T, path string) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Notifications.Enabled = false
	cfg.Reminder.Timezone = "UTC"

	store := journal.NewStore(journal.WithPlaceholders(cfg.Placeholders.Mood, cfg.Placeholders.Body))
	d := journal.NewDiary(store, storage.NewJSONFile(path))
	return New(Options{Diary: d, Config: cfg})
}

func loadFile(t *testing.T, path string) []journal.Entry {
	t.Helper()
	entries, err := storage.NewJSONFile(path).Load(context.Background())
	require.NoError(t, err)
	return entries
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, runes(string(r)))
	}
	return m
}

func TestNewStartsOnToday(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, journal.Today(m.loc), m.dateInput.Value())
	assert.Equal(t, focusDate, m.focus)
	assert.Empty(t, m.entries)
}

func TestOpenAndQuitKeepsTodaysEntry(t *testing.T) {
	m, path := newTestModel(t)
	today := journal.Today(m.loc)
	want, err := m.diary.Save(context.Background(), journal.Input{Date: today, Mood: "happy", Body: "long real entry"})
	require.NoError(t, err)

	m = openModel(t, path)
	m = send(t, m, loadMsg{startup: true})
	assert.Equal(t, "happy", m.mood.Value())
	assert.Equal(t, "long real entry", m.body.Value())

	m = send(t, m, key(tea.KeyCtrlQ))
	assert.Equal(t, []journal.Entry{want}, loadFile(t, path))
}

func TestOpenAndQuitEmptyDiaryWritesNothing(t *testing.T) {
	m, path := newTestModel(t)
	m = send(t, m, loadMsg{startup: true}, key(tea.KeyCtrlQ))
	assert.Equal(t, 0, m.diary.Store().Len())
	assert.NoFileExists(t, path)
}

func TestSwitchingEntriesKeepsUntouchedToday(t *testing.T) {
	m, path := newTestModel(t)
	today := journal.Today(m.loc)
	ctx := context.Background()
	_, err := m.diary.Save(ctx, journal.Input{Date: today, Mood: "calm", Body: "written earlier"})
	require.NoError(t, err)
	_, err = m.diary.Save(ctx, journal.Input{Date: "2025-01-01", Mood: "old", Body: "older"})
	require.NoError(t, err)

	m = openModel(t, path)
	m = send(t, m, loadMsg{startup: true})
	m = send(t, m, key(tea.KeyShiftTab))
	require.Equal(t, focusList, m.focus)
	m = send(t, m, key(tea.KeyHome), key(tea.KeyEnter))
	assert.Equal(t, "2025-01-01", m.dateInput.Value())

	m = send(t, m, key(tea.KeyCtrlT))
	assert.Equal(t, today, m.dateInput.Value())
	assert.Equal(t, "written earlier", m.body.Value())

	e, err := m.diary.Store().Get(today)
	require.NoError(t, err)
	assert.Equal(t, "calm", e.Mood)
	assert.Equal(t, "written earlier", e.Body)
}

func TestStartupLoadMissingFileSetsStatus(t *testing.T) {
	m, path := newTestModel(t)
	m = send(t, m, loadMsg{startup: true})
	assert.Equal(t, modeNormal, m.mode)
	assert.Contains(t, m.status, path)

	m = send(t, m, key(tea.KeyCtrlO))
	assert.Equal(t, modeNotice, m.mode)
	assert.Equal(t, noticeWarn, m.notice.kind)
}

func TestManualSaveWritesFile(t *testing.T) {
	m, path := newTestModel(t)
	m.dateInput.SetValue("2025-01-15")
	m.mood.SetValue("calm")
	m.body.SetValue("a quiet day")

	m = send(t, m, key(tea.KeyCtrlS))
	assert.Equal(t, modeNotice, m.mode)
	assert.Equal(t, "Saved", m.notice.title)

	e, err := m.diary.Store().Get("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, "calm", e.Mood)
	assert.FileExists(t, path)
	require.Len(t, m.entries, 1)

	m = send(t, m, key(tea.KeyEnter))
	assert.Equal(t, modeNormal, m.mode)
}

func TestManualSaveRejectsBadDate(t *testing.T) {
	m, path := newTestModel(t)
	m.dateInput.SetValue("2025-02-30")

	m = send(t, m, key(tea.KeyCtrlS))
	assert.Equal(t, modeNotice, m.mode)
	assert.Equal(t, noticeError, m.notice.kind)
	assert.Equal(t, 0, m.diary.Store().Len())
	assert.NoFileExists(t, path)
}

func TestSilentSaveSkipsInvalidDate(t *testing.T) {
	m, path := newTestModel(t)
	for _, date := range []string{"", "   ", "15/01/2025"} {
		m.dateInput.SetValue(date)
		m = m.saveCurrent(true)
		assert.Equal(t, modeNormal, m.mode)
	}
	assert.Equal(t, 0, m.diary.Store().Len())
	assert.NoFileExists(t, path)
}

func TestAutosaveDebounce(t *testing.T) {
	m, path := newTestModel(t)
	m.dateInput.SetValue("2025-03-01")

	m = send(t, m, key(tea.KeyTab))
	require.Equal(t, focusMood, m.focus)
	m = typeText(t, m, "ok")
	seq := m.autosaveSeq
	require.Greater(t, seq, 1)

	// a stale tick is ignored
	m = send(t, m, autosaveMsg{seq: seq - 1})
	assert.Equal(t, 0, m.diary.Store().Len())
	assert.NoFileExists(t, path)

	m = send(t, m, autosaveMsg{seq: seq})
	e, err := m.diary.Store().Get("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "ok", e.Mood)
	assert.Equal(t, m.cfg.Placeholders.Body, e.Body)
	assert.Equal(t, modeNormal, m.mode)
	assert.FileExists(t, path)
	assert.False(t, m.diary.LastSaved().IsZero())
}

func TestAutosaveDisabled(t *testing.T) {
	m, _ := newTestModel(t)
	m.cfg.Autosave.Enabled = false
	m = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "x")
	assert.Equal(t, 0, m.autosaveSeq)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, path := newTestModel(t)
	_, err := m.diary.Save(context.Background(), journal.Input{Date: "2025-01-15", Mood: "m", Body: "b"})
	require.NoError(t, err)
	m.refreshList()
	m.dateInput.SetValue("2025-01-15")

	m = send(t, m, key(tea.KeyCtrlX))
	require.Equal(t, modeConfirmDelete, m.mode)
	m = send(t, m, runes("n"))
	assert.Equal(t, modeNormal, m.mode)
	assert.True(t, m.diary.Store().Has("2025-01-15"))

	m = send(t, m, key(tea.KeyCtrlX), runes("y"))
	assert.Equal(t, modeNotice, m.mode)
	assert.False(t, m.diary.Store().Has("2025-01-15"))
	assert.Empty(t, m.entries)
	assert.Empty(t, m.dateInput.Value())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(b))
}

func TestDeleteUnknownDate(t *testing.T) {
	m, _ := newTestModel(t)
	m.dateInput.SetValue("2025-01-15")
	m = send(t, m, key(tea.KeyCtrlX))
	assert.Equal(t, modeNotice, m.mode)
	assert.Equal(t, noticeWarn, m.notice.kind)
}

func TestNewDatePrompt(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, key(tea.KeyCtrlN))
	require.Equal(t, modePrompt, m.mode)
	m = typeText(t, m, "2024-02-29")
	m = send(t, m, key(tea.KeyEnter))
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "2024-02-29", m.dateInput.Value())
	assert.Equal(t, focusMood, m.focus)

	m = send(t, m, key(tea.KeyCtrlN))
	m = typeText(t, m, "yesterday")
	m = send(t, m, key(tea.KeyEnter))
	assert.Equal(t, modeNotice, m.mode)
	assert.Equal(t, noticeError, m.notice.kind)
}

func TestPickDatePromptLoadsEntry(t *testing.T) {
	m, _ := newTestModel(t)
	yesterday := time.Now().In(m.loc).AddDate(0, 0, -1).Format(journal.DateLayout)
	_, err := m.diary.Save(context.Background(), journal.Input{Date: yesterday, Mood: "tired", Body: "long day"})
	require.NoError(t, err)
	m.refreshList()

	m = send(t, m, key(tea.KeyCtrlP))
	m = typeText(t, m, "yesterday")
	m = send(t, m, key(tea.KeyEnter))
	assert.Equal(t, yesterday, m.dateInput.Value())
	assert.Equal(t, "tired", m.mood.Value())
	assert.Equal(t, "long day", m.body.Value())
}

func TestPromptEscCancels(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, key(tea.KeyCtrlN), key(tea.KeyEsc))
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, journal.Today(m.loc), m.dateInput.Value())
}

func TestListSelectLoadsForm(t *testing.T) {
	m, _ := newTestModel(t)
	ctx := context.Background()
	for _, in := range []journal.Input{
		{Date: "2025-01-01", Mood: "a", Body: "first"},
		{Date: "2025-01-02", Mood: "b", Body: "second"},
	} {
		_, err := m.diary.Save(ctx, in)
		require.NoError(t, err)
	}
	m.refreshList()
	m.dateInput.SetValue("")

	// date -> mood -> body -> list
	m = send(t, m, key(tea.KeyShiftTab))
	require.Equal(t, focusList, m.focus)
	m = send(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	assert.Equal(t, "2025-01-02", m.dateInput.Value())
	assert.Equal(t, "second", m.body.Value())
	assert.Equal(t, focusBody, m.focus)
}

func TestRefreshKeepsCursor(t *testing.T) {
	m, _ := newTestModel(t)
	ctx := context.Background()
	for _, d := range []string{"2025-01-01", "2025-01-03"} {
		_, err := m.diary.Save(ctx, journal.Input{Date: d})
		require.NoError(t, err)
	}
	m.refreshList()
	m.cursor = 1

	_, err := m.diary.Save(ctx, journal.Input{Date: "2025-01-02"})
	require.NoError(t, err)
	m = send(t, m, key(tea.KeyCtrlR))
	assert.Equal(t, "2025-01-03", m.entries[m.cursor].Date)
}

func TestWriteAndReload(t *testing.T) {
	m, path := newTestModel(t)
	m.dateInput.SetValue("2025-04-01")
	m.body.SetValue("kept on disk")
	m = m.saveCurrent(true)

	m = send(t, m, key(tea.KeyCtrlW))
	assert.Equal(t, "Saved", m.notice.title)
	assert.Contains(t, m.notice.body, path)

	require.NoError(t, m.diary.Store().Remove("2025-04-01"))
	m = send(t, m, key(tea.KeyEsc), key(tea.KeyCtrlO))
	assert.Equal(t, "Loaded", m.notice.title)
	assert.True(t, m.diary.Store().Has("2025-04-01"))
	require.Len(t, m.entries, 1)
}

func TestNewTodaySavesCurrentForm(t *testing.T) {
	m, _ := newTestModel(t)
	m.dateInput.SetValue("2025-05-05")
	m.body.SetValue("draft")

	m = send(t, m, key(tea.KeyCtrlT))
	assert.True(t, m.diary.Store().Has("2025-05-05"))
	assert.Equal(t, journal.Today(m.loc), m.dateInput.Value())
	assert.Empty(t, m.body.Value())
}

func TestQuitSavesSilently(t *testing.T) {
	m, _ := newTestModel(t)
	m.dateInput.SetValue("2025-06-01")
	m.body.SetValue("before bed")

	next, cmd := m.Update(key(tea.KeyCtrlQ))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(Model).diary.Store().Has("2025-06-01"))
}

func TestUpdateCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("v9.9.9\n"))
	}))
	defer srv.Close()

	m, _ := newTestModel(t)
	m.checker = update.NewChecker(srv.URL, "v1.1.1", time.Second)

	m = send(t, m, m.checkUpdateCmd()())
	assert.Equal(t, modeNotice, m.mode)
	assert.Equal(t, "New version available", m.notice.title)
	assert.Contains(t, m.notice.body, "v9.9.9")
}

func TestUpdateCheckFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m, _ := newTestModel(t)
	m.checker = update.NewChecker(srv.URL, "v1.1.1", time.Second)

	m = send(t, m, m.checkUpdateCmd()())
	assert.Equal(t, noticeError, m.notice.kind)
}

func TestViewRenders(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	out := m.View()
	assert.Contains(t, out, "Diary")
	assert.Contains(t, out, "last autosave: --:--")

	m = m.showNotice(noticeInfo, "Saved", "hello")
	assert.Contains(t, m.View(), "hello")
}
