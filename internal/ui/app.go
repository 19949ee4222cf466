package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/journal"
	"github.com/ramanasai/diary/internal/notify"
	"github.com/ramanasai/diary/internal/update"
	"github.com/ramanasai/diary/internal/utils"
	"github.com/ramanasai/diary/internal/version"
)

type focusPane int
type mode int
type promptKind int
type noticeKind int

const (
	focusList focusPane = iota
	focusDate
	focusMood
	focusBody
	focusCount
)

const (
	modeNormal mode = iota
	modeNotice
	modeConfirmDelete
	modePrompt
)

const (
	promptNewDate promptKind = iota
	promptPickDate
)

const (
	noticeInfo noticeKind = iota
	noticeWarn
	noticeError
)

type notice struct {
	kind  noticeKind
	title string
	body  string
}

// Options wires the form to its collaborators.
type Options struct {
	Diary   *journal.Diary
	Config  config.Config
	Checker *update.Checker
	Logger  zerolog.Logger
}

// Model is the Bubble Tea model for the diary form.
type Model struct {
	diary   *journal.Diary
	cfg     config.Config
	loc     *time.Location
	checker *update.Checker
	log     zerolog.Logger
	st      Theme

	width  int
	height int

	mode  mode
	focus focusPane

	// date list
	entries []journal.Entry
	cursor  int

	// form
	dateInput textinput.Model
	mood      AutocompleteModel
	body      textarea.Model

	prompt     textinput.Model
	promptKind promptKind

	notice      notice
	confirmDate string

	autosaveSeq int
	status      string
}

// ---------- messages & commands ----------

type autosaveMsg struct{ seq int }

type loadMsg struct{ startup bool }

type updateCheckedMsg struct {
	res update.Result
	err error
}

func New(opts Options) Model {
	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD"
	di.CharLimit = 10
	di.Width = 12
	di.Prompt = ""

	m := Model{
		diary:   opts.Diary,
		cfg:     opts.Config,
		loc:     opts.Config.Location(),
		checker: opts.Checker,
		log:     opts.Logger,
		st:      themeFor(opts.Config.Theme),
		focus:   focusDate,
	}

	mood := NewAutocomplete(m.knownMoods, 5)
	mood.SetPlaceholder("how do you feel?")
	mood.SetWidth(30)

	body := textarea.New()
	body.Placeholder = "Write about your day…"
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.SetHeight(12)
	body.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(lipgloss.Color("#313244"))

	pr := textinput.New()
	pr.CharLimit = 32
	pr.Width = 24

	m.dateInput = di
	m.mood = mood
	m.body = body
	m.prompt = pr
	m.dateInput.Focus()
	m.refreshList()
	m.loadEntryToForm(journal.Today(m.loc))
	return m
}

// Run opens the form full screen and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return loadMsg{startup: true} })
}

func (m Model) ctx() context.Context { return context.Background() }

// knownMoods feeds the mood autocomplete with moods already used, most
// frequent first.
func (m Model) knownMoods() []string {
	stats := m.diary.Store().Summarize(journal.Today(m.loc))
	out := make([]string, 0, len(stats.Moods))
	for _, mc := range stats.Moods {
		if mc.Mood == m.cfg.Placeholders.Mood {
			continue
		}
		out = append(out, mc.Mood)
	}
	return out
}

func (m Model) scheduleAutosave() (Model, tea.Cmd) {
	if !m.cfg.Autosave.Enabled {
		return m, nil
	}
	m.autosaveSeq++
	seq := m.autosaveSeq
	return m, tea.Tick(m.cfg.Autosave.Delay, func(time.Time) tea.Msg { return autosaveMsg{seq: seq} })
}

func (m Model) checkUpdateCmd() tea.Cmd {
	checker := m.checker
	return func() tea.Msg {
		if checker == nil {
			return updateCheckedMsg{err: fmt.Errorf("%w: update check is not configured", update.ErrNetwork)}
		}
		res, err := checker.Check(context.Background())
		return updateCheckedMsg{res: res, err: err}
	}
}

// ---------- Update ----------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case autosaveMsg:
		// a newer keystroke bumped the sequence; this tick was cancelled
		if msg.seq != m.autosaveSeq {
			return m, nil
		}
		m = m.saveCurrent(true)
		return m, nil

	case loadMsg:
		m = m.loadFromFile(!msg.startup)
		// the file may hold an entry for the date already in an untouched form
		if msg.startup && m.mood.Value() == "" && m.body.Value() == "" {
			if date := strings.TrimSpace(m.dateInput.Value()); date != "" {
				m.loadEntryToForm(date)
			}
		}
		return m, nil

	case updateCheckedMsg:
		return m.handleUpdateChecked(msg), nil

	case tea.KeyMsg:
		switch m.mode {
		case modeNotice:
			switch msg.String() {
			case "enter", "esc", " ", "q":
				m.mode = modeNormal
			}
			return m, nil
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modePrompt:
			return m.updatePrompt(msg)
		}
		return m.updateNormal(msg)
	}

	// blink and other internal messages go to the focused widget
	return m.updateFocused(msg)
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		m = m.saveCurrent(true)
		return m, tea.Quit
	case "ctrl+s":
		return m.saveCurrent(false), nil
	case "ctrl+t":
		return m.newToday()
	case "ctrl+n":
		m = m.saveCurrent(true)
		m.refreshList()
		return m.openPrompt(promptNewDate)
	case "ctrl+p":
		m = m.saveCurrent(true)
		return m.openPrompt(promptPickDate)
	case "ctrl+x":
		return m.askDelete(), nil
	case "ctrl+r":
		m.refreshList()
		m.status = "list refreshed"
		return m, nil
	case "ctrl+o":
		return m.loadFromFile(true), nil
	case "ctrl+w":
		return m.writeFile(), nil
	case "ctrl+u":
		m.status = "checking for updates…"
		return m, m.checkUpdateCmd()
	case "tab":
		return m.cycleFocus(1)
	case "shift+tab":
		return m.cycleFocus(-1)
	}

	if m.focus == focusList {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(0, len(m.entries)-1)
		case "enter":
			return m.selectCurrent()
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and restarts the autosave
// timer when mood or body changed.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case focusMood:
		old := m.mood.Value()
		m.mood, cmd = m.mood.Update(msg)
		if m.mood.Value() != old {
			var tick tea.Cmd
			m, tick = m.scheduleAutosave()
			cmd = tea.Batch(cmd, tick)
		}
	case focusBody:
		old := m.body.Value()
		m.body, cmd = m.body.Update(msg)
		if m.body.Value() != old {
			var tick tea.Cmd
			m, tick = m.scheduleAutosave()
			cmd = tea.Batch(cmd, tick)
		}
	}
	return m, cmd
}

func (m Model) cycleFocus(step int) (tea.Model, tea.Cmd) {
	leaving := m.focus
	m.dateInput.Blur()
	m.mood.Blur()
	m.body.Blur()

	m.focus = (m.focus + focusPane(step) + focusCount) % focusCount

	var cmd tea.Cmd
	switch m.focus {
	case focusDate:
		cmd = m.dateInput.Focus()
	case focusMood:
		cmd = m.mood.Focus()
	case focusBody:
		cmd = m.body.Focus()
	}

	if leaving == focusDate {
		var tick tea.Cmd
		m, tick = m.scheduleAutosave()
		cmd = tea.Batch(cmd, tick)
	}
	return m, cmd
}

func (m Model) focusOn(f focusPane) (Model, tea.Cmd) {
	if m.focus == f {
		return m, nil
	}
	m.dateInput.Blur()
	m.mood.Blur()
	m.body.Blur()
	m.focus = f
	switch f {
	case focusDate:
		return m, m.dateInput.Focus()
	case focusMood:
		return m, m.mood.Focus()
	case focusBody:
		return m, m.body.Focus()
	}
	return m, nil
}

// ---------- actions ----------

func (m Model) formInput() journal.Input {
	return journal.Input{
		Date: m.dateInput.Value(),
		Mood: m.mood.Value(),
		Body: m.body.Value(),
	}
}

// saveCurrent stores the form. A silent save shows no notices and does not
// touch the file when the date is empty or malformed, or when the form holds
// nothing new for that date.
func (m Model) saveCurrent(silent bool) Model {
	in := m.formInput().Normalize()
	if in.Date == "" {
		if !silent {
			m = m.showNotice(noticeError, "Error", "The date cannot be empty.")
		}
		return m
	}
	if err := journal.ValidateDate(in.Date); err != nil {
		if !silent {
			m = m.showNotice(noticeError, "Error", "Wrong date format, use YYYY-MM-DD.")
		}
		return m
	}
	if silent && m.unchanged(in) {
		return m
	}

	e, err := m.diary.Save(m.ctx(), in)
	if err != nil {
		m.log.Error().Err(err).Str("date", in.Date).Bool("silent", silent).Msg("save failed")
		if silent {
			m.status = "autosave failed: " + err.Error()
		} else {
			m = m.showNotice(noticeError, "Error", "Could not save: "+err.Error())
		}
		return m
	}

	m.refreshList()
	if silent {
		m.status = "autosaved " + e.Date
	} else {
		m = m.showNotice(noticeInfo, "Saved", fmt.Sprintf("The entry for %s has been saved.", e.Date))
	}
	return m
}

// newToday opens today's entry, or a blank form when there is none.
func (m Model) newToday() (tea.Model, tea.Cmd) {
	m = m.saveCurrent(true)
	m.refreshList()
	m.loadEntryToForm(journal.Today(m.loc))
	return m.focusOn(focusMood)
}

// unchanged reports whether saving in would not change the store: an empty
// form for a date without an entry, or a form equal to the stored entry.
func (m Model) unchanged(in journal.Input) bool {
	e, err := m.diary.Store().Get(in.Date)
	if err != nil {
		return in.Mood == "" && in.Body == ""
	}
	return in.Mood == e.Mood && in.Body == e.Body
}

func (m Model) openPrompt(kind promptKind) (tea.Model, tea.Cmd) {
	m.promptKind = kind
	m.prompt.Reset()
	switch kind {
	case promptNewDate:
		m.prompt.Placeholder = "YYYY-MM-DD"
	case promptPickDate:
		m.prompt.Placeholder = "today | yesterday | mon | YYYY-MM-DD"
	}
	m.mode = modePrompt
	return m, m.prompt.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt.Blur()
		m.mode = modeNormal
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.prompt.Value())
		m.prompt.Blur()
		m.mode = modeNormal
		if value == "" {
			return m, nil
		}
		switch m.promptKind {
		case promptNewDate:
			if err := journal.ValidateDate(value); err != nil {
				return m.showNotice(noticeError, "Error", "Wrong date format, use YYYY-MM-DD."), nil
			}
			m.clearForm()
			m.dateInput.SetValue(value)
			return m.focusOn(focusMood)
		case promptPickDate:
			date, err := utils.ParseDateKey(value, m.loc)
			if err != nil {
				return m.showNotice(noticeError, "Error", fmt.Sprintf("Cannot understand date %q.", value)), nil
			}
			m.loadEntryToForm(date)
			return m.focusOn(focusMood)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) askDelete() Model {
	date := strings.TrimSpace(m.dateInput.Value())
	if date == "" {
		return m.showNotice(noticeError, "Error", "Enter a date in the form first, or pick one from the list.")
	}
	if !m.diary.Store().Has(date) {
		return m.showNotice(noticeWarn, "Nothing to delete", fmt.Sprintf("%s has no entry to delete.", date))
	}
	m.confirmDate = date
	m.mode = modeConfirmDelete
	return m
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		date := m.confirmDate
		m.confirmDate = ""
		m.mode = modeNormal
		if err := m.diary.Delete(m.ctx(), date); err != nil {
			m.log.Error().Err(err).Str("date", date).Msg("delete failed")
			return m.showNotice(noticeError, "Error", "Could not delete: "+err.Error()), nil
		}
		m.clearForm()
		m.refreshList()
		return m.showNotice(noticeInfo, "Deleted", fmt.Sprintf("The entry for %s has been deleted.", date)), nil
	case "n", "N", "esc":
		m.confirmDate = ""
		m.mode = modeNormal
	}
	return m, nil
}

func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return m, nil
	}
	date := m.entries[m.cursor].Date
	m = m.saveCurrent(true)
	m.loadEntryToForm(date)
	return m.focusOn(focusBody)
}

func (m *Model) loadEntryToForm(date string) {
	e, err := m.diary.Store().Get(date)
	m.clearForm()
	m.dateInput.SetValue(date)
	if err != nil {
		return
	}
	m.mood.SetValue(e.Mood)
	m.body.SetValue(e.Body)
	m.moveCursorTo(date)
}

func (m *Model) clearForm() {
	m.dateInput.Reset()
	m.mood.SetValue("")
	m.body.Reset()
}

// refreshList re-reads the store and keeps the cursor on the same date when
// it still exists.
func (m *Model) refreshList() {
	var keep string
	if m.cursor >= 0 && m.cursor < len(m.entries) {
		keep = m.entries[m.cursor].Date
	}
	m.entries = m.diary.Store().List()
	m.cursor = 0
	if keep != "" {
		m.moveCursorTo(keep)
	}
	if m.cursor >= len(m.entries) {
		m.cursor = max(0, len(m.entries)-1)
	}
}

func (m *Model) moveCursorTo(date string) {
	for i, e := range m.entries {
		if e.Date == date {
			m.cursor = i
			return
		}
	}
}

func (m Model) loadFromFile(withNotice bool) Model {
	n, err := m.diary.Load(m.ctx())
	m.refreshList()
	switch {
	case errors.Is(err, journal.ErrNotFound):
		msg := fmt.Sprintf("%s was not found.", m.diary.Location())
		if withNotice {
			return m.showNotice(noticeWarn, "Notice", msg)
		}
		m.status = msg
	case err != nil:
		return m.showNotice(noticeError, "Error", "Could not load: "+err.Error())
	default:
		msg := fmt.Sprintf("Loaded %d entries from %s.", n, m.diary.Location())
		if withNotice {
			return m.showNotice(noticeInfo, "Loaded", msg)
		}
		m.status = msg
	}
	return m
}

func (m Model) writeFile() Model {
	if err := m.diary.Flush(m.ctx()); err != nil {
		return m.showNotice(noticeError, "Error", "Could not save: "+err.Error())
	}
	return m.showNotice(noticeInfo, "Saved", fmt.Sprintf("Saved to %s.", m.diary.Location()))
}

func (m Model) handleUpdateChecked(msg updateCheckedMsg) Model {
	m.status = ""
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("update check failed")
		return m.showNotice(noticeError, "Error", "Could not fetch the latest version:\n"+msg.err.Error())
	}
	title, body := msg.res.Message(version.ReleasesURL)
	if !msg.res.UpToDate && m.cfg.Notifications.Enabled {
		_ = notify.UpdateAvailable(msg.res.Current, msg.res.Latest)
	}
	return m.showNotice(noticeInfo, title, body)
}

func (m Model) showNotice(kind noticeKind, title, body string) Model {
	m.notice = notice{kind: kind, title: title, body: body}
	m.mode = modeNotice
	return m
}
