package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/diary/internal/version"
)

const (
	listWidth  = 34
	helpFooter = "^T today · ^N new date · ^P pick · ^S save · ^X delete · ^R refresh · ^O load · ^W write · ^U update · tab focus · ^Q quit"
)

// layout resizes the inputs to the current window.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	formW := max(20, m.width-listWidth-8)
	m.dateInput.Width = 12
	m.mood.SetWidth(min(40, formW-8))
	m.body.SetWidth(formW - 4)
	m.body.SetHeight(max(3, m.height-14))
}

func (m Model) View() string {
	header := m.st.Title.Render("Diary") + "  " + m.st.Hint.Render(m.diary.Location())

	left := m.viewList()
	right := m.viewForm()
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	footer := lipgloss.JoinVertical(lipgloss.Left,
		m.viewStatus(),
		m.st.Hint.Render(helpFooter),
	)

	base := lipgloss.JoinVertical(lipgloss.Left, header, main, footer)

	switch m.mode {
	case modeNotice:
		return overlayCenter(base, m.viewNotice())
	case modeConfirmDelete:
		body := fmt.Sprintf("Delete the entry for %s?\n\n", m.confirmDate) + m.st.Hint.Render("y = delete · n/esc = keep")
		return overlayCenter(base, m.st.Modal.Render(m.st.Warning.Render("Confirm delete")+"\n\n"+body))
	case modePrompt:
		title := "New entry date"
		if m.promptKind == promptPickDate {
			title = "Go to date"
		}
		body := m.prompt.View() + "\n\n" + m.st.Hint.Render("enter = ok · esc = cancel")
		return overlayCenter(base, m.st.Modal.Render(m.st.Title.Render(title)+"\n\n"+body))
	}
	return base
}

func (m Model) viewList() string {
	height := max(5, m.height-8)
	var b strings.Builder
	b.WriteString(m.st.Label.Render(fmt.Sprintf("Entries (%d)", len(m.entries))))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(m.st.Hint.Render("no entries yet"))
	}

	// keep the cursor visible
	start := 0
	rows := max(1, height-2)
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(len(m.entries), start+rows)
	for i := start; i < end; i++ {
		line := truncateRunes(m.entries[i].Preview(), listWidth-2)
		if i == m.cursor {
			line = m.st.Cursor.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	box := m.st.Border
	if m.focus == focusList {
		box = m.st.Focused
	}
	return box.Width(listWidth).Height(height).Render(b.String())
}

func (m Model) viewForm() string {
	field := func(label string, f focusPane, view string) string {
		l := m.st.Label.Render(label)
		if m.focus == f {
			l = m.st.Success.Render(label)
		}
		return l + "\n" + view
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		field("Date", focusDate, m.dateInput.View()),
		"",
		field("Mood", focusMood, m.moodView()),
		"",
		field("Body", focusBody, m.body.View()),
	)

	box := m.st.Border
	if m.focus != focusList {
		box = m.st.Focused
	}
	return box.Render(content)
}

func (m Model) moodView() string {
	if !m.mood.Showing() {
		return m.mood.View()
	}
	return m.mood.View() + "\n" + m.st.Hint.Render("↑/↓ choose · enter accept · esc close")
}

func (m Model) viewStatus() string {
	saved := "--:--"
	if t := m.diary.LastSaved(); !t.IsZero() {
		saved = t.In(m.loc).Format("15:04")
	}
	parts := []string{version.GetShortVersion(), "last autosave: " + saved}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return m.st.StatusBar.Render(strings.Join(parts, " · "))
}

func (m Model) viewNotice() string {
	title := m.st.Title
	switch m.notice.kind {
	case noticeWarn:
		title = m.st.Warning
	case noticeError:
		title = m.st.Error
	}
	body := m.notice.body + "\n\n" + m.st.Hint.Render("enter/esc to close")
	return m.st.Modal.Render(title.Render(m.notice.title) + "\n\n" + body)
}

func overlayCenter(base, modal string) string {
	baseH := lipgloss.Height(base)
	mh := lipgloss.Height(modal)
	topPad := max(0, (baseH-mh)/3)
	w := max(lipgloss.Width(base), lipgloss.Width(modal))
	return lipgloss.JoinVertical(lipgloss.Left, strings.Repeat("\n", topPad), lipgloss.PlaceHorizontal(w, lipgloss.Center, modal), "")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
