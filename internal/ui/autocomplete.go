package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SuggestionSource returns candidate values, most relevant first.
type SuggestionSource func() []string

// AutocompleteModel is a text input that offers previously used values.
type AutocompleteModel struct {
	input          textinput.Model
	suggestions    []string
	showing        bool
	selected       int
	source         SuggestionSource
	style          lipgloss.Style
	maxSuggestions int
}

func NewAutocomplete(source SuggestionSource, maxSuggestions int) AutocompleteModel {
	input := textinput.New()
	input.Prompt = ""
	return AutocompleteModel{
		input:          input,
		source:         source,
		maxSuggestions: maxSuggestions,
		style:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Update handles the autocomplete logic. Up/down move through suggestions,
// enter accepts one and esc hides the list.
func (m AutocompleteModel) Update(msg tea.Msg) (AutocompleteModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch km.Type {
	case tea.KeyDown:
		if m.showing {
			m.selected = (m.selected + 1) % len(m.suggestions)
			return m, nil
		}
	case tea.KeyUp:
		if m.showing {
			m.selected = (m.selected - 1 + len(m.suggestions)) % len(m.suggestions)
			return m, nil
		}
	case tea.KeyEnter:
		if m.showing {
			m.input.SetValue(m.suggestions[m.selected])
			m.input.CursorEnd()
			m.hide()
			return m, nil
		}
	case tea.KeyEscape:
		if m.showing {
			m.hide()
			return m, nil
		}
	}

	old := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != old {
		m.refresh()
	}
	return m, cmd
}

func (m *AutocompleteModel) hide() {
	m.showing = false
	m.selected = 0
}

// refresh filters the source by prefix, then by substring.
func (m *AutocompleteModel) refresh() {
	m.hide()
	m.suggestions = nil
	q := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if q == "" || m.source == nil {
		return
	}
	var prefix, contains []string
	for _, s := range m.source() {
		ls := strings.ToLower(s)
		switch {
		case ls == q:
		case strings.HasPrefix(ls, q):
			prefix = append(prefix, s)
		case strings.Contains(ls, q):
			contains = append(contains, s)
		}
	}
	all := append(prefix, contains...)
	if len(all) > m.maxSuggestions {
		all = all[:m.maxSuggestions]
	}
	m.suggestions = all
	m.showing = len(all) > 0
}

// View renders the input and, when open, the suggestion list.
func (m AutocompleteModel) View() string {
	var content strings.Builder
	content.WriteString(m.input.View())
	if m.showing {
		for i, s := range m.suggestions {
			content.WriteString("\n")
			if i == m.selected {
				content.WriteString(m.style.Foreground(lipgloss.Color("12")).Render("▶ " + s))
			} else {
				content.WriteString(m.style.Render("  " + s))
			}
		}
	}
	return content.String()
}

func (m AutocompleteModel) Value() string { return m.input.Value() }

func (m *AutocompleteModel) SetValue(value string) {
	m.input.SetValue(value)
	m.hide()
}

func (m *AutocompleteModel) Focus() tea.Cmd {
	m.hide()
	return m.input.Focus()
}

func (m *AutocompleteModel) Blur() {
	m.input.Blur()
	m.hide()
}

func (m AutocompleteModel) Focused() bool { return m.input.Focused() }

func (m *AutocompleteModel) SetWidth(width int) { m.input.Width = width }

func (m *AutocompleteModel) SetPlaceholder(placeholder string) { m.input.Placeholder = placeholder }

func (m AutocompleteModel) Suggestions() []string { return m.suggestions }

func (m AutocompleteModel) Showing() bool { return m.showing }
