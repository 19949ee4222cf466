package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ramanasai/diary/internal/journal"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

// ParseOutputFormat validates a --format value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatDefault, nil
	case FormatDefault, FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatCompact, FormatQuiet:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (default, table, json, yaml, csv, compact, quiet)", s)
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format OutputFormat
	Width  int
	Color  bool
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &RenderConfig{Format: FormatDefault, Width: width, Color: true}
}

// EntryList is a page of entries plus the context it was selected with.
type EntryList struct {
	Entries    []journal.Entry   `json:"entries" yaml:"entries"`
	Total      int               `json:"total" yaml:"total"`
	Page       int               `json:"page,omitempty" yaml:"page,omitempty"`
	PerPage    int               `json:"per_page,omitempty" yaml:"per_page,omitempty"`
	TotalPages int               `json:"total_pages,omitempty" yaml:"total_pages,omitempty"`
	Query      string            `json:"query,omitempty" yaml:"query,omitempty"`
	Filters    map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Date      lipgloss.Style
	Mood      lipgloss.Style
	Text      lipgloss.Style
	Highlight lipgloss.Style
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func initStyles(color bool) *Styles {
	if !color {
		return &Styles{
			Title:     lipgloss.NewStyle().Bold(true),
			Separator: lipgloss.NewStyle(),
			Meta:      lipgloss.NewStyle(),
			Date:      lipgloss.NewStyle().Bold(true),
			Mood:      lipgloss.NewStyle(),
			Text:      lipgloss.NewStyle(),
			Highlight: lipgloss.NewStyle().Bold(true),
		}
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		Date:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA")),
		Mood:      lipgloss.NewStyle().Foreground(lipgloss.Color("#F5C2E7")),
		Text:      lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
	}
}

// RenderEntryList renders a list of entries according to the configured format
func (r *Renderer) RenderEntryList(list *EntryList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(list)
	case FormatYAML:
		return r.renderYAML(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list)
	case FormatCompact:
		return r.renderCompact(list)
	case FormatQuiet:
		return r.renderQuiet(list)
	default:
		return r.renderDefault(list)
	}
}

// RenderEntry renders one entry in full, for the show command.
func (r *Renderer) RenderEntry(e journal.Entry) string {
	var b strings.Builder
	b.WriteString(r.styles.Date.Render(e.Date))
	b.WriteString("  ")
	b.WriteString(r.styles.Mood.Render(e.Mood))
	b.WriteString("\n")
	b.WriteString(r.separator())
	b.WriteString("\n")
	b.WriteString(r.styles.Text.Render(e.Body))
	b.WriteString("\n")
	return b.String()
}

func (r *Renderer) separator() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120)))
}

func (r *Renderer) renderDefault(list *EntryList) (string, error) {
	var b strings.Builder

	if list.Query != "" {
		b.WriteString(r.styles.Title.Render("Search Results"))
		b.WriteString("  ")
		b.WriteString(r.styles.Meta.Render("query: " + list.Query))
	} else {
		b.WriteString(r.styles.Title.Render("Diary"))
		if since := list.Filters["since"]; since != "" {
			b.WriteString("  ")
			b.WriteString(r.styles.Meta.Render("since " + since))
		}
		if until := list.Filters["until"]; until != "" {
			b.WriteString("  ")
			b.WriteString(r.styles.Meta.Render("until " + until))
		}
	}
	b.WriteString("\n")
	b.WriteString(r.separator())
	b.WriteString("\n")

	for _, e := range list.Entries {
		b.WriteString(r.styles.Date.Render(e.Date))
		b.WriteString("  ")
		b.WriteString(r.styles.Mood.Render(e.Mood))
		b.WriteString("\n")
		for _, line := range strings.Split(e.Body, "\n") {
			b.WriteString(r.styles.Text.Render("  " + r.highlight(line, list.Query)))
			b.WriteString("\n")
		}
		b.WriteString(r.separator())
		b.WriteString("\n")
	}

	p := NewPagination(list.Total, list.PerPage, list.Page)
	b.WriteString(r.styles.Meta.Render(p.FormatSummary()))
	b.WriteString("\n")
	if nav := p.FormatNavigation(); nav != "" {
		b.WriteString(r.styles.Meta.Render(nav))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// highlight wraps case-insensitive matches of q in line.
func (r *Renderer) highlight(line, q string) string {
	if q == "" {
		return line
	}
	lower, lq := strings.ToLower(line), strings.ToLower(q)
	// byte offsets only line up when lowering kept the length
	if len(lower) != len(line) {
		return line
	}
	var b strings.Builder
	for {
		i := strings.Index(lower, lq)
		if i < 0 {
			b.WriteString(line)
			return b.String()
		}
		b.WriteString(line[:i])
		b.WriteString(r.styles.Highlight.Render(line[i : i+len(lq)]))
		line, lower = line[i+len(lq):], lower[i+len(lq):]
	}
}

func (r *Renderer) renderJSON(list *EntryList) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderYAML(list *EntryList) (string, error) {
	b, err := yaml.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(b), nil
}

func (r *Renderer) renderCSV(list *EntryList) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"date", "mood", "body"})
	for _, e := range list.Entries {
		_ = w.Write([]string{e.Date, e.Mood, e.Body})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderTable(list *EntryList) (string, error) {
	var b strings.Builder
	b.WriteString("Date\tMood\tText\n")
	b.WriteString(strings.Repeat("-", r.config.Width))
	b.WriteString("\n")
	for _, e := range list.Entries {
		b.WriteString(strings.Join([]string{e.Date, e.Mood, truncate(oneLine(e.Body), 50)}, "\t"))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (r *Renderer) renderCompact(list *EntryList) (string, error) {
	var b strings.Builder
	for _, e := range list.Entries {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			r.styles.Date.Render(e.Date),
			r.styles.Mood.Render("("+e.Mood+")"),
			truncate(oneLine(e.Body), 80)))
	}
	return b.String(), nil
}

// renderQuiet prints only the dates (for scripting)
func (r *Renderer) renderQuiet(list *EntryList) (string, error) {
	var b strings.Builder
	for _, e := range list.Entries {
		b.WriteString(e.Date)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
