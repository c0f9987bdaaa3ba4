// Package search provides the keyword and date lookup screen.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/okvern/quill/internal/config"
	"github.com/okvern/quill/internal/journal"
	"github.com/okvern/quill/internal/journal/access"
	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/journal/view"
	"github.com/okvern/quill/internal/ui/shared"
	"github.com/okvern/quill/internal/ui/styles"
)

// Mode selects what the query input means.
type Mode int

const (
	// ModeKeyword matches entries whose title or text contains the query.
	ModeKeyword Mode = iota
	// ModeDate matches entries on a single calendar date.
	ModeDate
	// ModeRange matches entries in a half-open [from, to) interval.
	ModeRange
)

func (m Mode) String() string {
	switch m {
	case ModeDate:
		return "date"
	case ModeRange:
		return "range"
	default:
		return "keyword"
	}
}

func (m Mode) placeholder() string {
	switch m {
	case ModeDate:
		return config.DateLayout
	case ModeRange:
		return config.TimestampLayout + " .. " + config.TimestampLayout
	default:
		return "search text"
	}
}

// Model holds the search screen state.
type Model struct {
	services  *shared.Services
	requester *author.Author

	mode    Mode
	input   textinput.Model
	results []*entry.Entry
	ran     bool
	errText string

	width  int
	height int
}

// New creates a search model scoped to the given requester.
func New(services *shared.Services, requester *author.Author) Model {
	input := textinput.New()
	input.Placeholder = ModeKeyword.placeholder()
	input.Focus()

	return Model{services: services, requester: requester, input: input}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shared.EntriesChangedMsg:
		if m.ran {
			m = m.run()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.mode = (m.mode + 1) % 3
			m.input.Placeholder = m.mode.placeholder()
			m.results = nil
			m.ran = false
			m.errText = ""
			return m, nil
		case "enter":
			m = m.run()
			return m, nil
		case "esc":
			return m, func() tea.Msg { return shared.BackMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) run() Model {
	m.errText = ""
	query := strings.TrimSpace(m.input.Value())

	var err error
	var hits []*entry.Entry
	switch m.mode {
	case ModeDate:
		hits, err = m.findByDate(query)
	case ModeRange:
		hits, err = m.findBetween(query)
	default:
		hits = m.filter(m.services.Entries.SearchByKeyword(query))
	}
	if err != nil {
		m.errText = err.Error()
		m.results = nil
		m.ran = false
		return m
	}

	m.results = hits
	m.ran = true
	return m
}

func (m Model) findByDate(query string) ([]*entry.Entry, error) {
	date, err := time.ParseInLocation(config.DateLayout, query, time.Local)
	if err != nil {
		return nil, journal.Validationf("date", "must look like %s", config.DateLayout)
	}
	return m.filter(m.services.Entries.FindByDate(date)), nil
}

func (m Model) findBetween(query string) ([]*entry.Entry, error) {
	parts := strings.SplitN(query, "..", 2)
	if len(parts) != 2 {
		return nil, journal.Validationf("interval", "must look like %s", ModeRange.placeholder())
	}
	from, err := time.ParseInLocation(config.TimestampLayout, strings.TrimSpace(parts[0]), time.Local)
	if err != nil {
		return nil, journal.Validationf("interval", "start must look like %s", config.TimestampLayout)
	}
	to, err := time.ParseInLocation(config.TimestampLayout, strings.TrimSpace(parts[1]), time.Local)
	if err != nil {
		return nil, journal.Validationf("interval", "end must look like %s", config.TimestampLayout)
	}

	hits, err := m.services.Entries.FindBetween(from, to)
	if err != nil {
		return nil, err
	}
	return m.filter(hits), nil
}

func (m Model) filter(entries view.List[*entry.Entry]) []*entry.Entry {
	return access.Filter(m.requester, entries).Slice()
}

// View renders the query input and results.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Search"))
	b.WriteString(styles.SubtleStyle.Render("  mode: " + m.mode.String() + " (tab to switch)"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString("\n" + styles.ErrorStyle.Render(m.errText) + "\n")
	}

	if m.ran {
		b.WriteString("\n")
		if len(m.results) == 0 {
			b.WriteString(styles.SubtleStyle.Render("No matching entries."))
		} else {
			titleWidth := m.width - 30
			if titleWidth < 20 {
				titleWidth = 20
			}
			for _, e := range m.results {
				b.WriteString(fmt.Sprintf("%s  %s  %s\n",
					e.OccurredAt().Format(config.TimestampLayout),
					runewidth.Truncate(e.Title(), titleWidth, "…"),
					styles.SubtleStyle.Render(e.AuthorName()),
				))
			}
			b.WriteString(styles.SubtleStyle.Render(fmt.Sprintf("\n%d entries", len(m.results))))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + styles.SubtleStyle.Render("enter: search · tab: mode · esc: back"))
	return b.String()
}
