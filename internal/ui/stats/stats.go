// Package stats provides the statistics screen.
package stats

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/ui/shared"
	"github.com/okvern/quill/internal/ui/styles"
)

// scope selects whose entries feed the numbers.
type scope int

const (
	scopeOwn scope = iota
	scopeGlobal
)

// Model holds the statistics screen state.
type Model struct {
	services  *shared.Services
	requester *author.Author

	scope scope

	width  int
	height int
}

// New creates a stats model. Regular authors always see their own numbers;
// admins start on the global view and can toggle.
func New(services *shared.Services, requester *author.Author) Model {
	m := Model{services: services, requester: requester}
	if requester != nil && requester.Role().IsAdmin() {
		m.scope = scopeGlobal
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab":
			if m.requester != nil && m.requester.Role().IsAdmin() {
				if m.scope == scopeGlobal {
					m.scope = scopeOwn
				} else {
					m.scope = scopeGlobal
				}
			}
		case "esc":
			return m, func() tea.Msg { return shared.BackMsg{} }
		}
	}
	return m, nil
}

func (m Model) statistics() entry.Statistics {
	if m.scope == scopeGlobal {
		return m.services.Entries.StatisticsAll()
	}
	if m.requester == nil {
		return entry.Statistics{}
	}
	return m.services.Entries.StatisticsFor(m.requester.ID())
}

// View renders the statistics panel.
func (m Model) View() string {
	heading := "Your statistics"
	if m.scope == scopeGlobal {
		heading = "Diary statistics"
	}

	s := m.statistics()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(heading))
	b.WriteString("\n\n")

	if s.Entries == 0 {
		b.WriteString(styles.SubtleStyle.Render("No statistics available - no entries found."))
	} else {
		b.WriteString(fmt.Sprintf("Total entries      %d\n", s.Entries))
		b.WriteString(fmt.Sprintf("Total word count   %d\n", s.Words))
		b.WriteString(fmt.Sprintf("Average word count %d\n", s.Average))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Longest entry   %s (%d words)\n", s.Longest.Title(), s.Longest.WordCount()))
		b.WriteString(fmt.Sprintf("Shortest entry  %s (%d words)\n", s.Shortest.Title(), s.Shortest.WordCount()))

		if m.scope == scopeGlobal {
			b.WriteString("\n" + styles.SubtleStyle.Render("Per author") + "\n")
			for a := range m.services.Authors.GetAll().All() {
				count := m.services.Entries.CountByAuthor(a.ID())
				b.WriteString(fmt.Sprintf("  %-20s %d\n", a.DisplayName(), count))
			}
		}
	}

	footer := "esc: back"
	if m.requester != nil && m.requester.Role().IsAdmin() {
		footer = "tab: own/global · esc: back"
	}
	b.WriteString("\n" + styles.SubtleStyle.Render(footer))
	return styles.PanelStyle.Render(b.String())
}
