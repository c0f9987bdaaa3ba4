// Package browse provides the entry list and detail screen.
package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/okvern/quill/internal/config"
	"github.com/okvern/quill/internal/journal/access"
	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/log"
	"github.com/okvern/quill/internal/ui/shared"
	"github.com/okvern/quill/internal/ui/styles"
)

// Model holds the browse screen state.
type Model struct {
	services  *shared.Services
	requester *author.Author

	entries  []*entry.Entry
	selected int

	showDetail    bool
	confirmDelete bool

	width  int
	height int
}

// New creates a browse model scoped to the given requester.
func New(services *shared.Services, requester *author.Author) Model {
	m := Model{services: services, requester: requester}
	m.reload()
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

// Selected returns the entry under the cursor, or nil.
func (m Model) Selected() *entry.Entry {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return nil
	}
	return m.entries[m.selected]
}

func (m *Model) reload() {
	visible := access.Filter(m.requester, m.services.Entries.All())
	m.entries = visible.Slice()
	if m.selected >= len(m.entries) {
		m.selected = len(m.entries) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shared.EntriesChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.services.Keys
	switch {
	case key.Matches(msg, k.Confirm):
		m.confirmDelete = false
		return m.deleteSelected()
	case key.Matches(msg, k.Cancel), key.Matches(msg, k.Escape):
		m.confirmDelete = false
		return m, nil
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.services.Keys
	switch {
	case key.Matches(msg, k.Up):
		if m.selected > 0 {
			m.selected--
			m.showDetail = false
		}
	case key.Matches(msg, k.Down):
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.showDetail = false
		}
	case key.Matches(msg, k.Enter):
		if m.Selected() != nil {
			m.showDetail = !m.showDetail
		}
	case key.Matches(msg, k.New):
		return m, func() tea.Msg { return shared.ComposeRequestedMsg{} }
	case key.Matches(msg, k.Edit):
		if e := m.Selected(); e != nil && m.canModify(e) {
			return m, func() tea.Msg { return shared.ComposeRequestedMsg{Edit: e} }
		}
		return m, shared.Status(shared.StatusError, "you can only edit your own entries")
	case key.Matches(msg, k.Delete):
		if e := m.Selected(); e != nil {
			if !m.canModify(e) {
				return m, shared.Status(shared.StatusError, "you can only delete your own entries")
			}
			m.confirmDelete = true
		}
	case key.Matches(msg, k.Escape):
		if m.showDetail {
			m.showDetail = false
			return m, nil
		}
		return m, func() tea.Msg { return shared.BackMsg{} }
	}
	return m, nil
}

// canModify reports whether the requester may edit or delete the entry.
// Admins may delete anything, authors only their own entries.
func (m Model) canModify(e *entry.Entry) bool {
	if m.requester == nil {
		return false
	}
	if m.requester.Role().IsAdmin() {
		return true
	}
	return e.AuthorID() == m.requester.ID()
}

func (m Model) deleteSelected() (Model, tea.Cmd) {
	e := m.Selected()
	if e == nil {
		return m, nil
	}
	if !m.services.Entries.Remove(e.ID()) {
		return m, shared.Status(shared.StatusError, "entry was already removed")
	}
	log.Info(log.CatUI, "entry removed", "id", e.ID().String())
	if m.services.Renders != nil {
		m.services.Renders.Flush()
	}
	m.reload()
	return m, tea.Batch(
		shared.EntriesChanged(),
		shared.Status(shared.StatusSuccess, "entry deleted"),
	)
}

// View renders the list or the detail pane.
func (m Model) View() string {
	if m.confirmDelete {
		return m.viewConfirm()
	}
	if m.showDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Entries"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(styles.SubtleStyle.Render("No entries yet. Press n to write one."))
		return b.String()
	}

	titleWidth := m.width - 30
	if titleWidth < 20 {
		titleWidth = 20
	}

	for i, e := range m.entries {
		row := fmt.Sprintf("%s  %s",
			e.OccurredAt().Format(config.TimestampLayout),
			runewidth.Truncate(e.Title(), titleWidth, "…"),
		)
		if m.requester != nil && m.requester.Role().IsAdmin() {
			row += styles.SubtleStyle.Render("  by " + e.AuthorName())
		}

		if i == m.selected {
			b.WriteString(styles.SelectedStyle.Render("> " + row))
			b.WriteString("\n")
			b.WriteString(styles.SubtleStyle.Render("  " + m.preview(e)))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render("enter: read · n: new · e: edit · d: delete · esc: back"))
	return b.String()
}

// preview returns the first few words of the entry text, wrapped to fit.
func (m Model) preview(e *entry.Entry) string {
	limit := m.services.Config.UI.PreviewWords
	if limit <= 0 {
		limit = 8
	}
	words := strings.Fields(e.Text())
	if len(words) > limit {
		words = append(words[:limit:limit], "…")
	}
	text := strings.Join(words, " ")
	if m.width > 4 {
		text = wordwrap.String(text, m.width-4)
	}
	return text
}

func (m Model) viewDetail() string {
	e := m.Selected()
	if e == nil {
		return ""
	}

	header := fmt.Sprintf("%s · %s\n", e.OccurredAt().Format(config.TimestampLayout), e.AuthorName())

	body := m.renderBody(e)
	footer := styles.SubtleStyle.Render(fmt.Sprintf("%d words · esc: back", e.WordCount()))

	return styles.TitleStyle.Render(e.Title()) + "\n" +
		styles.SubtleStyle.Render(header) + "\n" +
		body + "\n" + footer
}

// renderBody renders the entry text as markdown, caching per entry and width.
// Edits bump nothing here because any mutation flushes the cache.
func (m Model) renderBody(e *entry.Entry) string {
	if m.services.Markdown == nil {
		return e.Text()
	}

	cacheKey := shared.RenderKey(e.ID(), m.services.Markdown.Width())
	if m.services.Renders != nil {
		if cached, ok := m.services.Renders.Get(cacheKey); ok {
			return cached
		}
	}

	rendered, err := m.services.Markdown.Render(e.Text())
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown render failed", err)
		return e.Text()
	}
	if m.services.Renders != nil {
		m.services.Renders.Set(cacheKey, rendered, 10*time.Minute)
	}
	return rendered
}

func (m Model) viewConfirm() string {
	e := m.Selected()
	if e == nil {
		return ""
	}
	prompt := fmt.Sprintf("Delete %q from %s?",
		e.Title(), e.OccurredAt().Format(config.TimestampLayout))
	return styles.PanelStyle.Render(
		styles.ErrorStyle.Render(prompt) + "\n\n" +
			styles.SubtleStyle.Render("y: delete · n: cancel"),
	)
}
