// Package authors provides the admin screen for managing accounts.
package authors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okvern/quill/internal/journal"
	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/log"
	"github.com/okvern/quill/internal/ui/shared"
	"github.com/okvern/quill/internal/ui/styles"
)

type prompt int

const (
	promptNone prompt = iota
	promptRename
	promptRemove
	promptReset
)

// Model holds the author management screen state.
type Model struct {
	services  *shared.Services
	requester *author.Author

	authors  []*author.Author
	selected int

	prompt  prompt
	rename  textinput.Model
	errText string

	width  int
	height int
}

// New creates an authors model. The screen assumes the requester is an
// admin; the root model gates access.
func New(services *shared.Services, requester *author.Author) Model {
	rename := textinput.New()
	rename.Placeholder = "new name"
	rename.CharLimit = author.MaxNameLength

	m := Model{services: services, requester: requester, rename: rename}
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

// Selected returns the author under the cursor, or nil.
func (m Model) Selected() *author.Author {
	if m.selected < 0 || m.selected >= len(m.authors) {
		return nil
	}
	return m.authors[m.selected]
}

func (m *Model) reload() {
	m.authors = m.services.Authors.GetAll().Slice()
	if m.selected >= len(m.authors) {
		m.selected = len(m.authors) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.prompt {
	case promptRename:
		return m.updateRename(keyMsg)
	case promptRemove, promptReset:
		return m.updateConfirm(keyMsg)
	}
	return m.updateList(keyMsg)
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "j", "down":
		if m.selected < len(m.authors)-1 {
			m.selected++
		}
	case "r":
		if a := m.Selected(); a != nil {
			m.prompt = promptRename
			m.rename.SetValue(a.DisplayName())
			m.rename.CursorEnd()
			m.rename.Focus()
			m.errText = ""
		}
	case "d":
		if a := m.Selected(); a != nil {
			if a.Equal(m.requester) {
				return m, shared.Status(shared.StatusError, "you cannot remove yourself")
			}
			m.prompt = promptRemove
		}
	case "x":
		m.prompt = promptReset
	case "esc":
		return m, func() tea.Msg { return shared.BackMsg{} }
	}
	return m, nil
}

func (m Model) updateRename(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.applyRename()
	case "esc":
		m.prompt = promptNone
		m.errText = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

func (m Model) applyRename() (Model, tea.Cmd) {
	a := m.Selected()
	if a == nil {
		m.prompt = promptNone
		return m, nil
	}

	renamed, err := m.services.Authors.Rename(a.ID(), m.rename.Value())
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrConflict):
			m.errText = "that name is already taken"
		default:
			m.errText = err.Error()
		}
		return m, nil
	}

	log.Info(log.CatRegister, "author renamed", "id", a.ID().String(), "name", renamed.DisplayName())
	m.prompt = promptNone
	m.errText = ""
	m.reload()
	return m, shared.Status(shared.StatusSuccess, "author renamed")
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.prompt == promptReset {
			return m.applyReset()
		}
		return m.applyRemove()
	case "n", "esc":
		m.prompt = promptNone
		return m, nil
	}
	return m, nil
}

// applyRemove deletes the account but keeps its entries; they still show the
// snapshotted author name.
func (m Model) applyRemove() (Model, tea.Cmd) {
	a := m.Selected()
	m.prompt = promptNone
	if a == nil {
		return m, nil
	}

	if !m.services.Authors.Remove(a.ID()) {
		return m, shared.Status(shared.StatusError, "author was already removed")
	}
	log.Info(log.CatRegister, "author removed", "id", a.ID().String())
	m.reload()
	return m, shared.Status(shared.StatusSuccess, "author removed")
}

func (m Model) applyReset() (Model, tea.Cmd) {
	m.prompt = promptNone
	m.services.Authors.ClearExceptAdmin()
	m.services.Entries.Clear()
	if m.services.Renders != nil {
		m.services.Renders.Flush()
	}
	log.Warn(log.CatRegister, "system reset", "by", m.requester.DisplayName())
	m.reload()
	return m, tea.Batch(
		shared.EntriesChanged(),
		shared.Status(shared.StatusSuccess, "all entries and non-admin authors removed"),
	)
}

// View renders the author list and any active prompt.
func (m Model) View() string {
	switch m.prompt {
	case promptRename:
		body := styles.TitleStyle.Render("Rename author") + "\n\n" + m.rename.View() + "\n"
		if m.errText != "" {
			body += "\n" + styles.ErrorStyle.Render(m.errText) + "\n"
		}
		body += "\n" + styles.SubtleStyle.Render("enter: rename · esc: cancel")
		return styles.FocusedPanelStyle.Render(body)

	case promptRemove:
		a := m.Selected()
		if a == nil {
			return ""
		}
		return styles.PanelStyle.Render(
			styles.ErrorStyle.Render(fmt.Sprintf("Remove %s? Their entries are kept.", a.DisplayName())) +
				"\n\n" + styles.SubtleStyle.Render("y: remove · n: cancel"))

	case promptReset:
		return styles.PanelStyle.Render(
			styles.ErrorStyle.Render("Reset the diary? This removes every entry and every non-admin author.") +
				"\n\n" + styles.SubtleStyle.Render("y: reset · n: cancel"))
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Authors"))
	b.WriteString("\n\n")

	for i, a := range m.authors {
		entries := m.services.Entries.CountByAuthor(a.ID())
		row := fmt.Sprintf("%-25s %-8s %d entries", a.DisplayName(), a.Role(), entries)
		if i == m.selected {
			b.WriteString(styles.SelectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render("r: rename · d: remove · x: reset diary · esc: back"))
	return b.String()
}
