// Package compose provides the entry creation and editing screen.
package compose

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/okvern/quill/internal/config"
	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/log"
	"github.com/okvern/quill/internal/ui/shared"
	"github.com/okvern/quill/internal/ui/styles"
)

type field int

const (
	fieldTitle field = iota
	fieldWhen
	fieldBody
)

// Model holds the compose screen state.
type Model struct {
	services  *shared.Services
	requester *author.Author
	edit      *entry.Entry // nil when composing a new entry

	title textinput.Model
	when  textinput.Model
	body  textarea.Model

	focus      field
	confirming bool
	diff       string
	errText    string

	width  int
	height int
}

// New creates a compose model. Pass a non-nil edit entry to prefill the form
// and switch to edit semantics; the timestamp of an existing entry cannot be
// changed.
func New(services *shared.Services, requester *author.Author, edit *entry.Entry) Model {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = entry.MaxTitleLength
	title.Focus()

	when := textinput.New()
	when.Placeholder = config.TimestampLayout
	when.CharLimit = len(config.TimestampLayout)
	when.SetValue(services.Now().Format(config.TimestampLayout))

	body := textarea.New()
	body.Placeholder = "write your entry (markdown supported)"
	body.CharLimit = entry.MaxTextLength

	m := Model{
		services:  services,
		requester: requester,
		edit:      edit,
		title:     title,
		when:      when,
		body:      body,
	}

	if edit != nil {
		m.title.SetValue(edit.Title())
		m.when.SetValue(edit.OccurredAt().Format(config.TimestampLayout))
		m.body.SetValue(edit.Text())
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	if width > 6 {
		m.body.SetWidth(width - 6)
	}
	if height > 12 {
		m.body.SetHeight(height - 12)
	}
	return m
}

// Editing reports whether the model edits an existing entry.
func (m Model) Editing() bool {
	return m.edit != nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.confirming {
			return m.updateConfirm(keyMsg)
		}

		switch keyMsg.String() {
		case "tab", "shift+tab":
			m = m.cycleFocus(keyMsg.String() == "shift+tab")
			return m, nil
		case "ctrl+s":
			return m.save()
		case "esc":
			return m, func() tea.Msg { return shared.BackMsg{} }
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldWhen:
		m.when, cmd = m.when.Update(msg)
	case fieldBody:
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.confirming = false
		return m.applyEdit()
	case "n", "esc":
		m.confirming = false
		m.diff = ""
		return m, nil
	}
	return m, nil
}

func (m Model) cycleFocus(backwards bool) Model {
	fields := []field{fieldTitle, fieldWhen, fieldBody}
	if m.Editing() {
		// Timestamp is fixed for existing entries.
		fields = []field{fieldTitle, fieldBody}
	}

	idx := 0
	for i, f := range fields {
		if f == m.focus {
			idx = i
			break
		}
	}
	if backwards {
		idx = (idx + len(fields) - 1) % len(fields)
	} else {
		idx = (idx + 1) % len(fields)
	}
	m.focus = fields[idx]

	m.title.Blur()
	m.when.Blur()
	m.body.Blur()
	switch m.focus {
	case fieldTitle:
		m.title.Focus()
	case fieldWhen:
		m.when.Focus()
	case fieldBody:
		m.body.Focus()
	}
	return m
}

func (m Model) save() (Model, tea.Cmd) {
	if m.Editing() {
		// Show the pending changes before committing them.
		diff := m.buildDiff()
		if diff == "" {
			return m, func() tea.Msg { return shared.BackMsg{} }
		}
		m.diff = diff
		m.confirming = true
		return m, nil
	}
	return m.create()
}

func (m Model) create() (Model, tea.Cmd) {
	at, err := time.ParseInLocation(config.TimestampLayout, strings.TrimSpace(m.when.Value()), time.Local)
	if err != nil {
		m.errText = "timestamp must look like " + config.TimestampLayout
		return m, nil
	}

	e, err := entry.New(m.requester, m.title.Value(), m.body.Value(), at)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	if err := m.services.Entries.Add(e); err != nil {
		m.errText = err.Error()
		return m, nil
	}

	log.Info(log.CatUI, "entry created", "id", e.ID().String(), "title", e.Title())
	return m, tea.Batch(
		shared.EntriesChanged(),
		shared.Status(shared.StatusSuccess, "entry saved"),
		func() tea.Msg { return shared.BackMsg{} },
	)
}

func (m Model) applyEdit() (Model, tea.Cmd) {
	if err := m.edit.SetTitle(m.title.Value()); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	if err := m.edit.SetText(m.body.Value()); err != nil {
		m.errText = err.Error()
		return m, nil
	}

	if m.services.Renders != nil {
		m.services.Renders.Delete(
			shared.RenderKey(m.edit.ID(), m.markdownWidth()),
		)
	}

	log.Info(log.CatUI, "entry edited", "id", m.edit.ID().String())
	return m, tea.Batch(
		shared.EntriesChanged(),
		shared.Status(shared.StatusSuccess, "entry updated"),
		func() tea.Msg { return shared.BackMsg{} },
	)
}

func (m Model) markdownWidth() int {
	if m.services.Markdown != nil {
		return m.services.Markdown.Width()
	}
	return 0
}

// buildDiff returns a word-level diff between the stored entry and the form,
// or "" when nothing changed.
func (m Model) buildDiff() string {
	oldFull := m.edit.Title() + "\n\n" + m.edit.Text()
	newFull := m.title.Value() + "\n\n" + m.body.Value()
	if oldFull == newFull {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldFull, newFull, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(styles.ErrorStyle.Render("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			b.WriteString(styles.SuccessStyle.Render("{+" + d.Text + "+}"))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// View renders the form or the diff confirmation.
func (m Model) View() string {
	if m.confirming {
		return styles.TitleStyle.Render("Confirm changes") + "\n\n" +
			m.diff + "\n\n" +
			styles.SubtleStyle.Render("y: apply · n: keep editing")
	}

	heading := "New entry"
	if m.Editing() {
		heading = "Edit entry"
	}

	label := func(text string, f field) string {
		if m.focus == f {
			return styles.FocusedLabelStyle.Render(text)
		}
		return styles.LabelStyle.Render(text)
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(label("Title", fieldTitle) + "\n" + m.title.View() + "\n\n")
	if m.Editing() {
		b.WriteString(styles.LabelStyle.Render("When") + "\n" +
			styles.SubtleStyle.Render(m.when.Value()) + "\n\n")
	} else {
		b.WriteString(label("When", fieldWhen) + "\n" + m.when.View() + "\n\n")
	}
	b.WriteString(label("Text", fieldBody) + "\n" + m.body.View() + "\n")

	if m.errText != "" {
		b.WriteString("\n" + styles.ErrorStyle.Render(m.errText) + "\n")
	}

	b.WriteString("\n" + styles.SubtleStyle.Render("tab: next field · ctrl+s: save · esc: cancel"))
	return b.String()
}
