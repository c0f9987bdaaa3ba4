// Package login provides the sign-in and registration screen.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/log"
	"github.com/okvern/quill/internal/ui/shared"
	"github.com/okvern/quill/internal/ui/styles"
)

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

type field int

const (
	fieldName field = iota
	fieldPassword
	fieldCount
)

// Model holds the login screen state.
type Model struct {
	services *shared.Services

	mode    mode
	focus   field
	name    textinput.Model
	pass    textinput.Model
	errText string

	width  int
	height int
}

// New creates a login model.
func New(services *shared.Services) Model {
	name := textinput.New()
	name.Placeholder = "author name"
	name.CharLimit = author.MaxNameLength
	name.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return Model{
		services: services,
		name:     name,
		pass:     pass,
	}
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
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m = m.cycleFocus(msg.String())
			return m, nil
		case "ctrl+r":
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.errText = ""
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldPassword:
		m.pass, cmd = m.pass.Update(msg)
	}
	return m, cmd
}

func (m Model) cycleFocus(key string) Model {
	if key == "shift+tab" || key == "up" {
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	} else {
		m.focus = (m.focus + 1) % fieldCount
	}
	if m.focus == fieldName {
		m.name.Focus()
		m.pass.Blur()
	} else {
		m.name.Blur()
		m.pass.Focus()
	}
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	nameValue := strings.TrimSpace(m.name.Value())
	password := m.pass.Value()

	if m.mode == modeRegister {
		a, err := m.services.Authors.Add(nameValue, password, author.RoleRegular)
		if err != nil {
			m.errText = err.Error()
			return m, nil
		}
		log.Info(log.CatUI, "author registered", "name", a.DisplayName())
		return m, func() tea.Msg { return shared.LoggedInMsg{Author: a} }
	}

	a, err := m.services.Authors.FindByName(nameValue)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	if a == nil || !a.CheckPassword(password) {
		m.errText = "unknown author or wrong password"
		m.pass.SetValue("")
		return m, nil
	}
	log.Info(log.CatUI, "author logged in", "name", a.DisplayName())
	return m, func() tea.Msg { return shared.LoggedInMsg{Author: a} }
}

// View renders the login form.
func (m Model) View() string {
	title := "quill · sign in"
	action := "enter: sign in · ctrl+r: switch to register"
	if m.mode == modeRegister {
		title = "quill · register"
		action = "enter: create account · ctrl+r: switch to sign in"
	}

	nameLabel := styles.LabelStyle.Render("Name")
	passLabel := styles.LabelStyle.Render("Password")
	if m.focus == fieldName {
		nameLabel = styles.FocusedLabelStyle.Render("Name")
	} else {
		passLabel = styles.FocusedLabelStyle.Render("Password")
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(nameLabel + "\n" + m.name.View() + "\n\n")
	b.WriteString(passLabel + "\n" + m.pass.View() + "\n")

	if m.errText != "" {
		b.WriteString("\n" + styles.ErrorStyle.Render(m.errText) + "\n")
	}

	b.WriteString("\n" + styles.SubtleStyle.Render(action))

	form := styles.FocusedPanelStyle.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return form
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}
