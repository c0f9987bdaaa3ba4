// Package app contains the root Bubble Tea model and screen routing.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/okvern/quill/internal/config"
	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/log"
	"github.com/okvern/quill/internal/ui/authors"
	"github.com/okvern/quill/internal/ui/browse"
	"github.com/okvern/quill/internal/ui/compose"
	"github.com/okvern/quill/internal/ui/login"
	"github.com/okvern/quill/internal/ui/search"
	"github.com/okvern/quill/internal/ui/shared"
	"github.com/okvern/quill/internal/ui/stats"
	"github.com/okvern/quill/internal/ui/styles"
)

type screen int

const (
	screenLogin screen = iota
	screenMenu
	screenBrowse
	screenCompose
	screenSearch
	screenStats
	screenAuthors
)

// menuItem is one selectable action on the menu screen.
type menuItem struct {
	label  string
	target screen
	admin  bool
	logout bool
	quit   bool
}

var menuItems = []menuItem{
	{label: "Browse entries", target: screenBrowse},
	{label: "Write new entry", target: screenCompose},
	{label: "Search", target: screenSearch},
	{label: "Statistics", target: screenStats},
	{label: "Manage authors", target: screenAuthors, admin: true},
	{label: "Log out", logout: true},
	{label: "Quit", quit: true},
}

// Options configures the root model.
type Options struct {
	Services   *shared.Services
	ConfigPath string
	Tracer     trace.Tracer

	// ConfigReloads delivers a signal whenever the config file changed on
	// disk. Nil disables hot reload.
	ConfigReloads <-chan struct{}
	// ReloadConfig re-reads the config file. Required when ConfigReloads
	// is set.
	ReloadConfig func() (*config.Config, error)
}

type configReloadedMsg struct{}

type clearStatusMsg struct{}

// Model is the root application model.
type Model struct {
	opts     Options
	services *shared.Services

	screen  screen
	current *author.Author
	menuSel int

	login   login.Model
	browse  browse.Model
	compose compose.Model
	search  search.Model
	stats   stats.Model
	authors authors.Model

	status     string
	statusKind shared.StatusKind

	width  int
	height int
}

// New creates the root model on the login screen.
func New(opts Options) Model {
	return Model{
		opts:     opts,
		services: opts.Services,
		screen:   screenLogin,
		login:    login.New(opts.Services),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.login.Init()}
	if m.opts.ConfigReloads != nil {
		cmds = append(cmds, m.waitForReload())
	}
	return tea.Batch(cmds...)
}

func (m Model) waitForReload() tea.Cmd {
	ch := m.opts.ConfigReloads
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return configReloadedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.propagateSize(), nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == screenMenu {
			return m.updateMenu(msg)
		}
		if msg.String() == "w" && (m.screen == screenStats || m.screen == screenAuthors) {
			return m.toggleStatusBar()
		}

	case configReloadedMsg:
		return m.applyConfigReload()

	case shared.StatusMsg:
		m.status = msg.Text
		m.statusKind = msg.Kind
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case shared.LoggedInMsg:
		return m.startSession(msg.Author)

	case shared.LoggedOutMsg:
		return m.endSession()

	case shared.BackMsg:
		if m.screen == screenLogin || m.screen == screenMenu {
			return m, nil
		}
		m.screen = screenMenu
		return m, nil

	case shared.ComposeRequestedMsg:
		m.compose = compose.New(m.services, m.current, msg.Edit).SetSize(m.width, m.height)
		m.screen = screenCompose
		return m, m.compose.Init()

	case shared.EntriesChangedMsg:
		m.span("entries.changed")
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.browse, cmd = m.browse.Update(msg)
		cmds = append(cmds, cmd)
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	return m.updateScreen(msg)
}

func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenLogin:
		m.login, cmd = m.login.Update(msg)
	case screenBrowse:
		m.browse, cmd = m.browse.Update(msg)
	case screenCompose:
		m.compose, cmd = m.compose.Update(msg)
	case screenSearch:
		m.search, cmd = m.search.Update(msg)
	case screenStats:
		m.stats, cmd = m.stats.Update(msg)
	case screenAuthors:
		m.authors, cmd = m.authors.Update(msg)
	}
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.visibleMenuItems()

	switch msg.String() {
	case "k", "up":
		if m.menuSel > 0 {
			m.menuSel--
		}
	case "j", "down":
		if m.menuSel < len(items)-1 {
			m.menuSel++
		}
	case "w":
		return m.toggleStatusBar()
	case "q":
		return m, tea.Quit
	case "enter":
		return m.openMenuItem(items[m.menuSel])
	}
	return m, nil
}

func (m Model) visibleMenuItems() []menuItem {
	isAdmin := m.current != nil && m.current.Role().IsAdmin()
	items := make([]menuItem, 0, len(menuItems))
	for _, it := range menuItems {
		if it.admin && !isAdmin {
			continue
		}
		items = append(items, it)
	}
	return items
}

func (m Model) openMenuItem(it menuItem) (tea.Model, tea.Cmd) {
	switch {
	case it.quit:
		return m, tea.Quit
	case it.logout:
		return m.endSession()
	}

	switch it.target {
	case screenBrowse:
		m.browse = browse.New(m.services, m.current).SetSize(m.width, m.height)
		m.screen = screenBrowse
		return m, m.browse.Init()
	case screenCompose:
		m.compose = compose.New(m.services, m.current, nil).SetSize(m.width, m.height)
		m.screen = screenCompose
		return m, m.compose.Init()
	case screenSearch:
		m.search = search.New(m.services, m.current).SetSize(m.width, m.height)
		m.screen = screenSearch
		return m, m.search.Init()
	case screenStats:
		m.stats = stats.New(m.services, m.current).SetSize(m.width, m.height)
		m.screen = screenStats
		return m, m.stats.Init()
	case screenAuthors:
		m.authors = authors.New(m.services, m.current).SetSize(m.width, m.height)
		m.screen = screenAuthors
		return m, m.authors.Init()
	}
	return m, nil
}

func (m Model) startSession(a *author.Author) (tea.Model, tea.Cmd) {
	m.current = a
	m.screen = screenMenu
	m.menuSel = 0
	m.span("session.login", attribute.String("author", a.DisplayName()))
	return m, shared.Status(shared.StatusSuccess, "signed in as "+a.DisplayName())
}

func (m Model) endSession() (tea.Model, tea.Cmd) {
	if m.current != nil {
		m.span("session.logout", attribute.String("author", m.current.DisplayName()))
	}
	m.current = nil
	m.screen = screenLogin
	m.login = login.New(m.services).SetSize(m.width, m.height)
	return m, m.login.Init()
}

func (m Model) toggleStatusBar() (tea.Model, tea.Cmd) {
	m.services.Config.UI.ShowStatusBar = !m.services.Config.UI.ShowStatusBar

	if m.opts.ConfigPath != "" {
		if err := config.SaveUI(m.opts.ConfigPath, m.services.Config.UI); err != nil {
			log.ErrorErr(log.CatConfig, "failed to save ui config", err)
			return m, shared.Status(shared.StatusError, "could not save config")
		}
	}
	return m, nil
}

func (m Model) applyConfigReload() (tea.Model, tea.Cmd) {
	if m.opts.ReloadConfig == nil {
		return m, m.waitForReload()
	}

	cfg, err := m.opts.ReloadConfig()
	if err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", err)
		return m, tea.Batch(m.waitForReload(),
			shared.Status(shared.StatusError, "config reload failed"))
	}

	*m.services.Config = *cfg
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Highlight: cfg.Theme.Highlight,
		Subtle:    cfg.Theme.Subtle,
		Error:     cfg.Theme.Error,
		Success:   cfg.Theme.Success,
	}); err != nil {
		log.ErrorErr(log.CatConfig, "invalid theme in reloaded config", err)
		return m, tea.Batch(m.waitForReload(),
			shared.Status(shared.StatusError, err.Error()))
	}
	if m.services.Renders != nil {
		m.services.Renders.Flush()
	}

	log.Info(log.CatConfig, "config reloaded")
	return m, tea.Batch(m.waitForReload(),
		shared.Status(shared.StatusInfo, "config reloaded"))
}

func (m Model) propagateSize() Model {
	m.login = m.login.SetSize(m.width, m.height)
	m.browse = m.browse.SetSize(m.width, m.height)
	m.compose = m.compose.SetSize(m.width, m.height)
	m.search = m.search.SetSize(m.width, m.height)
	m.stats = m.stats.SetSize(m.width, m.height)
	m.authors = m.authors.SetSize(m.width, m.height)
	return m
}

// span records a zero-duration span marking an application event.
func (m Model) span(name string, attrs ...attribute.KeyValue) {
	if m.opts.Tracer == nil {
		return
	}
	_, s := m.opts.Tracer.Start(context.Background(), name)
	s.SetAttributes(attrs...)
	s.End()
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenLogin:
		body = m.login.View()
	case screenMenu:
		body = m.viewMenu()
	case screenBrowse:
		body = m.browse.View()
	case screenCompose:
		body = m.compose.View()
	case screenSearch:
		body = m.search.View()
	case screenStats:
		body = m.stats.View()
	case screenAuthors:
		body = m.authors.View()
	}

	var footer []string
	if m.status != "" {
		switch m.statusKind {
		case shared.StatusError:
			footer = append(footer, styles.ErrorStyle.Render(m.status))
		case shared.StatusSuccess:
			footer = append(footer, styles.SuccessStyle.Render(m.status))
		default:
			footer = append(footer, styles.SubtleStyle.Render(m.status))
		}
	}
	if m.services.Config != nil && m.services.Config.UI.ShowStatusBar {
		footer = append(footer, styles.StatusBarStyle.Render(m.statusBar()))
	}

	if len(footer) == 0 {
		return body
	}
	return body + "\n" + strings.Join(footer, "\n")
}

func (m Model) statusBar() string {
	who := "not signed in"
	if m.current != nil {
		who = m.current.DisplayName() + " (" + string(m.current.Role()) + ")"
	}
	parts := []string{who}
	if m.current != nil {
		count := m.services.Entries.CountByAuthor(m.current.ID())
		noun := "entries"
		if count == 1 {
			noun = "entry"
		}
		parts = append(parts, fmt.Sprintf("%d %s", count, noun))
	}
	return strings.Join(parts, " · ")
}

func (m Model) viewMenu() string {
	items := m.visibleMenuItems()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("quill"))
	if m.current != nil {
		b.WriteString(styles.SubtleStyle.Render("  " + m.current.DisplayName()))
	}
	b.WriteString("\n\n")

	for i, it := range items {
		if i == m.menuSel {
			b.WriteString(styles.SelectedStyle.Render("> " + it.label))
		} else {
			b.WriteString("  " + it.label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render("j/k: move · enter: open · w: status bar · q: quit"))
	return b.String()
}
