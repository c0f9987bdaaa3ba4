// Package shared holds the service bundle and messages passed between
// screens.
package shared

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/okvern/quill/internal/cachemanager"
	"github.com/okvern/quill/internal/config"
	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/keys"
	"github.com/okvern/quill/internal/markdown"
)

// Services bundles everything a screen needs. Built once at startup and
// passed by pointer so screens share the same registers and caches.
type Services struct {
	Authors  *author.Register
	Entries  *entry.Register
	Config   *config.Config
	Keys     keys.KeyMap
	Markdown *markdown.Renderer
	Renders  cachemanager.Manager[string]
	Clock    func() time.Time
}

// Now returns the current time, falling back to time.Now when no clock was
// injected.
func (s *Services) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// StatusKind classifies a status line message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// StatusMsg asks the root model to show a transient status line.
type StatusMsg struct {
	Kind StatusKind
	Text string
}

// Status returns a command that emits a StatusMsg.
func Status(kind StatusKind, text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Kind: kind, Text: text}
	}
}

// LoggedInMsg signals a successful login or registration.
type LoggedInMsg struct {
	Author *author.Author
}

// LoggedOutMsg signals that the session ended and the login screen should be
// shown again.
type LoggedOutMsg struct{}

// BackMsg asks the root model to return to the previous screen.
type BackMsg struct{}

// ComposeRequestedMsg asks the root model to open the compose screen. Edit is
// nil for a new entry.
type ComposeRequestedMsg struct {
	Edit *entry.Entry
}

// EntriesChangedMsg signals that entries were added, edited, or removed and
// any cached views should refresh.
type EntriesChangedMsg struct{}

// EntriesChanged returns a command that emits an EntriesChangedMsg.
func EntriesChanged() tea.Cmd {
	return func() tea.Msg {
		return EntriesChangedMsg{}
	}
}

// RenderKey builds the render-cache key for an entry at a given width.
func RenderKey(id uuid.UUID, width int) string {
	return id.String() + "@" + strconv.Itoa(width)
}
