package compose

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okvern/quill/internal/config"
	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/keys"
	"github.com/okvern/quill/internal/ui/shared"
)

var testNow = time.Date(2025, 11, 8, 9, 0, 0, 0, time.UTC)

func newServices(t *testing.T) (*shared.Services, *author.Author) {
	t.Helper()

	cfg := config.Defaults()
	svc := &shared.Services{
		Authors: author.NewRegister(),
		Entries: entry.NewRegister(),
		Config:  &cfg,
		Keys:    keys.DefaultKeyMap(),
		Clock:   func() time.Time { return testNow },
	}
	lars, err := svc.Authors.Add("Lars", "password123", author.RoleRegular)
	require.NoError(t, err)
	return svc, lars
}

func typeText(m Model, text string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestCompose_PrefillsCurrentTimestamp(t *testing.T) {
	svc, lars := newServices(t)
	m := New(svc, lars, nil)
	assert.Equal(t, "2025-11-08 09:00", m.when.Value())
}

func TestCompose_CreateEntry(t *testing.T) {
	svc, lars := newServices(t)
	m := New(svc, lars, nil)

	m = typeText(m, "Morning pages")
	m, _ = press(m, tea.KeyTab) // when, keep prefilled
	m, _ = press(m, tea.KeyTab) // body
	m = typeText(m, "coffee and sketches")

	m, cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	assert.Empty(t, m.errText)
	require.Equal(t, 1, svc.Entries.Len())

	e := svc.Entries.All().At(0)
	assert.Equal(t, "Morning pages", e.Title())
	assert.Equal(t, "coffee and sketches", e.Text())
	assert.Equal(t, "Lars", e.AuthorName())
}

func TestCompose_RejectsBadTimestamp(t *testing.T) {
	svc, lars := newServices(t)
	m := New(svc, lars, nil)

	m = typeText(m, "Title")
	m, _ = press(m, tea.KeyTab)
	m.when.SetValue("yesterday-ish")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "text")

	m, _ = press(m, tea.KeyCtrlS)
	assert.Contains(t, m.errText, config.TimestampLayout)
	assert.Equal(t, 0, svc.Entries.Len())
}

func TestCompose_RejectsBlankTitle(t *testing.T) {
	svc, lars := newServices(t)
	m := New(svc, lars, nil)

	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "text only")

	m, _ = press(m, tea.KeyCtrlS)
	assert.NotEmpty(t, m.errText)
	assert.Equal(t, 0, svc.Entries.Len())
}

func TestCompose_EditShowsDiffBeforeApplying(t *testing.T) {
	svc, lars := newServices(t)
	e, err := entry.New(lars, "Run log", "eight kilometers", testNow)
	require.NoError(t, err)
	require.NoError(t, svc.Entries.Add(e))

	m := New(svc, lars, e)
	assert.Equal(t, "Run log", m.title.Value())
	assert.Equal(t, "eight kilometers", m.body.Value())

	m, _ = press(m, tea.KeyTab) // edit mode skips the timestamp field
	assert.Equal(t, fieldBody, m.focus)
	m = typeText(m, " before work")

	m, cmd := press(m, tea.KeyCtrlS)
	assert.Nil(t, cmd)
	require.True(t, m.confirming)
	diff := ansi.Strip(m.View())
	assert.Contains(t, diff, "{+ before work+}")
	assert.Equal(t, "eight kilometers", e.Text(), "entry unchanged until confirmed")

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	assert.False(t, m.confirming)
	assert.Equal(t, "eight kilometers before work", e.Text())
}

func TestCompose_EditDeclinedKeepsEntry(t *testing.T) {
	svc, lars := newServices(t)
	e, err := entry.New(lars, "Run log", "eight kilometers", testNow)
	require.NoError(t, err)
	require.NoError(t, svc.Entries.Add(e))

	m := New(svc, lars, e)
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, " extra")
	m, _ = press(m, tea.KeyCtrlS)
	require.True(t, m.confirming)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.False(t, m.confirming)
	assert.Equal(t, "eight kilometers", e.Text())
	assert.Equal(t, "eight kilometers extra", m.body.Value(), "form keeps the draft")
}

func TestCompose_EditWithoutChangesGoesBack(t *testing.T) {
	svc, lars := newServices(t)
	e, err := entry.New(lars, "Run log", "eight kilometers", testNow)
	require.NoError(t, err)
	require.NoError(t, svc.Entries.Add(e))

	m := New(svc, lars, e)
	m, cmd := press(m, tea.KeyCtrlS)
	assert.False(t, m.confirming)
	require.NotNil(t, cmd)
	_, ok := cmd().(shared.BackMsg)
	assert.True(t, ok)
}

func TestCompose_EscapeCancels(t *testing.T) {
	svc, lars := newServices(t)
	m := New(svc, lars, nil)

	_, cmd := press(m, tea.KeyEscape)
	require.NotNil(t, cmd)
	_, ok := cmd().(shared.BackMsg)
	assert.True(t, ok)
	assert.Equal(t, 0, svc.Entries.Len())
}
