package search

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

type fixture struct {
	svc   *shared.Services
	lars  *author.Author
	lisa  *author.Author
	admin *author.Author
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg := config.Defaults()
	svc := &shared.Services{
		Authors: author.NewRegister(),
		Entries: entry.NewRegister(),
		Config:  &cfg,
		Keys:    keys.DefaultKeyMap(),
	}

	lars, err := svc.Authors.Add("Lars", "password123", author.RoleRegular)
	require.NoError(t, err)
	lisa, err := svc.Authors.Add("Lisa", "password123", author.RoleRegular)
	require.NoError(t, err)
	admin, err := svc.Authors.Add("admin", "admin123", author.RoleAdmin)
	require.NoError(t, err)

	add := func(a *author.Author, title, text string, at time.Time) {
		e, err := entry.New(a, title, text, at)
		require.NoError(t, err)
		require.NoError(t, svc.Entries.Add(e))
	}

	add(lars, "Morning pages", "coffee and garden sketches", time.Date(2025, 11, 8, 9, 0, 0, 0, time.Local))
	add(lars, "Evening review", "tomatoes on the south bed", time.Date(2025, 11, 8, 21, 30, 0, 0, time.Local))
	add(lisa, "Run log", "coffee first, then eight kilometers", time.Date(2025, 11, 9, 7, 15, 0, 0, time.Local))

	return fixture{svc: svc, lars: lars, lisa: lisa, admin: admin}
}

func query(m Model, text string) Model {
	m.input.SetValue(text)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestSearch_KeywordScopedToRequester(t *testing.T) {
	f := newFixture(t)

	m := New(f.svc, f.lars)
	m = query(m, "coffee")
	require.Len(t, m.results, 1)
	assert.Equal(t, "Morning pages", m.results[0].Title())

	m = New(f.svc, f.admin)
	m = query(m, "coffee")
	assert.Len(t, m.results, 2)
}

func TestSearch_KeywordNoMatches(t *testing.T) {
	f := newFixture(t)
	m := New(f.svc, f.lars)
	m = query(m, "zeppelin")

	assert.True(t, m.ran)
	assert.Empty(t, m.results)
	assert.Contains(t, ansi.Strip(m.View()), "No matching entries")
}

func TestSearch_DateMode(t *testing.T) {
	f := newFixture(t)
	m := New(f.svc, f.admin)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ModeDate, m.mode)

	m = query(m, "2025-11-08")
	assert.Len(t, m.results, 2)

	m = query(m, "2025-11-09")
	assert.Len(t, m.results, 1)
}

func TestSearch_DateModeRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	m := New(f.svc, f.lars)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m = query(m, "soonish")
	assert.Contains(t, m.errText, config.DateLayout)
	assert.False(t, m.ran)
}

func TestSearch_RangeModeHalfOpen(t *testing.T) {
	f := newFixture(t)
	m := New(f.svc, f.admin)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ModeRange, m.mode)

	// End bound is exclusive: the 21:30 entry is outside [09:00, 21:30).
	m = query(m, "2025-11-08 09:00 .. 2025-11-08 21:30")
	require.Len(t, m.results, 1)
	assert.Equal(t, "Morning pages", m.results[0].Title())

	m = query(m, "2025-11-08 09:00 .. 2025-11-09 08:00")
	assert.Len(t, m.results, 2)
}

func TestSearch_RangeModeRejectsInvertedInterval(t *testing.T) {
	f := newFixture(t)
	m := New(f.svc, f.lars)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m = query(m, "2025-11-09 00:00 .. 2025-11-08 00:00")
	assert.NotEmpty(t, m.errText)
	assert.False(t, m.ran)
}

func TestSearch_RangeModeRejectsMissingSeparator(t *testing.T) {
	f := newFixture(t)
	m := New(f.svc, f.lars)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m = query(m, "2025-11-08 09:00")
	assert.NotEmpty(t, m.errText)
}

func TestSearch_TabResetsResults(t *testing.T) {
	f := newFixture(t)
	m := New(f.svc, f.lars)
	m = query(m, "coffee")
	require.NotEmpty(t, m.results)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Empty(t, m.results)
	assert.False(t, m.ran)
}

func TestSearch_EscapeGoesBack(t *testing.T) {
	f := newFixture(t)
	m := New(f.svc, f.lars)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(shared.BackMsg)
	assert.True(t, ok)
}
