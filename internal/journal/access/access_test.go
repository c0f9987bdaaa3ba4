package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/journal/view"
)

var testNow = time.Date(2025, 11, 8, 9, 0, 0, 0, time.UTC)

func newAuthor(t *testing.T, name string, role author.Role) *author.Author {
	t.Helper()
	a, err := author.New(name, "password123", role, testNow)
	require.NoError(t, err)
	return a
}

func newEntry(t *testing.T, a *author.Author, title string) *entry.Entry {
	t.Helper()
	e, err := entry.New(a, title, "some text", testNow)
	require.NoError(t, err)
	return e
}

func TestFilter_AdminSeesEverything(t *testing.T) {
	admin := newAuthor(t, "admin", author.RoleAdmin)
	lars := newAuthor(t, "Lars", author.RoleRegular)

	entries := view.NewList([]*entry.Entry{
		newEntry(t, lars, "lars 1"),
		newEntry(t, admin, "admin 1"),
	})

	got := Filter(admin, entries)
	require.Equal(t, entries.Slice(), got.Slice(), "admin gets the input unchanged")
}

func TestFilter_RegularSeesOnlyOwn(t *testing.T) {
	lars := newAuthor(t, "Lars", author.RoleRegular)
	lisa := newAuthor(t, "Lisa", author.RoleRegular)

	mine := newEntry(t, lars, "mine")
	entries := view.NewList([]*entry.Entry{
		mine,
		newEntry(t, lisa, "not mine"),
	})

	got := Filter(lars, entries)
	require.Equal(t, []*entry.Entry{mine}, got.Slice())
}

func TestFilter_MatchesByIdentityNotName(t *testing.T) {
	// Two authors with the same display name: each sees only their own entry.
	first := newAuthor(t, "Lars", author.RoleRegular)
	second := newAuthor(t, "Lars", author.RoleRegular)

	firstEntry := newEntry(t, first, "first's entry")
	secondEntry := newEntry(t, second, "second's entry")
	entries := view.NewList([]*entry.Entry{firstEntry, secondEntry})

	require.Equal(t, []*entry.Entry{firstEntry}, Filter(first, entries).Slice())
	require.Equal(t, []*entry.Entry{secondEntry}, Filter(second, entries).Slice())
}

func TestFilter_NilRequesterSeesNothing(t *testing.T) {
	lars := newAuthor(t, "Lars", author.RoleRegular)
	entries := view.NewList([]*entry.Entry{newEntry(t, lars, "x")})

	require.Equal(t, 0, Filter(nil, entries).Len())
}

func TestFilter_EmptyInput(t *testing.T) {
	lars := newAuthor(t, "Lars", author.RoleRegular)
	require.Equal(t, 0, Filter(lars, view.List[*entry.Entry]{}).Len())
}
