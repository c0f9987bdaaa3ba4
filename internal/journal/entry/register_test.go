package entry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/okvern/quill/internal/journal"
	"github.com/okvern/quill/internal/journal/author"
)

func mustEntry(t *testing.T, a *author.Author, title, text string, at time.Time) *Entry {
	t.Helper()
	e, err := New(a, title, text, at)
	require.NoError(t, err)
	return e
}

func at(hour, min, sec int) time.Time {
	return time.Date(2025, 11, 8, hour, min, sec, 0, time.UTC)
}

func TestRegister_Add(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")

	require.NoError(t, r.Add(mustEntry(t, lars, "t", "x", testNow)))
	require.Equal(t, 1, r.Len())

	err := r.Add(nil)
	require.True(t, journal.IsValidation(err))
	require.Equal(t, 1, r.Len(), "failed add must not change the register")
}

func TestRegister_Add_AcceptsDuplicateAuthorMinute(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")

	ts := at(9, 30, 0)
	require.NoError(t, r.Add(mustEntry(t, lars, "first", "x", ts)))
	require.NoError(t, r.Add(mustEntry(t, lars, "second", "y", ts)))
	require.Equal(t, 2, r.Len())
}

func TestRegister_All_CanonicalOrder(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")
	lisa := newAuthor(t, "Lisa")

	e2 := mustEntry(t, lars, "later", "x", at(10, 0, 0))
	e1 := mustEntry(t, lisa, "earlier", "x", at(9, 0, 0))
	require.NoError(t, r.Add(e2))
	require.NoError(t, r.Add(e1))

	all := r.All().Slice()
	require.Equal(t, []*Entry{e1, e2}, all, "ascending timestamp order")
}

func TestRegister_All_TieBrokenByAuthorID(t *testing.T) {
	r := NewRegister()
	a := newAuthor(t, "Lars")
	b := newAuthor(t, "Lisa")

	// Same instant for both entries; the smaller author ID string sorts first.
	ts := at(9, 0, 0)
	ea := mustEntry(t, a, "a", "x", ts)
	eb := mustEntry(t, b, "b", "x", ts)
	require.NoError(t, r.Add(ea))
	require.NoError(t, r.Add(eb))

	first := r.All().At(0)
	second := r.All().At(1)
	require.Less(t, first.AuthorID().String(), second.AuthorID().String())
}

func TestRegister_FindByDate(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")

	today := mustEntry(t, lars, "today", "x", at(9, 0, 0))
	lateToday := mustEntry(t, lars, "late", "x", at(23, 59, 59))
	tomorrow := mustEntry(t, lars, "tomorrow", "x", time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC))
	for _, e := range []*Entry{tomorrow, lateToday, today} {
		require.NoError(t, r.Add(e))
	}

	day := r.FindByDate(time.Date(2025, 11, 8, 15, 30, 0, 0, time.UTC))
	require.Equal(t, []*Entry{today, lateToday}, day.Slice())
}

func TestRegister_FindByDate_Idempotent(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")
	require.NoError(t, r.Add(mustEntry(t, lars, "t", "x", at(9, 0, 0))))

	d := time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)
	require.Equal(t, r.FindByDate(d).Slice(), r.FindByDate(d).Slice())
}

func TestRegister_FindBetween_HalfOpen(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")

	from := at(9, 0, 0)
	to := at(10, 0, 0)
	atFrom := mustEntry(t, lars, "at from", "x", from)
	inside := mustEntry(t, lars, "inside", "x", at(9, 30, 0))
	atTo := mustEntry(t, lars, "at to", "x", to)
	for _, e := range []*Entry{atTo, inside, atFrom} {
		require.NoError(t, r.Add(e))
	}

	got, err := r.FindBetween(from, to)
	require.NoError(t, err)
	require.Equal(t, []*Entry{atFrom, inside}, got.Slice(),
		"the from boundary is included and the to boundary excluded")
}

func TestRegister_FindBetween_InvalidInterval(t *testing.T) {
	r := NewRegister()

	_, err := r.FindBetween(at(10, 0, 0), at(9, 0, 0))
	require.True(t, journal.IsValidation(err))

	_, err = r.FindBetween(at(9, 0, 0), at(9, 0, 0))
	require.True(t, journal.IsValidation(err), "from == to is malformed")
}

// The concrete interval scenario from the system's acceptance checklist:
// entries at 09:00:30, 09:30:05 and 10:00:00; querying
// [09:30:00, 10:30:00) returns the last two, in order.
func TestRegister_FindBetween_ExactPrecision(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")
	lisa := newAuthor(t, "Lisa")

	early := mustEntry(t, lars, "early", "x", at(9, 0, 30))
	mid := mustEntry(t, lisa, "mid", "x", at(9, 30, 5))
	late := mustEntry(t, lars, "late", "x", at(10, 0, 0))
	for _, e := range []*Entry{late, early, mid} {
		require.NoError(t, r.Add(e))
	}

	got, err := r.FindBetween(at(9, 30, 0), at(10, 30, 0))
	require.NoError(t, err)
	require.Equal(t, []*Entry{mid, late}, got.Slice())
}

func TestRegister_FindByAuthor(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")
	lisa := newAuthor(t, "Lisa")

	mine := mustEntry(t, lars, "mine", "x", at(9, 0, 0))
	theirs := mustEntry(t, lisa, "theirs", "x", at(9, 30, 0))
	require.NoError(t, r.Add(mine))
	require.NoError(t, r.Add(theirs))

	got := r.FindByAuthor(lars.ID())
	require.Equal(t, []*Entry{mine}, got.Slice())
	require.Equal(t, 0, r.FindByAuthor(uuid.New()).Len())
}

func TestRegister_SearchByKeyword(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")

	inTitle := mustEntry(t, lars, "Morning Walk", "it rained", at(9, 0, 0))
	inText := mustEntry(t, lars, "later", "a long WALK home", at(10, 0, 0))
	neither := mustEntry(t, lars, "dinner", "pasta again", at(11, 0, 0))
	for _, e := range []*Entry{neither, inText, inTitle} {
		require.NoError(t, r.Add(e))
	}

	got := r.SearchByKeyword("walk")
	require.Equal(t, []*Entry{inTitle, inText}, got.Slice(),
		"case-insensitive match on title or text, canonical order")

	require.Equal(t, 0, r.SearchByKeyword("nothing matches this").Len())
	require.Equal(t, 0, r.SearchByKeyword("   ").Len(), "blank keyword returns empty, not an error")
}

func TestRegister_RemoveAndRoundTrip(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")

	e := mustEntry(t, lars, "A walk", "Went outside today.", at(9, 0, 0))
	require.NoError(t, r.Add(e))
	before := r.Len()

	fetched := r.FindByAuthor(lars.ID())
	require.Equal(t, 1, fetched.Len())
	got := fetched.At(0)
	require.Equal(t, "A walk", got.Title())
	require.Equal(t, "Went outside today.", got.Text())
	require.Equal(t, at(9, 0, 0), got.OccurredAt())
	require.Equal(t, lars.ID(), got.AuthorID())

	require.True(t, r.Remove(e.ID()))
	require.Equal(t, before-1, r.Len())
	for remaining := range r.All().All() {
		require.NotEqual(t, e.ID(), remaining.ID())
	}

	require.False(t, r.Remove(e.ID()), "removing twice reports false")
	require.False(t, r.Remove(uuid.New()))
}

func TestRegister_CountByAuthor(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")
	lisa := newAuthor(t, "Lisa")

	require.NoError(t, r.Add(mustEntry(t, lars, "a", "x", at(9, 0, 0))))
	require.NoError(t, r.Add(mustEntry(t, lars, "b", "x", at(10, 0, 0))))
	require.NoError(t, r.Add(mustEntry(t, lisa, "c", "x", at(11, 0, 0))))

	require.Equal(t, 2, r.CountByAuthor(lars.ID()))
	require.Equal(t, 1, r.CountByAuthor(lisa.ID()))
	require.Equal(t, 0, r.CountByAuthor(uuid.New()))
}

func TestRegister_Clear(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")
	require.NoError(t, r.Add(mustEntry(t, lars, "a", "x", at(9, 0, 0))))

	r.Clear()
	require.Equal(t, 0, r.Len())
	require.Equal(t, 0, r.All().Len())
}

func TestRegister_SnapshotsDetached(t *testing.T) {
	r := NewRegister()
	lars := newAuthor(t, "Lars")
	require.NoError(t, r.Add(mustEntry(t, lars, "a", "x", at(9, 0, 0))))

	snapshot := r.All()
	require.NoError(t, r.Add(mustEntry(t, lars, "b", "y", at(10, 0, 0))))

	require.Equal(t, 1, snapshot.Len(), "a snapshot must not see later mutations")
	require.Equal(t, 2, r.All().Len())
}
