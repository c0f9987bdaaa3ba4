package entry

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okvern/quill/internal/journal"
	"github.com/okvern/quill/internal/journal/view"
)

// Register is the authoritative in-memory store of diary entries. Every
// list-returning query reuses the single canonical order — ascending
// timestamp, ties broken by ascending author ID — so output is always
// deterministic. One RWMutex guards the backing slice per snapshot or
// mutation; author lookups are resolved before entering a critical section.
type Register struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewRegister creates an empty entry register.
func NewRegister() *Register {
	return &Register{}
}

// less is the canonical entry comparator.
func less(a, b *Entry) bool {
	if !a.OccurredAt().Equal(b.OccurredAt()) {
		return a.OccurredAt().Before(b.OccurredAt())
	}
	return a.AuthorID().String() < b.AuthorID().String()
}

// Add appends a validated entry. Duplicate (author, timestamp) pairs are
// accepted; the register imposes no uniqueness constraint.
func (r *Register) Add(e *Entry) error {
	if e == nil {
		return journal.Validationf("entry", "must not be nil")
	}
	if e.AuthorID() == uuid.Nil {
		return journal.Validationf("entry", "author must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

// FindByDate returns every entry whose timestamp falls on the same calendar
// date as date, in canonical order.
func (r *Register) FindByDate(date time.Time) view.List[*Entry] {
	y, m, d := date.Date()
	return r.filtered(func(e *Entry) bool {
		ey, em, ed := e.OccurredAt().Date()
		return ey == y && em == m && ed == d
	})
}

// FindBetween returns entries in the half-open interval [from, to): an entry
// timestamped exactly at from is included, one exactly at to is excluded.
// Comparison is at exact precision. from must be strictly before to.
func (r *Register) FindBetween(from, to time.Time) (view.List[*Entry], error) {
	if !from.Before(to) {
		return view.List[*Entry]{}, journal.Validationf("interval", "from must be before to")
	}
	return r.filtered(func(e *Entry) bool {
		t := e.OccurredAt()
		return !t.Before(from) && t.Before(to)
	}), nil
}

// FindByAuthor returns the given author's entries in canonical order.
func (r *Register) FindByAuthor(authorID uuid.UUID) view.List[*Entry] {
	return r.filtered(func(e *Entry) bool {
		return e.AuthorID() == authorID
	})
}

// SearchByKeyword returns entries whose title or text contains keyword,
// case-insensitively, in canonical order. A blank keyword yields an empty
// list rather than an error.
func (r *Register) SearchByKeyword(keyword string) view.List[*Entry] {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return view.List[*Entry]{}
	}
	return r.filtered(func(e *Entry) bool {
		return strings.Contains(strings.ToLower(e.Title()), needle) ||
			strings.Contains(strings.ToLower(e.Text()), needle)
	})
}

// Remove deletes the entry with the given ID and reports whether one
// existed.
func (r *Register) Remove(entryID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID() == entryID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// CountByAuthor returns how many entries the author owns.
func (r *Register) CountByAuthor(authorID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, e := range r.entries {
		if e.AuthorID() == authorID {
			count++
		}
	}
	return count
}

// All returns every entry in canonical order.
func (r *Register) All() view.List[*Entry] {
	return r.filtered(func(*Entry) bool { return true })
}

// Len returns the number of stored entries.
func (r *Register) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear empties the register.
func (r *Register) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// filtered snapshots the entries matching keep, sorted canonically.
func (r *Register) filtered(keep func(*Entry) bool) view.List[*Entry] {
	r.mu.RLock()
	out := make([]*Entry, 0)
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return view.NewList(out)
}
