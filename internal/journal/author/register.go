package author

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okvern/quill/internal/journal"
	"github.com/okvern/quill/internal/journal/view"
)

// Register is the authoritative in-memory store of author identities and the
// arbiter of display-name uniqueness. A single RWMutex guards the backing
// map for the duration of one snapshot or mutation; no lock is ever held
// across registers.
type Register struct {
	mu      sync.RWMutex
	authors map[uuid.UUID]*Author
	now     func() time.Time
}

// Option configures a Register.
type Option func(*Register)

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(r *Register) {
		r.now = now
	}
}

// NewRegister creates an empty author register.
func NewRegister(opts ...Option) *Register {
	r := &Register{
		authors: make(map[uuid.UUID]*Author),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add validates and stores a new author. Duplicate display names are
// permitted at add time; uniqueness is enforced only by Rename. An empty
// role defaults to RoleAdmin when the normalized name is exactly "admin"
// (mirroring the original two-tier convention) and RoleRegular otherwise.
func (r *Register) Add(displayName, password string, role Role) (*Author, error) {
	if role == "" {
		key, err := NormalizedKey(displayName)
		if err != nil {
			return nil, err
		}
		if key == "admin" {
			role = RoleAdmin
		} else {
			role = RoleRegular
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := New(displayName, password, role, r.now())
	if err != nil {
		return nil, err
	}
	r.authors[a.ID()] = a
	return a, nil
}

// GetByID returns the author with the given ID, or nil if unknown.
func (r *Register) GetByID(id uuid.UUID) *Author {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.authors[id]
}

// GetAll returns a read-only snapshot of every author, sorted by normalized
// display name and then by ID.
func (r *Register) GetAll() view.List[*Author] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return view.NewList(r.sortedLocked())
}

// FindByName returns the author whose name matches displayName under
// normalization, or nil if none does. When duplicates exist the author with
// the smallest ID wins, so repeated lookups are deterministic.
func (r *Register) FindByName(displayName string) (*Author, error) {
	key, err := NormalizedKey(displayName)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *Author
	for _, a := range r.authors {
		if a.Key() != key {
			continue
		}
		if found == nil || a.ID().String() < found.ID().String() {
			found = a
		}
	}
	return found, nil
}

// Rename changes an author's display name, preserving identity. It fails
// with journal.ErrNotFound for an unknown ID and journal.ErrConflict when
// another author already normalizes to the same key; on failure the stored
// name is unchanged.
func (r *Register) Rename(id uuid.UUID, newDisplayName string) (*Author, error) {
	key, err := NormalizedKey(newDisplayName)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.authors[id]
	if !ok {
		return nil, fmt.Errorf("rename author %s: %w", id, journal.ErrNotFound)
	}
	for _, other := range r.authors {
		if other.ID() != id && other.Key() == key {
			return nil, fmt.Errorf("author named %q: %w", newDisplayName, journal.ErrConflict)
		}
	}
	if err := a.rename(newDisplayName, r.now()); err != nil {
		return nil, err
	}
	return a, nil
}

// Remove deletes the author with the given ID. It reports whether an author
// was removed. Entries owned by the author are intentionally left in place.
func (r *Register) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.authors[id]; !ok {
		return false
	}
	delete(r.authors, id)
	return true
}

// ClearExceptAdmin removes every author without the admin role. It is the
// author half of a privileged system reset and touches no entry data.
func (r *Register) ClearExceptAdmin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.authors {
		if !a.Role().IsAdmin() {
			delete(r.authors, id)
		}
	}
}

// Len returns the number of registered authors.
func (r *Register) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.authors)
}

// sortedLocked returns the authors ordered by (normalized key, ID). Callers
// must hold at least the read lock.
func (r *Register) sortedLocked() []*Author {
	out := make([]*Author, 0, len(r.authors))
	for _, a := range r.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := out[i].Key(), out[j].Key()
		if ki != kj {
			return ki < kj
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out
}
