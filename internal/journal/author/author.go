// Package author provides the author entity and its in-memory register.
//
// An author's identity is its immutable UUID; the display name can change
// over time but must stay unique under normalization. Passwords are opaque
// strings compared by plain equality, which is all the single-session design
// calls for.
package author

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/okvern/quill/internal/journal"
)

// MaxNameLength is the maximum display-name length in grapheme clusters,
// measured after normalization.
const MaxNameLength = 100

// MinPasswordLength is the minimum password length in bytes.
const MinPasswordLength = 4

// Role is the author's permission tier, fixed at creation. Role is explicit
// state rather than something inferred from the display name, so renaming an
// author never changes what they may see.
type Role string

const (
	// RoleRegular authors see only their own entries.
	RoleRegular Role = "regular"

	// RoleAdmin authors see every entry and may reset system state.
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is a recognized tier.
func (r Role) IsValid() bool {
	return r == RoleRegular || r == RoleAdmin
}

// IsAdmin reports whether the role grants unrestricted access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// diacritics strips combining marks after NFD decomposition, so that
// "Béatrice" and "Beatrice" collide on the same normalized key.
var diacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Author is a user identity capable of owning entries and authenticating.
// Fields are unexported; the ID, role, and creation time never change after
// construction.
type Author struct {
	id          uuid.UUID
	displayName string
	password    string
	role        Role
	createdAt   time.Time
	updatedAt   time.Time
}

// New validates inputs and constructs an author with a fresh UUID. The
// display name is stored in normalized-for-storage form (trimmed, internal
// whitespace collapsed); casing and diacritics are preserved for display.
func New(displayName, password string, role Role, now time.Time) (*Author, error) {
	name, err := NormalizeName(displayName)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, journal.Validationf("password", "must be at least %d characters", MinPasswordLength)
	}
	if !role.IsValid() {
		return nil, journal.Validationf("role", "unknown role %q", role)
	}
	return &Author{
		id:          uuid.New(),
		displayName: name,
		password:    password,
		role:        role,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// NormalizeName validates a display name and returns its storage form:
// trimmed, with internal whitespace runs collapsed to single spaces. The
// grapheme-cluster count of the result must not exceed MaxNameLength.
func NormalizeName(displayName string) (string, error) {
	collapsed := strings.Join(strings.Fields(displayName), " ")
	if collapsed == "" {
		return "", journal.Validationf("displayName", "must not be blank")
	}
	if uniseg.GraphemeClusterCount(collapsed) > MaxNameLength {
		return "", journal.Validationf("displayName", "must be %d characters or fewer", MaxNameLength)
	}
	return collapsed, nil
}

// NormalizedKey reduces a display name to the comparison form used for
// uniqueness and lookup: storage-normalized, case-folded, and
// diacritic-stripped. The key is never shown to users.
func NormalizedKey(displayName string) (string, error) {
	name, err := NormalizeName(displayName)
	if err != nil {
		return "", err
	}
	folded, _, err := transform.String(diacritics, strings.ToLower(name))
	if err != nil {
		// The chain only removes runes; it cannot fail on valid UTF-8.
		return strings.ToLower(name), nil
	}
	return folded, nil
}

// ID returns the author's immutable unique identifier.
func (a *Author) ID() uuid.UUID {
	return a.id
}

// DisplayName returns the author's current display name in storage form.
func (a *Author) DisplayName() string {
	return a.displayName
}

// Role returns the author's permission tier.
func (a *Author) Role() Role {
	return a.role
}

// CreatedAt returns the creation timestamp.
func (a *Author) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns the time of the last rename, or the creation time if the
// author was never renamed.
func (a *Author) UpdatedAt() time.Time {
	return a.updatedAt
}

// Key returns the author's current normalized comparison key.
func (a *Author) Key() string {
	key, _ := NormalizedKey(a.displayName)
	return key
}

// CheckPassword reports whether input matches the stored password.
func (a *Author) CheckPassword(input string) bool {
	return a.password == input
}

// Equal reports identity equality: two authors are the same iff their IDs
// match, regardless of name.
func (a *Author) Equal(other *Author) bool {
	return a != nil && other != nil && a.id == other.id
}

// rename updates the display name and refreshes the update timestamp. The
// register is responsible for uniqueness; this only validates shape.
func (a *Author) rename(newDisplayName string, now time.Time) error {
	name, err := NormalizeName(newDisplayName)
	if err != nil {
		return err
	}
	a.displayName = name
	a.updatedAt = now
	return nil
}

func (a *Author) String() string {
	return a.displayName + " (" + a.id.String() + ")"
}
