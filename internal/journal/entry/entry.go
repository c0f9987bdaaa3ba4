// Package entry provides the diary entry entity and its in-memory register.
package entry

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/okvern/quill/internal/journal"
	"github.com/okvern/quill/internal/journal/author"
)

// MaxTitleLength is the maximum title length in runes after trimming.
const MaxTitleLength = 200

// MaxTextLength is the maximum text length in runes after trimming.
const MaxTextLength = 10_000

// Entry is a single diary record. The ID, owning author, and timestamp are
// immutable after creation; title and text can be updated through the
// validating setters. The author display name is a snapshot taken at
// creation so entries stay readable after their author is removed.
type Entry struct {
	id         uuid.UUID
	authorID   uuid.UUID
	authorName string
	occurredAt time.Time
	title      string
	text       string
}

// New validates the inputs and constructs an entry with a fresh UUID. The
// timestamp is stored at exact precision; the register never truncates.
func New(a *author.Author, title, text string, occurredAt time.Time) (*Entry, error) {
	if a == nil {
		return nil, journal.Validationf("author", "must not be nil")
	}
	if occurredAt.IsZero() {
		return nil, journal.Validationf("occurredAt", "must not be zero")
	}
	t, err := validateField("title", title, MaxTitleLength)
	if err != nil {
		return nil, err
	}
	x, err := validateField("text", text, MaxTextLength)
	if err != nil {
		return nil, err
	}
	return &Entry{
		id:         uuid.New(),
		authorID:   a.ID(),
		authorName: a.DisplayName(),
		occurredAt: occurredAt,
		title:      t,
		text:       x,
	}, nil
}

// validateField trims value and rejects blank or over-long results.
func validateField(field, value string, maxRunes int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", journal.Validationf(field, "must not be blank")
	}
	if utf8.RuneCountInString(trimmed) > maxRunes {
		return "", journal.Validationf(field, "must be %d characters or fewer", maxRunes)
	}
	return trimmed, nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() uuid.UUID {
	return e.id
}

// AuthorID returns the owning author's identifier.
func (e *Entry) AuthorID() uuid.UUID {
	return e.authorID
}

// AuthorName returns the owning author's display name as it was when the
// entry was created.
func (e *Entry) AuthorName() string {
	return e.authorName
}

// OccurredAt returns the entry's immutable timestamp.
func (e *Entry) OccurredAt() time.Time {
	return e.occurredAt
}

// Title returns the entry title.
func (e *Entry) Title() string {
	return e.title
}

// SetTitle replaces the title after validation.
func (e *Entry) SetTitle(title string) error {
	t, err := validateField("title", title, MaxTitleLength)
	if err != nil {
		return err
	}
	e.title = t
	return nil
}

// Text returns the entry body.
func (e *Entry) Text() string {
	return e.text
}

// SetText replaces the body after validation.
func (e *Entry) SetText(text string) error {
	x, err := validateField("text", text, MaxTextLength)
	if err != nil {
		return err
	}
	e.text = x
	return nil
}

// WordCount returns the number of whitespace-delimited tokens in the text.
func (e *Entry) WordCount() int {
	return len(strings.Fields(e.text))
}

// String renders the entry in the fixed console block format.
func (e *Entry) String() string {
	return "[" + e.occurredAt.Format("2006-01-02 15:04") + "] " + e.authorName + "\n" + e.title + "\n" + e.text
}
