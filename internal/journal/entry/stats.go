package entry

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/okvern/quill/internal/journal/view"
)

// Statistics is an aggregate word-count summary over a set of entries.
// Longest and Shortest break ties by encounter order: the first entry seen
// with the extreme word count wins.
type Statistics struct {
	Entries  int
	Words    int
	Average  int // integer division Words/Entries
	Longest  *Entry
	Shortest *Entry
}

// Summarize computes statistics over the entries in order. A nil Longest and
// Shortest (and zero counts) mean the set was empty.
func Summarize(entries view.List[*Entry]) Statistics {
	var s Statistics
	for e := range entries.All() {
		words := e.WordCount()
		s.Entries++
		s.Words += words
		if s.Longest == nil || words > s.Longest.WordCount() {
			s.Longest = e
		}
		if s.Shortest == nil || words < s.Shortest.WordCount() {
			s.Shortest = e
		}
	}
	if s.Entries > 0 {
		s.Average = s.Words / s.Entries
	}
	return s
}

// StatisticsFor computes statistics over a single author's entries.
func (r *Register) StatisticsFor(authorID uuid.UUID) Statistics {
	return Summarize(r.FindByAuthor(authorID))
}

// StatisticsAll computes statistics over every entry in the register.
func (r *Register) StatisticsAll() Statistics {
	return Summarize(r.All())
}

// String renders the fixed statistics block, or a no-statistics message for
// an empty set.
func (s Statistics) String() string {
	if s.Entries == 0 {
		return "No statistics available - no entries found."
	}

	var b strings.Builder
	b.WriteString("--- Diary Statistics ---\n")
	fmt.Fprintf(&b, "Total entries: %d\n", s.Entries)
	fmt.Fprintf(&b, "Total word count: %d\n", s.Words)
	fmt.Fprintf(&b, "Average word count: %d\n", s.Average)
	fmt.Fprintf(&b, "Longest entry: %s (%d words)\n", s.Longest.Title(), s.Longest.WordCount())
	fmt.Fprintf(&b, "Shortest entry: %s (%d words)\n", s.Shortest.Title(), s.Shortest.WordCount())
	return b.String()
}
