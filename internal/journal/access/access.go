// Package access applies role-based visibility to entry query results.
package access

import (
	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/journal/view"
)

// Filter returns the subset of entries the requester is authorized to see.
// Admins see the input unchanged; regular authors see only entries whose
// author ID equals their own; a nil requester sees nothing. Filter is a pure
// function with no state and must be re-evaluated per request.
func Filter(requester *author.Author, entries view.List[*entry.Entry]) view.List[*entry.Entry] {
	if requester == nil {
		return view.List[*entry.Entry]{}
	}
	if requester.Role().IsAdmin() {
		return entries
	}

	own := make([]*entry.Entry, 0, entries.Len())
	for e := range entries.All() {
		if e.AuthorID() == requester.ID() {
			own = append(own, e)
		}
	}
	return view.NewList(own)
}
