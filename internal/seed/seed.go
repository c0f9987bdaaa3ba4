// Package seed populates the registers with demo data for the --demo flag.
package seed

import (
	"fmt"
	"time"

	"github.com/okvern/quill/internal/journal/author"
	"github.com/okvern/quill/internal/journal/entry"
	"github.com/okvern/quill/internal/log"
)

// Demo account credentials. Shown on the login screen in demo mode.
const (
	DemoPassword  = "password123"
	AdminName     = "admin"
	AdminPassword = "admin123"
)

type demoEntry struct {
	author string
	at     string // "2006-01-02 15:04"
	title  string
	text   string
}

var demoAuthors = []string{"Lars", "Lisa"}

var demoEntries = []demoEntry{
	{
		author: "Lars",
		at:     "2025-11-08 09:00",
		title:  "Morning pages",
		text:   "Slept badly but the coffee was good. Started sketching the garden plan again, third attempt this year.",
	},
	{
		author: "Lars",
		at:     "2025-11-08 21:30",
		title:  "Evening review",
		text:   "Finished the garden sketch. Tomatoes go on the south bed this time.",
	},
	{
		author: "Lisa",
		at:     "2025-11-08 09:30",
		title:  "Run log",
		text:   "Eight kilometers along the river before work. Cold air, clear head.",
	},
	{
		author: "Lisa",
		at:     "2025-11-09 18:15",
		title:  "Bread experiment",
		text:   "Second rye loaf came out dense again. Next time longer proof and a hotter oven.",
	},
}

// Load creates the demo authors, an admin account, and a handful of entries
// with fixed timestamps. It is idempotent for a fresh register only; calling
// it twice creates duplicate authors.
func Load(authors *author.Register, entries *entry.Register) error {
	byName := make(map[string]*author.Author, len(demoAuthors)+1)

	for _, name := range demoAuthors {
		a, err := authors.Add(name, DemoPassword, author.RoleRegular)
		if err != nil {
			return fmt.Errorf("seed author %s: %w", name, err)
		}
		byName[name] = a
	}

	if _, err := authors.Add(AdminName, AdminPassword, author.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	for _, d := range demoEntries {
		at, err := time.ParseInLocation("2006-01-02 15:04", d.at, time.Local)
		if err != nil {
			return fmt.Errorf("seed entry %q: %w", d.title, err)
		}
		e, err := entry.New(byName[d.author], d.title, d.text, at)
		if err != nil {
			return fmt.Errorf("seed entry %q: %w", d.title, err)
		}
		if err := entries.Add(e); err != nil {
			return fmt.Errorf("seed entry %q: %w", d.title, err)
		}
	}

	log.Info(log.CatSeed, "demo data loaded", "authors", authors.Len(), "entries", entries.Len())
	return nil
}
