// Package db provides SQLite storage for tracked window sessions.
package db

import (
	"strings"
	"time"
	"unicode"
)

// Session represents one contiguous observed interval of a window title.
// ID is assigned by the store and is zero until the row is persisted.
// Category is nil when the title matched no category rule.
type Session struct {
	ID        int64
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Category  *int
}

// NewSession builds a session with a normalized title.
func NewSession(title string, start, end time.Time, category *int) Session {
	return Session{
		Title:     NormalizeTitle(title),
		StartTime: start,
		EndTime:   end,
		Category:  category,
	}
}

// NormalizeTitle cuts the title at the first NUL terminator, strips control
// characters, and trims surrounding whitespace. Window enumeration hands back
// fixed-size buffers, so embedded NULs and stray control bytes are common.
func NormalizeTitle(title string) string {
	if i := strings.IndexByte(title, 0); i >= 0 {
		title = title[:i]
	}
	title = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, title)
	return strings.TrimSpace(title)
}
