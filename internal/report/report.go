// Package report renders a day's sessions as a bucketized timeline. Each row
// is one time bucket; each column is one title, padded to a fixed width and
// colored by category. Consecutive rows keep a title in the same column for
// as long as it stays present, so the output reads as swimlanes rather than a
// reshuffled list per row.
package report

import (
	"sort"
	"strings"
	"time"

	"windowlog/internal/db"
	"windowlog/internal/ui"
)

// Options controls bucketing and rendering.
type Options struct {
	// BucketMinutes are the minute offsets within each hour that form the
	// bucket grid. Deduplicated and sorted before use.
	BucketMinutes []int
	// Horizon is the end_time padding applied when sessions were recorded.
	// Bucket comparison is against the observed span, so the padding is
	// subtracted back out of end_time.
	Horizon time.Duration
	// TitleLength is the exact rendered cell width in codepoints.
	TitleLength int
	Palette     ui.Palette
}

// Row is one rendered bucket: its grid time and the titles occupying it, in
// column order.
type Row struct {
	Bucket   time.Time
	Sessions []db.Session
}

// BucketTimes builds the grid for one date: every hour crossed with the
// configured minute offsets, ascending. The grid is rebuilt per report run
// and never persisted.
func BucketTimes(date time.Time, minutes []int) []time.Time {
	offsets := dedupSorted(minutes)
	year, month, day := date.Date()

	grid := make([]time.Time, 0, 24*len(offsets))
	for hour := 0; hour < 24; hour++ {
		for _, m := range offsets {
			grid = append(grid, time.Date(year, month, day, hour, m, 0, 0, date.Location()))
		}
	}
	return grid
}

// Layout assigns sessions to every bucket their observed span covers and
// orders each row's columns for stability against the previous non-empty
// row. Empty buckets are skipped and do not reset the ordering, so a title
// returning after a gap lands back in its old column.
func Layout(sessions []db.Session, buckets []time.Time, horizon time.Duration) []Row {
	var rows []Row
	var prevTitles []string

	for _, bucket := range buckets {
		var current []db.Session
		for _, sess := range sessions {
			if occupies(sess, bucket, horizon) {
				current = append(current, sess)
			}
		}
		if len(current) == 0 {
			continue
		}

		ordered := stableOrder(prevTitles, current)
		rows = append(rows, Row{Bucket: bucket, Sessions: ordered})

		prevTitles = prevTitles[:0]
		for _, sess := range ordered {
			prevTitles = append(prevTitles, sess.Title)
		}
	}
	return rows
}

// occupies reports whether the bucket falls inside the session's observed
// span: from the first tick through the last tick, with the horizon padding
// stripped off end_time.
func occupies(sess db.Session, bucket time.Time, horizon time.Duration) bool {
	lastSeen := sess.EndTime.Add(-horizon)
	return !bucket.Before(sess.StartTime) && !bucket.After(lastSeen)
}

// stableOrder lays out one row's sessions against the previous row's title
// order. Titles surviving from the previous row keep their column; a dropped
// title's column is refilled from the remaining sessions in their original
// order; leftovers are appended in original order.
func stableOrder(prevTitles []string, current []db.Session) []db.Session {
	remaining := make([]db.Session, len(current))
	copy(remaining, current)

	ordered := make([]db.Session, 0, len(current))
	for _, title := range prevTitles {
		if len(remaining) == 0 {
			break
		}
		idx := 0
		for i, sess := range remaining {
			if sess.Title == title {
				idx = i
				break
			}
		}
		ordered = append(ordered, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return append(ordered, remaining...)
}

// Timeline renders the full report for one date.
func Timeline(sessions []db.Session, date time.Time, opts Options) string {
	rows := Layout(sessions, BucketTimes(date, opts.BucketMinutes), opts.Horizon)

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(renderRow(row, opts))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderRow formats one bucket row: the HH:MM label followed by fixed-width,
// optionally colored title cells.
func renderRow(row Row, opts Options) string {
	parts := make([]string, 0, len(row.Sessions)+1)
	parts = append(parts, ui.RowLabelStyle.Render(row.Bucket.Format("15:04")))
	for _, sess := range row.Sessions {
		cell := PadTitle(sess.Title, opts.TitleLength)
		if sess.Category != nil {
			cell = opts.Palette.Style(*sess.Category).Render(cell)
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, "  ")
}

// PadTitle truncates or pads the title to exactly width codepoints.
func PadTitle(title string, width int) string {
	runes := []rune(title)
	if len(runes) > width {
		return string(runes[:width])
	}
	return string(runes) + strings.Repeat(" ", width-len(runes))
}

func dedupSorted(minutes []int) []int {
	seen := make(map[int]bool, len(minutes))
	var out []int
	for _, m := range minutes {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Ints(out)
	return out
}
