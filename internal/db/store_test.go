package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// openTestStore creates a store backed by a temp-dir SQLite file.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func intPtr(n int) *int { return &n }

func TestInsertOrExtendInsertsNewRow(t *testing.T) {
	store := openTestStore(t)

	start := time.Date(2024, 3, 5, 10, 5, 0, 0, time.Local)
	sess := NewSession("Editor - main.go", start, start.Add(15*time.Minute), intPtr(2))

	if err := store.InsertOrExtend(sess); err != nil {
		t.Fatalf("InsertOrExtend: %v", err)
	}

	sessions, err := store.SessionsOnDate(start)
	if err != nil {
		t.Fatalf("SessionsOnDate: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	got := sessions[0]
	if got.ID == 0 {
		t.Error("expected assigned ID, got 0")
	}
	if got.Title != "Editor - main.go" {
		t.Errorf("title = %q, want %q", got.Title, "Editor - main.go")
	}
	if !got.StartTime.Equal(start) {
		t.Errorf("start = %v, want %v", got.StartTime, start)
	}
	if got.Category == nil || *got.Category != 2 {
		t.Errorf("category = %v, want 2", got.Category)
	}
}

func TestInsertOrExtendUpdatesOnlyEndTime(t *testing.T) {
	store := openTestStore(t)

	start := time.Date(2024, 3, 5, 10, 5, 0, 0, time.Local)
	first := NewSession("Browser", start, start.Add(15*time.Minute), intPtr(1))
	if err := store.InsertOrExtend(first); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Same identity, later end, different category: only end_time may change.
	later := NewSession("Browser", start, start.Add(30*time.Minute), nil)
	if err := store.InsertOrExtend(later); err != nil {
		t.Fatalf("extend: %v", err)
	}

	sessions, err := store.SessionsOnDate(start)
	if err != nil {
		t.Fatalf("SessionsOnDate: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	got := sessions[0]
	if !got.EndTime.Equal(start.Add(30 * time.Minute)) {
		t.Errorf("end = %v, want %v", got.EndTime, start.Add(30*time.Minute))
	}
	if got.Category == nil || *got.Category != 1 {
		t.Errorf("category = %v, want original 1", got.Category)
	}
}

func TestInsertOrExtendDistinctStartTimes(t *testing.T) {
	store := openTestStore(t)

	first := time.Date(2024, 3, 5, 10, 5, 0, 0, time.Local)
	second := first.Add(30 * time.Minute)

	if err := store.InsertOrExtend(NewSession("Terminal", first, first.Add(15*time.Minute), nil)); err != nil {
		t.Fatalf("insert first: %v", err)
	}
	if err := store.InsertOrExtend(NewSession("Terminal", second, second.Add(15*time.Minute), nil)); err != nil {
		t.Fatalf("insert second: %v", err)
	}

	sessions, err := store.SessionsOnDate(first)
	if err != nil {
		t.Fatalf("SessionsOnDate: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2 distinct rows", len(sessions))
	}
}

func TestSessionsOnDateFiltersByDay(t *testing.T) {
	store := openTestStore(t)

	monday := time.Date(2024, 3, 4, 23, 50, 0, 0, time.Local)
	tuesday := time.Date(2024, 3, 5, 0, 5, 0, 0, time.Local)

	store.InsertOrExtend(NewSession("Late", monday, monday.Add(15*time.Minute), nil))
	store.InsertOrExtend(NewSession("Early", tuesday, tuesday.Add(15*time.Minute), nil))

	sessions, err := store.SessionsOnDate(tuesday)
	if err != nil {
		t.Fatalf("SessionsOnDate: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0].Title != "Early" {
		t.Errorf("title = %q, want %q", sessions[0].Title, "Early")
	}
}

func TestSessionsOnDateEmpty(t *testing.T) {
	store := openTestStore(t)

	sessions, err := store.SessionsOnDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("SessionsOnDate: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("got %d sessions, want 0", len(sessions))
	}
}

func TestTimeRoundTrip(t *testing.T) {
	orig := time.Date(2024, 3, 5, 10, 5, 30, 123456789, time.Local)
	got, err := ParseTime(orig.Format(TimeLayout))
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	if !got.Equal(orig) {
		t.Errorf("got %v, want %v", got, orig)
	}
}

func TestParseTimeMalformed(t *testing.T) {
	_, err := ParseTime("yesterday lunchtime")
	if err == nil {
		t.Fatal("expected error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error type = %T, want *ParseError", err)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-05")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseDate("05/03/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain title", "plain title"},
		{"buffer tail\x00garbage", "buffer tail"},
		{"tab\there", "tabhere"},
		{"  padded  ", "padded"},
		{"\x00", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
