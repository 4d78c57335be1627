// Package track turns per-tick window snapshots into continuous stored
// sessions. Each sampling tick reconciles the currently visible titles
// against the previous tick: a title seen on consecutive ticks keeps its
// original start_time so the store extends one row instead of inserting many.
package track

import (
	"context"
	"time"

	"go.uber.org/zap"

	"windowlog/internal/config"
	"windowlog/internal/db"
)

// Source enumerates currently visible window titles, most relevant first,
// truncated to at most max titles.
type Source interface {
	OpenWindows(max int) ([]string, error)
}

// Store is the write half of the session store used by the tracker.
type Store interface {
	InsertOrExtend(db.Session) error
}

// Tracker stitches tick snapshots into sessions.
type Tracker struct {
	store   Store
	rules   []config.CategoryRule
	horizon time.Duration
	log     *zap.SugaredLogger
}

// New creates a Tracker. horizon is the provisional activity padding added to
// end_time on every observation.
func New(store Store, rules []config.CategoryRule, horizon time.Duration, log *zap.SugaredLogger) *Tracker {
	return &Tracker{store: store, rules: rules, horizon: horizon, log: log}
}

// Categorize resolves a title against the rules in order and returns the
// category of the first rule with a matching keyword, or nil.
func Categorize(rules []config.CategoryRule, title string) *int {
	for _, rule := range rules {
		if rule.Match(title) {
			c := rule.Category
			return &c
		}
	}
	return nil
}

// Reconcile processes one tick snapshot. For every distinct observed title it
// upserts a session whose start_time is carried over from prev when the title
// was also visible on the last tick, and whose end_time is now plus the
// horizon. The returned map becomes prev for the next tick.
//
// A store failure for one title is logged and skips only that title; its next
// observation starts a fresh session. Titles missing from observed are
// dropped from the tracked map without touching their stored rows.
func (t *Tracker) Reconcile(observed []string, now time.Time, prev map[string]db.Session) map[string]db.Session {
	next := make(map[string]db.Session, len(observed))

	for _, raw := range observed {
		title := db.NormalizeTitle(raw)
		if title == "" {
			continue
		}
		if _, done := next[title]; done {
			continue
		}

		sess := db.NewSession(title, now, now.Add(t.horizon), Categorize(t.rules, title))
		if tracked, ok := prev[title]; ok {
			sess.StartTime = tracked.StartTime
			sess.Category = tracked.Category
		}

		if err := t.store.InsertOrExtend(sess); err != nil {
			t.log.Warnw("persist session", "title", title, "error", err)
			continue
		}
		next[title] = sess
	}

	return next
}

// Loop drives the sampling schedule: a one-minute ticker whose fires only
// trigger a reconcile when the wall-clock minute is configured. Strictly
// sequential; the tracked map is owned by this goroutine.
type Loop struct {
	tracker *Tracker
	source  Source
	minutes map[int]bool
	maxOpen int
	log     *zap.SugaredLogger
}

// NewLoop builds the sampling loop. minutes are the wall-clock minute offsets
// that trigger a tick; maxOpen caps how many titles are read per tick.
func NewLoop(tracker *Tracker, source Source, minutes []int, maxOpen int, log *zap.SugaredLogger) *Loop {
	set := make(map[int]bool, len(minutes))
	for _, m := range minutes {
		set[m] = true
	}
	return &Loop{tracker: tracker, source: source, minutes: set, maxOpen: maxOpen, log: log}
}

// Run blocks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	tracked := make(map[string]db.Session)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if !l.minutes[now.Minute()] {
				continue
			}
			tracked = l.tick(now, tracked)
		}
	}
}

func (l *Loop) tick(now time.Time, tracked map[string]db.Session) map[string]db.Session {
	titles, err := l.source.OpenWindows(l.maxOpen)
	if err != nil {
		l.log.Warnw("enumerate windows", "error", err)
		return tracked
	}
	next := l.tracker.Reconcile(titles, now, tracked)
	l.log.Debugw("tick", "observed", len(titles), "tracked", len(next))
	return next
}
