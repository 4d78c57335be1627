package app

import "time"

// ReportLoadedMsg carries a freshly rendered timeline.
type ReportLoadedMsg struct {
	Rendered string
	Count    int
}

// ReportErrorMsg is sent when loading or rendering the report fails.
type ReportErrorMsg struct {
	Err error
}

// ReloadTickMsg fires periodically to refresh the report from the store.
type ReloadTickMsg time.Time
