// Package app is the live dashboard: a bubbletea program rendering today's
// timeline and reloading it from the store on a fixed interval. It only ever
// reads; the sampling loop in another process owns the writes.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"windowlog/internal/config"
	"windowlog/internal/db"
	"windowlog/internal/report"
	"windowlog/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

const reloadInterval = 30 * time.Second

// ReportStore is the read half of the session store used by the dashboard.
type ReportStore interface {
	SessionsOnDate(date time.Time) ([]db.Session, error)
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	store    ReportStore
	settings config.Settings

	rendered     string
	sessionCount int
	errorMessage string

	width  int
	height int
}

// New creates a dashboard over the given store.
func New(store ReportStore, settings config.Settings) Model {
	return Model{store: store, settings: settings}
}

// Init loads the first report and starts the reload timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadReportCmd(m.store, m.settings), reloadTickCmd())
}

// loadReportCmd queries today's sessions and renders the timeline.
func loadReportCmd(store ReportStore, settings config.Settings) tea.Cmd {
	return func() tea.Msg {
		today := time.Now()
		sessions, err := store.SessionsOnDate(today)
		if err != nil {
			return ReportErrorMsg{Err: err}
		}
		rendered := report.Timeline(sessions, today, report.Options{
			BucketMinutes: settings.BucketMinutes,
			Horizon:       time.Duration(settings.HorizonMinutes) * time.Minute,
			TitleLength:   settings.TitleLength,
			Palette:       ui.DefaultPalette(),
		})
		return ReportLoadedMsg{Rendered: rendered, Count: len(sessions)}
	}
}

func reloadTickCmd() tea.Cmd {
	return tea.Tick(reloadInterval, func(t time.Time) tea.Msg {
		return ReloadTickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, loadReportCmd(m.store, m.settings)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ReloadTickMsg:
		return m, tea.Batch(loadReportCmd(m.store, m.settings), reloadTickCmd())

	case ReportLoadedMsg:
		m.rendered = msg.Rendered
		m.sessionCount = msg.Count
		m.errorMessage = ""

	case ReportErrorMsg:
		m.errorMessage = msg.Err.Error()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	header := ui.HeaderStyle.Render(
		fmt.Sprintf("windowlog — %s", time.Now().Format("Mon Jan 2 15:04")),
	)

	body := m.rendered
	if m.errorMessage != "" {
		body = ui.ErrorStyle.Render("error: " + m.errorMessage)
	} else if body == "" {
		body = ui.DimStyle.Render("no activity recorded today")
	}

	footer := ui.DimStyle.Render(
		fmt.Sprintf("%d sessions • r reload • q quit", m.sessionCount),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}
