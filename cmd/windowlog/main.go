package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"windowlog/internal/app"
	"windowlog/internal/config"
	"windowlog/internal/db"
	"windowlog/internal/logging"
	"windowlog/internal/report"
	"windowlog/internal/source"
	"windowlog/internal/track"
	"windowlog/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	dbPath     string
	configPath string
	debug      bool
)

func main() {
	root := &cobra.Command{
		Use:   "windowlog",
		Short: "Track which windows are open and report where the day went",
		Long: "windowlog samples visible window titles on a fixed schedule, stitches them\n" +
			"into sessions in a local SQLite database, and renders a per-day timeline.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				fmt.Fprintf(os.Stderr, "unrecognized arguments %v, assuming query\n", args)
			}
			return runQuery(time.Now())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&dbPath, "db", db.DefaultPath, "path to the SQLite database")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the settings file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Start the sampling loop",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLoop()
			},
		},
		&cobra.Command{
			Use:   "query [YYYY-MM-DD]",
			Short: "Render the timeline for a date (default today)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				date := time.Now()
				if len(args) == 1 {
					var err error
					if date, err = db.ParseDate(args[0]); err != nil {
						return err
					}
				}
				return runQuery(date)
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Open the live dashboard",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWatch()
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings(log func(format string, args ...any)) config.Settings {
	settings, err := config.Load(configPath)
	if err != nil {
		// Defaults were regenerated; the tool stays usable.
		log("settings problem: %v (using defaults)", err)
	}
	return settings
}

func runLoop() error {
	logger, err := logging.New(debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	settings := loadSettings(logger.Warnf)

	store, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	horizon := time.Duration(settings.HorizonMinutes) * time.Minute
	tracker := track.New(store, settings.Projects, horizon, logger)
	loop := track.NewLoop(tracker, source.WMCtrl{}, settings.SaveMinutes, settings.TopWindows, logger)

	logger.Infow("sampling loop started",
		"minutes", settings.SaveMinutes,
		"horizon", horizon,
		"db", dbPath,
	)
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("sampling loop stopped")
	return nil
}

func runQuery(date time.Time) error {
	settings := loadSettings(func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	})

	store, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.SessionsOnDate(date)
	if err != nil {
		return err
	}

	fmt.Printf("%s — %d sessions\n", date.Format(db.DateLayout), len(sessions))
	fmt.Print(report.Timeline(sessions, date, report.Options{
		BucketMinutes: settings.BucketMinutes,
		Horizon:       time.Duration(settings.HorizonMinutes) * time.Minute,
		TitleLength:   settings.TitleLength,
		Palette:       ui.DefaultPalette(),
	}))
	return nil
}

func runWatch() error {
	settings := loadSettings(func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	})

	store, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	p := tea.NewProgram(app.New(store, settings), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
