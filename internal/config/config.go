// Package config loads and persists the settings file. A missing or malformed
// file is recovered by writing defaults back to disk.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultPath is the settings file created in the working directory.
const DefaultPath = "settings.json"

// CategoryRule assigns a category to titles containing any of its keywords.
// Rules are evaluated in file order; the first match wins.
type CategoryRule struct {
	Name     string   `json:"project_name"`
	Keywords []string `json:"keywords"`
	Category int      `json:"category"`
}

// Match reports whether the title matches this rule. Matching is
// case-insensitive substring on each keyword, in keyword order.
func (r CategoryRule) Match(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range r.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Settings holds all knobs read by the tracker and the report.
type Settings struct {
	TopWindows     int            `json:"top_windows_to_save"`
	SaveMinutes    []int          `json:"minutes_to_save"`
	HorizonMinutes int            `json:"horizon_minutes"`
	BucketMinutes  []int          `json:"bucket_minutes"`
	TitleLength    int            `json:"window_title_length"`
	Projects       []CategoryRule `json:"projects"`
}

// ConfigError reports a settings file that could not be parsed. Load recovers
// from it by regenerating defaults; it is surfaced only so callers can log
// that the file was replaced.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Default returns the settings written on first run.
func Default() Settings {
	return Settings{
		TopWindows:     5,
		SaveMinutes:    []int{5, 20, 35, 50},
		HorizonMinutes: 15,
		BucketMinutes:  []int{5, 20, 35, 50},
		TitleLength:    20,
		Projects:       []CategoryRule{},
	}
}

// Load reads settings from path. A missing file is created with defaults. A
// malformed file is overwritten with defaults and reported as a *ConfigError
// alongside the usable default settings.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		settings := Default()
		return settings, Save(path, settings)
	}
	if err != nil {
		return Default(), &ConfigError{Path: path, Err: err}
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		fallback := Default()
		if saveErr := Save(path, fallback); saveErr != nil {
			return fallback, saveErr
		}
		return fallback, &ConfigError{Path: path, Err: err}
	}

	settings.normalize()
	return settings, nil
}

// Save writes settings to path as indented JSON.
func Save(path string, settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// normalize fills zero-valued fields with defaults and drops minute offsets
// outside 0-59.
func (s *Settings) normalize() {
	def := Default()
	if s.TopWindows <= 0 {
		s.TopWindows = def.TopWindows
	}
	if s.HorizonMinutes <= 0 {
		s.HorizonMinutes = def.HorizonMinutes
	}
	if s.TitleLength <= 0 {
		s.TitleLength = def.TitleLength
	}
	s.SaveMinutes = clampMinutes(s.SaveMinutes, def.SaveMinutes)
	s.BucketMinutes = clampMinutes(s.BucketMinutes, def.BucketMinutes)
}

func clampMinutes(minutes, fallback []int) []int {
	var valid []int
	for _, m := range minutes {
		if m >= 0 && m <= 59 {
			valid = append(valid, m)
		}
	}
	if len(valid) == 0 {
		return fallback
	}
	return valid
}
