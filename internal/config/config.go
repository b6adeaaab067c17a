package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/time-manager/internal/lunch"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root configuration for tm, stored in ~/.tm/config.json.
// The file supports single-line // comments for documentation purposes.
// YAML and TOML files are accepted as well, chosen by extension.
type Config struct {
	// DailyWorkHours is the daily target, e.g. 8.4 for 8:24.
	DailyWorkHours float64 `json:"daily_work_hours" yaml:"daily_work_hours" toml:"daily_work_hours"`
	// WorkingDaysPerWeek multiplies the daily target into the weekly one.
	WorkingDaysPerWeek int `json:"working_days_per_week" yaml:"working_days_per_week" toml:"working_days_per_week"`
	// Language selects the portal's labels and the output strings (fr, en, de).
	Language string `json:"language" yaml:"language" toml:"language"`
	// RowsToConvertToDays lists summary rows whose hours are shown as days.
	RowsToConvertToDays []string `json:"rows_to_convert_to_days" yaml:"rows_to_convert_to_days" toml:"rows_to_convert_to_days"`
	// RowsToRemove lists summary rows hidden from the page.
	RowsToRemove []string `json:"rows_to_remove" yaml:"rows_to_remove" toml:"rows_to_remove"`
	// LunchBreak is the lunch policy.
	LunchBreak LunchBreakConfig `json:"lunch_break" yaml:"lunch_break" toml:"lunch_break"`
	// RefreshSeconds is the watch interval.
	RefreshSeconds int `json:"refresh_seconds" yaml:"refresh_seconds" toml:"refresh_seconds"`
	// PunchMarker is the word that identifies punch entries on the timeline.
	PunchMarker string `json:"punch_marker" yaml:"punch_marker" toml:"punch_marker"`
	// Portal holds the live-fetch settings.
	Portal PortalConfig `json:"portal" yaml:"portal" toml:"portal"`
}

// LunchBreakConfig mirrors lunch.Policy with file tags.
type LunchBreakConfig struct {
	StartHour              int `json:"start_hour" yaml:"start_hour" toml:"start_hour"`
	EndHour                int `json:"end_hour" yaml:"end_hour" toml:"end_hour"`
	MinimumDurationMinutes int `json:"minimum_duration_minutes" yaml:"minimum_duration_minutes" toml:"minimum_duration_minutes"`
}

// Policy converts the configured lunch break.
func (l LunchBreakConfig) Policy() lunch.Policy {
	return lunch.Policy{
		StartHour:              l.StartHour,
		EndHour:                l.EndHour,
		MinimumDurationMinutes: l.MinimumDurationMinutes,
	}
}

// PortalConfig holds the time-tracking portal URL and its OAuth2 endpoints.
type PortalConfig struct {
	// URL is the attendance page fetched when no --page is given.
	URL string `json:"url" yaml:"url" toml:"url"`
	// ClientID is the OAuth2 client used for the device code flow.
	ClientID string `json:"client_id" yaml:"client_id" toml:"client_id"`
	// DeviceAuthURL and TokenURL are the identity provider endpoints.
	DeviceAuthURL string `json:"device_auth_url" yaml:"device_auth_url" toml:"device_auth_url"`
	TokenURL      string `json:"token_url" yaml:"token_url" toml:"token_url"`
	// Scopes requested at login.
	Scopes []string `json:"scopes" yaml:"scopes" toml:"scopes"`
}

const (
	// DefaultDailyWorkHours is 8:24 per day.
	DefaultDailyWorkHours = 8.4
	// DefaultWorkingDays is a five-day week.
	DefaultWorkingDays = 5
	// DefaultLanguage is the portal's language.
	DefaultLanguage = "fr"
	// DefaultRefreshSeconds matches the page's one-minute refresh.
	DefaultRefreshSeconds = 60
	// DefaultPunchMarker is the French timeline label of a punch.
	DefaultPunchMarker = "Horodatage"
)

// Default returns a Config pre-filled with sensible defaults.
func Default() Config {
	return Config{
		DailyWorkHours:      DefaultDailyWorkHours,
		WorkingDaysPerWeek:  DefaultWorkingDays,
		Language:            DefaultLanguage,
		RowsToConvertToDays: []string{},
		RowsToRemove:        []string{},
		LunchBreak: LunchBreakConfig{
			StartHour:              11,
			EndHour:                14,
			MinimumDurationMinutes: 30,
		},
		RefreshSeconds: DefaultRefreshSeconds,
		PunchMarker:    DefaultPunchMarker,
		Portal: PortalConfig{
			Scopes: []string{"openid", "offline_access"},
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// tm configuration: ~/.tm/config.json
//
// All settings are optional; the defaults below match the portal's
// standard contract. YAML (.yaml) and TOML (.toml) files with the same keys
// can be passed with --config instead.
{
  // Daily target in decimal hours (1–12). 8.4 = 8:24.
  "daily_work_hours": 8.4,

  // Working days per week (1–7); weekly target = daily × days.
  "working_days_per_week": 5,

  // Portal and output language: "fr", "en" or "de".
  "language": "fr",

  // Summary rows whose hour balance is shown in days instead.
  "rows_to_convert_to_days": [],

  // Summary rows hidden from the rendered page.
  "rows_to_remove": [],

  // ── Lunch break policy ────────────────────────────────────────────────────
  // When the punches show less than minimum_duration_minutes of break
  // between start_hour and end_hour, the shortfall is credited back.
  "lunch_break": {
    "start_hour": 11,
    "end_hour": 14,
    "minimum_duration_minutes": 30
  },

  // Seconds between two passes of "tm watch".
  "refresh_seconds": 60,

  // Word that marks punch entries on the event timeline.
  "punch_marker": "Horodatage",

  // ── Live portal access (optional) ─────────────────────────────────────────
  "portal": {
    "url": "",
    "client_id": "",
    "device_auth_url": "",
    "token_url": "",
    "scopes": ["openid", "offline_access"]
  }
}
`

// FilePath returns the path to ~/.tm/config.json.
func FilePath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config at path (the default file when path is empty),
// creating the default file with annotated defaults on first run, applies
// environment overrides and validates the result. On any error the built-in
// defaults are returned alongside it so callers can carry on.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := FilePath()
		if err != nil {
			return Default(), err
		}
		path = p
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// First run: write the annotated template so users can discover options.
			if writeErr := writeDefault(path); writeErr != nil {
				return Default(), fmt.Errorf("creating config file %s: %w", path, writeErr)
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := decode(path, data)
	if err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Default(), err
	}
	fillDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// decode unmarshals data over the defaults so omitted keys keep their
// default while explicit zeros are preserved.
func decode(path string, data []byte) (Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(stripLineComments(data), &cfg)
	}
	return cfg, err
}

// fillDefaults replaces zero values that can never be meant literally.
func fillDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.RefreshSeconds <= 0 {
		cfg.RefreshSeconds = DefaultRefreshSeconds
	}
	if cfg.PunchMarker == "" {
		cfg.PunchMarker = DefaultPunchMarker
	}
	if cfg.RowsToConvertToDays == nil {
		cfg.RowsToConvertToDays = []string{}
	}
	if cfg.RowsToRemove == nil {
		cfg.RowsToRemove = []string{}
	}
}

// Validate applies the same bounds as the settings form.
func (c Config) Validate() error {
	var problems []string
	if c.DailyWorkHours < 1 || c.DailyWorkHours > 12 {
		problems = append(problems, "daily_work_hours must be between 1 and 12")
	}
	if c.WorkingDaysPerWeek < 1 || c.WorkingDaysPerWeek > 7 {
		problems = append(problems, "working_days_per_week must be between 1 and 7")
	}
	if c.LunchBreak.StartHour < 0 || c.LunchBreak.EndHour > 24 {
		problems = append(problems, "lunch_break hours must be within 0 and 24")
	}
	if c.LunchBreak.StartHour >= c.LunchBreak.EndHour {
		problems = append(problems, "lunch_break.start_hour must be before end_hour")
	}
	if c.LunchBreak.MinimumDurationMinutes < 0 || c.LunchBreak.MinimumDurationMinutes > lunch.MaxMinimumMinutes {
		problems = append(problems, fmt.Sprintf("lunch_break.minimum_duration_minutes must be between 0 and %d", lunch.MaxMinimumMinutes))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Save writes cfg to path in the format implied by its extension.
func Save(path string, cfg Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		data, err = toml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	return writeFile(path, data)
}

// Reset deletes the config at path so the defaults apply again. A missing
// file is not an error.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing config file %s: %w", path, err)
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	return writeFile(path, []byte(configTemplate))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving config file: %w", err)
	}
	return nil
}
