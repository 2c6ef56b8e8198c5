// Package daemon manages the Memoir daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/memoir-app/memoir/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	User          UserConfig          `toml:"user"`
	API           APIConfig           `toml:"api"`
	Storage       StorageConfig       `toml:"storage"`
	Goals         GoalsConfig         `toml:"goals"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// UserConfig identifies the local profile. All stored data is scoped
// by this ID.
type UserConfig struct {
	ID string `toml:"id"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	Metrics     bool     `toml:"metrics"`
}

// StorageConfig controls where the database lives.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// GoalsConfig seeds the initial study-time targets in hours. The
// stored preferences win once the user changes them.
type GoalsConfig struct {
	DailyHours   float64 `toml:"daily_hours"`
	WeeklyHours  float64 `toml:"weekly_hours"`
	MonthlyHours float64 `toml:"monthly_hours"`
	TotalHours   float64 `toml:"total_hours"`
}

// NotificationsConfig controls desktop notification delivery.
type NotificationsConfig struct {
	Desktop    bool   `toml:"desktop"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := memoirHome()
	goals := domain.DefaultGoals()
	quiet := domain.DefaultNotificationPolicy()
	return Config{
		User: UserConfig{
			ID: "local",
		},
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7600,
			CORSOrigins: []string{"*"},
			Metrics:     true,
		},
		Storage: StorageConfig{
			Dir: filepath.Join(homeDir, "data"),
		},
		Goals: GoalsConfig{
			DailyHours:   goals.DailyHours,
			WeeklyHours:  goals.WeeklyHours,
			MonthlyHours: goals.MonthlyHours,
			TotalHours:   goals.TotalHours,
		},
		Notifications: NotificationsConfig{
			Desktop:    true,
			QuietStart: quiet.QuietStart,
			QuietEnd:   quiet.QuietEnd,
		},
	}
}

// LoadConfig reads config from ~/.memoir/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(memoirHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.memoir/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(memoirHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// memoirHome returns the Memoir data directory.
func memoirHome() string {
	if env := os.Getenv("MEMOIR_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".memoir")
}

// MemoirHome is exported for use by other packages.
func MemoirHome() string {
	return memoirHome()
}

// Policy converts the notification settings into a policy value.
func (n NotificationsConfig) Policy() domain.NotificationPolicy {
	policy := domain.DefaultNotificationPolicy()
	if n.QuietStart != "" {
		policy.QuietStart = n.QuietStart
	}
	if n.QuietEnd != "" {
		policy.QuietEnd = n.QuietEnd
	}
	return policy
}

// GoalSet converts the seed goal settings into a goal set.
func (g GoalsConfig) GoalSet() domain.GoalSet {
	return domain.GoalSet{
		DailyHours:   g.DailyHours,
		WeeklyHours:  g.WeeklyHours,
		MonthlyHours: g.MonthlyHours,
		TotalHours:   g.TotalHours,
	}
}
