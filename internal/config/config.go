package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "21:00"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue","Wed","Thu","Fri","Sat","Sun"]
	Holidays []string `mapstructure:"holidays"` // ["2025-01-26", "2025-08-15"]
	Timezone string   `mapstructure:"timezone"` // e.g. "Asia/Taipei" (optional)
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"` // json | sqlite
	Path    string `mapstructure:"path"`    // empty: ~/.local/share/diary/diary.{json,db}
}

type AutosaveConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Delay   time.Duration `mapstructure:"delay"`
}

type PlaceholderConfig struct {
	Mood string `mapstructure:"mood"`
	Body string `mapstructure:"body"`
}

type UpdateConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type NotificationsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	Theme         string              `mapstructure:"theme"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Autosave      AutosaveConfig      `mapstructure:"autosave"`
	Placeholders  PlaceholderConfig   `mapstructure:"placeholders"`
	Update        UpdateConfig        `mapstructure:"update"`
	Reminder      ReminderConfig      `mapstructure:"reminder"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Log           LogConfig           `mapstructure:"log"`
}

const DefaultUpdateURL = "https://raw.githubusercontent.com/ramanasai/diary/main/version.txt"

func Default() Config {
	return Config{
		Theme:   "default",
		Storage: StorageConfig{Backend: "json"},
		Autosave: AutosaveConfig{
			Enabled: true,
			Delay:   time.Second,
		},
		Placeholders: PlaceholderConfig{
			Mood: "(no mood)",
			Body: "(empty)",
		},
		Update: UpdateConfig{
			URL:     DefaultUpdateURL,
			Timeout: 5 * time.Second,
		},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "21:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
			Timezone: "",
		},
		Notifications: NotificationsConfig{Enabled: true},
		Log:           LogConfig{Level: "info"},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "diary")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DataDir is where the diary file and log live by default.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "diary"), nil
}

// Load reads ~/.config/diary/config.yaml (missing is fine) over the defaults.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the YAML config at path over the defaults. Environment
// variables prefixed DIARY_ override file values (DIARY_STORAGE_BACKEND).
func LoadFile(path string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("diary")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("theme", def.Theme)
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("autosave.enabled", def.Autosave.Enabled)
	v.SetDefault("autosave.delay", def.Autosave.Delay)
	v.SetDefault("placeholders.mood", def.Placeholders.Mood)
	v.SetDefault("placeholders.body", def.Placeholders.Body)
	v.SetDefault("update.url", def.Update.URL)
	v.SetDefault("update.timeout", def.Update.Timeout)
	v.SetDefault("reminder.enabled", def.Reminder.Enabled)
	v.SetDefault("reminder.time", def.Reminder.Time)
	v.SetDefault("reminder.workdays", def.Reminder.Workdays)
	v.SetDefault("reminder.holidays", def.Reminder.Holidays)
	v.SetDefault("reminder.timezone", def.Reminder.Timezone)
	v.SetDefault("notifications.enabled", def.Notifications.Enabled)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	_ = v.ReadInConfig() // ok if missing

	// decode into a zero value; mapstructure would merge lists into the defaults
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "json"
	}
	if cfg.Autosave.Delay <= 0 {
		cfg.Autosave.Delay = time.Second
	}
	if cfg.Update.Timeout <= 0 {
		cfg.Update.Timeout = 5 * time.Second
	}

	// normalize workdays
	for i, d := range cfg.Reminder.Workdays {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) >= 3 {
			d = d[:3]
		}
		if d != "" {
			d = strings.ToUpper(d[:1]) + d[1:]
		}
		cfg.Reminder.Workdays[i] = d
	}
	return cfg, nil
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}
