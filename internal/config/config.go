package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type TimerConfig struct {
	FocusMinutes int `mapstructure:"focus_minutes"`
	ShortMinutes int `mapstructure:"short_minutes"`
	LongMinutes  int `mapstructure:"long_minutes"`
	// MinSeconds is the shortest session worth recording. Stops at or
	// below this are discarded.
	MinSeconds int `mapstructure:"min_seconds"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type AIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type YouTubeConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type ReminderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Time    string `mapstructure:"time"` // "17:00"
}

type Config struct {
	Timezone string         `mapstructure:"timezone"` // e.g. "Asia/Kolkata" (optional)
	DBPath   string         `mapstructure:"db_path"`  // optional override
	Timer    TimerConfig    `mapstructure:"timer"`
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	YouTube  YouTubeConfig  `mapstructure:"youtube"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

func Default() Config {
	return Config{
		Timer: TimerConfig{
			FocusMinutes: 25,
			ShortMinutes: 5,
			LongMinutes:  15,
			MinSeconds:   60,
		},
		Server:   ServerConfig{Addr: "127.0.0.1:5000"},
		AI:       AIConfig{Model: "gemini-2.5-flash"},
		Reminder: ReminderConfig{Enabled: false, Time: "17:00"},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "gatedesk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Load() (Config, error) {
	cfg := Default()

	path, err := xdgConfigPath()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// defaults
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("timer.focus_minutes", cfg.Timer.FocusMinutes)
	v.SetDefault("timer.short_minutes", cfg.Timer.ShortMinutes)
	v.SetDefault("timer.long_minutes", cfg.Timer.LongMinutes)
	v.SetDefault("timer.min_seconds", cfg.Timer.MinSeconds)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("ai.api_key", cfg.AI.APIKey)
	v.SetDefault("ai.model", cfg.AI.Model)
	v.SetDefault("youtube.api_key", cfg.YouTube.APIKey)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)

	// environment overrides for secrets, e.g. GATEDESK_AI_API_KEY
	v.SetEnvPrefix("gatedesk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.Timer.FocusMinutes <= 0 {
		cfg.Timer.FocusMinutes = 25
	}
	if cfg.Timer.ShortMinutes <= 0 {
		cfg.Timer.ShortMinutes = 5
	}
	if cfg.Timer.LongMinutes <= 0 {
		cfg.Timer.LongMinutes = 15
	}
	return cfg, nil
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}
