package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig     `toml:"database"`
	Sync     SyncConfig   `toml:"sync"`
	Server   ServerConfig `toml:"server"`
	Log      LogConfig    `toml:"log"`
	Timezone string       `toml:"timezone"` // IANA name used to decide what "today" is.
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // File path, :memory: or a libsql:// URL.
}

type SyncConfig struct {
	Endpoint string   `toml:"endpoint"` // Empty disables remote sync.
	Offline  bool     `toml:"offline"`
	Timeout  Duration `toml:"timeout"`
	Interval Duration `toml:"interval"` // Drain interval of `warrior sync --watch`.
}

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	DB             string   `toml:"database"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration decodes TOML strings like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Returns the directory holding config.toml and the default database.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "warrior"), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Default() *Config {
	cfg := &Config{
		Sync: SyncConfig{
			Timeout:  Duration{10 * time.Second},
			Interval: Duration{time.Minute},
		},
		Server: ServerConfig{
			Addr:           ":8080",
			DB:             "receiver.db",
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info"},
	}
	if dir, err := GetConfigDir(); err == nil {
		cfg.DB.ConnectionString = filepath.Join(dir, "warrior.db")
	}
	return cfg
}

// Reads the configuration from path (the default location when empty). A
// missing file is not an error; defaults and the environment apply.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// A .env next to the binary is optional.
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WARRIOR_DATABASE_URL"); v != "" {
		cfg.DB.ConnectionString = v
	}
	if v := os.Getenv("WARRIOR_SYNC_ENDPOINT"); v != "" {
		cfg.Sync.Endpoint = v
	}
	if v := os.Getenv("WARRIOR_OFFLINE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Sync.Offline = b
		}
	}
	if v := os.Getenv("WARRIOR_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = "./local.db"
	}
}

// Location resolves the configured timezone, falling back to local time.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Write saves cfg as TOML at path, creating the directory.
func Write(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
