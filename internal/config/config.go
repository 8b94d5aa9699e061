package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "ledgerbook.yaml"

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config represents the top-level ledgerbook.yaml configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// DatabaseConfig selects the driver and connection.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
	Seed         bool   `yaml:"seed"`
	Tracing      bool   `yaml:"tracing"`
	MaxOpenConns int    `yaml:"max_open_conns,omitempty"`
	MaxIdleConns int    `yaml:"max_idle_conns,omitempty"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads a ledgerbook.yaml file from disk. Missing sections keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config suitable for local use: a SQLite file next to the
// binary, migrations and demo data on.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:5000",
		},
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			DSN:          "ledgerbook.db",
			AutoMigrate:  true,
			Seed:         true,
			MaxOpenConns: 25,
			MaxIdleConns: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadDotEnv loads .env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg from environment variables.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("LEDGERBOOK_ADDR"); v != "" {
		cfg.Server.Addr = v
	} else if port := getenv("PORT"); port != "" {
		host := getenv("HOST")
		if host == "" {
			host = "127.0.0.1"
		}
		cfg.Server.Addr = net.JoinHostPort(host, port)
	}
	if v := getenv("LEDGERBOOK_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	if v := getenv("LEDGERBOOK_DB_DRIVER"); v != "" {
		cfg.Database.Driver = strings.ToLower(v)
	}
	if v := getenv("LEDGERBOOK_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	} else if v := getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v, ok := boolEnv(getenv, "LEDGERBOOK_AUTO_MIGRATE"); ok {
		cfg.Database.AutoMigrate = v
	}
	if v, ok := boolEnv(getenv, "LEDGERBOOK_SEED"); ok {
		cfg.Database.Seed = v
	}
	if v := getenv("LEDGERBOOK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate reports configuration mistakes before anything is opened.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database dsn is required")
	}
	if c.Server.Addr == "" {
		return errors.New("server addr is required")
	}
	return nil
}

func boolEnv(getenv func(string) string, key string) (bool, bool) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return false, false
	}
	switch strings.ToLower(v) {
	case "no", "off":
		return false, true
	case "yes", "on":
		return true, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
