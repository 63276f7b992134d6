// Package config loads service configuration from an optional YAML file with
// environment variable expansion, plus environment fallbacks for warehouse
// credentials.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Warehouse WarehouseConfig `yaml:"warehouse"`
	Audit     AuditConfig     `yaml:"audit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// WarehouseConfig configures the BigQuery connection. Credentials resolve in
// order: inline JSON, key file path, application-default credentials.
type WarehouseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsJSON string `yaml:"credentials_json"`
	CredentialsPath string `yaml:"credentials_path"`
}

// AuditConfig configures the query-event audit trail. With an empty DSN,
// events go to the process log instead of PostgreSQL.
type AuditConfig struct {
	Enabled         bool          `yaml:"enabled"`
	DSN             string        `yaml:"dsn"`
	RetentionDays   int           `yaml:"retention_days"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// LoggingConfig configures process logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from the given YAML file, expands ${VAR}
// references, applies environment fallbacks and defaults. An empty path
// yields an environment-only configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		// #nosec G304 -- path is from CLI args, controlled by the operator
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		data = []byte(expandEnvVars(string(data)))

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnvFallbacks(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// expandEnvVars expands ${VAR} patterns in the string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// applyEnvFallbacks fills warehouse settings from the environment when the
// file left them empty. The variable names match the deployment's .env
// conventions, older names included.
func applyEnvFallbacks(cfg *Config) {
	if cfg.Warehouse.ProjectID == "" {
		cfg.Warehouse.ProjectID = firstEnv("GCP_PROJECT_ID", "PROJECT_ID", "BIGQUERY_PROJECT")
	}
	if cfg.Warehouse.CredentialsJSON == "" {
		cfg.Warehouse.CredentialsJSON = os.Getenv("CREDENTIALS_JSON")
	}
	if cfg.Warehouse.CredentialsPath == "" {
		cfg.Warehouse.CredentialsPath = os.Getenv("CREDENTIALS_PATH")
	}
	if cfg.Audit.DSN == "" {
		cfg.Audit.DSN = os.Getenv("AUDIT_DATABASE_URL")
	}
}

// applyDefaults applies default values to the config.
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if cfg.Warehouse.ProjectID == "" {
		cfg.Warehouse.ProjectID = "iucc-f4d"
	}
	if cfg.Audit.RetentionDays == 0 {
		cfg.Audit.RetentionDays = 90
	}
	if cfg.Audit.CleanupInterval == 0 {
		cfg.Audit.CleanupInterval = 24 * time.Hour
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.Warehouse.ProjectID == "" {
		errs = append(errs, "warehouse.project_id is required")
	}
	if c.Warehouse.CredentialsJSON != "" && c.Warehouse.CredentialsPath != "" {
		errs = append(errs, "warehouse.credentials_json and warehouse.credentials_path are mutually exclusive")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("logging.format %q is not supported", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// SlogLevel parses the configured log level into an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
