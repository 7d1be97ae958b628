// Package config loads service configuration with precedence
// defaults → YAML file → .env → environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure. It is read-only after Load returns.
type Config struct {
	AppName   string              `yaml:"app_name"`
	Env       string              `yaml:"env"`
	Server    ServerConfig        `yaml:"server"`
	Store     StoreConfig         `yaml:"store"`
	Log       LogConfig           `yaml:"log"`
	SentryDSN string              `yaml:"-"`
	Tasks     TasksConfig         `yaml:"tasks"`
	Auth      AuthConfig          `yaml:"auth"`
	Dashboard DashboardConfig     `yaml:"dashboard"`
	Notify    NotificationsConfig `yaml:"notifications"`
	S3        S3Config            `yaml:"s3"`
	NATS      NATSConfig          `yaml:"nats"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// StoreConfig selects the health data backend.
type StoreConfig struct {
	// Driver is one of memory, sqlite, postgres, pgx.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"-"`
	// FetchLatency delays every in-memory fetch to mimic a remote call.
	FetchLatency Duration `yaml:"fetch_latency"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TasksConfig contains background task settings.
type TasksConfig struct {
	MaxConcurrent int64    `yaml:"max_concurrent"`
	SyncDelay     Duration `yaml:"sync_delay"`
	ExportDelay   Duration `yaml:"export_delay"`
	ScanDelay     Duration `yaml:"scan_delay"`
}

// AuthConfig controls how the request user is resolved. Only a trusted
// proxy header and a fixed default user are supported.
type AuthConfig struct {
	TrustProxyHeader bool   `yaml:"trust_proxy_header"`
	DefaultUser      string `yaml:"default_user"`
}

// DashboardConfig holds the daily targets shown on the dashboard.
type DashboardConfig struct {
	StartWeight  float64 `yaml:"start_weight"`
	TargetWeight float64 `yaml:"target_weight"`
	Calories     int     `yaml:"calories"`
	SleepHours   float64 `yaml:"sleep_hours"`
	WaterGlasses int     `yaml:"water_glasses"`
	Steps        int     `yaml:"steps"`
}

// NotificationsConfig mirrors the mobile runtime's notification plugin options.
type NotificationsConfig struct {
	PushPresentation []string `yaml:"push_presentation" json:"pushPresentation"`
	SmallIcon        string   `yaml:"small_icon" json:"smallIcon"`
	IconColor        string   `yaml:"icon_color" json:"iconColor"`
	Sound            string   `yaml:"sound" json:"sound"`
}

// S3Config configures export artifact storage. An empty bucket keeps
// artifacts in memory.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// NATSConfig configures domain event publishing. An empty URL disables it.
type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// Enabled reports whether artifacts go to S3.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func newDefaults() *Config {
	return &Config{
		AppName: "TrackYou Health Hub",
		Env:     "development",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Store: StoreConfig{Driver: "memory"},
		Log:   LogConfig{Level: "info", Format: "text"},
		Tasks: TasksConfig{
			MaxConcurrent: 4,
			SyncDelay:     Duration(2 * time.Second),
			ExportDelay:   Duration(1500 * time.Millisecond),
			ScanDelay:     Duration(1 * time.Second),
		},
		Auth: AuthConfig{TrustProxyHeader: true, DefaultUser: "demo"},
		Dashboard: DashboardConfig{
			StartWeight:  75,
			TargetWeight: 70,
			Calories:     2000,
			SleepHours:   8,
			WaterGlasses: 8,
			Steps:        10000,
		},
		Notify: NotificationsConfig{
			PushPresentation: []string{"badge", "sound", "alert"},
			SmallIcon:        "ic_stat_icon_config_sample",
			IconColor:        "#488AFF",
			Sound:            "beep.wav",
		},
		S3:   S3Config{Region: "us-east-1", Prefix: "exports"},
		NATS: NATSConfig{SubjectPrefix: "healthhub"},
	}
}

// Load reads configuration from path (missing file is not an error), then
// applies a .env file if present and finally the process environment.
// An empty path falls back to HEALTHHUB_CONFIG or config/healthhub.yaml.
func Load(path string) (*Config, error) {
	cfg := newDefaults()

	if path == "" {
		path = envString("HEALTHHUB_CONFIG", "config/healthhub.yaml")
	}
	if err := loadYAMLFile(cfg, path); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.AppName = envString("APP_NAME", cfg.AppName)
	cfg.Env = envString("APP_ENV", cfg.Env)
	cfg.Server.Addr = envString("ADDR", cfg.Server.Addr)
	cfg.Store.Driver = envString("DB_DRIVER", cfg.Store.Driver)
	cfg.Store.DSN = envString("DATABASE_URL", cfg.Store.DSN)
	cfg.Log.Level = envString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envString("LOG_FORMAT", cfg.Log.Format)
	cfg.SentryDSN = envString("SENTRY_DSN", cfg.SentryDSN)
	cfg.Auth.DefaultUser = envString("DEFAULT_USER", cfg.Auth.DefaultUser)
	cfg.Auth.TrustProxyHeader = envBool("TRUST_PROXY_HEADER", cfg.Auth.TrustProxyHeader)
	cfg.S3.Bucket = envString("S3_BUCKET", cfg.S3.Bucket)
	cfg.S3.Region = envString("S3_REGION", cfg.S3.Region)
	cfg.S3.Endpoint = envString("S3_ENDPOINT", cfg.S3.Endpoint)
	cfg.S3.AccessKey = envString("S3_ACCESS_KEY", cfg.S3.AccessKey)
	cfg.S3.SecretKey = envString("S3_SECRET_KEY", cfg.S3.SecretKey)
	cfg.NATS.URL = envString("NATS_URL", cfg.NATS.URL)

	var err error
	if cfg.Tasks.SyncDelay, err = envDuration("SYNC_DELAY", cfg.Tasks.SyncDelay); err != nil {
		return err
	}
	if cfg.Tasks.ExportDelay, err = envDuration("EXPORT_DELAY", cfg.Tasks.ExportDelay); err != nil {
		return err
	}
	if cfg.Tasks.ScanDelay, err = envDuration("SCAN_DELAY", cfg.Tasks.ScanDelay); err != nil {
		return err
	}
	if cfg.Store.FetchLatency, err = envDuration("FETCH_LATENCY", cfg.Store.FetchLatency); err != nil {
		return err
	}
	if v := os.Getenv("TASKS_MAX_CONCURRENT"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TASKS_MAX_CONCURRENT: %w", err)
		}
		cfg.Tasks.MaxConcurrent = n
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "memory":
	case "sqlite", "postgres", "pgx":
		if c.Store.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required for store driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Tasks.MaxConcurrent <= 0 {
		return errors.New("tasks.max_concurrent must be > 0")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def Duration) (Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return Duration(d), nil
}
