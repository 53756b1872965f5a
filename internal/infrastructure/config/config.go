package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration. Keys follow the TOML layout,
// e.g. [database] max_open_conns.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Log         LogConfig         `mapstructure:"log"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Sync        SyncConfig        `mapstructure:"sync"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
	Labels      LabelsConfig      `mapstructure:"labels"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stdout, stderr or a file path
}

// DatabaseConfig selects postgres or a sqlite file.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// RedisConfig locates the redis used by the distributed sync lock.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type HTTPConfig struct {
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
	MaxBodySize    int64         `mapstructure:"max_body_size"`
	// SyncRateLimit caps manual sync calls per client and window; 0 disables
	SyncRateLimit    int           `mapstructure:"sync_rate_limit"`
	SyncRateWindow   time.Duration `mapstructure:"sync_rate_window"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders []string      `mapstructure:"cors_allow_headers"`
	// Swagger UI under /swagger; AllowedIPs accepts plain IPs or CIDRs, empty allows all
	SwaggerEnabled    bool     `mapstructure:"swagger_enabled"`
	SwaggerAllowedIPs []string `mapstructure:"swagger_allowed_ips"`
}

// SyncConfig drives order ingestion and its lock.
type SyncConfig struct {
	AutoEnabled  bool          `mapstructure:"auto_enabled"`
	Interval     time.Duration `mapstructure:"interval"`
	PageSize     int           `mapstructure:"page_size"`
	RemoteStatus string        `mapstructure:"remote_status"` // marketplace status pulled; defaults to Created
	LockBackend  string        `mapstructure:"lock_backend"`  // memory or redis
	// LockTTL is the redis lease length. The holder renews it while a run is
	// active, so it bounds how long a crashed instance blocks the others.
	LockTTL time.Duration `mapstructure:"lock_ttl"`
	// LockFallback switches to the in-process lock when redis is unreachable
	LockFallback bool `mapstructure:"lock_fallback"`
}

type MarketplaceConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	UserAgentSuffix string `mapstructure:"user_agent_suffix"`
}

// LabelsConfig covers label rendering and where PDFs are kept.
type LabelsConfig struct {
	Storage  string `mapstructure:"storage"` // filesystem or s3
	BasePath string `mapstructure:"base_path"`
	BaseURL  string `mapstructure:"base_url"`
	// ChromeRemoteURL is a DevTools endpoint; empty launches a local browser
	ChromeRemoteURL string        `mapstructure:"chrome_remote_url"`
	RenderTimeout   time.Duration `mapstructure:"render_timeout"`
	PaperSize       string        `mapstructure:"paper_size"`
}

// StorageConfig is the S3-compatible bucket used when labels.storage is s3.
type StorageConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Region        string        `mapstructure:"region"`
	Bucket        string        `mapstructure:"bucket"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	UsePathStyle  bool          `mapstructure:"use_path_style"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

// TelemetryConfig switches OTLP export and Pyroscope profiling.
type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint"`
	SamplingRatio     float64       `mapstructure:"sampling_ratio"`
	ServiceName       string        `mapstructure:"service_name"`
	Insecure          bool          `mapstructure:"insecure"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	MetricsInterval   time.Duration `mapstructure:"metrics_interval"`
	LogsEnabled       bool          `mapstructure:"logs_enabled"`
	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool          `mapstructure:"db_log_full_sql"` // never in production
	DBSlowQueryThresh time.Duration `mapstructure:"db_slow_query_threshold"`
	ProfilingEnabled  bool          `mapstructure:"profiling_enabled"`
	PyroscopeAddress  string        `mapstructure:"pyroscope_address"`
}

// Load reads config.toml (from ., /etc/sellerops or /app) and overlays
// SELLEROPS_* environment variables, e.g. SELLEROPS_DATABASE_PASSWORD.
// Keys missing from both fall back to the defaults below.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, dir := range []string{".", "/etc/sellerops", "/app"} {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SELLEROPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults lists every key. Env overrides only reach Unmarshal for keys
// viper knows about, so keys without a real default are listed as zero.
var defaults = map[string]any{
	"app.name": "sellerops",
	"app.env":  "development",
	"app.port": "8080",

	"database.driver":             "postgres",
	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "sellerops",
	"database.sslmode":            "disable",
	"database.sqlite_path":        "sellerops.db",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,

	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout": 15 * time.Second,
	// sync runs and label rendering can take a while
	"http.write_timeout":       5 * time.Minute,
	"http.idle_timeout":        time.Minute,
	"http.request_timeout":     5 * time.Minute,
	"http.max_header_bytes":    1 << 20,
	"http.max_body_size":       int64(1 << 20),
	"http.sync_rate_limit":     0,
	"http.sync_rate_window":    time.Minute,
	"http.cors_allow_origins":  []string{},
	"http.cors_allow_methods":  []string{"GET", "POST", "OPTIONS"},
	"http.cors_allow_headers":  []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.swagger_enabled":     true,
	"http.swagger_allowed_ips": []string{},

	"sync.auto_enabled":  false,
	"sync.interval":      15 * time.Minute,
	"sync.page_size":     200,
	"sync.remote_status": "Created",
	"sync.lock_backend":  "memory",
	"sync.lock_ttl":      30 * time.Minute,
	"sync.lock_fallback": false,

	"marketplace.base_url":          "https://api.trendyol.com/sapigw",
	"marketplace.timeout_seconds":   30,
	"marketplace.user_agent_suffix": "SelfIntegration",

	"labels.storage":           "filesystem",
	"labels.base_path":         "./data/labels",
	"labels.base_url":          "/api/v1/labels",
	"labels.chrome_remote_url": "",
	"labels.render_timeout":    time.Minute,
	"labels.paper_size":        "LABEL_100x150",

	"storage.endpoint":       "",
	"storage.region":         "us-east-1",
	"storage.bucket":         "",
	"storage.access_key":     "",
	"storage.secret_key":     "",
	"storage.use_path_style": false,
	"storage.presign_expiry": time.Hour,

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "sellerops",
	"telemetry.insecure":                false,
	"telemetry.metrics_enabled":         false,
	"telemetry.metrics_interval":        time.Minute,
	"telemetry.logs_enabled":            false,
	"telemetry.db_trace_enabled":        false,
	"telemetry.db_log_full_sql":         false,
	"telemetry.db_slow_query_threshold": 200 * time.Millisecond,
	"telemetry.profiling_enabled":       false,
	"telemetry.pyroscope_address":       "",
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// validate reports every problem at once, joined.
func (c *Config) validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	oneOf := func(v string, allowed ...string) bool {
		for _, a := range allowed {
			if v == a {
				return true
			}
		}
		return false
	}

	db := c.Database
	check(oneOf(db.Driver, "postgres", "sqlite"), "database.driver must be postgres or sqlite, got %q", db.Driver)
	check(db.MaxOpenConns > 0, "database.max_open_conns must be positive")
	check(db.MaxIdleConns >= 0, "database.max_idle_conns cannot be negative")
	check(db.MaxIdleConns <= db.MaxOpenConns,
		"database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)", db.MaxIdleConns, db.MaxOpenConns)

	check(c.HTTP.SyncRateLimit >= 0, "http.sync_rate_limit cannot be negative")

	// the marketplace serves at most 200 orders per page
	check(c.Sync.PageSize >= 1 && c.Sync.PageSize <= 200, "sync.page_size must be between 1 and 200, got %d", c.Sync.PageSize)
	check(c.Sync.Interval >= time.Minute, "sync.interval must be at least 1m, got %s", c.Sync.Interval)
	check(oneOf(c.Sync.LockBackend, "memory", "redis"), "sync.lock_backend must be memory or redis, got %q", c.Sync.LockBackend)

	check(oneOf(c.Labels.Storage, "filesystem", "s3"), "labels.storage must be filesystem or s3, got %q", c.Labels.Storage)
	check(c.Labels.Storage != "s3" || c.Storage.Bucket != "", "storage.bucket is required when labels.storage is s3")

	tel := c.Telemetry
	check(tel.SamplingRatio >= 0 && tel.SamplingRatio <= 1, "telemetry.sampling_ratio must be between 0.0 and 1.0, got %g", tel.SamplingRatio)
	check(!tel.ProfilingEnabled || tel.PyroscopeAddress != "", "telemetry.pyroscope_address is required when profiling is enabled")

	if c.App.Env == "production" {
		pg := db.Driver == "postgres"
		check(!pg || db.Password != "", "database.password is required in production")
		check(!pg || db.SSLMode != "disable", "database.sslmode cannot be 'disable' in production")
		check(!oneOf("*", c.HTTP.CORSAllowOrigins...), "http.cors_allow_origins cannot be '*' in production")
		check(!tel.DBLogFullSQL, "telemetry.db_log_full_sql must be false in production")
	}
	return errors.Join(errs...)
}

// DSN is the sqlite file path, or a postgres URL with escaped credentials.
func (d *DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
