// Package config loads the server configuration with viper.
//
// Values come from, highest priority first: SHOP_ environment variables
// (SHOP_DATABASE_PASSWORD for database.password), config.toml in the working
// directory or /app, and the defaults registered in setDefaults. Every key
// must have a default, even an empty one, for its environment variable to
// be picked up.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Log           LogConfig           `mapstructure:"log"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Merchandising MerchandisingConfig `mapstructure:"merchandising"`
	Telemetry     TelemetryConfig     `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
	// DefaultTenantID serves requests without X-Tenant-ID. Empty requires
	// the header.
	DefaultTenantID string `mapstructure:"default_tenant_id"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`      // postgres or sqlite
	SQLitePath      string        `mapstructure:"sqlite_path"` // file path or ":memory:"
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int           `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int           `mapstructure:"conn_max_idle_time"` // minutes
	SlowQueryThresh time.Duration `mapstructure:"slow_query_threshold"`
}

// RedisConfig locates the idempotency key store. Disabled keeps the keys in
// process memory.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes    int           `mapstructure:"max_header_bytes"`
	MaxBodySize       int64         `mapstructure:"max_body_size"`
	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	// An empty origin list allows no cross-origin requests
	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
	CORSAllowMethods []string `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders []string `mapstructure:"cors_allow_headers"`
	TrustedProxies   []string `mapstructure:"trusted_proxies"`
}

// MerchandisingConfig sizes the homepage displays and picks how a taken
// slot is resolved for each kind
type MerchandisingConfig struct {
	MaxHomepageCategories    int           `mapstructure:"max_homepage_categories"`
	MaxHomepageManufacturers int           `mapstructure:"max_homepage_manufacturers"`
	CategoryResolution       string        `mapstructure:"category_resolution"`     // evict or displace
	ManufacturerResolution   string        `mapstructure:"manufacturer_resolution"` // evict or displace
	IdempotencyTTL           time.Duration `mapstructure:"idempotency_ttl"`
}

type TelemetryConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"` // OTLP gRPC, host:port
	SamplingRatio     float64 `mapstructure:"sampling_ratio"`     // 0.0 to 1.0
	ServiceName       string  `mapstructure:"service_name"`
	Insecure          bool    `mapstructure:"insecure"` // plaintext gRPC, development only

	MetricsEnabled        bool          `mapstructure:"metrics_enabled"`
	MetricsExportInterval time.Duration `mapstructure:"metrics_export_interval"`
	LogsEnabled           bool          `mapstructure:"logs_enabled"`

	DBTraceEnabled bool `mapstructure:"db_trace_enabled"`
	// DBLogFullSQL keeps bind variables in statement spans. Refused in
	// production.
	DBLogFullSQL bool `mapstructure:"db_log_full_sql"`
}

// Load reads config.toml if present and applies the environment on top
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return loadFrom(v)
}

func loadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	for key, value := range map[string]any{
		"app.name":              "shop-admin",
		"app.env":               "development",
		"app.port":              "8080",
		"app.default_tenant_id": "",

		"database.driver":               "postgres",
		"database.sqlite_path":          "shop.db",
		"database.host":                 "localhost",
		"database.port":                 5432,
		"database.user":                 "postgres",
		"database.password":             "",
		"database.dbname":               "shop",
		"database.sslmode":              "disable",
		"database.max_open_conns":       25,
		"database.max_idle_conns":       5,
		"database.conn_max_lifetime":    60,
		"database.conn_max_idle_time":   30,
		"database.slow_query_threshold": 200 * time.Millisecond,

		"redis.enabled":  false,
		"redis.host":     "localhost",
		"redis.port":     6379,
		"redis.password": "",
		"redis.db":       0,

		"log.level":  "info",
		"log.format": "console",
		"log.output": "stdout",

		"http.read_timeout":        15 * time.Second,
		"http.write_timeout":       15 * time.Second,
		"http.idle_timeout":        60 * time.Second,
		"http.shutdown_timeout":    30 * time.Second,
		"http.max_header_bytes":    1 << 20,
		"http.max_body_size":       1 << 20,
		"http.rate_limit_enabled":  false,
		"http.rate_limit_requests": 100,
		"http.rate_limit_window":   time.Minute,
		"http.cors_allow_origins":  []string{},
		"http.cors_allow_methods":  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		"http.cors_allow_headers":  []string{"Content-Type", "Authorization", "X-Request-ID", "X-Tenant-ID", "Idempotency-Key"},
		"http.trusted_proxies":     []string{},

		"merchandising.max_homepage_categories":    9,
		"merchandising.max_homepage_manufacturers": 9,
		"merchandising.category_resolution":        "evict",
		"merchandising.manufacturer_resolution":    "displace",
		"merchandising.idempotency_ttl":            10 * time.Minute,

		"telemetry.enabled":            false,
		"telemetry.collector_endpoint": "localhost:4317",
		"telemetry.sampling_ratio":     1.0,
		"telemetry.service_name":       "shop-admin",
		"telemetry.insecure":           false,

		"telemetry.metrics_enabled":         false,
		"telemetry.metrics_export_interval": time.Minute,
		"telemetry.logs_enabled":            false,
		"telemetry.db_trace_enabled":        false,
		"telemetry.db_log_full_sql":         false,
	} {
		v.SetDefault(key, value)
	}
}

func (c *Config) validate() error {
	db := c.Database
	switch {
	case db.Driver != "postgres" && db.Driver != "sqlite":
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", db.Driver)
	case db.MaxOpenConns <= 0:
		return errors.New("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0:
		return errors.New("database.max_idle_conns cannot be negative")
	case db.MaxIdleConns > db.MaxOpenConns:
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			db.MaxIdleConns, db.MaxOpenConns)
	}

	m := c.Merchandising
	if m.MaxHomepageCategories < 1 {
		return errors.New("merchandising.max_homepage_categories must be at least 1")
	}
	if m.MaxHomepageManufacturers < 1 {
		return errors.New("merchandising.max_homepage_manufacturers must be at least 1")
	}
	if p := m.CategoryResolution; p != "evict" && p != "displace" {
		return fmt.Errorf("merchandising.category_resolution must be evict or displace, got %q", p)
	}
	if p := m.ManufacturerResolution; p != "evict" && p != "displace" {
		return fmt.Errorf("merchandising.manufacturer_resolution must be evict or displace, got %q", p)
	}

	if c.App.DefaultTenantID != "" {
		if _, err := uuid.Parse(c.App.DefaultTenantID); err != nil {
			return fmt.Errorf("app.default_tenant_id must be a UUID, got %q", c.App.DefaultTenantID)
		}
	}
	if r := c.Telemetry.SamplingRatio; r < 0 || r > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", r)
	}

	if c.IsProduction() {
		switch {
		case db.Driver == "sqlite":
			return errors.New("database.driver cannot be sqlite in production")
		case db.Password == "":
			return errors.New("database.password is required in production")
		case db.SSLMode == "disable":
			return errors.New("database.sslmode cannot be 'disable' in production")
		case slices.Contains(c.HTTP.CORSAllowOrigins, "*"):
			return errors.New("http.cors_allow_origins cannot be '*' in production")
		case c.Telemetry.DBLogFullSQL:
			return errors.New("telemetry.db_log_full_sql cannot be enabled in production")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN is the postgres URL with user and password escaped
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// MigrationURL is the database URL in the form golang-migrate expects
func (d *DatabaseConfig) MigrationURL() string {
	if d.Driver == "sqlite" {
		return "sqlite3://" + d.SQLitePath
	}
	return d.DSN()
}
