// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, storage, identity, the advent calendar
// schedule, rate limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tbourn/gift-calendar/internal/sysutil"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "gift-calendar")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// DBConfig selects and addresses the relational store.
type DBConfig struct {
	Driver string // sqlite|postgres
	Path   string // SQLite file path (sqlite driver)
	URL    string // DSN (postgres driver)
}

// AuthConfig configures verification of identity-provider tokens.
type AuthConfig struct {
	// JWTSecret is the HS256 key shared with the identity provider. When
	// empty, trusted X-User-ID / X-User-Email headers are used instead.
	JWTSecret string
	JWTIssuer string
}

// CalendarConfig holds the advent calendar settings.
type CalendarConfig struct {
	TimeZone       string        // IANA zone used for unlock/deadline dates
	AllowTestMode  bool          // honor test_mode on reveals, expose reset
	MaxAnswerRunes int           // truncation length for normalized answers
	AppBaseURL     string        // base for invite links when Origin is absent
	CacheSize      int           // per-session cache entries
	CacheTTL       time.Duration // per-session cache lifetime
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DB       DBConfig
	Auth     AuthConfig
	Calendar CalendarConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults,
// normalizes values, and validates the result. Every problem is reported,
// not only the first.
func Load() (Config, error) {
	var cfg Config
	cfg.loadServer()
	cfg.loadStorage()
	cfg.loadCalendar()
	cfg.loadEdge()
	cfg.loadOTEL()
	cfg.normalize()
	return cfg, cfg.Validate()
}

func (c *Config) loadServer() {
	c.Port = envStr("PORT", "8080")
	c.ReadTimeout = envDur("READ_TIMEOUT", 15*time.Second)
	c.ReadHeaderTimeout = envDur("READ_HEADER_TIMEOUT", 10*time.Second)
	c.WriteTimeout = envDur("WRITE_TIMEOUT", 20*time.Second)
	c.IdleTimeout = envDur("IDLE_TIMEOUT", 60*time.Second)
	c.MaxHeaderBytes = envInt("MAX_HEADER_BYTES", 1<<20)
	c.GinMode = envStr("GIN_MODE", "release")
	c.LogLevel = envStr("LOG_LEVEL", "info")
	c.LogPretty = envBool("LOG_PRETTY", false)
	c.SwaggerEnabled = envBool("SWAGGER_ENABLED", false)
	c.APIBasePath = basePath(envStr("API_BASE_PATH", "/api/v1"))
}

func (c *Config) loadStorage() {
	c.DB = DBConfig{
		Driver: envStr("DB_DRIVER", "sqlite"),
		Path:   envStr("DB_PATH", "gifts.db"),
		URL:    sysutil.FirstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("POSTGRES_DSN")),
	}
	c.Auth = AuthConfig{
		JWTSecret: envStr("AUTH_JWT_SECRET", ""),
		JWTIssuer: envStr("AUTH_JWT_ISSUER", ""),
	}
	c.IdempotencyTTL = envDur("IDEMPOTENCY_TTL", 24*time.Hour)
}

func (c *Config) loadCalendar() {
	c.Calendar = CalendarConfig{
		TimeZone:       envStr("CALENDAR_TZ", "Local"),
		AllowTestMode:  envBool("ALLOW_TEST_MODE", false),
		MaxAnswerRunes: envInt("MAX_ANSWER_RUNES", 500),
		AppBaseURL:     strings.TrimRight(envStr("APP_BASE_URL", "http://localhost:3000"), "/"),
		CacheSize:      envInt("SESSION_CACHE_SIZE", 1024),
		CacheTTL:       envDur("SESSION_CACHE_TTL", 5*time.Minute),
	}
}

func (c *Config) loadEdge() {
	c.RateRPS = envFloat("RATE_RPS", 5.0)
	c.RateBurst = envInt("RATE_BURST", 10)
	c.CORS.AllowedOrigins = envList("CORS_ALLOWED_ORIGINS")
	c.Security = SecurityConfig{
		EnableHSTS: envBool("ENABLE_HSTS", false),
		HSTSMaxAge: envDur("HSTS_MAX_AGE", 180*24*time.Hour),
	}
}

func (c *Config) loadOTEL() {
	c.OTEL = OTELConfig{
		Enabled:     envBool("OTEL_ENABLED", false),
		Endpoint:    envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		ServiceName: envStr("OTEL_SERVICE_NAME", "gift-calendar"),
		SampleRatio: envFloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
	}
}

// normalize lowercases enumerations and folds aliases. Unknown gin modes
// become release.
func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	switch c.GinMode = strings.ToLower(strings.TrimSpace(c.GinMode)); c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
	switch c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver)); c.DB.Driver {
	case "postgresql", "pg":
		c.DB.Driver = "postgres"
	}
}

// Validate reports every invalid setting, joined into one error.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		check(false, "LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	check(strings.TrimSpace(c.Port) != "", "PORT must not be empty")
	check(c.ReadTimeout > 0 && c.ReadHeaderTimeout > 0 && c.WriteTimeout > 0 && c.IdleTimeout > 0,
		"timeouts must be positive durations")
	check(c.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")

	switch c.DB.Driver {
	case "sqlite":
		check(strings.TrimSpace(c.DB.Path) != "", "DB_PATH must not be empty")
	case "postgres":
		check(strings.TrimSpace(c.DB.URL) != "", "DATABASE_URL must be set when DB_DRIVER=postgres")
	default:
		check(false, "DB_DRIVER must be one of: sqlite, postgres")
	}
	check(c.Auth.JWTSecret == "" || len(c.Auth.JWTSecret) >= 16, "AUTH_JWT_SECRET must be at least 16 characters")

	_, tzErr := time.LoadLocation(c.Calendar.TimeZone)
	check(tzErr == nil, "CALENDAR_TZ must be a valid IANA time zone")
	check(c.Calendar.MaxAnswerRunes >= 1, "MAX_ANSWER_RUNES must be >= 1")
	check(c.Calendar.CacheSize >= 1, "SESSION_CACHE_SIZE must be >= 1")
	check(c.Calendar.CacheTTL > 0, "SESSION_CACHE_TTL must be > 0")

	check(c.RateRPS >= 0, "RATE_RPS must be >= 0")
	check(c.RateBurst >= 1, "RATE_BURST must be >= 1")
	check(c.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")
	check(c.IdempotencyTTL > 0, "IDEMPOTENCY_TTL must be > 0")
	check(c.OTEL.SampleRatio >= 0 && c.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")

	return errors.Join(errs...)
}

// Location resolves the configured calendar time zone. Load has already
// validated the name, so the fallback only applies to hand-built configs.
func (c CalendarConfig) Location() *time.Location {
	if c.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ---- env helpers: unset, blank or unparsable values yield def ----

func envStr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envFloat(k string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil {
		return def
	}
	return f
}

func envInt(k string, def int) int {
	i, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return i
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	switch {
	case sysutil.IsTruthy(v):
		return true
	case sysutil.IsFalsy(v):
		return false
	}
	return def
}

func envDur(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return d
}

// envList splits a comma-separated variable, dropping blank items.
func envList(k string) []string {
	var out []string
	for _, p := range strings.Split(os.Getenv(k), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// basePath ensures a leading '/' and strips trailing ones; blank means root.
func basePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p
}
