package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by PORTAL_STORAGE.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout applied by the router

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Event data
	CatalogFile    string        // path to startups.yaml
	ItineraryFile  string        // path to investors.yaml (optional, empty = itinerary disabled)
	ReloadInterval time.Duration // interval to reload the catalog (default: 1h)
	WatchCatalog   bool          // reload on file change (fsnotify)

	// Favorites
	Storage             string        // memory | sqlite | redis
	SQLitePath          string        // ex: "/data/portal.db"
	SessionIdleTTL      time.Duration // idle favorites stores are torn down after this
	SessionReapInterval time.Duration // how often idle stores are looked for

	// Redis (only when Storage == redis)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration // timeout for each ping attempt
	RedisPoolSize         int           // connection pool size
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold    int           // warn after this many attempts

	// Access restrictions
	AllowedHosts []string // optional, restrict admin endpoints to these Host headers
	AllowedCIDRS []string // optional, restrict admin endpoints to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
	CORSOrigins  []string // allowed browser origins for the API

	// Rate limiting of favorites mutations
	RateLimitBurst     int
	RateLimitPerMinute int

	MetricsEnabled bool
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PORTAL_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PORTAL_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("PORTAL_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PORTAL_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PORTAL_PRETTY_LOG", true),

		// Event data
		CatalogFile:    requireEnv("PORTAL_CATALOG_FILE"),
		ItineraryFile:  getenv("PORTAL_ITINERARY_FILE", ""),
		ReloadInterval: mustDuration("PORTAL_RELOAD_INTERVAL", time.Hour),
		WatchCatalog:   mustBool("PORTAL_WATCH_CATALOG", true),

		// Favorites
		Storage:             strings.ToLower(getenv("PORTAL_STORAGE", StorageMemory)),
		SQLitePath:          getenv("PORTAL_SQLITE_PATH", "portal.db"),
		SessionIdleTTL:      mustDuration("PORTAL_SESSION_IDLE_TTL", 30*time.Minute),
		SessionReapInterval: mustDuration("PORTAL_SESSION_REAP_INTERVAL", 5*time.Minute),

		// Redis settings
		RedisAddr:             getenv("PORTAL_REDIS_ADDR", "localhost:6379"),
		RedisUser:             getenv("PORTAL_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("PORTAL_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("PORTAL_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("PORTAL_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("PORTAL_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("PORTAL_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("PORTAL_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("PORTAL_CORS_ORIGINS", "*")),

		RateLimitBurst:     getenvInt("PORTAL_RATE_LIMIT_BURST", 30),
		RateLimitPerMinute: getenvInt("PORTAL_RATE_LIMIT_PER_MINUTE", 120),

		MetricsEnabled: mustBool("PORTAL_METRICS_ENABLED", true),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Validate checks cross-field constraints that single env parsers cannot.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageSQLite, StorageRedis:
	default:
		return fmt.Errorf("PORTAL_STORAGE must be one of memory, sqlite, redis, got %q", c.Storage)
	}
	if c.Storage == StorageSQLite && c.SQLitePath == "" {
		return fmt.Errorf("PORTAL_SQLITE_PATH is required when PORTAL_STORAGE=sqlite")
	}
	if c.Storage == StorageRedis && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("PORTAL_REDIS_PASSWORD is required when PORTAL_REDIS_PASSWORD_REQUIRED=true")
	}
	if c.SessionIdleTTL <= 0 {
		return fmt.Errorf("PORTAL_SESSION_IDLE_TTL must be > 0, got %v", c.SessionIdleTTL)
	}
	if c.ReloadInterval <= 0 {
		return fmt.Errorf("PORTAL_RELOAD_INTERVAL must be > 0, got %v", c.ReloadInterval)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
