package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile           string        // path to the seed.yaml file (optional, empty = built-in seed only)
	SeedImportInterval time.Duration // interval to re-import the seed file (default: 24h)
	ReapInterval       time.Duration // interval to reap idle chat sessions (default: 15m)
	SessionTTL         time.Duration // idle duration before a chat session is dropped (default: 2h)

	// Gemini
	GeminiAPIKey       string        // optional, empty = AI features disabled
	GeminiModel        string        // text/chat model (default: gemini-2.5-flash)
	GeminiImageModel   string        // icon generation model (default: gemini-2.5-flash-image)
	GeminiImageBaseURL string        // REST endpoint base for image generation
	AITimeout          time.Duration // per-call timeout for AI requests (default: 60s)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts   []string // optional, restrict access to specific Host headers
	AllowedCIDRS   []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	AllowedOrigins []string // CORS origins for the browser frontend
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("TOOLHUB_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("TOOLHUB_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("TOOLHUB_LOG_LEVEL", "info"),
		PrettyLog: mustBool("TOOLHUB_PRETTY_LOG", true),

		// Seed file
		SeedFile:           getenv("TOOLHUB_SEED_FILE", ""), // Optional, empty = built-in seed only
		SeedImportInterval: mustDuration("TOOLHUB_SEED_IMPORT_INTERVAL", 24*time.Hour),
		ReapInterval:       mustDuration("TOOLHUB_REAP_INTERVAL", 15*time.Minute),
		SessionTTL:         mustDuration("TOOLHUB_SESSION_TTL", 2*time.Hour),

		// Gemini settings
		GeminiAPIKey:       getenv("GEMINI_API_KEY", ""), // Optional, empty = AI features disabled
		GeminiModel:        getenv("TOOLHUB_GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiImageModel:   getenv("TOOLHUB_GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		GeminiImageBaseURL: getenv("TOOLHUB_GEMINI_IMAGE_BASE_URL", "https://generativelanguage.googleapis.com"),
		AITimeout:          mustDuration("TOOLHUB_AI_TIMEOUT", 60*time.Second),

		// Redis settings
		RedisAddr:             requireEnv("TOOLHUB_REDIS_ADDR"),
		RedisUser:             getenv("TOOLHUB_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("TOOLHUB_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("TOOLHUB_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("TOOLHUB_REDIS_DB", 0),
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
		AllowedHosts:   splitAndTrim(getenv("TOOLHUB_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   parseAllowedIPs(getenv("TOOLHUB_ALLOWED_CIDRS", "")),
		AllowedOrigins: splitAndTrim(getenv("TOOLHUB_ALLOWED_ORIGINS", "*")),
		TrustProxy:     mustBool("TOOLHUB_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: TOOLHUB_REDIS_PASSWORD is required when TOOLHUB_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		if cfg.GeminiAPIKey != "" {
			cfgCopy.GeminiAPIKey = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
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

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
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
