package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort           = "8080"
	defaultMaxUploadBytes = 10 << 20
	defaultCoverTitle     = "Cover Letter"
	defaultRateLimitRPS   = 2
	defaultRateLimitBurst = 10
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	MaxUploadBytes  int64
	CoverTitle      string
	RateLimitRPS    float64
	RateLimitBurst  int

	// TrustedProxies lists proxy CIDRs whose X-Forwarded-For is believed.
	// Empty means the socket address is the client address.
	TrustedProxies []string
}

// Load reads configuration from an optional YAML file, local env files and
// environment variables. Environment variables win.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	base := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		fromFile, err := LoadFile(path, base)
		if err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
		} else {
			base = fromFile
		}
	}
	return FromEnv(base)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            defaultPort,
		Env:             "dev",
		CORSAllowOrigin: []string{"*"},
		MaxUploadBytes:  defaultMaxUploadBytes,
		CoverTitle:      defaultCoverTitle,
		RateLimitRPS:    defaultRateLimitRPS,
		RateLimitBurst:  defaultRateLimitBurst,
	}
}

// FromEnv overlays environment variables on base.
func FromEnv(base Config) Config {
	cfg := base
	cfg.Port = getEnv("PORT", base.Port)
	cfg.Env = normalizeEnv(getEnv("ENV", base.Env))
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		cfg.CORSAllowOrigin = splitAndTrim(raw)
	}
	cfg.MaxUploadBytes = getInt64("MAX_UPLOAD_BYTES", base.MaxUploadBytes)
	cfg.CoverTitle = getEnv("COVER_TITLE", base.CoverTitle)
	cfg.RateLimitRPS = getFloat("RATE_LIMIT_RPS", base.RateLimitRPS)
	cfg.RateLimitBurst = int(getInt64("RATE_LIMIT_BURST", int64(base.RateLimitBurst)))
	if raw := os.Getenv("TRUSTED_PROXIES"); raw != "" {
		cfg.TrustedProxies = splitAndTrim(raw)
	}
	return cfg
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("config: invalid %s=%q, using %g", key, raw, def)
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
