package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// fileConfig mirrors Config for YAML files. Pointer fields distinguish
// "absent" from zero values.
type fileConfig struct {
	Port           *string  `yaml:"port"`
	Env            *string  `yaml:"env"`
	CORSOrigins    []string `yaml:"cors_allow_origins"`
	MaxUploadBytes *int64   `yaml:"max_upload_bytes"`
	CoverTitle     *string  `yaml:"cover_title"`
	RateLimit      *struct {
		RPS   *float64 `yaml:"rps"`
		Burst *int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// LoadFile reads a YAML config file and overlays it on base.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config file: %w", err)
	}
	return parseYAML(data, base)
}

func parseYAML(data []byte, base Config) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("parse config file: %w", err)
	}

	cfg := base
	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if fc.Env != nil {
		cfg.Env = normalizeEnv(*fc.Env)
	}
	if len(fc.CORSOrigins) > 0 {
		cfg.CORSAllowOrigin = fc.CORSOrigins
	}
	if fc.MaxUploadBytes != nil {
		if *fc.MaxUploadBytes < 0 {
			return base, fmt.Errorf("max_upload_bytes must not be negative")
		}
		cfg.MaxUploadBytes = *fc.MaxUploadBytes
	}
	if fc.CoverTitle != nil {
		cfg.CoverTitle = *fc.CoverTitle
	}
	if fc.RateLimit != nil {
		if fc.RateLimit.RPS != nil {
			cfg.RateLimitRPS = *fc.RateLimit.RPS
		}
		if fc.RateLimit.Burst != nil {
			cfg.RateLimitBurst = *fc.RateLimit.Burst
		}
	}
	if len(fc.TrustedProxies) > 0 {
		cfg.TrustedProxies = fc.TrustedProxies
	}
	return cfg, nil
}
