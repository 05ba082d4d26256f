package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"palette-bridge/internal/palette"
)

// Config holds all service configuration values.
type Config struct {
	Listen         string `json:"listen"`
	MetricsListen  string `json:"metrics_listen"`
	SettingsFile   string `json:"settings_file"`
	CSSFormat      string `json:"css_format"`
	PaletteGlobal  string `json:"palette_global"`
	AdminTokenHash string `json:"admin_token_hash"`
	RateLimitRPM   int    `json:"rate_limit_rpm"`
	TimeoutSec     int    `json:"timeout_sec"`
	MaxBodyBytes   int64  `json:"max_body_bytes"`

	// Peers allowed to set X-Forwarded-For / X-Real-IP, as IPs or CIDRs
	TrustedProxies []string `json:"trusted_proxies"`

	// Environment configuration (loaded from env vars)
	Env *EnvConfig `json:"-"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Listen:        ":8080",
		MetricsListen: ":9090",
		SettingsFile:  "generate_settings.json",
		CSSFormat:     palette.FormatCompact,
		PaletteGlobal: "generatePressPalette",
		RateLimitRPM:  120,
		TimeoutSec:    15,
		MaxBodyBytes:  1 << 20,
	}
}

// Load reads the config file named by CONFIG_FILE (default config.json) over
// the defaults, then applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(getEnvOrDefault("CONFIG_FILE", "config.json"))
}

// LoadFrom is Load with an explicit config path. A missing file is not an
// error; a malformed one is.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.Env = LoadEnv()

	if file, err := os.Open(path); err == nil {
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if cfg.Env.SettingsFile != "" {
		cfg.SettingsFile = cfg.Env.SettingsFile
	}
	cfg.CSSFormat = strings.ToLower(strings.TrimSpace(cfg.CSSFormat))
	cfg.AdminTokenHash = strings.TrimSpace(cfg.AdminTokenHash)

	return cfg, nil
}

// Validate checks the configuration for errors and returns helpful messages.
func (c *Config) Validate() error {
	var errs []string

	if c.Listen == "" {
		errs = append(errs, "listen address is required")
	}
	if c.MetricsListen != "" && c.MetricsListen == c.Listen {
		errs = append(errs, "metrics_listen must differ from listen")
	}
	if c.SettingsFile == "" {
		errs = append(errs, "settings_file is required")
	}

	switch c.CSSFormat {
	case palette.FormatCompact, palette.FormatLegacy:
	default:
		errs = append(errs, fmt.Sprintf("css_format must be %q or %q, got %q", palette.FormatCompact, palette.FormatLegacy, c.CSSFormat))
	}

	if !IsJSIdentifier(c.PaletteGlobal) {
		errs = append(errs, fmt.Sprintf("palette_global is not a valid script identifier: %q", c.PaletteGlobal))
	}
	if c.AdminTokenHash != "" && !strings.HasPrefix(c.AdminTokenHash, "$2") {
		errs = append(errs, "admin_token_hash must be a bcrypt hash")
	}

	if c.RateLimitRPM < 0 {
		errs = append(errs, "rate_limit_rpm must not be negative")
	}
	if c.TimeoutSec <= 0 {
		errs = append(errs, "timeout_sec must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, "max_body_bytes must be positive")
	}

	if _, err := c.TrustedNets(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// TrustedNets parses trusted_proxies. A bare IP is a single-host network.
func (c *Config) TrustedNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, entry := range c.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("trusted_proxies: invalid address %q", entry)
			}
			bits := 8 * net.IPv6len
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 8*net.IPv4len
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted_proxies: invalid network %q", entry)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

// IsJSIdentifier accepts the ASCII subset of script identifiers.
func IsJSIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
