// Package config loads application configuration from environment variables
// and an optional .env file. The launcher takes no command-line flags.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Catalog CatalogConfig
	Assets  AssetsConfig
	UI      UIConfig
	Links   LinksConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds the loopback HTTP server configuration.
type ServerConfig struct {
	Host         string        // Bind host (default: 127.0.0.1)
	Port         string        // Bind port (default: 8765)
	ReadTimeout  time.Duration // default: 15s
	WriteTimeout time.Duration // default: 15s
	IdleTimeout  time.Duration // default: 60s
}

// CatalogConfig selects the seed data asset.
type CatalogConfig struct {
	// Path to a YAML seed file. Empty means the embedded default catalog.
	Path string
}

// AssetsConfig locates local resources (images, intro video).
type AssetsConfig struct {
	Dir        string
	IntroVideo string // relative to Dir
	Watch      bool
}

// UIConfig holds presentation settings.
type UIConfig struct {
	OpenBrowser  bool
	LoadingDelay time.Duration
}

// LinksConfig throttles external link opening.
type LinksConfig struct {
	RatePerMinute int
	Burst         int
}

// LoadConfig loads configuration with precedence:
// 1. Environment variables (highest priority).
// 2. .env file (path from ENV_FILE, default ".env").
// 3. Default values.
func LoadConfig() (*Config, error) {
	_ = loadEnvFile(getConfigValue("ENV_FILE", ".env"))

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue("ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Host: getConfigValue("SERVER_HOST", "127.0.0.1"),
			Port: getConfigValue("SERVER_PORT", "8765"),
		},
		Catalog: CatalogConfig{
			Path: getConfigValue("CATALOG_PATH", ""),
		},
		Assets: AssetsConfig{
			Dir:        getConfigValue("ASSETS_DIR", "."),
			IntroVideo: getConfigValue("INTRO_VIDEO", "introofapp.mp4"),
			Watch:      getBoolConfigValue("WATCH_ASSETS", true),
		},
		UI: UIConfig{
			OpenBrowser: getBoolConfigValue("OPEN_BROWSER", true),
		},
		Links: LinksConfig{
			RatePerMinute: getIntConfigValue("LINK_RATE_PER_MINUTE", 30),
			Burst:         getIntConfigValue("LINK_BURST", 5),
		},
	}

	durations := []struct {
		key    string
		def    string
		target *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{"LOADING_DELAY", "1s", &cfg.UI.LoadingDelay},
	}
	for _, d := range durations {
		raw := getConfigValue(d.key, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", strings.ToLower(d.key), raw, err)
		}
		*d.target = parsed
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Server.Port)
	}

	if c.Server.Host == "" {
		return errors.New("server host cannot be empty")
	}

	if c.Assets.Dir == "" {
		return errors.New("assets dir cannot be empty")
	}

	if c.UI.LoadingDelay < 0 {
		return errors.New("loading delay cannot be negative")
	}

	if c.Links.RatePerMinute <= 0 {
		return fmt.Errorf("link rate must be positive, got %d", c.Links.RatePerMinute)
	}

	return nil
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// BaseURL returns the URL the browser is pointed at.
func (c *Config) BaseURL() string {
	host := c.Server.Host
	if host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, c.Server.Port)
}

func (c *Config) expandPaths() error {
	dir, err := expandPath(c.Assets.Dir)
	if err != nil {
		return err
	}
	c.Assets.Dir = dir

	if c.Catalog.Path != "" {
		path, err := expandPath(c.Catalog.Path)
		if err != nil {
			return err
		}
		c.Catalog.Path = path
	}
	return nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the env var value or the default.
func getConfigValue(envKey, defaultValue string) string {
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1", "yes" (case-insensitive) as true.
func getBoolConfigValue(envKey string, defaultValue bool) bool {
	strValue := getConfigValue(envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

func getIntConfigValue(envKey string, defaultValue int) int {
	strValue := getConfigValue(envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads KEY=value lines from a .env file. Existing environment
// variables win.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
