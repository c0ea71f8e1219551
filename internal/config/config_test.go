package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{Host: "127.0.0.1", Port: "8765"},
		Assets: AssetsConfig{Dir: "/srv/recommender"},
		UI:     UIConfig{LoadingDelay: time.Second},
		Links:  LinksConfig{RatePerMinute: 30, Burst: 5},
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "8765", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, "introofapp.mp4", cfg.Assets.IntroVideo)
	assert.True(t, cfg.Assets.Watch)
	assert.True(t, cfg.UI.OpenBrowser)
	assert.Equal(t, time.Second, cfg.UI.LoadingDelay)
	assert.Equal(t, 30, cfg.Links.RatePerMinute)
	assert.Empty(t, cfg.Catalog.Path)
	assert.True(t, filepath.IsAbs(cfg.Assets.Dir))
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("OPEN_BROWSER", "no")
	t.Setenv("LOADING_DELAY", "0s")
	t.Setenv("CATALOG_PATH", "catalog.yaml")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.False(t, cfg.UI.OpenBrowser)
	assert.Equal(t, time.Duration(0), cfg.UI.LoadingDelay)
	assert.True(t, filepath.IsAbs(cfg.Catalog.Path))
	assert.Equal(t, "catalog.yaml", filepath.Base(cfg.Catalog.Path))
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("LOADING_DELAY", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading_delay")
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RECOMMENDER_TEST_PORT_FROM_FILE=1\nLINK_RATE_PER_MINUTE=12\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	// Registers cleanup so the values set by loadEnvFile don't leak.
	t.Setenv("LINK_RATE_PER_MINUTE", "")
	t.Setenv("RECOMMENDER_TEST_PORT_FROM_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Links.RatePerMinute)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad environment", func(c *Config) { c.App.Environment = "qa" }, "invalid environment"},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }, "invalid log level"},
		{"upper-case log level", func(c *Config) { c.Logger.Level = "WARN" }, ""},
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }, "invalid server port"},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }, "invalid server port"},
		{"empty host", func(c *Config) { c.Server.Host = "" }, "server host"},
		{"empty assets dir", func(c *Config) { c.Assets.Dir = "" }, "assets dir"},
		{"negative delay", func(c *Config) { c.UI.LoadingDelay = -time.Second }, "loading delay"},
		{"zero link rate", func(c *Config) { c.Links.RatePerMinute = 0 }, "link rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_BaseURL(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "http://127.0.0.1:8765", cfg.BaseURL())
	assert.Equal(t, "127.0.0.1:8765", cfg.Addr())

	cfg.Server.Host = "0.0.0.0"
	assert.Equal(t, "http://127.0.0.1:8765", cfg.BaseURL())
}

func TestExpandPath_TildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/recommender/assets")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "recommender", "assets"), got)
}

func TestExpandPath_RelativePath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := expandPath("assets/../images")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "images"), got)
}

func TestGetConfigValue_Precedence(t *testing.T) {
	assert.Equal(t, "default", getConfigValue("RECOMMENDER_UNSET_KEY", "default"))

	t.Setenv("RECOMMENDER_TEST_KEY", "env-value")
	assert.Equal(t, "env-value", getConfigValue("RECOMMENDER_TEST_KEY", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	tests := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"", false, false},
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"off", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("RECOMMENDER_BOOL", tt.raw)
			assert.Equal(t, tt.want, getBoolConfigValue("RECOMMENDER_BOOL", tt.def))
		})
	}
}

func TestGetIntConfigValue_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("RECOMMENDER_INT", "lots")
	assert.Equal(t, 7, getIntConfigValue("RECOMMENDER_INT", 7))

	t.Setenv("RECOMMENDER_INT", "42")
	assert.Equal(t, 42, getIntConfigValue("RECOMMENDER_INT", 7))
}

func TestLoadEnvFile_ExistingEnvVarsNotOverwritten(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("# comment\n\nRECOMMENDER_KEEP=from-file\nRECOMMENDER_QUOTED=\"Slice of Life\"\n"), 0o600))
	t.Setenv("RECOMMENDER_KEEP", "original")
	t.Setenv("RECOMMENDER_QUOTED", "")

	require.NoError(t, loadEnvFile(envFile))

	assert.Equal(t, "original", os.Getenv("RECOMMENDER_KEEP"))
	assert.Equal(t, "Slice of Life", os.Getenv("RECOMMENDER_QUOTED"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NOT A VALID LINE\n"), 0o600))

	err := loadEnvFile(envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestLoadEnvFile_NonExistentFile(t *testing.T) {
	assert.Error(t, loadEnvFile("/nonexistent/file/.env"))
}
