package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)

	// HTTP defaults
	assert.NotEmpty(t, cfg.HTTP.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 60, cfg.HTTP.RequestsPerMinute)
	assert.Equal(t, 5, cfg.HTTP.Burst)

	// Scan defaults
	assert.Equal(t, 24*time.Hour, cfg.Scan.PostMaxAge)
	assert.Equal(t, 7*24*time.Hour, cfg.Scan.ProspectMaxAge)
	assert.Equal(t, 15, cfg.Scan.MaxComments)
	assert.Equal(t, 30, cfg.Scan.ArticleMaxComments)
	assert.Equal(t, 1, cfg.Scan.MinScore)
	assert.Equal(t, 2000, cfg.Scan.ExcerptLength)
	assert.Equal(t, 300*time.Millisecond, cfg.Scan.SourceDelay)
	assert.Equal(t, 400*time.Millisecond, cfg.Scan.ProspectDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Scan.IssueDelay)

	// Replies defaults
	assert.Equal(t, "jessedev_", cfg.Replies.Username)
	assert.Equal(t, 5, cfg.Replies.BatchSize)
	assert.Equal(t, 300*time.Millisecond, cfg.Replies.BatchPause)
	assert.Empty(t, cfg.Replies.Proxies)

	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 3, cfg.Backend.MaxAttempts)
	assert.Equal(t, 15, cfg.Output.HotThreshold)
	assert.Equal(t, 5, cfg.Output.WarmThreshold)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DEVSCOUT_USER_AGENT", "env_agent")
	t.Setenv("DEVSCOUT_REQUESTS_PER_MINUTE", "120")
	t.Setenv("DEVSCOUT_HTTP_TIMEOUT", "10s")
	t.Setenv("DEVSCOUT_MAX_COMMENTS", "40")
	t.Setenv("DEVSCOUT_SOURCE_DELAY", "1s")
	t.Setenv("DEVSCOUT_USERNAME", "someone")
	t.Setenv("DEVSCOUT_REPLY_PROXIES", "https://a.example/?url=, https://b.example/raw?")
	t.Setenv("DEVSCOUT_GITHUB_LANGUAGES", "go,rust")
	t.Setenv("DEVSCOUT_BACKEND_URL", "http://backend:9000")
	t.Setenv("DEVSCOUT_OUTPUT_DIR", "/env/output")
	t.Setenv("DEVSCOUT_METRICS_TEXTFILE", "/env/metrics.prom")
	t.Setenv("DEVSCOUT_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "env_agent", cfg.HTTP.UserAgent)
	assert.Equal(t, 120, cfg.HTTP.RequestsPerMinute)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 40, cfg.Scan.MaxComments)
	assert.Equal(t, time.Second, cfg.Scan.SourceDelay)
	assert.Equal(t, "someone", cfg.Replies.Username)
	assert.Equal(t, []string{"https://a.example/?url=", "https://b.example/raw?"}, cfg.Replies.Proxies)
	assert.Equal(t, []string{"go", "rust"}, cfg.GitHub.Languages)
	assert.Equal(t, "http://backend:9000", cfg.Backend.BaseURL)
	assert.Equal(t, "/env/output", cfg.Output.Directory)
	assert.Equal(t, "/env/metrics.prom", cfg.Metrics.Textfile)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("DEVSCOUT_REQUESTS_PER_MINUTE", "lots")
	t.Setenv("DEVSCOUT_SOURCE_DELAY", "soon")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 60, cfg.HTTP.RequestsPerMinute)
	assert.Equal(t, 300*time.Millisecond, cfg.Scan.SourceDelay)
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "devscout.yaml")

	content := `
http:
  requests_per_minute: 30
scan:
  max_comments: 20
  source_delay: 1s
replies:
  username: tracked_user
  proxies:
    - "https://proxy.example/?url="
backend:
  base_url: "http://example.test:8000"
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(configPath))

	assert.Equal(t, 30, cfg.HTTP.RequestsPerMinute)
	assert.Equal(t, 20, cfg.Scan.MaxComments)
	assert.Equal(t, time.Second, cfg.Scan.SourceDelay)
	assert.Equal(t, "tracked_user", cfg.Replies.Username)
	assert.Equal(t, []string{"https://proxy.example/?url="}, cfg.Replies.Proxies)
	assert.Equal(t, "http://example.test:8000", cfg.Backend.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Untouched sections keep their defaults
	assert.Equal(t, 5, cfg.Replies.BatchSize)
	assert.Equal(t, 2000, cfg.Scan.ExcerptLength)
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg := DefaultConfig()
		err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scan: [unclosed"), 0644))

		cfg := DefaultConfig()
		err := cfg.LoadFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("no default file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Chdir(t.TempDir())

		cfg := DefaultConfig()
		assert.NoError(t, cfg.LoadFromFile(""))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(c *Config) {},
		},
		{
			name:    "zero rate",
			modify:  func(c *Config) { c.HTTP.RequestsPerMinute = 0 },
			wantErr: "requests per minute must be positive",
		},
		{
			name:    "empty username",
			modify:  func(c *Config) { c.Replies.Username = "  " },
			wantErr: "tracked username is required",
		},
		{
			name:    "batch too large",
			modify:  func(c *Config) { c.Replies.BatchSize = 50 },
			wantErr: "reply batch size should not exceed 20",
		},
		{
			name:    "negative delay",
			modify:  func(c *Config) { c.Scan.IssueDelay = -time.Second },
			wantErr: "delays cannot be negative",
		},
		{
			name:    "negative story limit",
			modify:  func(c *Config) { c.Scan.HNStoryLimit = -1 },
			wantErr: "hacker news limits must be positive",
		},
		{
			name:    "zero thread limit",
			modify:  func(c *Config) { c.Scan.HNThreadLimit = 0 },
			wantErr: "hacker news limits must be positive",
		},
		{
			name:    "no labels",
			modify:  func(c *Config) { c.GitHub.Labels = nil },
			wantErr: "at least one GitHub label is required",
		},
		{
			name:    "thresholds inverted",
			modify:  func(c *Config) { c.Output.WarmThreshold = 20 },
			wantErr: "warm threshold cannot exceed hot threshold",
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
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

func TestValidateJoinsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.BaseURL = ""
	cfg.Output.Directory = ""

	err := cfg.Validate()
	require.Error(t, err)
	lines := strings.Split(err.Error(), "\n")
	assert.Len(t, lines, 2)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Replies.Username = "saved_user"
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Contains(t, raw, "replies")

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, "saved_user", loaded.Replies.Username)
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"output":              "/flags/out",
		"log-level":           "error",
		"username":            "flag_user",
		"backend-url":         "http://flags:1",
		"requests-per-minute": 10,
		"delay":               2 * time.Second,
		"metrics-textfile":    "",
	})

	assert.Equal(t, "/flags/out", cfg.Output.Directory)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "flag_user", cfg.Replies.Username)
	assert.Equal(t, "http://flags:1", cfg.Backend.BaseURL)
	assert.Equal(t, 10, cfg.HTTP.RequestsPerMinute)
	assert.Equal(t, 2*time.Second, cfg.Scan.SourceDelay)
	assert.Equal(t, 2*time.Second, cfg.Scan.ProspectDelay)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("replies:\n  username: file_user\nlogging:\n  level: warn\n"), 0644))

	t.Setenv("DEVSCOUT_USERNAME", "env_user")

	cfg, err := Load(path, map[string]interface{}{"log-level": "debug"})
	require.NoError(t, err)

	assert.Equal(t, "env_user", cfg.Replies.Username)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadValidationFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := Load("", map[string]interface{}{"log-level": "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}
