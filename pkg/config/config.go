package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for devscout
type Config struct {
	// Outbound HTTP settings shared by every source adapter
	HTTP HTTPConfig `yaml:"http" json:"http"`

	// Filtering thresholds and pacing for aggregation runs
	Scan ScanConfig `yaml:"scan" json:"scan"`

	// Reply tracking
	Replies RepliesConfig `yaml:"replies" json:"replies"`

	// GitHub issue search
	GitHub GitHubConfig `yaml:"github" json:"github"`

	// External REST backend
	Backend BackendConfig `yaml:"backend" json:"backend"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Metrics export
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// HTTPConfig holds outbound HTTP configuration
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent         string        `yaml:"user_agent" json:"user_agent"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
	Burst             int           `yaml:"burst" json:"burst"`
}

// ScanConfig holds the adapter filters and the aggregator pacing
type ScanConfig struct {
	PostMaxAge         time.Duration `yaml:"post_max_age" json:"post_max_age"`
	ProspectMaxAge     time.Duration `yaml:"prospect_max_age" json:"prospect_max_age"`
	MaxComments        int           `yaml:"max_comments" json:"max_comments"`
	ArticleMaxComments int           `yaml:"article_max_comments" json:"article_max_comments"`
	MinScore           int           `yaml:"min_score" json:"min_score"`
	ExcerptLength      int           `yaml:"excerpt_length" json:"excerpt_length"`
	HNStoryLimit       int           `yaml:"hn_story_limit" json:"hn_story_limit"`
	HNThreadLimit      int           `yaml:"hn_thread_limit" json:"hn_thread_limit"`
	SourceDelay        time.Duration `yaml:"source_delay" json:"source_delay"`
	ProspectDelay      time.Duration `yaml:"prospect_delay" json:"prospect_delay"`
	IssueDelay         time.Duration `yaml:"issue_delay" json:"issue_delay"`
}

// RepliesConfig holds reply tracking configuration
type RepliesConfig struct {
	Username   string        `yaml:"username" json:"username"`
	BatchSize  int           `yaml:"batch_size" json:"batch_size"`
	BatchPause time.Duration `yaml:"batch_pause" json:"batch_pause"`
	// Proxies are URL prefixes tried, in order, after a direct fetch fails.
	// The target URL is appended query-escaped.
	Proxies []string `yaml:"proxies" json:"proxies"`
}

// GitHubConfig holds GitHub issue search configuration
type GitHubConfig struct {
	Languages []string `yaml:"languages" json:"languages"`
	Labels    []string `yaml:"labels" json:"labels"`
	PerPage   int      `yaml:"per_page" json:"per_page"`
}

// BackendConfig holds the REST backend configuration
type BackendConfig struct {
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	Directory     string `yaml:"directory" json:"directory"`
	HotThreshold  int    `yaml:"hot_threshold" json:"hot_threshold"`
	WarmThreshold int    `yaml:"warm_threshold" json:"warm_threshold"`
}

// MetricsConfig holds metrics export configuration
type MetricsConfig struct {
	// Textfile is written in the Prometheus text format after each run.
	// Empty disables the export.
	Textfile string `yaml:"textfile" json:"textfile"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestsPerMinute: 60,
			Burst:             5,
		},
		Scan: ScanConfig{
			PostMaxAge:         24 * time.Hour,
			ProspectMaxAge:     7 * 24 * time.Hour,
			MaxComments:        15,
			ArticleMaxComments: 30,
			MinScore:           1,
			ExcerptLength:      2000,
			HNStoryLimit:       50,
			HNThreadLimit:      50,
			SourceDelay:        300 * time.Millisecond,
			ProspectDelay:      400 * time.Millisecond,
			IssueDelay:         500 * time.Millisecond,
		},
		Replies: RepliesConfig{
			Username:   "jessedev_",
			BatchSize:  5,
			BatchPause: 300 * time.Millisecond,
		},
		GitHub: GitHubConfig{
			Languages: []string{"python", "javascript", "typescript", "go", "rust"},
			Labels:    []string{"good-first-issue", "help-wanted", "beginner-friendly", "easy"},
			PerPage:   25,
		},
		Backend: BackendConfig{
			BaseURL:     "http://localhost:8000",
			Timeout:     30 * time.Second,
			MaxAttempts: 3,
		},
		Output: OutputConfig{
			Directory:     "./devscout-output",
			HotThreshold:  15,
			WarmThreshold: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if userAgent := os.Getenv("DEVSCOUT_USER_AGENT"); userAgent != "" {
		c.HTTP.UserAgent = userAgent
	}
	if rpm := envInt("DEVSCOUT_REQUESTS_PER_MINUTE"); rpm > 0 {
		c.HTTP.RequestsPerMinute = rpm
	}
	if timeout := envDuration("DEVSCOUT_HTTP_TIMEOUT"); timeout > 0 {
		c.HTTP.Timeout = timeout
	}

	if maxComments := envInt("DEVSCOUT_MAX_COMMENTS"); maxComments > 0 {
		c.Scan.MaxComments = maxComments
	}
	if delay := envDuration("DEVSCOUT_SOURCE_DELAY"); delay > 0 {
		c.Scan.SourceDelay = delay
	}

	if username := os.Getenv("DEVSCOUT_USERNAME"); username != "" {
		c.Replies.Username = username
	}
	if proxies := os.Getenv("DEVSCOUT_REPLY_PROXIES"); proxies != "" {
		c.Replies.Proxies = splitList(proxies)
	}

	if langs := os.Getenv("DEVSCOUT_GITHUB_LANGUAGES"); langs != "" {
		c.GitHub.Languages = splitList(langs)
	}

	if baseURL := os.Getenv("DEVSCOUT_BACKEND_URL"); baseURL != "" {
		c.Backend.BaseURL = baseURL
	}

	if outputDir := os.Getenv("DEVSCOUT_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}

	if textfile := os.Getenv("DEVSCOUT_METRICS_TEXTFILE"); textfile != "" {
		c.Metrics.Textfile = textfile
	}

	if logLevel := os.Getenv("DEVSCOUT_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("DEVSCOUT_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

func envInt(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return val
}

func envDuration(key string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	for _, loc := range DefaultLocations() {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// DefaultLocations lists the config file paths searched when none is given,
// in order of precedence
func DefaultLocations() []string {
	home := os.Getenv("HOME")
	return []string{
		"devscout.yaml",
		".devscout.yaml",
		".devscout.yml",
		filepath.Join(home, ".config", "devscout", "config.yaml"),
		filepath.Join(home, ".config", "devscout", "config.yml"),
		filepath.Join(home, ".devscout.yaml"),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http timeout must be positive"))
	}
	if c.HTTP.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.HTTP.Burst <= 0 {
		errs = append(errs, errors.New("burst must be positive"))
	}

	if c.Scan.PostMaxAge <= 0 || c.Scan.ProspectMaxAge <= 0 {
		errs = append(errs, errors.New("age windows must be positive"))
	}
	if c.Scan.MaxComments < 0 || c.Scan.ArticleMaxComments < 0 {
		errs = append(errs, errors.New("comment ceilings cannot be negative"))
	}
	if c.Scan.ExcerptLength <= 0 {
		errs = append(errs, errors.New("excerpt length must be positive"))
	}
	if c.Scan.HNStoryLimit <= 0 || c.Scan.HNThreadLimit <= 0 {
		errs = append(errs, errors.New("hacker news limits must be positive"))
	}
	if c.Scan.SourceDelay < 0 || c.Scan.ProspectDelay < 0 || c.Scan.IssueDelay < 0 {
		errs = append(errs, errors.New("delays cannot be negative"))
	}

	if strings.TrimSpace(c.Replies.Username) == "" {
		errs = append(errs, errors.New("tracked username is required"))
	}
	if c.Replies.BatchSize <= 0 {
		errs = append(errs, errors.New("reply batch size must be positive"))
	}
	if c.Replies.BatchSize > 20 {
		errs = append(errs, errors.New("reply batch size should not exceed 20"))
	}

	if len(c.GitHub.Labels) == 0 {
		errs = append(errs, errors.New("at least one GitHub label is required"))
	}
	if c.GitHub.PerPage <= 0 || c.GitHub.PerPage > 100 {
		errs = append(errs, errors.New("GitHub per_page must be between 1 and 100"))
	}

	if c.Backend.BaseURL == "" {
		errs = append(errs, errors.New("backend base URL is required"))
	}
	if c.Backend.MaxAttempts <= 0 {
		errs = append(errs, errors.New("backend max attempts must be positive"))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Output.WarmThreshold > c.Output.HotThreshold {
		errs = append(errs, errors.New("warm threshold cannot exceed hot threshold"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if username, ok := flags["username"].(string); ok && username != "" {
		c.Replies.Username = username
	}
	if backendURL, ok := flags["backend-url"].(string); ok && backendURL != "" {
		c.Backend.BaseURL = backendURL
	}
	if rpm, ok := flags["requests-per-minute"].(int); ok && rpm > 0 {
		c.HTTP.RequestsPerMinute = rpm
	}
	if delay, ok := flags["delay"].(time.Duration); ok && delay > 0 {
		c.Scan.SourceDelay = delay
		c.Scan.ProspectDelay = delay
	}
	if textfile, ok := flags["metrics-textfile"].(string); ok && textfile != "" {
		c.Metrics.Textfile = textfile
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".devscout.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
