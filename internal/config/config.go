package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultSystemPrompt = "You are a compliance reviewer expert at contradictions."

	DefaultUserPrompt = `You compare two policy sentences for contradiction.
Return JSON with fields: type (contradiction/overlap/neutral), explanation (1-2 sentences).
Keep it concise and precise for compliance review.
A: %s
B: %s`

	DefaultMaxCandidates        = 50
	DefaultWordOverlapThreshold = 3
)

type Prompts struct {
	System string `toml:"system"`
	User   string `toml:"user"` // two %s verbs: sentence A, sentence B
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	SiteURL  string `toml:"site_url"`
	SiteName string `toml:"site_name"`
}

type DetectionConfig struct {
	MaxCandidates int `toml:"max_candidates"`
	// Pairs need strictly more shared words than this. Nil means the default;
	// 0 keeps any pair sharing a single word.
	WordOverlapThreshold *int `toml:"word_overlap_threshold"`
}

// OverlapThreshold returns the configured threshold, or the default when
// unset or negative.
func (d DetectionConfig) OverlapThreshold() int {
	if d.WordOverlapThreshold == nil || *d.WordOverlapThreshold < 0 {
		return DefaultWordOverlapThreshold
	}
	return *d.WordOverlapThreshold
}

type ConcurrencyConfig struct {
	Adjudicate int `toml:"adjudicate"`
}

type RetryConfig struct {
	MaxRetries    uint64 `toml:"max_retries"`
	BaseDelayMS   int    `toml:"base_delay_ms"`
	MaxDelayMS    int    `toml:"max_delay_ms"`
	CallTimeoutMS int    `toml:"call_timeout_ms"`
}

func (r RetryConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelayMS) * time.Millisecond
}

func (r RetryConfig) MaxDelay() time.Duration {
	return time.Duration(r.MaxDelayMS) * time.Millisecond
}

func (r RetryConfig) CallTimeout() time.Duration {
	return time.Duration(r.CallTimeoutMS) * time.Millisecond
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type StoreConfig struct {
	Backend string `toml:"backend"` // memory | memgraph
}

type ServerConfig struct {
	Port           string   `toml:"port"`
	UploadDir      string   `toml:"upload_dir"`
	ReportDir      string   `toml:"report_dir"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type Config struct {
	LLM         LLMConfig         `toml:"llm"`
	Prompts     Prompts           `toml:"prompts"`
	Detection   DetectionConfig   `toml:"detection"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Retry       RetryConfig       `toml:"retry"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Store       StoreConfig       `toml:"store"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Server      ServerConfig      `toml:"server"`
}

// Load reads a TOML file and fills in defaults for anything it leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.Defaults()
	return &cfg, nil
}

// DefaultPath is used when neither a flag nor CONFIG_PATH names a file.
const DefaultPath = "config/config.toml"

// Resolve loads path (or CONFIG_PATH, or DefaultPath), falling back to
// built-in defaults when the file does not exist, then applies env overrides.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: config file %s not found, using defaults", path)
		cfg = &Config{}
	} else if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.Defaults()
	return cfg, nil
}

// Defaults fills zero values. Retry and rate limiting stay disabled unless set.
func (c *Config) Defaults() {
	if c.Prompts.System == "" {
		c.Prompts.System = DefaultSystemPrompt
	}
	if c.Prompts.User == "" {
		c.Prompts.User = DefaultUserPrompt
	}
	if c.Detection.MaxCandidates <= 0 {
		c.Detection.MaxCandidates = DefaultMaxCandidates
	}
	if c.Detection.WordOverlapThreshold == nil || *c.Detection.WordOverlapThreshold < 0 {
		threshold := DefaultWordOverlapThreshold
		c.Detection.WordOverlapThreshold = &threshold
	}
	if c.Concurrency.Adjudicate <= 0 {
		c.Concurrency.Adjudicate = 1
	}
	if c.Retry.BaseDelayMS <= 0 {
		c.Retry.BaseDelayMS = 500
	}
	if c.Retry.MaxDelayMS <= 0 {
		c.Retry.MaxDelayMS = 10_000
	}
	if c.Retry.CallTimeoutMS <= 0 {
		c.Retry.CallTimeoutMS = 60_000
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "memory"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = "uploads"
	}
	if c.Server.ReportDir == "" {
		c.Server.ReportDir = "reports"
	}
	if c.LLM.SiteURL == "" {
		c.LLM.SiteURL = "http://localhost:5173"
	}
	if c.LLM.SiteName == "" {
		c.LLM.SiteName = "SmartDocChecker"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{c.LLM.SiteURL, "http://127.0.0.1:5173"}
	}
}

// ApplyEnv overrides file settings with environment variables when present.
func (c *Config) ApplyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.LLM.Provider, "LLM_PROVIDER")
	override(&c.LLM.Model, "LLM_MODEL")
	override(&c.LLM.APIKey, "LLM_API_KEY")
	override(&c.LLM.BaseURL, "LLM_BASE_URL")
	override(&c.LLM.SiteURL, "SITE_URL")
	override(&c.LLM.SiteName, "SITE_NAME")
	override(&c.Store.Backend, "STORE_BACKEND")
	override(&c.Memgraph.URI, "MEMGRAPH_URI")
	override(&c.Memgraph.User, "MEMGRAPH_USER")
	override(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	override(&c.Server.Port, "PORT")
	override(&c.Server.UploadDir, "UPLOAD_DIR")
	override(&c.Server.ReportDir, "REPORT_DIR")

	// OpenRouter deployments export their own key variable.
	if c.LLM.APIKey == "" {
		override(&c.LLM.APIKey, "OPENROUTER_API_KEY")
	}
}
