package model

import "time"

// Config is the complete wikichat configuration
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Dialog    DialogConfig    `yaml:"dialog"`
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
}

// HTTPConfig controls the HTTP client used for knowledge-base requests
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`         // Per-request timeout
	UserAgent     string        `yaml:"user_agent"`      // User-Agent header
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`  // Max response bytes to read
	MaxRetries    int           `yaml:"max_retries"`     // Retries on network/5xx errors
	RespectRobots bool          `yaml:"respect_robots"`  // Check robots.txt before fetching
	RateLimit     float64       `yaml:"rate_limit"`      // Requests per second per host
	RateBurst     int           `yaml:"rate_burst"`      // Burst size per host
	HTTPProxy     string        `yaml:"http_proxy"`      // HTTP proxy URL (overrides env)
	HTTPSProxy    string        `yaml:"https_proxy"`     // HTTPS proxy URL (overrides env)
	NoProxy       string        `yaml:"no_proxy"`        // Comma-separated proxy bypass list
}

// CacheConfig controls caching of knowledge-base responses
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Dir     string        `yaml:"dir"` // Disk cache directory (empty = memory only)
}

// KnowledgeConfig controls knowledge augmentation
type KnowledgeConfig struct {
	Language         string `yaml:"language"`           // Wikidata/Wikipedia language code
	TopSentences     int    `yaml:"top_sentences"`      // Ranked sentences kept per entity
	ResultsPerEntity int    `yaml:"results_per_entity"` // Search hits consulted per entity
	Extractor        string `yaml:"extractor"`          // "heuristic" or "llm"
	StopwordsFile    string `yaml:"stopwords_file"`     // Path to stopword list (empty = built-in)
	Workers          int    `yaml:"workers"`            // Concurrent entity lookups per turn
}

// DialogConfig controls dialogue handling
type DialogConfig struct {
	HistoryLimit int    `yaml:"history_limit"` // Most recent turns passed to the generator
	Instruction  string `yaml:"instruction"`   // Task instruction prepended to every prompt
}

// LLMConfig holds generation model configuration
type LLMConfig struct {
	Provider   string  `yaml:"provider"`    // openai, anthropic, ollama
	Model      string  `yaml:"model"`       // Model name (empty = provider default)
	LargeModel string  `yaml:"large_model"` // Model selected by --large (empty = provider default)
	APIKey     string  `yaml:"-"`           // Never persisted to config files
	BaseURL    string  `yaml:"base_url"`
	Timeout    int     `yaml:"timeout"` // seconds
	MaxTokens  int     `yaml:"max_tokens"`
	TopP       float32 `yaml:"top_p"` // Nucleus sampling threshold
}

// EmbeddingConfig holds sentence-embedding model configuration
type EmbeddingConfig struct {
	Model   string `yaml:"model"`
	APIKey  string `yaml:"-"`
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // seconds
}

// DefaultInstruction is the chitchat task instruction used when none is configured.
const DefaultInstruction = "Instruction: given a dialog context and related knowledge, you need to respond safely based on the knowledge."

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       15 * time.Second,
			UserAgent:     "Wikichat/0.1 (+https://github.com/ppiankov/wikichat)",
			MaxBodyBytes:  2_000_000,
			MaxRetries:    2,
			RespectRobots: false,
			RateLimit:     5,
			RateBurst:     5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Knowledge: KnowledgeConfig{
			Language:         "en",
			TopSentences:     10,
			ResultsPerEntity: 1,
			Extractor:        "heuristic",
			Workers:          4,
		},
		Dialog: DialogConfig{
			HistoryLimit: 500,
			Instruction:  DefaultInstruction,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Timeout:   60,
			MaxTokens: 128,
			TopP:      0.9,
		},
		Embedding: EmbeddingConfig{
			Timeout: 30,
		},
	}
}
