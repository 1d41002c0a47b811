package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

type ExtractionConfig struct {
	Mode                  string `toml:"mode"`
	MaxEntities           int    `toml:"max_entities"`
	AllowedEntityTypes    string `toml:"allowed_entity_types"`
	EnableEntityInference bool   `toml:"enable_entity_inference"`
	Language              string `toml:"language"`
}

type ChunkingConfig struct {
	Enabled bool `toml:"enabled"`
	Size    int  `toml:"size"`
	Overlap int  `toml:"overlap"`
}

type RelationsConfig struct {
	Enabled         bool `toml:"enabled"`
	EnableInference bool `toml:"enable_inference"`
	MaxRelations    int  `toml:"max_relations"`
	EnableKGC       bool `toml:"enable_kgc"`
	KGCRounds       int  `toml:"kgc_rounds"`
}

type LinkingConfig struct {
	UseWikidata       bool `toml:"use_wikidata"`
	UseDBpedia        bool `toml:"use_dbpedia"`
	DBpediaUseDE      bool `toml:"dbpedia_use_de"`
	DBpediaLookupAPI  bool `toml:"dbpedia_lookup_api"`
	AdditionalDetails bool `toml:"additional_details"`
	TimeoutSeconds    int  `toml:"timeout_seconds"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type RateLimitConfig struct {
	MaxCalls      int     `toml:"max_calls"`
	PeriodSeconds int     `toml:"period_seconds"`
	MaxRetries    int     `toml:"max_retries"`
	BackoffBase   float64 `toml:"backoff_base"`
}

type CompendiumConfig struct {
	Enabled     bool `toml:"enabled"`
	Length      int  `toml:"length"`
	Educational bool `toml:"educational"`
}

// PromptOverrides lets a deployment swap the built-in system prompts without
// recompiling. Empty fields fall back to the built-ins.
type PromptOverrides struct {
	Extract  string `toml:"extract"`
	Generate string `toml:"generate"`
	Dedupe   string `toml:"dedupe"`
}

// Config is built once per run and passed by value; nothing mutates it
// mid-run. Per-round variations are derived copies.
type Config struct {
	LLM        LLMConfig        `toml:"llm"`
	Extraction ExtractionConfig `toml:"extraction"`
	Chunking   ChunkingConfig   `toml:"chunking"`
	Relations  RelationsConfig  `toml:"relations"`
	Linking    LinkingConfig    `toml:"linking"`
	Cache      CacheConfig      `toml:"cache"`
	RateLimit  RateLimitConfig  `toml:"ratelimit"`
	Compendium CompendiumConfig `toml:"compendium"`
	Prompts    PromptOverrides  `toml:"prompts"`
}

// Default mirrors the documented defaults: extract mode, 20 entities, 2000/50
// chunking, 15 relations, 3 KGC rounds, 15s lookup timeout.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
			MaxTokens:   4096,
		},
		Extraction: ExtractionConfig{
			Mode:               "extract",
			MaxEntities:        20,
			AllowedEntityTypes: "auto",
			Language:           "en",
		},
		Chunking: ChunkingConfig{
			Size:    2000,
			Overlap: 50,
		},
		Relations: RelationsConfig{
			Enabled:      true,
			MaxRelations: 15,
			KGCRounds:    3,
		},
		Linking: LinkingConfig{
			UseWikidata:    true,
			UseDBpedia:     false,
			TimeoutSeconds: 15,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "cache",
		},
		RateLimit: RateLimitConfig{
			MaxCalls:      20,
			PeriodSeconds: 60,
			MaxRetries:    3,
			BackoffBase:   1.0,
		},
		Compendium: CompendiumConfig{
			Length: 8000,
		},
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// ApplyEnv layers environment variables over the loaded values. Called once
// at startup, before Validate.
func (c Config) ApplyEnv() Config {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	return c
}

// Validate rejects configurations that would fail mid-run. Missing
// credentials are fatal here, before any network call.
func (c Config) Validate() error {
	if c.LLM.APIKey == "" && c.LLM.Provider != "ollama" {
		return fmt.Errorf("missing API key for provider %q", c.LLM.Provider)
	}
	switch c.Extraction.Mode {
	case "", "extract", "generate", "compendium":
	default:
		return fmt.Errorf("unknown mode %q", c.Extraction.Mode)
	}
	if c.Chunking.Enabled {
		if c.Chunking.Size <= 0 {
			return fmt.Errorf("chunk size must be positive, got %d", c.Chunking.Size)
		}
		if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
			return fmt.Errorf("chunk overlap must satisfy 0 <= overlap < size, got %d/%d", c.Chunking.Overlap, c.Chunking.Size)
		}
	}
	if c.Relations.EnableKGC && c.Relations.KGCRounds < 0 {
		return fmt.Errorf("kgc_rounds must be non-negative, got %d", c.Relations.KGCRounds)
	}
	if c.Extraction.Language != "en" && c.Extraction.Language != "de" {
		return fmt.Errorf("unsupported language %q", c.Extraction.Language)
	}
	return nil
}
