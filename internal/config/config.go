package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixed retrieval-pipeline defaults. Chunk size 500 keeps a full
// "Requirements" section in one chunk; overlap 50 avoids cutting
// qualification lists mid-sentence.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
	DefaultTopK         = 5

	// Truncation budgets for the assembled prompt, in characters. The
	// retrieved context is capped before the resume.
	DefaultMaxContextChars = 12000
	DefaultMaxResumeChars  = 12000
)

type Config struct {
	Store     StoreConfig  `yaml:"store"`
	EmbedLLM  LLMConfig    `yaml:"embed_llm"`
	GenLLM    LLMConfig    `yaml:"gen_llm"`
	RAG       RAGConfig    `yaml:"rag"`
	Ingestion IngestConfig `yaml:"ingestion"`
	Server    ServerConfig `yaml:"server"`
}

type StoreConfig struct {
	// Backend is "chromem" (embedded, on-disk) or "postgres" (pgvector).
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"`
	Collection  string `yaml:"collection"`
	PostgresDSN string `yaml:"postgres_dsn"`
	Debug       bool   `yaml:"debug"`
}

type LLMConfig struct {
	// Provider is "ollama" or "openai" (any OpenAI-compatible endpoint,
	// Groq included).
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"base_url"`
	Key         string  `yaml:"key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`

	temperatureSet bool
}

// UnmarshalYAML records whether temperature was present in the file, so an
// explicit zero is not backfilled with the default.
func (c *LLMConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Provider    string   `yaml:"provider"`
		BaseURL     string   `yaml:"base_url"`
		Key         string   `yaml:"key"`
		Model       string   `yaml:"model"`
		Temperature *float64 `yaml:"temperature"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.Provider = raw.Provider
	c.BaseURL = raw.BaseURL
	c.Key = raw.Key
	c.Model = raw.Model
	if raw.Temperature != nil {
		c.Temperature = *raw.Temperature
		c.temperatureSet = true
	}
	return nil
}

type RAGConfig struct {
	ChunkSize       int `yaml:"chunk_size"`
	ChunkOverlap    int `yaml:"chunk_overlap"`
	TopK            int `yaml:"top_k"`
	MaxContextChars int `yaml:"max_context_chars"`
	MaxResumeChars  int `yaml:"max_resume_chars"`

	overlapSet bool
}

// UnmarshalYAML records whether chunk_overlap was present in the file;
// overlap zero is a valid chunking setting.
func (c *RAGConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		ChunkSize       int  `yaml:"chunk_size"`
		ChunkOverlap    *int `yaml:"chunk_overlap"`
		TopK            int  `yaml:"top_k"`
		MaxContextChars int  `yaml:"max_context_chars"`
		MaxResumeChars  int  `yaml:"max_resume_chars"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.ChunkSize = raw.ChunkSize
	c.TopK = raw.TopK
	c.MaxContextChars = raw.MaxContextChars
	c.MaxResumeChars = raw.MaxResumeChars
	if raw.ChunkOverlap != nil {
		c.ChunkOverlap = *raw.ChunkOverlap
		c.overlapSet = true
	}
	return nil
}

type IngestConfig struct {
	JobsDir    string `yaml:"jobs_dir"`
	ResumesDir string `yaml:"resumes_dir"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

// Default returns a config without reading any file, for callers that only
// need the built-in defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = "chromem"
	}
	if c.Store.Path == "" {
		c.Store.Path = "./skillgap_db"
	}
	if c.Store.Collection == "" {
		c.Store.Collection = "market_jobs"
	}
	if c.EmbedLLM.Provider == "" {
		c.EmbedLLM.Provider = "ollama"
	}
	if c.EmbedLLM.BaseURL == "" {
		c.EmbedLLM.BaseURL = "http://localhost:11434"
	}
	if c.EmbedLLM.Model == "" {
		c.EmbedLLM.Model = "nomic-embed-text"
	}
	if c.GenLLM.Provider == "" {
		c.GenLLM.Provider = "openai"
	}
	if c.GenLLM.BaseURL == "" {
		c.GenLLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.GenLLM.Model == "" {
		c.GenLLM.Model = "llama-3.3-70b-versatile"
	}
	if c.GenLLM.Temperature == 0 && !c.GenLLM.temperatureSet {
		c.GenLLM.Temperature = 0.3
	}
	if c.RAG.ChunkSize == 0 {
		c.RAG.ChunkSize = DefaultChunkSize
	}
	if c.RAG.ChunkOverlap == 0 && !c.RAG.overlapSet {
		c.RAG.ChunkOverlap = DefaultChunkOverlap
	}
	if c.RAG.TopK == 0 {
		c.RAG.TopK = DefaultTopK
	}
	if c.RAG.MaxContextChars == 0 {
		c.RAG.MaxContextChars = DefaultMaxContextChars
	}
	if c.RAG.MaxResumeChars == 0 {
		c.RAG.MaxResumeChars = DefaultMaxResumeChars
	}
	if c.Ingestion.JobsDir == "" {
		c.Ingestion.JobsDir = "./data/market_jobs"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
}

// applyEnv overlays secrets that must not live in the YAML file. GROQ_API_KEY
// is the one required credential for the generation model.
func (c *Config) applyEnv() {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		c.GenLLM.Key = key
	}
	if key := os.Getenv("EMBED_API_KEY"); key != "" {
		c.EmbedLLM.Key = key
	}
}
