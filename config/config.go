// Package config loads litsearch settings from a YAML file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/litsearch/ai"
	"github.com/poiesic/litsearch/literature/pubmed"
	"github.com/poiesic/litsearch/pipeline"
	"github.com/poiesic/litsearch/rerank"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted for secrets.
const (
	EnvGeneratorKey       = "GROQ_API_KEY"
	EnvGeneratorKeyLegacy = "GROQ_API"
	EnvEncoderToken       = "LITSEARCH_ENCODER_TOKEN"
	EnvNCBIKey            = "NCBI_API_KEY"
	EnvNCBIEmail          = "NCBI_EMAIL"
)

// GeneratorConfig configures the OpenAI-compatible text generator.
type GeneratorConfig struct {
	Host            string  `yaml:"host"`
	Model           string  `yaml:"model"`
	APIKeyEnv       string  `yaml:"api_key_env"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	TimeoutSecs     int     `yaml:"timeout_secs"`
}

// EncoderConfig selects and configures the encoder backend.
type EncoderConfig struct {
	Backend    string `yaml:"backend"`
	Host       string `yaml:"host"`
	Model      string `yaml:"model"`
	TokenEnv   string `yaml:"token_env"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
}

// PubMedConfig configures the E-utilities client.
type PubMedConfig struct {
	BaseURL           string  `yaml:"base_url"`
	APIKeyEnv         string  `yaml:"api_key_env"`
	Tool              string  `yaml:"tool"`
	Email             string  `yaml:"email"`
	TimeoutSecs       int     `yaml:"timeout_secs"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	FetchBatchSize    int     `yaml:"fetch_batch_size"`
}

// RankingConfig holds the default ranking options.
type RankingConfig struct {
	TopK           int     `yaml:"top_k"`
	Threshold      float64 `yaml:"threshold"`
	TitleWeight    float64 `yaml:"title_weight"`
	AbstractWeight float64 `yaml:"abstract_weight"`
	PoolSize       int     `yaml:"pool_size"`
}

// PipelineConfig tunes retrieval and persistence.
type PipelineConfig struct {
	MaxFetch           int `yaml:"max_fetch"`
	PersistTimeoutSecs int `yaml:"persist_timeout_secs"`
	PersistRetries     int `yaml:"persist_retries"`
}

// StorageConfig locates the search record database.
type StorageConfig struct {
	Path       string `yaml:"path"`
	InMemory   bool   `yaml:"in_memory"`
	SyncWrites bool   `yaml:"sync_writes"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Generator GeneratorConfig `yaml:"generator"`
	Encoder   EncoderConfig   `yaml:"encoder"`
	PubMed    PubMedConfig    `yaml:"pubmed"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Storage   StorageConfig   `yaml:"storage"`
}

// Load reads a config from path. If the file does not exist, returns defaults.
// Fields missing from the file take their default values.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadEnv loads variables from .env files into the environment without
// overriding ones already set. With no arguments it reads ./.env.
// Missing files are not an error.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	aiDefaults := ai.DefaultConfig()
	g := &cfg.Generator
	if g.Host == "" {
		g.Host = aiDefaults.GeneratorHost
	}
	if g.Model == "" {
		g.Model = aiDefaults.GeneratorModel
	}
	if g.APIKeyEnv == "" {
		g.APIKeyEnv = EnvGeneratorKey
	}
	if g.Temperature == 0 {
		g.Temperature = aiDefaults.Temperature
	}
	if g.MaxOutputTokens == 0 {
		g.MaxOutputTokens = aiDefaults.MaxOutputTokens
	}
	if g.TimeoutSecs == 0 {
		g.TimeoutSecs = int(aiDefaults.Timeout / time.Second)
	}

	e := &cfg.Encoder
	if e.Backend == "" {
		e.Backend = aiDefaults.EncoderBackend
	}
	if e.Host == "" {
		e.Host = aiDefaults.EncoderHost
	}
	if e.Model == "" {
		e.Model = aiDefaults.EncoderModel
	}
	if e.TokenEnv == "" {
		e.TokenEnv = EnvEncoderToken
	}
	if e.Dimensions == 0 {
		e.Dimensions = aiDefaults.Dimensions
	}
	if e.MaxTokens == 0 {
		e.MaxTokens = aiDefaults.MaxTokens
	}

	pmDefaults := pubmed.DefaultConfig()
	p := &cfg.PubMed
	if p.BaseURL == "" {
		p.BaseURL = pmDefaults.BaseURL
	}
	if p.APIKeyEnv == "" {
		p.APIKeyEnv = EnvNCBIKey
	}
	if p.Tool == "" {
		p.Tool = pmDefaults.Tool
	}
	if p.TimeoutSecs == 0 {
		p.TimeoutSecs = int(pmDefaults.Timeout / time.Second)
	}
	if p.FetchBatchSize == 0 {
		p.FetchBatchSize = pmDefaults.FetchBatchSize
	}

	rankDefaults := rerank.DefaultOptions()
	r := &cfg.Ranking
	if r.TopK == 0 {
		r.TopK = rankDefaults.TopK
	}
	if r.Threshold == 0 {
		r.Threshold = rankDefaults.Threshold
	}
	if r.TitleWeight == 0 && r.AbstractWeight == 0 {
		r.TitleWeight = rankDefaults.TitleWeight
		r.AbstractWeight = rankDefaults.AbstractWeight
	}

	pl := &cfg.Pipeline
	if pl.MaxFetch == 0 {
		pl.MaxFetch = pipeline.DefaultMaxFetch
	}
	if pl.PersistTimeoutSecs == 0 {
		pl.PersistTimeoutSecs = int(pipeline.DefaultPersistTimeout / time.Second)
	}
	if pl.PersistRetries == 0 {
		pl.PersistRetries = pipeline.DefaultPersistRetries
	}

	if cfg.Storage.Path == "" && !cfg.Storage.InMemory {
		cfg.Storage.Path = defaultStoragePath()
	}
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "litsearch-data"
	}
	return filepath.Join(home, ".local", "share", "litsearch")
}

// AIConfig builds the provider configuration, reading secrets from the
// environment. The generator key falls back to the legacy GROQ_API variable.
func (c *AppConfig) AIConfig() *ai.Config {
	token := os.Getenv(c.Generator.APIKeyEnv)
	if token == "" && c.Generator.APIKeyEnv == EnvGeneratorKey {
		token = os.Getenv(EnvGeneratorKeyLegacy)
	}
	return ai.NewConfig(
		ai.WithGeneratorHost(c.Generator.Host),
		ai.WithGeneratorModel(c.Generator.Model),
		ai.WithGeneratorToken(token),
		ai.WithTemperature(c.Generator.Temperature),
		ai.WithMaxOutputTokens(c.Generator.MaxOutputTokens),
		ai.WithEncoderBackend(c.Encoder.Backend),
		ai.WithEncoderHost(c.Encoder.Host),
		ai.WithEncoderModel(c.Encoder.Model),
		ai.WithEncoderToken(os.Getenv(c.Encoder.TokenEnv)),
		ai.WithDimensions(c.Encoder.Dimensions),
		ai.WithMaxTokens(c.Encoder.MaxTokens),
		ai.WithTimeout(time.Duration(c.Generator.TimeoutSecs)*time.Second),
	)
}

// PubMedConfig builds the E-utilities client configuration. NCBI_EMAIL
// overrides the file's email when set.
func (c *AppConfig) PubMedConfig() *pubmed.Config {
	email := c.PubMed.Email
	if env := os.Getenv(EnvNCBIEmail); env != "" {
		email = env
	}
	return &pubmed.Config{
		BaseURL:           c.PubMed.BaseURL,
		APIKey:            os.Getenv(c.PubMed.APIKeyEnv),
		Tool:              c.PubMed.Tool,
		Email:             email,
		Timeout:           time.Duration(c.PubMed.TimeoutSecs) * time.Second,
		RequestsPerSecond: c.PubMed.RequestsPerSecond,
		FetchBatchSize:    c.PubMed.FetchBatchSize,
	}
}

// RankOptions returns the default ranking options.
func (c *AppConfig) RankOptions() rerank.Options {
	return rerank.Options{
		TopK:           c.Ranking.TopK,
		Threshold:      c.Ranking.Threshold,
		TitleWeight:    c.Ranking.TitleWeight,
		AbstractWeight: c.Ranking.AbstractWeight,
	}
}

// PersistTimeout returns the background insert timeout.
func (c *AppConfig) PersistTimeout() time.Duration {
	return time.Duration(c.Pipeline.PersistTimeoutSecs) * time.Second
}
