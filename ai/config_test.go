package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.GeneratorHost)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.GeneratorModel)
	assert.Equal(t, EncoderBackendTEI, cfg.EncoderBackend)
	assert.Equal(t, "http://localhost:8080", cfg.EncoderHost)
	assert.Equal(t, 768, cfg.Dimensions)
	assert.Equal(t, 512, cfg.MaxTokens)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with custom generator", func(t *testing.T) {
		cfg := NewConfig(
			WithGeneratorHost("http://localhost:11434/v1"),
			WithGeneratorModel("qwen2.5:3b"),
			WithGeneratorToken("secret"),
		)

		assert.Equal(t, "http://localhost:11434/v1", cfg.GeneratorHost)
		assert.Equal(t, "qwen2.5:3b", cfg.GeneratorModel)
		assert.Equal(t, "secret", cfg.GeneratorToken)
	})

	t.Run("with custom encoder", func(t *testing.T) {
		cfg := NewConfig(
			WithEncoderBackend(EncoderBackendOpenAI),
			WithEncoderHost("http://embed:9000/v1"),
			WithEncoderModel("text-embedding-3-small"),
			WithEncoderToken("tok"),
			WithDimensions(1536),
			WithMaxTokens(256),
		)

		assert.Equal(t, EncoderBackendOpenAI, cfg.EncoderBackend)
		assert.Equal(t, "http://embed:9000/v1", cfg.EncoderHost)
		assert.Equal(t, "text-embedding-3-small", cfg.EncoderModel)
		assert.Equal(t, "tok", cfg.EncoderToken)
		assert.Equal(t, 1536, cfg.Dimensions)
		assert.Equal(t, 256, cfg.MaxTokens)
	})

	t.Run("with generation settings", func(t *testing.T) {
		cfg := NewConfig(WithTemperature(0.2), WithMaxOutputTokens(128), WithTimeout(5*time.Second))

		assert.Equal(t, 0.2, cfg.Temperature)
		assert.Equal(t, 128, cfg.MaxOutputTokens)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name          string
		backend       string
		generatorHost string
		encoderHost   string
		wantGenerator string
		wantEncoder   string
		wantBackend   string
	}{
		{
			name:          "adds v1 to generator host",
			backend:       EncoderBackendTEI,
			generatorHost: "https://api.groq.com/openai",
			encoderHost:   "http://localhost:8080",
			wantGenerator: "https://api.groq.com/openai/v1",
			wantEncoder:   "http://localhost:8080",
			wantBackend:   EncoderBackendTEI,
		},
		{
			name:          "strips trailing slash before adding v1",
			backend:       EncoderBackendTEI,
			generatorHost: "http://localhost:11434/",
			encoderHost:   "http://localhost:8080/",
			wantGenerator: "http://localhost:11434/v1",
			wantEncoder:   "http://localhost:8080",
			wantBackend:   EncoderBackendTEI,
		},
		{
			name:          "openai encoder host gets v1",
			backend:       "OpenAI",
			generatorHost: "http://gen/v1",
			encoderHost:   "http://embed:9000",
			wantGenerator: "http://gen/v1",
			wantEncoder:   "http://embed:9000/v1",
			wantBackend:   EncoderBackendOpenAI,
		},
		{
			name:        "empty hosts stay empty",
			backend:     EncoderBackendTEI,
			wantBackend: EncoderBackendTEI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				GeneratorHost:  tt.generatorHost,
				EncoderHost:    tt.encoderHost,
				EncoderBackend: tt.backend,
			}
			cfg.Normalize()

			assert.Equal(t, tt.wantGenerator, cfg.GeneratorHost)
			assert.Equal(t, tt.wantEncoder, cfg.EncoderHost)
			assert.Equal(t, tt.wantBackend, cfg.EncoderBackend)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "default config is valid",
			modify: func(c *Config) {},
		},
		{
			name:    "missing generator host",
			modify:  func(c *Config) { c.GeneratorHost = "" },
			wantErr: "GeneratorHost is required",
		},
		{
			name:    "missing generator model",
			modify:  func(c *Config) { c.GeneratorModel = "" },
			wantErr: "GeneratorModel is required",
		},
		{
			name:    "unknown encoder backend",
			modify:  func(c *Config) { c.EncoderBackend = "onnx" },
			wantErr: "EncoderBackend must be one of",
		},
		{
			name:    "missing encoder host",
			modify:  func(c *Config) { c.EncoderHost = "" },
			wantErr: "EncoderHost is required",
		},
		{
			name: "openai backend requires model",
			modify: func(c *Config) {
				c.EncoderBackend = EncoderBackendOpenAI
				c.EncoderModel = ""
			},
			wantErr: "EncoderModel is required",
		},
		{
			name:   "tei backend does not require model",
			modify: func(c *Config) { c.EncoderModel = "" },
		},
		{
			name:    "zero dimensions",
			modify:  func(c *Config) { c.Dimensions = 0 },
			wantErr: "Dimensions must be positive",
		},
		{
			name:    "zero max tokens",
			modify:  func(c *Config) { c.MaxTokens = 0 },
			wantErr: "MaxTokens must be positive",
		},
		{
			name:    "temperature out of range",
			modify:  func(c *Config) { c.Temperature = 3 },
			wantErr: "Temperature must be between 0 and 2",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Timeout = 0 },
			wantErr: "Timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidate_Normalizes(t *testing.T) {
	cfg := NewConfig(WithGeneratorHost("https://api.groq.com/openai"))

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.GeneratorHost)
}
