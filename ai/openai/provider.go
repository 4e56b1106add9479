// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"log/slog"

	"github.com/poiesic/litsearch/ai"
	"github.com/poiesic/litsearch/ai/tei"
)

// Provider implements ai.AIProvider using an OpenAI-compatible generator.
// The encoder is either a TEI client or an OpenAI-compatible embeddings client,
// selected by Config.EncoderBackend.
type Provider struct {
	config    *ai.Config
	generator *Generator
	encoder   ai.Encoder
	logger    *slog.Logger
}

// NewProvider creates a new AI provider.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	generator, err := newGenerator(config)
	if err != nil {
		return nil, err
	}

	var encoder ai.Encoder
	switch config.EncoderBackend {
	case ai.EncoderBackendOpenAI:
		encoder, err = newEncoder(config)
	default:
		encoder, err = tei.NewEncoder(config)
	}
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		generator: generator,
		encoder:   encoder,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Generator returns the text generation service.
func (p *Provider) Generator() ai.TextGenerator {
	return p.generator
}

// Encoder returns the text encoder.
func (p *Provider) Encoder() ai.Encoder {
	return p.encoder
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
