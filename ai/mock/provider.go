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


package mock

import "github.com/poiesic/litsearch/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock generator and encoder instances.
type MockProvider struct {
	generator *MockGenerator
	encoder   *MockEncoder
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockGenerator()/GetMockEncoder() to access concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		generator: NewMockGenerator(),
		encoder:   NewMockEncoder(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(generator *MockGenerator, encoder *MockEncoder) ai.AIProvider {
	return &MockProvider{
		generator: generator,
		encoder:   encoder,
	}
}

// Generator returns the mock generator.
func (p *MockProvider) Generator() ai.TextGenerator {
	return p.generator
}

// Encoder returns the mock encoder.
func (p *MockProvider) Encoder() ai.Encoder {
	return p.encoder
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockGenerator returns the underlying mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}

// GetMockEncoder returns the underlying mock encoder for test assertions.
func (p *MockProvider) GetMockEncoder() *MockEncoder {
	return p.encoder
}
