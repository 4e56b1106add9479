package mock

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/poiesic/litsearch/ai"
)

// DefaultDimension is the vector width of a MockEncoder built with NewMockEncoder.
const DefaultDimension = 8

// MockEncoder is a test double for ai.Encoder.
// By default every whitespace-separated word becomes one token whose hidden
// state is derived from the word's hash, so equal texts encode equally.
type MockEncoder struct {
	// EncodeFunc is called by Encode if set.
	EncodeFunc func(ctx context.Context, texts []string) ([]ai.TokenStates, error)

	// Vectors maps a whole text to a fixed single-token state.
	// Checked before the hash fallback.
	Vectors map[string][]float32

	dimension int
	mu        sync.Mutex
	callCount int
	texts     int
}

// NewMockEncoder creates a mock encoder of DefaultDimension width.
func NewMockEncoder() *MockEncoder {
	return NewMockEncoderWithDimension(DefaultDimension)
}

// NewMockEncoderWithDimension creates a mock encoder of the given width.
func NewMockEncoderWithDimension(dim int) *MockEncoder {
	return &MockEncoder{dimension: dim, Vectors: map[string][]float32{}}
}

// WithVector pins the state returned for text.
func (m *MockEncoder) WithVector(text string, v []float32) *MockEncoder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Vectors[text] = v
	return m
}

// Dimension returns the vector width.
func (m *MockEncoder) Dimension() int {
	return m.dimension
}

// Encode returns deterministic token states for texts.
func (m *MockEncoder) Encode(ctx context.Context, texts []string) ([]ai.TokenStates, error) {
	m.mu.Lock()
	m.callCount++
	m.texts += len(texts)
	fn := m.EncodeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, texts)
	}

	states := make([]ai.TokenStates, len(texts))
	for i, text := range texts {
		m.mu.Lock()
		pinned, ok := m.Vectors[text]
		m.mu.Unlock()
		if ok {
			states[i] = ai.TokenStates{Hidden: [][]float32{pinned}, Mask: []int{1}}
			continue
		}

		words := strings.Fields(text)
		hidden := make([][]float32, len(words))
		mask := make([]int, len(words))
		for j, w := range words {
			hidden[j] = generateDeterministicVector(w, m.dimension)
			mask[j] = 1
		}
		states[i] = ai.TokenStates{Hidden: hidden, Mask: mask}
	}
	return states, nil
}

// CallCount returns the number of times Encode was called.
func (m *MockEncoder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// TextCount returns the total number of texts encoded.
func (m *MockEncoder) TextCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.texts
}

// Reset clears counters and injected behavior.
func (m *MockEncoder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.texts = 0
	m.EncodeFunc = nil
	m.Vectors = map[string][]float32{}
}

// generateDeterministicVector creates a deterministic vector from text.
// It uses FNV hash to ensure the same text always produces the same vector.
func generateDeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		// Simple pseudo-random generation based on seed and index
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000)/1000.0 - 0.5
	}
	return vector
}
