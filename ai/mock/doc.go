// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.TextGenerator, ai.Encoder
// and ai.AIProvider for use in unit tests. The mocks run without external
// services and behave deterministically.
//
// # Usage in Tests
//
//	gen := mock.NewMockGenerator(
//	    "Concepts: ...\nOptimized Boolean Query: metformin AND microbiota",
//	    `"Metformin"[MeSH] AND "Gastrointestinal Microbiome"[MeSH]`,
//	)
//
//	enc := mock.NewMockEncoder().
//	    WithVector("metformin", []float32{1, 0, 0, 0, 0, 0, 0, 0})
//
//	count := gen.CallCount()
//
// # Default Behavior
//
//   - MockGenerator: Replays Responses in order, then echoes the prompt
//   - MockEncoder: One token per word, vectors derived from the word hash
//   - MockProvider: Aggregates mock generator and encoder
package mock
