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


// Package ai provides abstractions for the model services used by litsearch.
//
// The retrieval pipeline needs two things from machine learning models: free
// text from a prompt (query reformulation) and per-token hidden states from a
// pretrained biomedical encoder (dense embeddings). This package defines
// those capabilities as narrow interfaces so the pipeline can be driven by
// deterministic doubles in tests.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - TextGenerator: Turns a prompt into free text
//   - Encoder: Returns per-token hidden states and the attention mask
//   - AIProvider: Aggregates both for convenient initialization
//
// Encoder deliberately stops short of pooling. The embedding package owns
// attention-masked mean pooling so every backend goes through the same math.
//
// # Implementation Packages
//
//   - ai/openai: Generator and pooled-embedding Encoder over OpenAI-compatible APIs (Groq by default)
//   - ai/tei: Token-level Encoder over a text-embeddings-inference server
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewGenerator, tei.NewEncoder)
// return INTERFACE types. Test utility constructors (mock.NewMockGenerator,
// mock.NewMockEncoder) return CONCRETE types so tests can inject behavior and
// assert on call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithGeneratorToken(os.Getenv("GROQ_API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	reply, err := provider.Generator().Generate(ctx, prompt)
//	states, err := provider.Encoder().Encode(ctx, []string{"metformin"})
package ai
