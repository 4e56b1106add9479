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


// Package openai provides AI service implementations using OpenAI-compatible APIs.
//
// This package implements the ai.AIProvider interface using the langchaingo
// library to talk to OpenAI or OpenAI-compatible services such as Groq,
// Ollama or vLLM. Query reformulation goes through Generator. Encoder covers
// services that return pooled embeddings. Token-level encoding is served by
// the ai/tei package and selected through ai.Config.EncoderBackend.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithGeneratorToken(os.Getenv("GROQ_API_KEY")),
//	)
//
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	reply, err := provider.Generator().Generate(ctx, prompt)
//	states, err := provider.Encoder().Encode(ctx, []string{"metformin and gut microbiota"})
package openai
