// Package tei implements ai.Encoder against a HuggingFace
// text-embeddings-inference server.
//
// The /embed_all route returns the final hidden state for every token of
// every input instead of a pooled vector. Pooling happens in the embedding
// package so the attention mask is applied in one place regardless of which
// server produced the states.
package tei
