// Package embedding turns text into fixed-length dense vectors.
//
// The Engine sends text to an ai.Encoder, receives per-token hidden states
// and reduces them with attention-masked mean pooling: padding positions are
// excluded and the divisor is clamped to a small epsilon. Empty text never
// reaches the encoder and always yields the zero vector of the engine's
// dimension.
//
// Articles are embedded as a weighted sum of their title and abstract
// vectors, 0.7 and 0.3 by default.
package embedding
