package embedding

import "errors"

var (
	// ErrEncoderRequired is returned when an encoder is not provided.
	ErrEncoderRequired = errors.New("encoder required")

	// ErrDimensionMismatch indicates a vector does not have the engine's width.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrBatchMismatch indicates the encoder returned a different number of
	// sequences than it was given.
	ErrBatchMismatch = errors.New("encoder batch size mismatch")

	// ErrMaskMismatch indicates token states and attention mask differ in length.
	ErrMaskMismatch = errors.New("attention mask length mismatch")
)
