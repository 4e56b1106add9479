package ai

// Encoder backends understood by providers.
const (
	// EncoderBackendTEI talks to a HuggingFace text-embeddings-inference server
	// and pools token states locally.
	EncoderBackendTEI = "tei"

	// EncoderBackendOpenAI uses an OpenAI-compatible embeddings endpoint that
	// returns already pooled vectors.
	EncoderBackendOpenAI = "openai"
)

// EncoderBackends lists the valid values for Config.EncoderBackend.
var EncoderBackends = []string{
	EncoderBackendTEI,
	EncoderBackendOpenAI,
}
