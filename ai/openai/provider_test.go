package openai

import (
	"testing"

	"github.com/poiesic/litsearch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("tei encoder by default", func(t *testing.T) {
		provider, err := NewProvider(ai.DefaultConfig())
		require.NoError(t, err)
		defer provider.Close()

		assert.NotNil(t, provider.Generator())
		require.NotNil(t, provider.Encoder())
		_, isOpenAI := provider.Encoder().(*Encoder)
		assert.False(t, isOpenAI)
		assert.Equal(t, 768, provider.Encoder().Dimension())
	})

	t.Run("openai encoder", func(t *testing.T) {
		provider, err := NewProvider(ai.NewConfig(
			ai.WithEncoderBackend(ai.EncoderBackendOpenAI),
			ai.WithEncoderHost("http://localhost:11434"),
			ai.WithEncoderModel("nomic-embed-text"),
		))
		require.NoError(t, err)
		defer provider.Close()

		_, isOpenAI := provider.Encoder().(*Encoder)
		assert.True(t, isOpenAI)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewProvider(ai.NewConfig(ai.WithGeneratorHost("")))
		assert.Error(t, err)
	})
}
