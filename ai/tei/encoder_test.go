package tei

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/litsearch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncoder(t *testing.T, handler http.HandlerFunc) ai.Encoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	enc, err := NewEncoder(ai.NewConfig(
		ai.WithEncoderHost(srv.URL),
		ai.WithEncoderToken("tok"),
		ai.WithDimensions(2),
	))
	require.NoError(t, err)
	return enc
}

func TestEncode(t *testing.T) {
	var got embedAllRequest
	enc := newTestEncoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embed_all", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[[1,2],[3,4]],[[5,6]]]`))
	})

	states, err := enc.Encode(context.Background(), []string{"metformin", "gut"})
	require.NoError(t, err)

	assert.Equal(t, []string{"metformin", "gut"}, got.Inputs)
	assert.True(t, got.Truncate)
	require.Len(t, states, 2)
	assert.Equal(t, [][]float32{{1, 2}, {3, 4}}, states[0].Hidden)
	assert.Equal(t, []int{1, 1}, states[0].Mask)
	assert.Equal(t, 1, states[1].Len())
	assert.Equal(t, 2, enc.Dimension())
}

func TestEncode_EmptyInput(t *testing.T) {
	enc := newTestEncoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	states, err := enc.Encode(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestEncode_HTTPError(t *testing.T) {
	enc := newTestEncoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error":"batch too large","error_type":"Validation"}`))
	})

	_, err := enc.Encode(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "413")
	assert.Contains(t, err.Error(), "batch too large")
}

func TestEncode_CountMismatch(t *testing.T) {
	enc := newTestEncoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[[1,2]]]`))
	})

	_, err := enc.Encode(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestEncode_MalformedBody(t *testing.T) {
	enc := newTestEncoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	})

	_, err := enc.Encode(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing TEI response")
}

func TestNewEncoder_InvalidConfig(t *testing.T) {
	_, err := NewEncoder(ai.NewConfig(ai.WithEncoderHost("")))
	assert.Error(t, err)
}
