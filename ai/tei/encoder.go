package tei

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/poiesic/litsearch/ai"
)

// ErrUnexpectedResponse indicates the server answered with a shape the
// encoder cannot use.
var ErrUnexpectedResponse = errors.New("unexpected TEI response")

type embedAllRequest struct {
	Inputs              []string `json:"inputs"`
	Truncate            bool     `json:"truncate"`
	TruncationDirection string   `json:"truncation_direction"`
}

type errorResponse struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

// Encoder calls the /embed_all route of a TEI server.
type Encoder struct {
	host      string
	token     string
	dimension int
	client    *http.Client
	logger    *slog.Logger
}

// NewEncoder creates a TEI encoder from the provided configuration.
//
// Returns ai.Encoder interface to enforce abstraction.
func NewEncoder(config *ai.Config) (ai.Encoder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Encoder{
		host:      config.EncoderHost,
		token:     config.EncoderToken,
		dimension: config.Dimensions,
		client:    &http.Client{Timeout: config.Timeout},
		logger:    slog.Default().With("component", "tei-encoder"),
	}, nil
}

// Dimension returns the configured hidden-state width.
func (e *Encoder) Dimension() int {
	return e.dimension
}

// Encode returns per-token hidden states for each text.
// TEI does not pad single sequences, so every position is unmasked.
func (e *Encoder) Encode(ctx context.Context, texts []string) ([]ai.TokenStates, error) {
	if len(texts) == 0 {
		return []ai.TokenStates{}, nil
	}
	e.logger.Debug("encoding texts", "count", len(texts))

	body, err := json.Marshal(embedAllRequest{
		Inputs:              texts,
		Truncate:            true,
		TruncationDirection: "Right",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.host+"/embed_all", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Error("TEI request failed", "err", err)
		return nil, fmt.Errorf("TEI request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("TEI returned HTTP %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("TEI returned HTTP %d", resp.StatusCode)
	}

	var hidden [][][]float32
	if err := json.NewDecoder(resp.Body).Decode(&hidden); err != nil {
		return nil, fmt.Errorf("parsing TEI response: %w", err)
	}
	if len(hidden) != len(texts) {
		return nil, fmt.Errorf("%w: %d sequences for %d inputs", ErrUnexpectedResponse, len(hidden), len(texts))
	}

	states := make([]ai.TokenStates, len(hidden))
	for i, tokens := range hidden {
		mask := make([]int, len(tokens))
		for j := range mask {
			mask[j] = 1
		}
		states[i] = ai.TokenStates{Hidden: tokens, Mask: mask}
	}
	return states, nil
}
