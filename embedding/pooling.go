package embedding

import (
	"fmt"

	"github.com/poiesic/litsearch/ai"
)

// PoolingEpsilon is the floor applied to the attention-mask sum.
const PoolingEpsilon = 1e-9

// MeanPool averages the hidden states of the unmasked token positions.
// Only the first maxTokens positions are used when maxTokens is positive.
// Each hidden state must have length dim. A sequence with no unmasked
// positions pools to the zero vector.
func MeanPool(states ai.TokenStates, dim, maxTokens int) ([]float32, error) {
	if len(states.Mask) != len(states.Hidden) {
		return nil, fmt.Errorf("%w: %d states, %d mask entries", ErrMaskMismatch, len(states.Hidden), len(states.Mask))
	}

	n := len(states.Hidden)
	if maxTokens > 0 && n > maxTokens {
		n = maxTokens
	}

	sum := make([]float64, dim)
	var count float64
	for i := 0; i < n; i++ {
		h := states.Hidden[i]
		if len(h) != dim {
			return nil, fmt.Errorf("%w: token %d has %d values, want %d", ErrDimensionMismatch, i, len(h), dim)
		}
		m := float64(states.Mask[i])
		if m == 0 {
			continue
		}
		for j, v := range h {
			sum[j] += float64(v) * m
		}
		count += m
	}

	if count < PoolingEpsilon {
		count = PoolingEpsilon
	}

	pooled := make([]float32, dim)
	for j := range sum {
		pooled[j] = float32(sum[j] / count)
	}
	return pooled, nil
}
