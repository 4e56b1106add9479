package rerank

import "github.com/poiesic/litsearch/embedding"

// Defaults applied by DefaultOptions.
const (
	DefaultTopK      = 10
	DefaultThreshold = 0.75
)

// Options control a single Rank call.
type Options struct {
	// TopK is the maximum number of results. Values below 1 mean DefaultTopK.
	TopK int

	// Threshold is the minimum cosine similarity kept. It is used as given,
	// so a value above 1 always produces an empty result.
	Threshold float64

	// TitleWeight and AbstractWeight scale the two halves of an article embedding.
	TitleWeight    float64
	AbstractWeight float64
}

// DefaultOptions returns top 10, threshold 0.75 and 0.7/0.3 weights.
func DefaultOptions() Options {
	return Options{
		TopK:           DefaultTopK,
		Threshold:      DefaultThreshold,
		TitleWeight:    embedding.DefaultTitleWeight,
		AbstractWeight: embedding.DefaultAbstractWeight,
	}
}

func (o Options) topK() int {
	if o.TopK < 1 {
		return DefaultTopK
	}
	return o.TopK
}

// Overrides replaces selected fields of a base Options. Nil fields keep the
// base value.
type Overrides struct {
	TopK           *int
	Threshold      *float64
	TitleWeight    *float64
	AbstractWeight *float64
}

// Apply returns base with every non-nil override set.
func (ov Overrides) Apply(base Options) Options {
	if ov.TopK != nil {
		base.TopK = *ov.TopK
	}
	if ov.Threshold != nil {
		base.Threshold = *ov.Threshold
	}
	if ov.TitleWeight != nil {
		base.TitleWeight = *ov.TitleWeight
	}
	if ov.AbstractWeight != nil {
		base.AbstractWeight = *ov.AbstractWeight
	}
	return base
}
