package embedding

import "math"

// Zero returns the zero vector of length dim.
func Zero(dim int) []float32 {
	return make([]float32, dim)
}

// Scale returns v multiplied by s as a new vector.
func Scale(v []float32, s float32) []float32 {
	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val * s
	}
	return result
}

// Add returns the element-wise sum of a and b as a new vector.
// Both must have the same length.
func Add(a, b []float32) []float32 {
	result := make([]float32, len(a))
	for i := range a {
		result[i] = a[i] + b[i]
	}
	return result
}

// Norm returns the Euclidean length of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// It is 0 when either vector has zero length or the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}

	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	sim := dot / (na * nb)
	// rounding can push parallel vectors just past 1
	return math.Max(-1, math.Min(1, sim))
}
