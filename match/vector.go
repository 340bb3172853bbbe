package match

import "math"

// CosineSimilarity computes dot(u,v) / (||u|| * ||v||).
// Returns 0 when either vector has zero norm or the lengths differ.
func CosineSimilarity(u, v []float32) float64 {
	if len(u) == 0 || len(u) != len(v) {
		return 0
	}

	var dot, normU, normV float64
	for i := range u {
		dot += float64(u[i]) * float64(v[i])
		normU += float64(u[i]) * float64(u[i])
		normV += float64(v[i]) * float64(v[i])
	}

	if normU == 0 || normV == 0 {
		return 0
	}
	return dot / (math.Sqrt(normU) * math.Sqrt(normV))
}

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// Round2 rounds a percentage to two decimal places for display.
// Internal sort keys stay unrounded so that tie-break order is stable.
func Round2(pct float64) float64 {
	return math.Round(pct*100) / 100
}
