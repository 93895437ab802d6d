package app

import "math"

// Final scoring weights: similarity dominates, then rating, popularity,
// review activity.
const (
	weightSimilarity = 0.60
	weightRating     = 0.20
	weightPopularity = 0.15
	weightRecency    = 0.05
)

// popularityScore maps the rating count onto [0,1] on a log scale; 10k+
// ratings saturate the score.
func popularityScore(ratingCount int) float64 {
	if ratingCount <= 0 {
		return 0
	}
	return math.Min(math.Log10(float64(ratingCount)+1)/4.0, 1.0)
}

// recencyScore rewards review activity; five or more reviews is full marks.
func recencyScore(reviewCount int) float64 {
	if reviewCount <= 0 {
		return 0
	}
	return math.Min(float64(reviewCount)/5.0, 1.0)
}

func totalScore(similarity, rating float64, ratingCount, reviewCount int) float64 {
	return similarity*weightSimilarity +
		(rating/5.0)*weightRating +
		popularityScore(ratingCount)*weightPopularity +
		recencyScore(reviewCount)*weightRecency
}

// matchRate is the human-facing integer percentage, floored not rounded.
func matchRate(total float64) int {
	return int(math.Floor(total * 100))
}

// cosine similarity between two embedding vectors; 0 for mismatched or
// zero-magnitude inputs.
func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
