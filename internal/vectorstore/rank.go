package vectorstore

import (
	"math"
	"sort"
)

// CosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched or zero-magnitude vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank orders entries by (similarity desc, insertion order asc) and returns
// the top k. The explicit total order makes results deterministic for a fixed
// collection state, independent of any backend's internal tie behavior.
func Rank(entries []Entry, query []float32, k int) []Result {
	results := make([]Result, len(entries))
	for i, e := range entries {
		results[i] = Result{Entry: e, Similarity: CosineSimilarity(e.Vector, query)}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Entry.Order < results[j].Entry.Order
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}
