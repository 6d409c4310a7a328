package vectorstore

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("CosineSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRankOrdering(t *testing.T) {
	entries := []Entry{
		{ID: "far", Order: 0, Vector: []float32{0, 1}},
		{ID: "near", Order: 1, Vector: []float32{1, 0.1}},
		{ID: "exact", Order: 2, Vector: []float32{1, 0}},
	}
	query := []float32{1, 0}

	results := Rank(entries, query, 3)
	if results[0].Entry.ID != "exact" || results[1].Entry.ID != "near" || results[2].Entry.ID != "far" {
		t.Fatalf("unexpected order: %q, %q, %q",
			results[0].Entry.ID, results[1].Entry.ID, results[2].Entry.ID)
	}
}

func TestRankTieBreakByInsertionOrder(t *testing.T) {
	// All entries identical to the query: pure tie, insertion order decides.
	entries := []Entry{
		{ID: "third", Order: 2, Vector: []float32{1, 1}},
		{ID: "first", Order: 0, Vector: []float32{1, 1}},
		{ID: "second", Order: 1, Vector: []float32{1, 1}},
	}

	results := Rank(entries, []float32{1, 1}, 3)
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if results[i].Entry.ID != id {
			t.Fatalf("tie-break position %d: expected %q, got %q", i, id, results[i].Entry.ID)
		}
	}
}

func TestRankDeterministic(t *testing.T) {
	entries := []Entry{
		{ID: "a", Order: 0, Vector: []float32{1, 0, 0}},
		{ID: "b", Order: 1, Vector: []float32{0.5, 0.5, 0}},
		{ID: "c", Order: 2, Vector: []float32{0.5, 0.5, 0}},
		{ID: "d", Order: 3, Vector: []float32{0, 0, 1}},
	}
	query := []float32{1, 0.2, 0}

	first := Rank(entries, query, 4)
	for run := 0; run < 10; run++ {
		again := Rank(entries, query, 4)
		for i := range first {
			if first[i].Entry.ID != again[i].Entry.ID {
				t.Fatalf("run %d position %d: %q != %q", run, i, again[i].Entry.ID, first[i].Entry.ID)
			}
		}
	}
}

func TestRankTopK(t *testing.T) {
	entries := []Entry{
		{ID: "a", Order: 0, Vector: []float32{1, 0}},
		{ID: "b", Order: 1, Vector: []float32{0, 1}},
		{ID: "c", Order: 2, Vector: []float32{1, 1}},
	}

	if got := len(Rank(entries, []float32{1, 0}, 2)); got != 2 {
		t.Fatalf("expected 2 results, got %d", got)
	}

	// k larger than the collection: similarity search never empties, it
	// returns everything ranked, however distant.
	if got := len(Rank(entries, []float32{-1, -1}, 10)); got != 3 {
		t.Fatalf("expected all 3 results, got %d", got)
	}
}
