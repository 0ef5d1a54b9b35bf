package recommender

import (
	"reflect"
	"testing"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog(
		[]string{"track0", "track1", "track2"},
		[][]float64{{1, 0}, {0, 1}, {-1, 0}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestRankOrdersBySimilarity(t *testing.T) {
	cat := newTestCatalog(t)

	got := cat.Rank([]float64{1, 0}, nil, 2)
	want := []string{"track0", "track1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank returned %v, want %v", got, want)
	}
}

func TestRankExclusionWins(t *testing.T) {
	cat := newTestCatalog(t)

	// track0 is a perfect match but excluded, so it must never surface
	got := cat.Rank([]float64{1, 0}, map[string]bool{"track0": true}, 1)
	want := []string{"track1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank returned %v, want %v", got, want)
	}
}

func TestRankReturnsAvailableWhenNTooLarge(t *testing.T) {
	cat := newTestCatalog(t)

	got := cat.Rank([]float64{1, 0}, map[string]bool{"track2": true}, 10)
	if len(got) != 2 {
		t.Errorf("Rank returned %d tracks, want 2", len(got))
	}
	for _, id := range got {
		if id == "track2" {
			t.Error("Rank returned an excluded track")
		}
	}
}

func TestRankAllExcluded(t *testing.T) {
	cat := newTestCatalog(t)

	exclude := map[string]bool{"track0": true, "track1": true, "track2": true}
	if got := cat.Rank([]float64{1, 0}, exclude, 3); len(got) != 0 {
		t.Errorf("Rank returned %v, want empty", got)
	}
}

func TestRankZeroNormQueryRanksInCatalogOrder(t *testing.T) {
	cat := newTestCatalog(t)

	// A zero query has similarity 0 to everything; catalog order breaks ties
	got := cat.Rank([]float64{0, 0}, nil, 3)
	want := []string{"track0", "track1", "track2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank returned %v, want %v", got, want)
	}
}

func TestRankTieBreakByCatalogOrder(t *testing.T) {
	cat, err := NewCatalog(
		[]string{"a", "b", "c"},
		[][]float64{{0, 1}, {1, 0}, {1, 0}},
	)
	if err != nil {
		t.Fatal(err)
	}

	got := cat.Rank([]float64{1, 0}, nil, 2)
	want := []string{"b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank returned %v, want %v", got, want)
	}
}

func TestRankDeterministic(t *testing.T) {
	cat := newTestCatalog(t)

	first := cat.Rank([]float64{0.3, 0.7}, map[string]bool{"track1": true}, 3)
	for i := 0; i < 5; i++ {
		if got := cat.Rank([]float64{0.3, 0.7}, map[string]bool{"track1": true}, 3); !reflect.DeepEqual(got, first) {
			t.Fatalf("Rank not deterministic: %v then %v", first, got)
		}
	}
}

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalog([]string{"a", "a"}, [][]float64{{1}, {2}})
	if err == nil {
		t.Error("NewCatalog accepted duplicate track IDs")
	}
}

func TestNewCatalogRejectsLengthMismatch(t *testing.T) {
	_, err := NewCatalog([]string{"a", "b"}, [][]float64{{1}})
	if err == nil {
		t.Error("NewCatalog accepted mismatched IDs and embeddings")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero lhs", []float64{0, 0}, []float64{1, 0}, 0},
		{"zero rhs", []float64{1, 0}, []float64{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("cosineSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
