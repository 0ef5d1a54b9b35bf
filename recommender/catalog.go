package recommender

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// excludedSimilarity is forced onto excluded tracks before ranking. It sits
// below the attainable cosine range [-1, 1], so an excluded track can never
// outrank anything, not even a perfect self-match.
const excludedSimilarity = -2.0

// Catalog is the precomputed embedding matrix for every recommendable
// track. It is built once at load time and read-only afterwards; row order
// is the tie-break order for ranking.
type Catalog struct {
	ids        []string
	embeddings [][]float64
	index      map[string]int
}

// NewCatalog builds a catalog from a parallel track ID list and embedding
// matrix, where row i belongs to ID i. IDs must be unique.
func NewCatalog(ids []string, embeddings [][]float64) (*Catalog, error) {
	if len(ids) != len(embeddings) {
		return nil, fmt.Errorf("catalog: %d track IDs but %d embedding rows", len(ids), len(embeddings))
	}
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("catalog: duplicate track ID %q", id)
		}
		index[id] = i
	}
	return &Catalog{ids: ids, embeddings: embeddings, index: index}, nil
}

// Len reports the number of tracks in the catalog.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Dim reports the embedding dimension, or 0 for an empty catalog.
func (c *Catalog) Dim() int {
	if len(c.embeddings) == 0 {
		return 0
	}
	return len(c.embeddings[0])
}

// Rank returns up to n track IDs ordered by cosine similarity to the query,
// descending. Excluded tracks never appear, regardless of similarity, and
// ties resolve to the earlier catalog row. When fewer than n non-excluded
// tracks exist, Rank returns as many as are available.
func (c *Catalog) Rank(query []float64, exclude map[string]bool, n int) []string {
	sims := make([]float64, len(c.ids))
	for i, emb := range c.embeddings {
		sims[i] = cosineSimilarity(query, emb)
	}
	for id := range exclude {
		if !exclude[id] {
			continue
		}
		if idx, ok := c.index[id]; ok {
			sims[idx] = excludedSimilarity
		}
	}

	order := make([]int, len(sims))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	top := make([]string, 0, n)
	for _, idx := range order {
		if len(top) == n {
			break
		}
		if sims[idx] == excludedSimilarity {
			break
		}
		top = append(top, c.ids[idx])
	}
	return top
}

// cosineSimilarity is the normalized dot product of a and b. A zero-norm
// vector on either side yields 0, a deliberate policy so that "no signal"
// queries rank everything equally instead of crashing.
func cosineSimilarity(a, b []float64) float64 {
	normA := math.Sqrt(floats.Dot(a, a))
	normB := math.Sqrt(floats.Dot(b, b))
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}
