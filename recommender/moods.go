package recommender

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// moodFeatureDeltas maps a mood tag to the raw feature adjustments it
// implies. Only nonzero adjustments are listed; every other feature
// contributes zero. The table must stay in sync with the deltas the
// catalog embeddings were trained under.
var moodFeatureDeltas = map[string]Features{
	"happy":    {"valence": +0.3, "energy": +0.1},
	"sad":      {"valence": -0.3, "energy": -0.1},
	"hype":     {"energy": +0.3, "tempo": +0.2, "danceability": +0.2},
	"chill":    {"acousticness": +0.3, "energy": -0.2, "tempo": -0.1},
	"dark":     {"valence": -0.25, "mode": -0.2, "energy": +0.1},
	"focus":    {"instrumentalness": +0.3, "speechiness": -0.2, "energy": +0.1},
	"romantic": {"valence": +0.2, "acousticness": +0.2, "danceability": -0.1},
	"angry":    {"energy": +0.35, "valence": -0.2, "tempo": +0.2},
}

// MoodNames returns the recognized mood tags in alphabetical order.
func MoodNames() []string {
	names := maps.Keys(moodFeatureDeltas)
	sort.Strings(names)
	return names
}

// moodDelta sums the per-mood feature deltas for a set of mood tags.
// Lookups are case-insensitive and unknown tags contribute nothing;
// asking for a mood the table does not know is not an error.
func moodDelta(moods []string) []float64 {
	delta := make(Features, len(FeatureColumns))
	for _, mood := range moods {
		for feat, val := range moodFeatureDeltas[strings.ToLower(mood)] {
			delta[feat] += val
		}
	}
	return delta.vector()
}
