package recommender

// FeatureColumns is the audio feature column order shared with the offline
// trainer. The scaler, the projector and the mood delta table all address
// features by this order; reordering it silently corrupts every embedding.
var FeatureColumns = []string{
	"danceability", "energy", "key", "loudness", "mode",
	"speechiness", "acousticness", "instrumentalness",
	"liveness", "valence", "tempo",
}

// Features is a raw audio feature dictionary for a single track.
// Missing keys are treated as 0.0, so a partially populated dictionary is
// still a valid input.
type Features map[string]float64

// vector assembles the fixed-order feature vector from a feature dictionary.
func (f Features) vector() []float64 {
	v := make([]float64, len(FeatureColumns))
	for i, col := range FeatureColumns {
		v[i] = f[col]
	}
	return v
}

// Scaler is the standardization transform fitted by the offline trainer.
// It must be applied with the exact fitted parameters; there is no
// re-fitting at serving time.
type Scaler struct {
	mean  []float64
	scale []float64
}

// NewScaler builds a scaler from fitted per-feature means and scales.
func NewScaler(mean, scale []float64) *Scaler {
	return &Scaler{mean: mean, scale: scale}
}

// Transform standardizes a raw feature vector: (x - mean) / scale per dimension.
func (s *Scaler) Transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = (v[i] - s.mean[i]) / s.scale[i]
	}
	return out
}
