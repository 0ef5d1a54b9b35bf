package recommender

import (
	"reflect"
	"testing"
)

// testProjector picks out danceability and energy (columns 0 and 1) through
// an identity second layer, so the expected embeddings stay hand-checkable.
func testProjector(b2 []float64) *Projector {
	w1 := make([][]float64, 2)
	for i := range w1 {
		w1[i] = make([]float64, len(FeatureColumns))
		w1[i][i] = 1
	}
	return NewProjector(
		w1, []float64{0, 0},
		[][]float64{{1, 0}, {0, 1}}, b2,
	)
}

func identityScaler() *Scaler {
	mean := make([]float64, len(FeatureColumns))
	scale := make([]float64, len(FeatureColumns))
	for i := range scale {
		scale[i] = 1
	}
	return NewScaler(mean, scale)
}

func TestApplyForwardPass(t *testing.T) {
	p := testProjector([]float64{0.5, -0.25})

	in := make([]float64, len(FeatureColumns))
	in[0] = 0.8  // danceability, passes ReLU
	in[1] = -0.4 // energy, clamped to 0

	got := p.Apply(in)
	want := []float64{0.8 + 0.5, 0 - 0.25}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply returned %v, want %v", got, want)
	}
}

func TestApplyDeterministic(t *testing.T) {
	p := testProjector([]float64{0.1, 0.2})

	in := make([]float64, len(FeatureColumns))
	for i := range in {
		in[i] = float64(i) * 0.137
	}

	first := p.Apply(in)
	for i := 0; i < 5; i++ {
		if got := p.Apply(in); !reflect.DeepEqual(got, first) {
			t.Fatalf("Apply not deterministic: %v then %v", first, got)
		}
	}
}

func TestProjectorDims(t *testing.T) {
	p := testProjector([]float64{0, 0})
	if p.InputDim() != len(FeatureColumns) {
		t.Errorf("InputDim = %d, want %d", p.InputDim(), len(FeatureColumns))
	}
	if p.OutputDim() != 2 {
		t.Errorf("OutputDim = %d, want 2", p.OutputDim())
	}
}

func TestScalerTransform(t *testing.T) {
	mean := make([]float64, len(FeatureColumns))
	scale := make([]float64, len(FeatureColumns))
	for i := range scale {
		mean[i] = 1
		scale[i] = 2
	}
	s := NewScaler(mean, scale)

	in := make([]float64, len(FeatureColumns))
	in[0] = 3

	got := s.Transform(in)
	if got[0] != 1 {
		t.Errorf("Transform[0] = %v, want 1", got[0])
	}
	if got[1] != -0.5 {
		t.Errorf("Transform[1] = %v, want -0.5", got[1])
	}
}

func TestFeatureVectorMissingKeysDefaultZero(t *testing.T) {
	empty := Features{}.vector()
	explicit := Features{
		"danceability": 0, "energy": 0, "key": 0, "loudness": 0, "mode": 0,
		"speechiness": 0, "acousticness": 0, "instrumentalness": 0,
		"liveness": 0, "valence": 0, "tempo": 0,
	}.vector()
	if !reflect.DeepEqual(empty, explicit) {
		t.Errorf("empty feature map vector %v differs from explicit zeros %v", empty, explicit)
	}
}
