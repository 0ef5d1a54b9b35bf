package recommender

import (
	"reflect"
	"sort"
	"testing"
)

func TestMoodDeltaOrderIndependent(t *testing.T) {
	a := moodDelta([]string{"happy", "hype"})
	b := moodDelta([]string{"hype", "happy"})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("mood delta depends on order: %v vs %v", a, b)
	}
}

func TestMoodDeltaCaseInsensitive(t *testing.T) {
	a := moodDelta([]string{"HAPPY"})
	b := moodDelta([]string{"happy"})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("mood delta is case-sensitive: %v vs %v", a, b)
	}
}

func TestMoodDeltaCompounds(t *testing.T) {
	got := moodDelta([]string{"happy", "happy"})
	want := moodDelta([]string{"happy"})
	for i := range want {
		want[i] *= 2
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("repeated mood should double the delta: got %v, want %v", got, want)
	}
}

func TestMoodDeltaOpposingMoodsCancel(t *testing.T) {
	got := moodDelta([]string{"happy", "sad"})
	for i, v := range got {
		if v != 0 {
			t.Errorf("happy+sad delta[%d] = %v, want 0", i, v)
		}
	}
}

func TestUnknownMoodEqualsNoMood(t *testing.T) {
	rec := newTestRecommender(t, []float64{0.5, -0.25})

	unknown, err := rec.SynthesizeMood([]string{"unknown_xyz"})
	if err != nil {
		t.Fatal(err)
	}
	none, err := rec.SynthesizeMood(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(unknown, none) {
		t.Errorf("unknown mood %v differs from empty mood set %v", unknown, none)
	}
}

// The mood delta goes through the projection raw, without the scaler's
// centering; the catalog was embedded under the same convention.
func TestSynthesizeProjectsRawDelta(t *testing.T) {
	mean := make([]float64, len(FeatureColumns))
	scale := make([]float64, len(FeatureColumns))
	for i := range mean {
		mean[i] = 10 // would shift everything if the scaler were applied
		scale[i] = 1
	}
	proj := testProjector([]float64{0, 0})
	cat, err := NewCatalog(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := New(NewScaler(mean, scale), proj, cat)
	if err != nil {
		t.Fatal(err)
	}

	got, err := rec.SynthesizeMood([]string{"hype"})
	if err != nil {
		t.Fatal(err)
	}
	want := proj.Apply(moodDelta([]string{"hype"}))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SynthesizeMood = %v, want raw-delta projection %v", got, want)
	}
}

func TestMoodNamesSorted(t *testing.T) {
	names := MoodNames()
	if len(names) != len(moodFeatureDeltas) {
		t.Fatalf("MoodNames returned %d names, want %d", len(names), len(moodFeatureDeltas))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("MoodNames not sorted: %v", names)
	}
}
