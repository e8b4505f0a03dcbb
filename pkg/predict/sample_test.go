package predict

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

func TestSampleLowTemperatureConverges(t *testing.T) {
	var preds = []Prediction{
		{Move: "e2e4", Prob: 0.5},
		{Move: "d2d4", Prob: 0.3},
		{Move: "g1f3", Prob: 0.2},
	}
	var rng = rand.New(rand.NewSource(1))
	var top = 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		var mv, err = Sample(preds, 0.05, rng)
		if err != nil {
			t.Fatal(err)
		}
		if mv == "e2e4" {
			top++
		}
	}
	if top < trials*95/100 {
		t.Error("top move sampled", top, "of", trials)
	}
}

func TestSampleUnitTemperature(t *testing.T) {
	var preds = []Prediction{
		{Move: "e2e4", Prob: 0.6},
		{Move: "d2d4", Prob: 0.3},
		{Move: "g1f3", Prob: 0.1},
	}
	var rng = rand.New(rand.NewSource(42))
	var counts = make(map[string]int)
	const trials = 20000
	for i := 0; i < trials; i++ {
		var mv, err = Sample(preds, 1, rng)
		if err != nil {
			t.Fatal(err)
		}
		counts[mv]++
	}
	for _, p := range preds {
		var freq = float32(counts[p.Move]) / trials
		if math32.Abs(freq-p.Prob) > 0.02 {
			t.Error(p.Move, freq, p.Prob)
		}
	}
}

func TestSampleZeroProbability(t *testing.T) {
	var preds = []Prediction{
		{Move: "e2e4", Prob: 1},
		{Move: "d2d4", Prob: 0},
	}
	var rng = rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		var mv, err = Sample(preds, 0.5, rng)
		if err != nil {
			t.Fatal(err)
		}
		if mv != "e2e4" {
			t.Fatal("zero-probability move sampled")
		}
	}
}

func TestSampleDriftFallback(t *testing.T) {
	// Probabilities deliberately sum below 1; draws past the total must
	// fall back to the last entry instead of erroring.
	var preds = []Prediction{
		{Move: "e2e4", Prob: 0.2},
		{Move: "d2d4", Prob: 0.1},
	}
	var rng = rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		var mv, err = Sample(preds, 1, rng)
		if err != nil {
			t.Fatal(err)
		}
		if mv != "e2e4" && mv != "d2d4" {
			t.Fatal(mv)
		}
	}
}

func TestSampleEmpty(t *testing.T) {
	var rng = rand.New(rand.NewSource(1))
	if _, err := Sample(nil, 1, rng); err == nil {
		t.Error("expected error on empty prediction set")
	}
}
