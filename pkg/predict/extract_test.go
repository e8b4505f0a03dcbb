package predict

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func predictionSum(preds []Prediction) float32 {
	var sum float32
	for _, p := range preds {
		sum += p.Prob
	}
	return sum
}

func scoresFor(t *testing.T, vocab *Vocabulary, moveScores map[string]float32) []float32 {
	t.Helper()
	var scores = make([]float32, VocabSize)
	for mv, score := range moveScores {
		var i, found = vocab.Index(mv)
		if !found {
			t.Fatal("not in vocabulary", mv)
		}
		scores[i] = score
	}
	return scores
}

func TestExtractLegalScores(t *testing.T) {
	var vocab = testVocabulary(t)
	var scores = scoresFor(t, vocab, map[string]float32{
		"e2e4": 3,
		"d2d4": 2,
		"g1f3": 1,
	})

	var preds, err = ExtractLegalScores(scores, []string{"g1f3", "e2e4", "d2d4"}, false, vocab)
	if err != nil {
		t.Fatal(err)
	}
	if len(preds) != 3 {
		t.Fatal(len(preds))
	}
	if preds[0].Move != "e2e4" || preds[1].Move != "d2d4" || preds[2].Move != "g1f3" {
		t.Error(preds)
	}
	if sum := predictionSum(preds); math32.Abs(sum-1) > 1e-5 {
		t.Error("sum", sum)
	}
}

func TestExtractMirrored(t *testing.T) {
	var vocab = testVocabulary(t)
	// Black's e7e5 must be matched against the model's e2e4-frame index,
	// with the original move string reported back.
	var scores = scoresFor(t, vocab, map[string]float32{
		"e2e4": 4,
		"g1f3": 1,
	})

	var preds, err = ExtractLegalScores(scores, []string{"e7e5", "g8f6"}, true, vocab)
	if err != nil {
		t.Fatal(err)
	}
	if preds[0].Move != "e7e5" {
		t.Error(preds)
	}
	if preds[0].Prob <= preds[1].Prob {
		t.Error(preds)
	}
}

func TestExtractDropsUncoveredMoves(t *testing.T) {
	var vocab = testVocabulary(t)
	var scores = scoresFor(t, vocab, map[string]float32{"e2e4": 1})

	// h8h1 lies outside the test vocabulary and is dropped silently.
	var preds, err = ExtractLegalScores(scores, []string{"e2e4", "h8h1"}, false, vocab)
	if err != nil {
		t.Fatal(err)
	}
	if len(preds) != 1 || preds[0].Move != "e2e4" {
		t.Error(preds)
	}
	if math32.Abs(preds[0].Prob-1) > 1e-5 {
		t.Error(preds[0].Prob)
	}

	_, err = ExtractLegalScores(scores, []string{"h8h1", "h8g8"}, false, vocab)
	if !errors.Is(err, ErrNoLegalMovesScored) {
		t.Error(err)
	}
}

func TestExtractNumericalStability(t *testing.T) {
	var vocab = testVocabulary(t)
	var scores = scoresFor(t, vocab, map[string]float32{
		"e2e4": 2000,
		"d2d4": 1999,
	})

	var preds, err = ExtractLegalScores(scores, []string{"e2e4", "d2d4"}, false, vocab)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range preds {
		if math32.IsNaN(p.Prob) || math32.IsInf(p.Prob, 0) {
			t.Fatal(preds)
		}
	}
	if sum := predictionSum(preds); math32.Abs(sum-1) > 1e-5 {
		t.Error("sum", sum)
	}
}
