package predict

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

type fakeInvoker struct {
	scores  []float32
	err     error
	gotSelf int
	gotOppo int
	calls   int
}

func (f *fakeInvoker) Invoke(ctx context.Context, board *Tensor, elosSelf, elosOppo int) ([]float32, error) {
	f.calls++
	f.gotSelf = elosSelf
	f.gotOppo = elosOppo
	return f.scores, f.err
}

func TestPredictorMirroredEndToEnd(t *testing.T) {
	var vocab = testVocabulary(t)
	var invoker = &fakeInvoker{
		scores: scoresFor(t, vocab, map[string]float32{"e2e4": 5}),
	}
	var p = New(Config{}, vocab, invoker)

	var preds, err = p.Predict(context.Background(), Request{
		FEN:        "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1",
		LegalMoves: []string{"e7e5", "g8f6", "a7a6"},
		SelfElo:    1200,
		OppoElo:    1800,
	})
	if err != nil {
		t.Fatal(err)
	}
	// The model scored e2e4 on the mirrored board; the caller gets the
	// move back in black's own frame.
	if preds[0].Move != "e7e5" {
		t.Error(preds)
	}
	if len(preds) != 3 {
		t.Error(len(preds))
	}
	if sum := predictionSum(preds); math32.Abs(sum-1) > 1e-5 {
		t.Error("sum", sum)
	}
	if invoker.gotSelf != 2 || invoker.gotOppo != 8 {
		t.Error("buckets", invoker.gotSelf, invoker.gotOppo)
	}
}

func TestPredictorInferenceFailed(t *testing.T) {
	var vocab = testVocabulary(t)
	var invoker = &fakeInvoker{err: errors.New("session closed")}
	var p = New(Config{}, vocab, invoker)

	var _, err = p.Predict(context.Background(), Request{
		FEN:        initialFen,
		LegalMoves: []string{"e2e4"},
	})
	if !errors.Is(err, ErrInferenceFailed) {
		t.Error(err)
	}
}

func TestPredictorRepetitionApplied(t *testing.T) {
	var vocab = testVocabulary(t)
	var invoker = &fakeInvoker{
		scores: scoresFor(t, vocab, map[string]float32{"g1f3": 2, "d2d4": 1}),
	}
	var p = New(Config{}, vocab, invoker)

	var preds, err = p.Predict(context.Background(), Request{
		FEN:         initialFen,
		LegalMoves:  []string{"g1f3", "d2d4"},
		RecentMoves: []string{"e7e5", "f3g1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if preds[0].Move != "d2d4" {
		t.Error("reversal should have been dampened below d2d4", preds)
	}
}

func TestPredictorPick(t *testing.T) {
	var vocab = testVocabulary(t)
	var p = New(Config{
		Rand: rand.New(rand.NewSource(11)),
	}, vocab, UniformInvoker{})

	var legal = []string{"e2e4", "d2d4", "g1f3"}
	var seen = make(map[string]bool)
	for i := 0; i < 100; i++ {
		var mv, err = p.Pick(context.Background(), Request{
			FEN:        initialFen,
			LegalMoves: legal,
		})
		if err != nil {
			t.Fatal(err)
		}
		seen[mv] = true
	}
	// Uniform scores must reach every legal move eventually.
	if len(seen) != len(legal) {
		t.Error(seen)
	}
}

func TestPredictorNoLegalMovesScored(t *testing.T) {
	var vocab = testVocabulary(t)
	var p = New(Config{}, vocab, UniformInvoker{})

	var _, err = p.Predict(context.Background(), Request{
		FEN:        initialFen,
		LegalMoves: []string{"h8h1"},
	})
	if !errors.Is(err, ErrNoLegalMovesScored) {
		t.Error(err)
	}
}
