package predict

import (
	"errors"
	"sort"

	"github.com/chewxy/math32"
)

var ErrNoLegalMovesScored = errors.New("no legal moves scored")

// Prediction pairs a UCI move with its probability. A prediction set is
// sorted by descending probability and sums to 1 over the legal moves the
// vocabulary covers.
type Prediction struct {
	Move string
	Prob float32
}

// ExtractLegalScores filters the model's raw score vector down to the
// legal moves and converts the surviving scores into a probability
// distribution.
//
// When the position was encoded mirrored, each legal move is translated
// through MirrorMove before the vocabulary lookup, since the model scored
// the flipped board; the caller still gets the original move string back.
// Legal moves outside the vocabulary are dropped: coverage gaps are a
// known property of the training data, not an error. Only if every legal
// move is dropped does the extraction fail.
func ExtractLegalScores(scores []float32, legalMoves []string, mirrored bool, vocab *Vocabulary) ([]Prediction, error) {
	var preds = make([]Prediction, 0, len(legalMoves))
	for _, mv := range legalMoves {
		var key = mv
		if mirrored {
			key = MirrorMove(mv)
		}
		var i, found = vocab.Index(key)
		if !found || i >= len(scores) {
			continue
		}
		preds = append(preds, Prediction{Move: mv, Prob: scores[i]})
	}
	if len(preds) == 0 {
		return nil, ErrNoLegalMovesScored
	}
	softmax(preds)
	sortByProb(preds)
	return preds, nil
}

// softmax normalizes Prob fields in place, treating them as logits.
// Restricting to the filtered subset keeps probability mass off illegal
// moves; subtracting the maximum keeps the exponentials stable.
func softmax(preds []Prediction) {
	var max = preds[0].Prob
	for _, p := range preds[1:] {
		if p.Prob > max {
			max = p.Prob
		}
	}
	var sum float32
	for i := range preds {
		preds[i].Prob = math32.Exp(preds[i].Prob - max)
		sum += preds[i].Prob
	}
	for i := range preds {
		preds[i].Prob /= sum
	}
}

func sortByProb(preds []Prediction) {
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Prob > preds[j].Prob
	})
}
