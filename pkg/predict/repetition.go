package predict

const (
	repetitionWindow  = 12
	repetitionDamping = 0.01
)

// AdjustRepetition dampens moves that would reverse a recently played
// move. A model trained on human games can fall into literal two-move
// loops (knight shuffles back and forth) because each individual move
// looks locally plausible; damping the reversals breaks the loop.
//
// Only the most recent 12 moves are considered. The reverse of a move is
// its from/to squares swapped, so promotions and the original suffix do
// not matter. When nothing matches the input is returned as-is; otherwise
// matching probabilities are multiplied by 0.01 and the whole distribution
// is renormalized.
func AdjustRepetition(preds []Prediction, recentMoves []string) []Prediction {
	if len(recentMoves) < 2 {
		return preds
	}
	var window = recentMoves
	if len(window) > repetitionWindow {
		window = window[len(window)-repetitionWindow:]
	}
	var reversed = make(map[string]bool, len(window))
	for _, mv := range window {
		if len(mv) < 4 {
			continue
		}
		reversed[mv[2:4]+mv[0:2]] = true
	}

	var any = false
	for _, p := range preds {
		if len(p.Move) >= 4 && reversed[p.Move[:4]] {
			any = true
			break
		}
	}
	if !any {
		return preds
	}

	var adjusted = make([]Prediction, len(preds))
	copy(adjusted, preds)
	var sum float32
	for i := range adjusted {
		if len(adjusted[i].Move) >= 4 && reversed[adjusted[i].Move[:4]] {
			adjusted[i].Prob *= repetitionDamping
		}
		sum += adjusted[i].Prob
	}
	if sum > 0 {
		for i := range adjusted {
			adjusted[i].Prob /= sum
		}
	}
	sortByProb(adjusted)
	return adjusted
}
