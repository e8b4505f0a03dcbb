package predict

import (
	"errors"
	"math/rand"

	"github.com/chewxy/math32"
)

// Sample draws one move from a prediction set. Temperature 1 samples the
// distribution as supplied; other temperatures reshape it first through
// softmax(log(p)/T), so low temperatures sharpen towards the top move and
// high temperatures flatten. The RNG is injected so callers can seed it.
func Sample(preds []Prediction, temperature float32, rng *rand.Rand) (string, error) {
	if len(preds) == 0 {
		return "", errors.New("sample: empty prediction set")
	}
	if temperature <= 0 {
		return argmax(preds), nil
	}
	var probs = make([]float32, len(preds))
	for i, p := range preds {
		probs[i] = p.Prob
	}
	if temperature != 1 {
		reshape(probs, temperature)
	}

	var draw = rng.Float64()
	var cumulative float64
	for i, p := range probs {
		cumulative += float64(p)
		if draw < cumulative {
			return preds[i].Move, nil
		}
	}
	// Floating-point drift can leave the total slightly under 1.
	return preds[len(preds)-1].Move, nil
}

func reshape(probs []float32, temperature float32) {
	var negInf = math32.Inf(-1)
	var max = negInf
	for i, p := range probs {
		var logit = negInf
		if p > 0 {
			logit = math32.Log(p) / temperature
		}
		probs[i] = logit
		if logit > max {
			max = logit
		}
	}
	var sum float32
	for i, logit := range probs {
		if logit == negInf {
			probs[i] = 0
		} else {
			probs[i] = math32.Exp(logit - max)
		}
		sum += probs[i]
	}
	if sum > 0 {
		for i := range probs {
			probs[i] /= sum
		}
	}
}

func argmax(preds []Prediction) string {
	var best = 0
	for i := range preds {
		if preds[i].Prob > preds[best].Prob {
			best = i
		}
	}
	return preds[best].Move
}
