package predict

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var ErrInferenceFailed = errors.New("inference failed")

// Invoker runs the pretrained move-classification model: one board tensor
// plus the two skill buckets in, one score per vocabulary entry out. The
// model runtime may not tolerate concurrent calls against one loaded
// handle, so the Predictor serializes its calls; implementations only need
// to be safe for sequential use.
type Invoker interface {
	Invoke(ctx context.Context, board *Tensor, elosSelf, elosOppo int) ([]float32, error)
}

// Request describes one position to predict a move for. LegalMoves comes
// from the caller's rules engine; RecentMoves is the game's move history
// (both sides interleaved), newest last.
type Request struct {
	FEN         string
	LegalMoves  []string
	SelfElo     int
	OppoElo     int
	RecentMoves []string
}

type Config struct {
	Temperature float32
	Buckets     BucketConfig
	Rand        *rand.Rand
}

// Predictor is the full pipeline: encode, invoke, restrict, normalize,
// dampen repetitions, sample. Predict returns the ranked distribution;
// Pick draws a single move from it.
type Predictor struct {
	temperature float32
	buckets     BucketConfig
	vocab       *Vocabulary
	invoker     Invoker

	mu  sync.Mutex
	rng *rand.Rand
}

func New(cfg Config, vocab *Vocabulary, invoker Invoker) *Predictor {
	if cfg.Temperature == 0 {
		cfg.Temperature = 1
	}
	if cfg.Buckets == (BucketConfig{}) {
		cfg.Buckets = DefaultBuckets()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Predictor{
		temperature: cfg.Temperature,
		buckets:     cfg.Buckets,
		vocab:       vocab,
		invoker:     invoker,
		rng:         cfg.Rand,
	}
}

// Predict returns the probability distribution over the request's legal
// moves, most probable first, with the anti-repetition adjustment applied.
func (p *Predictor) Predict(ctx context.Context, req Request) ([]Prediction, error) {
	var tensor, mirrored = Encode(req.FEN)
	var selfBucket = p.buckets.Bucket(req.SelfElo)
	var oppoBucket = p.buckets.Bucket(req.OppoElo)

	p.mu.Lock()
	var scores, err = p.invoker.Invoke(ctx, &tensor, selfBucket, oppoBucket)
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}

	var preds, extractErr = ExtractLegalScores(scores, req.LegalMoves, mirrored, p.vocab)
	if extractErr != nil {
		return nil, extractErr
	}
	return AdjustRepetition(preds, req.RecentMoves), nil
}

// Pick predicts and samples a single move.
func (p *Predictor) Pick(ctx context.Context, req Request) (string, error) {
	var preds, err = p.Predict(ctx, req)
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return Sample(preds, p.temperature, p.rng)
}

// UniformInvoker scores every vocabulary entry equally. It stands in for
// the model when no ONNX artifact is available, which keeps the binaries
// runnable and gives tests a deterministic baseline.
type UniformInvoker struct{}

func (UniformInvoker) Invoke(ctx context.Context, board *Tensor, elosSelf, elosOppo int) ([]float32, error) {
	return make([]float32, VocabSize), nil
}
