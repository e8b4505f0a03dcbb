// benchpredict runs the prediction pipeline over a FEN suite and reports
// latency and the sampled moves. Useful for timing a model build and for
// sanity checks without the interactive console.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chessmimic/mimic/internal/onnx"
	"github.com/chessmimic/mimic/internal/rules"
	"github.com/chessmimic/mimic/pkg/predict"
)

type benchResult struct {
	fen     string
	elapsed time.Duration
	err     error
}

func main() {
	var (
		vocabPath  = flag.String("vocab", "", "move vocabulary file")
		modelPath  = flag.String("model", "", "ONNX model path; omit for the uniform fallback")
		ortLib     = flag.String("ortlib", "", "onnxruntime shared library path")
		outputName = flag.String("output", "logits", "model output tensor name")
		elo        = flag.Int("elo", 1500, "skill rating for both sides")
		rounds     = flag.Int("rounds", 10, "passes over the suite")
		workers    = flag.Int("workers", 4, "concurrent requests")
		seed       = flag.Int64("seed", 1, "sampling seed")
	)
	flag.Parse()

	if *vocabPath == "" {
		log.Fatal("-vocab is required")
	}
	var vocab, err = predict.LoadVocabulary(*vocabPath)
	if err != nil {
		log.Fatal(err)
	}

	var invoker predict.Invoker = predict.UniformInvoker{}
	if *modelPath != "" {
		var onnxInvoker, err = onnx.NewInvoker(onnx.Config{
			ModelPath:   *modelPath,
			LibraryPath: *ortLib,
			OutputName:  *outputName,
		})
		if err != nil {
			log.Fatal(err)
		}
		defer onnxInvoker.Close()
		invoker = onnxInvoker
	}

	var predictor = predict.New(predict.Config{
		Rand: rand.New(rand.NewSource(*seed)),
	}, vocab, invoker)

	if err := run(context.Background(), predictor, *elo, *rounds, *workers); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, predictor *predict.Predictor, elo, rounds, workers int) error {
	log.Println("benchmark started")
	defer log.Println("benchmark finished")

	var g, gctx = errgroup.WithContext(ctx)
	var fens = make(chan string)
	var results = make(chan benchResult)

	g.Go(func() error {
		defer close(fens)
		for i := 0; i < rounds; i++ {
			for _, fen := range benchFens {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case fens <- fen:
				}
			}
		}
		return nil
	})

	var workerGroup, wctx = errgroup.WithContext(gctx)
	for i := 0; i < workers; i++ {
		workerGroup.Go(func() error {
			return predictFens(wctx, predictor, elo, fens, results)
		})
	}
	g.Go(func() error {
		defer close(results)
		return workerGroup.Wait()
	})

	var total time.Duration
	var count, failed int
	for res := range results {
		if res.err != nil {
			failed++
			log.Println("predict failed:", res.fen, res.err)
			continue
		}
		count++
		total += res.elapsed
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println("Predictions", count)
	fmt.Println("Failed", failed)
	if count > 0 {
		fmt.Println("Avg", total/time.Duration(count))
	}
	return nil
}

func predictFens(ctx context.Context, predictor *predict.Predictor, elo int, fens <-chan string, results chan<- benchResult) error {
	for fen := range fens {
		var res = predictOne(ctx, predictor, elo, fen)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- res:
		}
	}
	return nil
}

func predictOne(ctx context.Context, predictor *predict.Predictor, elo int, fen string) benchResult {
	var game, err = rules.GameFromFEN(fen)
	if err != nil {
		return benchResult{fen: fen, err: err}
	}
	var start = time.Now()
	if _, err := predictor.Pick(ctx, predict.Request{
		FEN:        fen,
		LegalMoves: rules.LegalMoves(game.Position()),
		SelfElo:    elo,
		OppoElo:    elo,
	}); err != nil {
		return benchResult{fen: fen, err: err}
	}
	return benchResult{
		fen:     fen,
		elapsed: time.Since(start),
	}
}
