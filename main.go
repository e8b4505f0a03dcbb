package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/chessmimic/mimic/internal/console"
	"github.com/chessmimic/mimic/internal/onnx"
	"github.com/chessmimic/mimic/pkg/predict"
)

func main() {
	var (
		vocabPath   = flag.String("vocab", "", "move vocabulary file, one UCI move per line")
		modelPath   = flag.String("model", "", "ONNX model path; omit to play against uniform random")
		ortLib      = flag.String("ortlib", "", "onnxruntime shared library path")
		outputName  = flag.String("output", "logits", "model output tensor name")
		engineElo   = flag.Int("elo", 1500, "opponent skill rating")
		humanElo    = flag.Int("humanelo", 1500, "assumed human rating")
		temperature = flag.Float64("temperature", 1, "sampling temperature")
		seed        = flag.Int64("seed", 0, "sampling seed, 0 for random")
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
	} else {
		log.Println("no model given, opponent plays uniformly random legal moves")
	}

	var opts = console.Options{
		EngineElo:   *engineElo,
		HumanElo:    *humanElo,
		Temperature: float32(*temperature),
	}
	if *seed != 0 {
		opts.Rand = rand.New(rand.NewSource(*seed))
	}

	var predictor = predict.New(predict.Config{}, vocab, invoker)
	if err := console.Run(context.Background(), predictor, os.Stdin, os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}
