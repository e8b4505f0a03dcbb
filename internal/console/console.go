// Package console runs a terminal game of human against the predicted
// opponent.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/notnil/chess"

	"github.com/chessmimic/mimic/internal/rules"
	"github.com/chessmimic/mimic/pkg/predict"
)

type Options struct {
	EngineElo   int
	HumanElo    int
	Temperature float32
	ShowTop     int
	Rand        *rand.Rand
}

func Run(ctx context.Context, predictor *predict.Predictor, in io.Reader, out io.Writer, opts Options) error {
	if opts.ShowTop == 0 {
		opts.ShowTop = 3
	}
	if opts.Temperature == 0 {
		opts.Temperature = 1
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var game = chess.NewGame()
	var history []string
	var scanner = bufio.NewScanner(in)

	for game.Outcome() == chess.NoOutcome {
		fmt.Fprint(out, FormatBoard(game.Position()))
		if game.Position().Turn() == chess.White {
			fmt.Fprint(out, "move> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			var input = strings.TrimSpace(scanner.Text())
			if input == "quit" {
				return nil
			}
			if err := rules.ApplyUCI(game, input); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			history = append(history, input)
			continue
		}

		var preds, err = predictor.Predict(ctx, predict.Request{
			FEN:         game.Position().String(),
			LegalMoves:  rules.LegalMoves(game.Position()),
			SelfElo:     opts.EngineElo,
			OppoElo:     opts.HumanElo,
			RecentMoves: history,
		})
		if err != nil {
			return err
		}
		for i := 0; i < opts.ShowTop && i < len(preds); i++ {
			fmt.Fprintf(out, "  %d. %s %.1f%%\n", i+1, preds[i].Move, preds[i].Prob*100)
		}
		move, err := predict.Sample(preds, opts.Temperature, opts.Rand)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "opponent plays %s\n", move)
		if err := rules.ApplyUCI(game, move); err != nil {
			return err
		}
		history = append(history, move)
	}

	fmt.Fprint(out, FormatBoard(game.Position()))
	fmt.Fprintf(out, "%s %s\n", game.Outcome(), game.Method())
	return nil
}
