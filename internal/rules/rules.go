// Package rules adapts the external chess rules engine. The prediction
// pipeline never generates or validates moves itself; everything legality
// related comes from here.
package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

func GameFromFEN(fen string) (*chess.Game, error) {
	var opt, err = chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("rules: parse fen: %w", err)
	}
	return chess.NewGame(opt), nil
}

// LegalMoves returns the legal moves of a position in UCI form.
func LegalMoves(pos *chess.Position) []string {
	var notation = chess.UCINotation{}
	var moves = pos.ValidMoves()
	var ucis = make([]string, len(moves))
	for i, mv := range moves {
		ucis[i] = notation.Encode(pos, mv)
	}
	return ucis
}

// ApplyUCI plays a UCI move on the game.
func ApplyUCI(game *chess.Game, uci string) error {
	var mv, err = chess.UCINotation{}.Decode(game.Position(), uci)
	if err != nil {
		return fmt.Errorf("rules: parse move %q: %w", uci, err)
	}
	if err := game.Move(mv); err != nil {
		return fmt.Errorf("rules: play move %q: %w", uci, err)
	}
	return nil
}
