package console

import (
	"strings"

	"github.com/muesli/termenv"
	"github.com/notnil/chess"
)

var pieceSymbols = map[chess.Piece]string{
	chess.WhiteKing:   "♔",
	chess.WhiteQueen:  "♕",
	chess.WhiteRook:   "♖",
	chess.WhiteBishop: "♗",
	chess.WhiteKnight: "♘",
	chess.WhitePawn:   "♙",
	chess.BlackKing:   "♚",
	chess.BlackQueen:  "♛",
	chess.BlackRook:   "♜",
	chess.BlackBishop: "♝",
	chess.BlackKnight: "♞",
	chess.BlackPawn:   "♟",
}

const (
	lightSquare = termenv.ANSI256Color(180)
	darkSquare  = termenv.ANSI256Color(94)
	pieceColor  = termenv.ANSI256Color(16)
)

// FormatBoard renders the position from white's point of view, rank 8 at
// the top, with alternating square backgrounds when the terminal supports
// color.
func FormatBoard(pos *chess.Position) string {
	var sb strings.Builder
	var board = pos.Board()
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			var sq = chess.Square(rank*8 + file)
			var sym = pieceSymbols[board.Piece(sq)]
			if sym == "" {
				sym = " "
			}
			var bg = darkSquare
			if (rank+file)%2 == 1 {
				bg = lightSquare
			}
			sb.WriteString(termenv.String(" " + sym + " ").
				Foreground(pieceColor).
				Background(bg).
				String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	return sb.String()
}
