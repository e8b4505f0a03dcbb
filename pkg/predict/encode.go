package predict

import "strings"

// Board tensor layout: 18 channels of 8x8 cells, row*8+col within a
// channel, row 0 = rank 1, col 0 = file a.
//
//	0-5   own pieces pawn..king
//	6-11  opposing pieces pawn..king
//	12    side to move (full plane)
//	13,14 own castling rights, kingside/queenside
//	15,16 opposing castling rights, kingside/queenside
//	17    en-passant target square
const (
	NumChannels = 18
	TensorSize  = NumChannels * 64
)

const (
	channelSideToMove = 12
	channelOwnOO      = 13
	channelOwnOOO     = 14
	channelOppOO      = 15
	channelOppOOO     = 16
	channelEnPassant  = 17
)

type Tensor [TensorSize]float32

const pieceChars = "pnbrqk"

// Encode converts a FEN into the model's board tensor. The model always
// sees the position from the mover's perspective: when the second side is
// to move the board is flipped vertically, piece channels and castling
// channels are swapped, and the returned flag is true so that move
// identities can be translated with MirrorMove.
//
// Parsing is permissive. Missing optional fields default to "w", "-", "-";
// unknown piece letters and unparseable en-passant fields are skipped.
func Encode(fen string) (Tensor, bool) {
	var tensor Tensor

	var fields = strings.Fields(fen)
	var placement, sideToMove, castling, enPassant = "", "w", "-", "-"
	if len(fields) > 0 {
		placement = fields[0]
	}
	if len(fields) > 1 {
		sideToMove = fields[1]
	}
	if len(fields) > 2 {
		castling = fields[2]
	}
	if len(fields) > 3 {
		enPassant = fields[3]
	}

	var mirrored = sideToMove == "b"

	var row = 7
	if mirrored {
		row = 0
	}
	var col = 0
	for _, ch := range placement {
		switch {
		case ch == '/':
			if mirrored {
				row++
			} else {
				row--
			}
			col = 0
		case ch >= '1' && ch <= '8':
			col += int(ch - '0')
		default:
			if col < 8 && row >= 0 && row < 8 {
				var white = ch >= 'A' && ch <= 'Z'
				var piece = strings.IndexRune(pieceChars, toLower(ch))
				if piece >= 0 {
					var channel = piece
					if white == mirrored {
						channel += 6
					}
					tensor[channel*64+row*8+col] = 1
				}
			}
			col++
		}
	}

	if mirrored || sideToMove == "w" {
		fillChannel(&tensor, channelSideToMove)
	}

	var ownKS, ownQS, oppKS, oppQS = "K", "Q", "k", "q"
	if mirrored {
		ownKS, ownQS, oppKS, oppQS = "k", "q", "K", "Q"
	}
	if strings.Contains(castling, ownKS) {
		fillChannel(&tensor, channelOwnOO)
	}
	if strings.Contains(castling, ownQS) {
		fillChannel(&tensor, channelOwnOOO)
	}
	if strings.Contains(castling, oppKS) {
		fillChannel(&tensor, channelOppOO)
	}
	if strings.Contains(castling, oppQS) {
		fillChannel(&tensor, channelOppOOO)
	}

	if len(enPassant) >= 2 {
		var file = int(enPassant[0] - 'a')
		var rank = int(enPassant[1] - '1')
		if file >= 0 && file < 8 && rank >= 0 && rank < 8 {
			if mirrored {
				rank = 7 - rank
			}
			tensor[channelEnPassant*64+rank*8+file] = 1
		}
	}

	return tensor, mirrored
}

func fillChannel(t *Tensor, channel int) {
	for i := channel * 64; i < (channel+1)*64; i++ {
		t[i] = 1
	}
}

func toLower(ch rune) rune {
	if ch >= 'A' && ch <= 'Z' {
		return ch + 'a' - 'A'
	}
	return ch
}
