package predict

// MirrorMove flips a UCI move across the board's horizontal axis: every
// rank digit r becomes 9-r, files and any promotion suffix pass through.
// Malformed input is returned unchanged; mirroring is involutive on
// well-formed 4-or-5-character moves.
func MirrorMove(uci string) string {
	if len(uci) < 4 {
		return uci
	}
	if !isRankDigit(uci[1]) || !isRankDigit(uci[3]) {
		return uci
	}
	var b = []byte(uci)
	b[1] = mirrorRank(b[1])
	b[3] = mirrorRank(b[3])
	return string(b)
}

func isRankDigit(c byte) bool {
	return c >= '1' && c <= '8'
}

func mirrorRank(c byte) byte {
	return '0' + 9 - (c - '0')
}
