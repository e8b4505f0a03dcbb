package predict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// VocabSize is the number of moves the model scores. The vocabulary file
// must contain exactly this many lines, in the model's output-index order.
const VocabSize = 1880

var ErrVocabularyMismatch = errors.New("vocabulary mismatch")

// Vocabulary is the fixed, ordered list of UCI move strings the model was
// trained on, together with its inverse index. Loaded once, immutable.
type Vocabulary struct {
	moves []string
	index map[string]int
}

func LoadVocabulary(path string) (*Vocabulary, error) {
	var f, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVocabularyMismatch, err)
	}
	defer f.Close()
	return ReadVocabulary(f)
}

func ReadVocabulary(r io.Reader) (*Vocabulary, error) {
	var moves = make([]string, 0, VocabSize)
	var index = make(map[string]int, VocabSize)
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, found := index[line]; found {
			return nil, fmt.Errorf("%w: duplicate move %q", ErrVocabularyMismatch, line)
		}
		index[line] = len(moves)
		moves = append(moves, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVocabularyMismatch, err)
	}
	if len(moves) != VocabSize {
		return nil, fmt.Errorf("%w: expected %d moves, got %d",
			ErrVocabularyMismatch, VocabSize, len(moves))
	}
	return &Vocabulary{moves: moves, index: index}, nil
}

// Index returns the model output index of a UCI move.
func (v *Vocabulary) Index(uci string) (int, bool) {
	var i, found = v.index[uci]
	return i, found
}

// Move returns the UCI move at a model output index.
func (v *Vocabulary) Move(i int) string {
	return v.moves[i]
}

func (v *Vocabulary) Size() int {
	return len(v.moves)
}
