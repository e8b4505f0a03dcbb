package onnx

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/chessmimic/mimic/pkg/predict"
)

// Config locates the model and names its output tensor. The output name is
// configuration because it is not stable across model exports.
type Config struct {
	ModelPath   string
	LibraryPath string
	OutputName  string
}

// Invoker runs the move-classification model through ONNX runtime. The
// session's input and output tensors are allocated once and reused; a
// mutex serializes Run calls since the runtime does not support
// concurrent runs on one session.
type Invoker struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	values  []ort.Value

	boards   []byte // float16 bits, little endian
	elosSelf []int32
	elosOppo []int32
	logits   []float32
}

func NewInvoker(cfg Config) (*Invoker, error) {
	if cfg.OutputName == "" {
		cfg.OutputName = "logits"
	}
	if !ort.IsInitialized() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("onnx: initialize environment: %w", err)
		}
	}

	var inv = &Invoker{
		boards:   make([]byte, 2*predict.TensorSize),
		elosSelf: make([]int32, 1),
		elosOppo: make([]int32, 1),
		logits:   make([]float32, predict.VocabSize),
	}

	var boardsTensor, err = ort.NewCustomDataTensor(
		ort.NewShape(1, predict.TensorSize), inv.boards, ort.TensorElementDataTypeFloat16)
	if err != nil {
		return nil, fmt.Errorf("onnx: boards tensor: %w", err)
	}
	selfTensor, err := ort.NewTensor(ort.NewShape(1), inv.elosSelf)
	if err != nil {
		boardsTensor.Destroy()
		return nil, fmt.Errorf("onnx: elos_self tensor: %w", err)
	}
	oppoTensor, err := ort.NewTensor(ort.NewShape(1), inv.elosOppo)
	if err != nil {
		boardsTensor.Destroy()
		selfTensor.Destroy()
		return nil, fmt.Errorf("onnx: elos_oppo tensor: %w", err)
	}
	logitsTensor, err := ort.NewTensor(ort.NewShape(1, predict.VocabSize), inv.logits)
	if err != nil {
		boardsTensor.Destroy()
		selfTensor.Destroy()
		oppoTensor.Destroy()
		return nil, fmt.Errorf("onnx: output tensor: %w", err)
	}
	inv.values = []ort.Value{boardsTensor, selfTensor, oppoTensor, logitsTensor}

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{"boards", "elos_self", "elos_oppo"},
		[]string{cfg.OutputName},
		[]ort.Value{boardsTensor, selfTensor, oppoTensor},
		[]ort.Value{logitsTensor},
		nil)
	if err != nil {
		inv.destroyValues()
		return nil, fmt.Errorf("onnx: create session: %w", err)
	}
	inv.session = session
	return inv, nil
}

func (inv *Invoker) Invoke(ctx context.Context, board *predict.Tensor, elosSelf, elosOppo int) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for i, v := range board {
		binary.LittleEndian.PutUint16(inv.boards[2*i:], float16Bits(v))
	}
	inv.elosSelf[0] = int32(elosSelf)
	inv.elosOppo[0] = int32(elosOppo)

	if err := inv.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx: run: %w", err)
	}
	var out = make([]float32, len(inv.logits))
	copy(out, inv.logits)
	return out, nil
}

func (inv *Invoker) Close() {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if inv.session != nil {
		inv.session.Destroy()
		inv.session = nil
	}
	inv.destroyValues()
}

func (inv *Invoker) destroyValues() {
	for _, v := range inv.values {
		v.Destroy()
	}
	inv.values = nil
}
