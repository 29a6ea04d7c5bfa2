package classifier

import (
	"context"
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"blox-fumen/internal/board"
)

// DefaultModelPath is where the cell model is expected when none is configured.
const DefaultModelPath = "./models/tetris_mobilenet_v3_small.onnx"

const (
	inputName  = "input"
	outputName = "output"
)

var (
	initOnce    sync.Once
	initErr     error
	libraryPath string
)

// SetLibraryPath sets the onnxruntime shared library used by the first
// session. Later calls have no effect once a session was created.
func SetLibraryPath(path string) {
	libraryPath = path
}

func initRuntime() error {
	initOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		initErr = ort.InitializeEnvironment()
	})
	return initErr
}

// ONNX classifies cells with a MobileNet-style model taking a 1×3×224×224
// tensor named "input" and producing per-label scores named "output".
type ONNX struct {
	mu      sync.Mutex
	options *ort.SessionOptions
	session *ort.DynamicAdvancedSession
}

// NewONNX loads the model at path.
func NewONNX(path string) (*ONNX, error) {
	if path == "" {
		path = DefaultModelPath
	}
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("failed to initialize onnxruntime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	_ = options.SetIntraOpNumThreads(1)
	_ = options.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(path, []string{inputName}, []string{outputName}, options)
	if err != nil {
		options.Destroy()
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return &ONNX{options: options, session: session}, nil
}

// Scores runs the model on one cell and returns the raw output scores.
func (c *ONNX) Scores(cell image.Image) ([]float32, error) {
	input, err := ort.NewTensor(ort.NewShape(1, InputChannels, InputSize, InputSize), Preprocess(cell, InputSize, InputSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer input.Destroy()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, fmt.Errorf("classifier is closed")
	}

	outputs := []ort.Value{nil}
	if err := c.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	if outputs[0] == nil {
		return nil, fmt.Errorf("model produced no output")
	}
	defer outputs[0].Destroy()

	tensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unsupported output type %T", outputs[0])
	}
	return append([]float32(nil), tensor.GetData()...), nil
}

// Classify implements board.Classifier.
func (c *ONNX) Classify(ctx context.Context, cell image.Image) (board.Label, error) {
	if err := ctx.Err(); err != nil {
		return board.Empty, err
	}
	scores, err := c.Scores(cell)
	if err != nil {
		return board.Empty, err
	}
	return LabelFor(scores)
}

// LabelFor converts model scores into a cell label.
func LabelFor(scores []float32) (board.Label, error) {
	idx := ArgMax(scores)
	if idx < 0 {
		return board.Empty, fmt.Errorf("model produced no scores")
	}
	l := board.Label(idx)
	if !l.Valid() {
		return board.Empty, fmt.Errorf("%w: model class %d", board.ErrInvalidSymbol, idx)
	}
	return l, nil
}

// Close releases the session.
func (c *ONNX) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		if err := c.session.Destroy(); err != nil {
			return err
		}
		c.session = nil
	}
	if c.options != nil {
		c.options.Destroy()
		c.options = nil
	}
	return nil
}

var _ board.Classifier = (*ONNX)(nil)
