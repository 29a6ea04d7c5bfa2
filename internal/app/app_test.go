package app

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blox-fumen/internal/board"
	"blox-fumen/internal/frame"
	"blox-fumen/internal/raster"
)

func solidRaster(w, h int, c color.NRGBA) *raster.Raster {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return raster.FromImage(img)
}

var emptyCells = board.ClassifierFunc(func(context.Context, image.Image) (board.Label, error) {
	return board.Empty, nil
})

func TestSetImageResetsResults(t *testing.T) {
	s := NewState()
	s.MapCode = &board.MapCode{}
	s.FumenURL = "stale"
	s.Field = raster.New(1, 1)

	s.SetImage("shot.png", solidRaster(40, 60, color.NRGBA{A: 255}))

	assert.Equal(t, "shot.png", s.SourcePath)
	assert.Equal(t, 40, s.Image.Width())
	assert.Nil(t, s.MapCode)
	assert.Nil(t, s.Field)
	assert.Empty(t, s.FumenURL)
}

func TestLoadImageMissingFile(t *testing.T) {
	s := NewState()
	assert.Error(t, s.LoadImage(filepath.Join(t.TempDir(), "missing.png")))
	assert.Nil(t, s.Image)
}

func TestAnalyzeNoFrameUsesWholeImage(t *testing.T) {
	s := NewState()
	s.SetImage("shot.png", solidRaster(100, 200, color.NRGBA{A: 255}))

	var last [2]int
	calls := 0
	a := &Analyzer{
		State:      s,
		Classifier: emptyCells,
		Options:    frame.DefaultOptions(),
		Progress: func(done, total int) {
			calls++
			last = [2]int{done, total}
		},
	}
	require.NoError(t, a.Analyze(context.Background()))

	require.NotNil(t, s.MapCode)
	assert.Zero(t, s.MapCode.Filled())
	assert.Equal(t, "https://knewjade.github.io/fumen-for-mobile/#?d=v115@vhAAgH", s.FumenURL)
	assert.True(t, s.Image.Equal(s.Field), "a black screenshot has no frame to strip")
	assert.True(t, s.Crop.Success)

	assert.Equal(t, board.Cells, calls)
	assert.Equal(t, [2]int{200, 200}, last)
}

func TestAnalyzeFallsBackWhenCropFails(t *testing.T) {
	// An empty raster fails every crop; analysis then fails on the grid
	// size rather than on the crop.
	s := NewState()
	s.SetImage("", raster.New(0, 0))
	a := &Analyzer{State: s, Classifier: emptyCells, Options: frame.DefaultOptions()}

	field, err := a.Crop()
	require.NoError(t, err)
	assert.Same(t, s.Image, field)
	assert.False(t, s.Crop.Success)
	assert.Len(t, s.Crop.Errors, 3)

	err = a.Analyze(context.Background())
	assert.ErrorContains(t, err, "failed to analyze play-field")
	assert.Nil(t, s.MapCode)
}

func TestAnalyzeClassifierError(t *testing.T) {
	s := NewState()
	s.SetImage("", solidRaster(100, 200, color.NRGBA{A: 255}))
	boom := errors.New("model missing")
	a := &Analyzer{
		State: s,
		Classifier: board.ClassifierFunc(func(context.Context, image.Image) (board.Label, error) {
			return board.Empty, boom
		}),
		Options: frame.DefaultOptions(),
	}

	err := a.Analyze(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, s.MapCode)
	assert.Empty(t, s.FumenURL)
}

func TestAnalyzeRequiresImageAndClassifier(t *testing.T) {
	a := &Analyzer{State: NewState(), Options: frame.DefaultOptions()}
	assert.Error(t, a.Analyze(context.Background()))

	a.Classifier = emptyCells
	assert.ErrorContains(t, a.Analyze(context.Background()), "no image loaded")
}

func TestSaveResult(t *testing.T) {
	s := NewState()
	s.SetImage("shot.png", solidRaster(100, 200, color.NRGBA{A: 255}))
	a := &Analyzer{State: s, Classifier: emptyCells, Options: frame.DefaultOptions(), Comment: "x"}
	require.NoError(t, a.Analyze(context.Background()))

	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, s.SaveResult(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var res ResultFile
	require.NoError(t, json.Unmarshal(data, &res))

	assert.Equal(t, 1, res.Version)
	assert.Equal(t, "shot.png", res.Source)
	assert.Equal(t, frame.Size{Width: 100, Height: 200}, res.Size)
	assert.Equal(t, strings.Repeat("0", 200), res.MapCode)
	assert.Len(t, res.Field, 20)
	assert.Len(t, res.Crops, 3)
	assert.Equal(t, frame.Boundaries{Left: 0, Right: 100, Top: 0, Bottom: 200}, res.Crops[frame.OnePlayer].Boundaries)
	assert.True(t, strings.HasPrefix(res.FumenURL, "https://knewjade.github.io/fumen-for-mobile/#?d=v115@"))
}
