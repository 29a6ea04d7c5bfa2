// Package app holds the state of an analysis session and runs the
// screenshot-to-fumen workflow on it.
package app

import (
	"encoding/json"
	"os"
	"sync"

	"blox-fumen/internal/board"
	"blox-fumen/internal/frame"
	"blox-fumen/internal/raster"
)

// State holds the current screenshot and everything derived from it.
type State struct {
	mu sync.RWMutex

	// Input
	SourcePath string
	Image      *raster.Raster

	// Crop
	Crop  *frame.BatchResult
	Field *raster.Raster

	// Analysis
	MapCode  *board.MapCode
	FumenURL string
}

// NewState creates an empty session.
func NewState() *State {
	return &State{}
}

// LoadImage loads a screenshot from disk and makes it current.
func (s *State) LoadImage(path string) error {
	r, err := raster.Load(path)
	if err != nil {
		return err
	}
	s.SetImage(path, r)
	return nil
}

// SetImage makes r the current screenshot and clears earlier results.
func (s *State) SetImage(source string, r *raster.Raster) {
	s.mu.Lock()
	s.SourcePath = source
	s.Image = r
	s.resetLocked()
	s.mu.Unlock()
}

func (s *State) resetLocked() {
	s.Crop = nil
	s.Field = nil
	s.MapCode = nil
	s.FumenURL = ""
}

// ResultFile is the JSON written by SaveResult.
type ResultFile struct {
	Version  int                         `json:"version"`
	Source   string                      `json:"source,omitempty"`
	Size     frame.Size                  `json:"size"`
	Crops    map[frame.PlayerID]CropData `json:"crops,omitempty"`
	Errors   []string                    `json:"errors,omitempty"`
	MapCode  string                      `json:"map_code,omitempty"`
	Field    []string                    `json:"field,omitempty"`
	FumenURL string                      `json:"fumen_url,omitempty"`
}

// CropData is a JSON-serializable summary of one successful crop.
type CropData struct {
	Boundaries frame.Boundaries `json:"boundaries"`
	Info       frame.Info       `json:"info"`
}

// Result snapshots the session into a ResultFile.
func (s *State) Result() ResultFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := ResultFile{Version: 1, Source: s.SourcePath, FumenURL: s.FumenURL}
	if s.Image != nil {
		res.Size = frame.Size{Width: s.Image.Width(), Height: s.Image.Height()}
	}
	if s.Crop != nil {
		res.Errors = s.Crop.Errors
		res.Crops = make(map[frame.PlayerID]CropData)
		for _, p := range frame.AllPlayers {
			if r := s.Crop.Result(p); r.OK() {
				res.Crops[p] = CropData{Boundaries: r.Success.Boundaries, Info: r.Success.Info}
			}
		}
	}
	if s.MapCode != nil {
		res.MapCode = s.MapCode.String()
		res.Field = s.MapCode.Rows()
	}
	return res
}

// SaveResult writes the session result as JSON.
func (s *State) SaveResult(path string) error {
	data, err := json.MarshalIndent(s.Result(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
