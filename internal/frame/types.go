package frame

import (
	"errors"
	"fmt"
	"image"

	"blox-fumen/internal/raster"
)

// PlayerID identifies one of the three crop pipelines.
type PlayerID string

const (
	// OnePlayer is the blue-framed left field.
	OnePlayer PlayerID = "1P"
	// TwoPlayer is the red-framed right field.
	TwoPlayer PlayerID = "2P"
	// OnePlayerTwoPlayer is the red frame nested inside the 1P crop.
	OnePlayerTwoPlayer PlayerID = "1P2P"
)

// AllPlayers lists the pipelines in processing order.
var AllPlayers = []PlayerID{OnePlayer, TwoPlayer, OnePlayerTwoPlayer}

func (p PlayerID) String() string { return string(p) }

// IsValid reports whether p is one of the known pipelines.
func (p PlayerID) IsValid() bool {
	switch p {
	case OnePlayer, TwoPlayer, OnePlayerTwoPlayer:
		return true
	default:
		return false
	}
}

// ParsePlayerID converts "1P", "2P" or "1P2P".
func ParsePlayerID(s string) (PlayerID, error) {
	p := PlayerID(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid player: %q (valid: 1P, 2P, 1P2P)", s)
	}
	return p, nil
}

// ColorClass returns the frame color scanned for p: blue for 1P, red for the
// others.
func (p PlayerID) ColorClass() ColorClass {
	if p == OnePlayer {
		return Blue
	}
	return Red
}

// Reason classifies why a pipeline failed.
type Reason int

const (
	// CropTooSmall: the scanned crop is under 70% of a raster dimension.
	CropTooSmall Reason = iota + 1
	// InvalidBoundaries: the scanned interval is empty or inverted.
	InvalidBoundaries
	// CropTooSmallAfterTopCrop: the trimmed height is under 30% of the raster.
	CropTooSmallAfterTopCrop
	// DependencyFailed: the nested 1P2P pass was skipped because 1P failed.
	DependencyFailed
	// UnsupportedInput: no raster could be obtained from the input.
	UnsupportedInput
	// Unexpected: anything else; the message is kept for diagnostics.
	Unexpected
)

// Sentinel errors matching each Reason, usable with errors.Is.
var (
	ErrCropTooSmall             = errors.New("crop too small")
	ErrInvalidBoundaries        = errors.New("invalid boundaries")
	ErrCropTooSmallAfterTopCrop = errors.New("crop too small after top cropping")
	ErrDependencyFailed         = errors.New("cannot process due to 1P failure")
	ErrUnsupportedInput         = raster.ErrUnsupportedInput
	ErrUnexpected               = errors.New("unexpected")
)

// Err returns the sentinel error for the reason.
func (r Reason) Err() error {
	switch r {
	case CropTooSmall:
		return ErrCropTooSmall
	case InvalidBoundaries:
		return ErrInvalidBoundaries
	case CropTooSmallAfterTopCrop:
		return ErrCropTooSmallAfterTopCrop
	case DependencyFailed:
		return ErrDependencyFailed
	case UnsupportedInput:
		return ErrUnsupportedInput
	default:
		return ErrUnexpected
	}
}

func (r Reason) String() string {
	switch r {
	case CropTooSmall:
		return "CropTooSmall"
	case InvalidBoundaries:
		return "InvalidBoundaries"
	case CropTooSmallAfterTopCrop:
		return "CropTooSmallAfterTopCrop"
	case DependencyFailed:
		return "DependencyFailed"
	case UnsupportedInput:
		return "UnsupportedInput"
	default:
		return "Unexpected"
	}
}

// MarshalText renders the reason name for JSON output.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Info describes a successful crop.
type Info struct {
	OriginalSize      Size `json:"original_size"`
	CroppedSize       Size `json:"cropped_size"`
	AdditionalTopCrop int  `json:"additional_top_crop"`
}

// Debug holds visualizations attached when Options.Debug is set. They are
// not used by any downstream stage.
type Debug struct {
	SideMask *image.Gray
	TopMask  *image.Gray
	// Overlay is the source raster with the crop rectangle, the pre-trim
	// top line and the search margins drawn on it.
	Overlay *raster.Raster
}

// Success is a validated crop.
type Success struct {
	Player     PlayerID
	Cropped    *raster.Raster
	Boundaries Boundaries
	Info       Info
	Debug      *Debug
}

// Failure is a pipeline failure. It implements error and matches its
// reason's sentinel under errors.Is.
type Failure struct {
	Player  PlayerID
	Reason  Reason
	Message string
}

func (f *Failure) Error() string {
	if f.Reason == Unexpected {
		return "Unexpected:" + f.Message
	}
	return f.Reason.Err().Error()
}

// Unwrap exposes the reason sentinel.
func (f *Failure) Unwrap() error {
	return f.Reason.Err()
}

// CropResult holds exactly one of Success or Failure.
type CropResult struct {
	Success *Success
	Failure *Failure
}

// OK reports whether the result is a success.
func (c CropResult) OK() bool {
	return c.Success != nil
}

// Player returns the pipeline that produced the result.
func (c CropResult) Player() PlayerID {
	if c.Success != nil {
		return c.Success.Player
	}
	if c.Failure != nil {
		return c.Failure.Player
	}
	return ""
}

// Err returns the failure as an error, or nil on success.
func (c CropResult) Err() error {
	if c.Failure != nil {
		return c.Failure
	}
	return nil
}

// UnwrapOr returns the cropped raster on success and fallback otherwise.
func (c CropResult) UnwrapOr(fallback *raster.Raster) *raster.Raster {
	if c.Success != nil {
		return c.Success.Cropped
	}
	return fallback
}

func succeed(s *Success) CropResult {
	return CropResult{Success: s}
}

func fail(player PlayerID, reason Reason, message string) CropResult {
	return CropResult{Failure: &Failure{Player: player, Reason: reason, Message: message}}
}

// BatchResult aggregates the three pipelines of one screenshot.
type BatchResult struct {
	// Players always holds an entry for every PlayerID in AllPlayers.
	Players map[PlayerID]CropResult
	// Errors lists "<player>: <reason>" messages in processing order.
	Errors []string
	// Success is true iff Errors is empty.
	Success bool
}

// Result returns the result for player p.
func (b BatchResult) Result(p PlayerID) CropResult {
	return b.Players[p]
}
