package frame

import (
	"fmt"
	"sync"

	"blox-fumen/internal/raster"
)

type cropFunc func(r *raster.Raster, player PlayerID, opts Options) CropResult

// Process crops both fields of a versus screenshot.
//
// 1P (blue) and 2P (red) run concurrently against r. 1P2P then strips the
// red frame nested inside the 1P crop; it only runs when 1P succeeded and is
// recorded as DependencyFailed otherwise. A failure in one pipeline never
// stops the others, and every PlayerID is present in the result.
func Process(r *raster.Raster, opts Options) BatchResult {
	return process(r, opts, CropForPlayer)
}

func process(r *raster.Raster, opts Options, crop cropFunc) BatchResult {
	opts.logf("Frame crop: processing both players (1P + 2P)")

	var one, two CropResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		one = crop(r, OnePlayer, opts)
	}()
	go func() {
		defer wg.Done()
		two = crop(r, TwoPlayer, opts)
	}()
	wg.Wait()

	var nested CropResult
	if one.OK() {
		nested = crop(one.Success.Cropped, OnePlayerTwoPlayer, opts)
	} else {
		nested = fail(OnePlayerTwoPlayer, DependencyFailed, "1P did not produce a crop")
	}

	result := BatchResult{
		Players: map[PlayerID]CropResult{
			OnePlayer:          one,
			TwoPlayer:          two,
			OnePlayerTwoPlayer: nested,
		},
	}
	for _, p := range AllPlayers {
		if f := result.Players[p].Failure; f != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", p, f.Error()))
		}
	}
	result.Success = len(result.Errors) == 0

	if result.Success {
		opts.logf("Frame crop: processed both players")
	} else {
		opts.logf("Frame crop: completed with %d errors", len(result.Errors))
	}
	return result
}

// CropOrOriginal returns the fully cropped 1P play-field (the 1P2P result),
// falling back to r itself when any stage of that chain fails.
func CropOrOriginal(r *raster.Raster, opts Options) *raster.Raster {
	return Process(r, opts).Result(OnePlayerTwoPlayer).UnwrapOr(r)
}
