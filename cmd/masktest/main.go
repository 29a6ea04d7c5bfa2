// Command masktest builds the frame color masks for an image and prints
// per-edge coverage, to help tune scan parameters.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"blox-fumen/internal/frame"
	"blox-fumen/internal/raster"
)

func main() {
	imagePath := flag.String("image", "", "Path to screenshot")
	outDir := flag.String("out", "", "Directory for mask PNGs (optional)")
	searchX := flag.Float64("search-x", 0.1, "Horizontal search ratio")
	searchY := flag.Float64("search-y", 0.05, "Vertical search ratio")
	minRatio := flag.Float64("min-ratio", 0.8, "Coverage threshold")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: masktest -image <path> [-out dir] [-search-x 0.1] [-search-y 0.05] [-min-ratio 0.8]")
		os.Exit(1)
	}

	r, err := raster.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	w, h := r.Width(), r.Height()
	fmt.Printf("Loaded image: %dx%d pixels\n", w, h)

	params := frame.ScanParams{MinRatio: *minRatio, SearchRatioX: *searchX, SearchRatioY: *searchY}
	maxX, maxY := params.Margins(w, h)
	fmt.Printf("Search margins: %d columns, %d rows; thresholds: column > %.1f, row > %.1f\n",
		maxX, maxY, float64(h)*params.MinRatio, float64(w)*params.MinRatio)

	for _, class := range []frame.ColorClass{frame.Blue, frame.BlueGrayWhite, frame.Red, frame.RedGrayWhite} {
		fmt.Printf("\n=== %s ===\n", class)
		for _, rng := range class.Ranges() {
			fmt.Printf("  HSV: H(%d-%d) S(%d-%d) V(%d-%d)\n",
				rng.HueMin, rng.HueMax, rng.SatMin, rng.SatMax, rng.ValMin, rng.ValMax)
		}

		m := frame.BuildMask(r, class)
		fmt.Printf("  Coverage: %d of %d pixels (%.1f%%)\n", m.Count(), w*h, 100*float64(m.Count())/float64(max(w*h, 1)))

		fmt.Printf("  Left columns:  ")
		for x := 0; x <= maxX; x++ {
			fmt.Printf(" %d", m.ColumnCount(x))
		}
		fmt.Printf("\n  Right columns: ")
		for x := w - maxX - 1; x < w; x++ {
			fmt.Printf(" %d", m.ColumnCount(x))
		}
		fmt.Printf("\n  Top rows:      ")
		for y := 0; y <= maxY; y++ {
			fmt.Printf(" %d", m.RowCount(y))
		}
		fmt.Printf("\n  Bottom rows:   ")
		for y := h - maxY - 1; y < h; y++ {
			fmt.Printf(" %d", m.RowCount(y))
		}
		fmt.Println()

		if *outDir != "" {
			path := filepath.Join(*outDir, fmt.Sprintf("mask_%s.png", class))
			if err := raster.Save(path, raster.FromImage(m.Image())); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to save %s: %v\n", path, err)
				os.Exit(1)
			}
			fmt.Printf("  Saved %s\n", path)
		}
	}

	fmt.Printf("\n=== Crop ===\n")
	opts := frame.DefaultOptions().WithScan(params)
	batch := frame.Process(r, opts)
	for _, p := range frame.AllPlayers {
		res := batch.Result(p)
		if !res.OK() {
			fmt.Printf("  %-4s failed: %v\n", p, res.Err())
			continue
		}
		fmt.Printf("  %-4s %s -> %dx%d\n", p, res.Success.Boundaries,
			res.Success.Info.CroppedSize.Width, res.Success.Info.CroppedSize.Height)
	}
}
