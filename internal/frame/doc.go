// Package frame detects and removes the coloured decorative frame drawn
// around the 1P (blue) and 2P (red) play-fields of a versus screenshot.
//
// The pipeline runs leaf first:
//
//	ColorClass  per-pixel HSV predicate (Blue, Red and their gray/white variants)
//	BuildMask   ColorClass applied to every pixel, in parallel row stripes
//	Scan        margin-bounded search for the frame edges on up to three masks
//	CropForPlayer  masks + Scan + sanity checks + top trim + sub-raster copy
//	Process     1P and 2P against the screenshot, then 1P2P on the 1P crop
//
// Everything is a pure function of its inputs. Failures are returned as
// values (CropResult.Failure) and never abort a batch.
package frame
