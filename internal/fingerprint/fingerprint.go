// Package fingerprint computes 64-bit average hashes of images. Visually
// similar images produce hashes with a small Hamming distance; the hash makes
// no collision-resistance claim.
package fingerprint

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/util"
)

const (
	// GridSize is the side of the luminance grid the image is reduced to.
	GridSize = 8
	// HexLength is the width of a rendered fingerprint.
	HexLength = 16
	// MaxDistance is the largest possible distance between two fingerprints.
	MaxDistance = GridSize * GridSize
)

// Compute reduces img to an 8x8 grid of mean luminance samples and sets one
// bit per sample that is at or above the grid mean. Bit 63 is the top-left
// cell, scanning row by row.
func Compute(img image.Image) (string, error) {
	b := img.Bounds()
	if b.Empty() {
		return "", fmt.Errorf("cannot fingerprint an empty image")
	}

	var samples [GridSize * GridSize]float64
	var total float64
	w, h := b.Dx(), b.Dy()
	for gy := 0; gy < GridSize; gy++ {
		y0, y1 := cellRange(gy, h)
		for gx := 0; gx < GridSize; gx++ {
			x0, x1 := cellRange(gx, w)
			var sum float64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += luminance(img.At(b.Min.X+x, b.Min.Y+y))
				}
			}
			v := sum / float64((x1-x0)*(y1-y0))
			samples[gy*GridSize+gx] = v
			total += v
		}
	}

	mean := total / float64(len(samples))
	var hash uint64
	for i, v := range samples {
		if v >= mean {
			hash |= 1 << uint(len(samples)-1-i)
		}
	}
	return Format(hash), nil
}

// cellRange maps grid cell i to the pixel span [lo, hi) along an axis of the
// given length. Every cell covers at least one pixel, so images smaller than
// the grid repeat pixels instead of leaving cells empty.
func cellRange(i, length int) (int, int) {
	lo := i * length / GridSize
	hi := (i + 1) * length / GridSize
	if hi <= lo {
		hi = lo + 1
	}
	if hi > length {
		lo, hi = length-1, length
	}
	return lo, hi
}

func luminance(c color.Color) float64 {
	return float64(color.Gray16Model.Convert(c).(color.Gray16).Y)
}

// Format renders a hash as fixed-width lowercase hex.
func Format(hash uint64) string {
	return fmt.Sprintf("%016x", hash)
}

// Parse validates and decodes a rendered fingerprint.
func Parse(s string) (uint64, error) {
	if len(s) != HexLength {
		return 0, domain.NewMalformedHashError(s)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, domain.NewMalformedHashError(s)
	}
	return v, nil
}

// Distance returns the Hamming distance between two rendered fingerprints.
func Distance(a, b string) (int, error) {
	ha, err := Parse(a)
	if err != nil {
		return 0, err
	}
	hb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return util.HammingDistance(ha, hb), nil
}
