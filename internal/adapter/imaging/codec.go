// Package imaging decodes untrusted image uploads and renders thumbnails.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"tanuki-quiz/internal/domain"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp decoder
)

const (
	ThumbnailWidth  = 320
	ThumbnailHeight = 240

	jpegQuality = 85
)

// Codec implements domain.ImageCodec using the registered image decoders.
type Codec struct {
	maxPixels int
}

// NewCodec creates a codec that refuses images larger than maxPixels.
// A non-positive maxPixels disables the guard.
func NewCodec(maxPixels int) *Codec {
	return &Codec{maxPixels: maxPixels}
}

var _ domain.ImageCodec = (*Codec)(nil)

// Decode reads the header first so oversized images are rejected before any
// pixel buffer is allocated.
func (c *Codec) Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty upload")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("image has no pixels (%dx%d)", cfg.Width, cfg.Height)
	}
	if c.maxPixels > 0 && cfg.Width*cfg.Height > c.maxPixels {
		return nil, "", fmt.Errorf("image is %dx%d, above the %d pixel limit", cfg.Width, cfg.Height, c.maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", format, err)
	}
	return img, format, nil
}

// Thumbnail fits img inside 320x240 keeping its aspect ratio and encodes it
// as format. Images already inside the box are re-encoded at their own size.
func (c *Codec) Thumbnail(img image.Image, format string) ([]byte, error) {
	w, h := FitWithin(img.Bounds().Dx(), img.Bounds().Dy(), ThumbnailWidth, ThumbnailHeight)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	case "bmp":
		err = bmp.Encode(&buf, dst)
	default:
		// png and anything else without an encoder here.
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// FitWithin scales (w, h) down to fit inside (maxW, maxH) preserving aspect
// ratio. It never upscales and never returns a zero dimension.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
