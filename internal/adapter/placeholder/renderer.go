// Package placeholder draws stand-in animal faces for categories that have no
// ingested images yet. Output depends only on the key.
package placeholder

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"strings"

	"tanuki-quiz/internal/domain"
)

const (
	Width  = 320
	Height = 240
)

type marking int

const (
	markingNone marking = iota
	markingEyeMask
	markingFaceStripes
	markingNoseStripe
)

type palette struct {
	background color.RGBA
	fur        color.RGBA
	ears       color.RGBA
	markings   color.RGBA
	eyes       color.RGBA
	nose       color.RGBA
	marking    marking
}

var palettes = map[string]palette{
	"tanuki": {
		background: color.RGBA{0xe8, 0xdf, 0xc8, 0xff},
		fur:        color.RGBA{0x8b, 0x6b, 0x4a, 0xff},
		ears:       color.RGBA{0x4a, 0x36, 0x24, 0xff},
		markings:   color.RGBA{0x2b, 0x21, 0x18, 0xff},
		eyes:       color.RGBA{0xf5, 0xf0, 0xe6, 0xff},
		nose:       color.RGBA{0x1a, 0x14, 0x10, 0xff},
		marking:    markingEyeMask,
	},
	"anaguma": {
		background: color.RGBA{0xd9, 0xe4, 0xd2, 0xff},
		fur:        color.RGBA{0x9a, 0x94, 0x8a, 0xff},
		ears:       color.RGBA{0x5c, 0x57, 0x50, 0xff},
		markings:   color.RGBA{0x3a, 0x36, 0x32, 0xff},
		eyes:       color.RGBA{0x10, 0x10, 0x10, 0xff},
		nose:       color.RGBA{0x22, 0x1e, 0x1c, 0xff},
		marking:    markingFaceStripes,
	},
	"hakubishin": {
		background: color.RGBA{0xd6, 0xdd, 0xea, 0xff},
		fur:        color.RGBA{0x6e, 0x5f, 0x55, 0xff},
		ears:       color.RGBA{0x3d, 0x33, 0x2d, 0xff},
		markings:   color.RGBA{0xf4, 0xf2, 0xee, 0xff},
		eyes:       color.RGBA{0x12, 0x12, 0x12, 0xff},
		nose:       color.RGBA{0xc9, 0x8a, 0x8a, 0xff},
		marking:    markingNoseStripe,
	},
}

// Renderer implements domain.PlaceholderRenderer.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

var _ domain.PlaceholderRenderer = (*Renderer)(nil)

// RenderPNG draws a face keyed by the longest known category prefix of key.
// Unknown keys get a palette derived from a hash of the key.
func (r *Renderer) RenderPNG(key string) ([]byte, error) {
	img := Render(key)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render returns the placeholder image for key.
func Render(key string) *image.RGBA {
	p := paletteFor(key)
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillRect(img, img.Bounds(), p.background)

	cx, cy := Width/2, Height/2+10
	// ears, then head over them
	fillEllipse(img, cx-62, cy-62, 26, 26, p.ears)
	fillEllipse(img, cx+62, cy-62, 26, 26, p.ears)
	fillEllipse(img, cx, cy, 92, 78, p.fur)

	switch p.marking {
	case markingEyeMask:
		fillEllipse(img, cx-34, cy-8, 28, 20, p.markings)
		fillEllipse(img, cx+34, cy-8, 28, 20, p.markings)
		fillEllipse(img, cx, cy+30, 40, 26, p.eyes)
	case markingFaceStripes:
		fillRect(img, image.Rect(cx-12, cy-78, cx+12, cy+20), p.eyes)
		fillRect(img, image.Rect(cx-60, cy-18, cx-24, cy+2), p.markings)
		fillRect(img, image.Rect(cx+24, cy-18, cx+60, cy+2), p.markings)
	case markingNoseStripe:
		fillRect(img, image.Rect(cx-8, cy-78, cx+8, cy+28), p.markings)
		fillEllipse(img, cx-44, cy+22, 18, 14, p.markings)
		fillEllipse(img, cx+44, cy+22, 18, 14, p.markings)
	}

	eyeColor := p.eyes
	if p.marking == markingEyeMask {
		eyeColor = color.RGBA{0x10, 0x10, 0x10, 0xff}
	}
	fillEllipse(img, cx-34, cy-8, 8, 8, eyeColor)
	fillEllipse(img, cx+34, cy-8, 8, 8, eyeColor)
	fillEllipse(img, cx, cy+28, 11, 8, p.nose)
	return img
}

func paletteFor(key string) palette {
	k := strings.ToLower(key)
	best := ""
	for name := range palettes {
		if strings.HasPrefix(k, name) && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return palettes[best]
	}

	h := fnv.New32a()
	h.Write([]byte(k))
	sum := h.Sum32()
	shade := func(shift uint, floor uint8) uint8 {
		return floor + uint8((sum>>shift)&0x3f)
	}
	return palette{
		background: color.RGBA{shade(0, 0xb0), shade(6, 0xb0), shade(12, 0xb0), 0xff},
		fur:        color.RGBA{shade(18, 0x60), shade(24, 0x50), shade(3, 0x40), 0xff},
		ears:       color.RGBA{shade(9, 0x20), shade(15, 0x20), shade(21, 0x20), 0xff},
		markings:   color.RGBA{0x30, 0x30, 0x30, 0xff},
		eyes:       color.RGBA{0x10, 0x10, 0x10, 0xff},
		nose:       color.RGBA{0x20, 0x18, 0x18, 0xff},
		marking:    marking(sum % 4),
	}
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	r := image.Rect(cx-rx, cy-ry, cx+rx+1, cy+ry+1).Intersect(img.Bounds())
	rx2, ry2 := float64(rx*rx), float64(ry*ry)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dy := float64(y - cy)
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := float64(x - cx)
			if dx*dx/rx2+dy*dy/ry2 <= 1 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
