package placeholder

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPNG(t *testing.T) {
	r := NewRenderer()

	data, err := r.RenderPNG("tanuki")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, Width, Height), img.Bounds())
}

func TestRenderPNG_Deterministic(t *testing.T) {
	r := NewRenderer()
	for _, key := range []string{"tanuki", "anaguma", "hakubishin", "kitsune"} {
		a, err := r.RenderPNG(key)
		require.NoError(t, err)
		b, err := r.RenderPNG(key)
		require.NoError(t, err)
		assert.Equal(t, a, b, key)
	}
}

func TestRender_CategoriesDiffer(t *testing.T) {
	tanuki := Render("tanuki")
	anaguma := Render("anaguma")
	hakubishin := Render("hakubishin")

	assert.NotEqual(t, tanuki.Pix, anaguma.Pix)
	assert.NotEqual(t, tanuki.Pix, hakubishin.Pix)
	assert.NotEqual(t, anaguma.Pix, hakubishin.Pix)
}

func TestRender_PrefixSelectsPalette(t *testing.T) {
	assert.Equal(t, Render("tanuki").Pix, Render("Tanuki-02").Pix)
}

func TestRender_UnknownKey(t *testing.T) {
	img := Render("kitsune")
	assert.Equal(t, image.Rect(0, 0, Width, Height), img.Bounds())
	assert.NotEqual(t, Render("tanuki").Pix, img.Pix)
}
