package domain

import (
	"context"
	"image"
)

// ImageCodec decodes untrusted uploads and produces thumbnails.
type ImageCodec interface {
	// Decode returns the decoded image and its format name ("png", "jpeg", ...).
	Decode(data []byte) (image.Image, string, error)
	// Thumbnail scales img to fit the thumbnail box and encodes it in format
	// (see ThumbnailFormat).
	Thumbnail(img image.Image, format string) ([]byte, error)
}

// PlaceholderRenderer draws a deterministic stand-in image for a category key.
type PlaceholderRenderer interface {
	RenderPNG(key string) ([]byte, error)
}

// ImageSource resolves the image URL for one quiz choice. Sources are tried in
// order; the first that reports ok wins.
type ImageSource interface {
	Name() string
	Resolve(ctx context.Context, category Category, asset *AssetRecord) (url string, ok bool)
}

// AssetStorage holds original and thumbnail files under the asset root.
type AssetStorage interface {
	// ExistingNames lists names already used in the asset root, reserved names included.
	ExistingNames() (map[string]struct{}, error)
	// CreateOriginal writes a new original and fails with fs.ErrExist if name is taken.
	CreateOriginal(name string, data []byte) error
	ReadOriginal(name string) ([]byte, error)
	WriteThumbnail(name string, data []byte) error
	HasThumbnail(name string) bool
	Remove(name string) error
}
