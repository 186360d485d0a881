package service

import (
	"context"
	"net/url"

	"tanuki-quiz/internal/domain"
)

const (
	AssetURLPrefix     = "/assets"
	SyntheticURLPrefix = "/api/synthetic_image"
)

// ThumbnailSource serves the chosen asset's thumbnail when one is on disk.
type ThumbnailSource struct {
	Storage domain.AssetStorage
}

func (ThumbnailSource) Name() string { return "thumbnail" }

func (s ThumbnailSource) Resolve(_ context.Context, _ domain.Category, asset *domain.AssetRecord) (string, bool) {
	if asset == nil || !asset.HasThumbnail || !s.Storage.HasThumbnail(asset.Filename) {
		return "", false
	}
	return AssetURLPrefix + "/" + domain.ThumbnailDir + "/" + url.PathEscape(domain.ThumbnailName(asset.Filename)), true
}

// OriginalSource serves the chosen asset's full-size original.
type OriginalSource struct{}

func (OriginalSource) Name() string { return "original" }

func (OriginalSource) Resolve(_ context.Context, _ domain.Category, asset *domain.AssetRecord) (string, bool) {
	if asset == nil {
		return "", false
	}
	return AssetURLPrefix + "/" + url.PathEscape(asset.Filename), true
}

// SyntheticSource points at the placeholder renderer and always succeeds.
type SyntheticSource struct{}

func (SyntheticSource) Name() string { return "synthetic" }

func (SyntheticSource) Resolve(_ context.Context, category domain.Category, _ *domain.AssetRecord) (string, bool) {
	return SyntheticURLPrefix + "/" + url.PathEscape(category.Key), true
}

// DefaultImageSources is the thumbnail, original, synthetic fallback chain.
func DefaultImageSources(storage domain.AssetStorage) []domain.ImageSource {
	return []domain.ImageSource{
		ThumbnailSource{Storage: storage},
		OriginalSource{},
		SyntheticSource{},
	}
}

// resolveImage walks sources in order and returns the first URL offered.
func resolveImage(ctx context.Context, sources []domain.ImageSource, category domain.Category, asset *domain.AssetRecord) (string, string) {
	for _, src := range sources {
		if u, ok := src.Resolve(ctx, category, asset); ok {
			return u, src.Name()
		}
	}
	return "", ""
}
