package domain

import (
	"context"
	"path"
	"strings"
	"time"
)

// ThumbnailDir is the subdirectory of the asset root that holds thumbnails.
const ThumbnailDir = "thumbs"

// convertedThumbnailSuffix marks thumbnails re-encoded as PNG. Sanitized
// upload names never contain '@', so these cannot clash with other thumbnails.
const convertedThumbnailSuffix = "@thumb.png"

// thumbnailFormats lists the extensions whose format the codec can write.
var thumbnailFormats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
}

// ThumbnailFormat is the encoding used for the thumbnail of filename: the
// format its extension names, or png when there is no writable match.
func ThumbnailFormat(filename string) string {
	if f, ok := thumbnailFormats[strings.ToLower(path.Ext(filename))]; ok {
		return f
	}
	return "png"
}

// ThumbnailName maps an original filename to its file under ThumbnailDir so
// the served extension always matches the thumbnail bytes.
func ThumbnailName(filename string) string {
	if _, ok := thumbnailFormats[strings.ToLower(path.Ext(filename))]; ok {
		return filename
	}
	return filename + convertedThumbnailSuffix
}

// AssetRecord is one ingested image tracked in the asset catalog.
type AssetRecord struct {
	Filename     string    `json:"filename"`
	SizeBytes    uint64    `json:"size_bytes"`
	HasThumbnail bool      `json:"has_thumbnail"`
	Fingerprint  string    `json:"fingerprint,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// MatchesCategory reports whether the asset belongs to the category, which
// is decided by filename prefix.
func (a AssetRecord) MatchesCategory(key string) bool {
	return key != "" && strings.HasPrefix(strings.ToLower(a.Filename), strings.ToLower(key))
}

// AssetRepository is the persisted catalog of ingested assets.
//
// Load returns an empty slice when no catalog exists yet. Upsert and Delete
// run their whole load-mutate-save cycle as one critical section.
type AssetRepository interface {
	Load(ctx context.Context) ([]AssetRecord, error)
	Save(ctx context.Context, records []AssetRecord) error
	Upsert(ctx context.Context, record AssetRecord) error
	Delete(ctx context.Context, filename string) (bool, error)
	Update(ctx context.Context, fn func([]AssetRecord) ([]AssetRecord, error)) error
	Find(ctx context.Context, filename string) (*AssetRecord, error)
	Search(ctx context.Context, query string) ([]AssetRecord, error)
}
