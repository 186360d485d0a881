package dto

import "time"

// UploadRequest is the JSON upload envelope.
// @Description Base64-encoded image upload
type UploadRequest struct {
	Filename   string `json:"filename"`
	DataBase64 string `json:"data_base64"`
}

// AssetResponse mirrors a catalog record.
type AssetResponse struct {
	Filename     string    `json:"filename"`
	SizeBytes    uint64    `json:"size_bytes"`
	HasThumbnail bool      `json:"has_thumbnail"`
	Fingerprint  string    `json:"fingerprint,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
}

// UploadResponse reports the outcome of one ingested item. Stage is set on
// failure and names the pipeline step that failed.
type UploadResponse struct {
	OK       bool           `json:"ok"`
	Message  string         `json:"message,omitempty"`
	Stage    string         `json:"stage,omitempty"`
	Filename string         `json:"filename,omitempty"`
	Asset    *AssetResponse `json:"asset,omitempty"`
}

// BulkUploadResponse carries one verdict per file part, in request order.
type BulkUploadResponse struct {
	OK      bool             `json:"ok"`
	Results []UploadResponse `json:"results"`
}

// AssetListResponse is returned by list, search and similarity endpoints.
type AssetListResponse struct {
	OK     bool            `json:"ok"`
	Assets []AssetResponse `json:"assets"`
}
