package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/logger"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"
)

// FileAssetRepository keeps the asset catalog as a JSON array in a single
// file. The file is re-read on every call and replaced atomically on every
// write, so readers never observe a partially written catalog.
type FileAssetRepository struct {
	path string
	// mu serializes read-modify-write cycles on the catalog file.
	mu sync.Mutex
}

// NewFileAssetRepository creates a repository backed by the catalog at path.
func NewFileAssetRepository(path string) *FileAssetRepository {
	return &FileAssetRepository{path: path}
}

var _ domain.AssetRepository = (*FileAssetRepository)(nil)

// Path returns the catalog file location.
func (r *FileAssetRepository) Path() string {
	return r.path
}

// Load reads the catalog. A missing catalog is an empty catalog.
func (r *FileAssetRepository) Load(ctx context.Context) ([]domain.AssetRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.read()
}

// Save replaces the whole catalog with records.
func (r *FileAssetRepository) Save(ctx context.Context, records []domain.AssetRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(records)
}

// Upsert replaces any record with the same filename, or appends a new one.
func (r *FileAssetRepository) Upsert(ctx context.Context, record domain.AssetRecord) error {
	return r.Update(ctx, func(records []domain.AssetRecord) ([]domain.AssetRecord, error) {
		out := records[:0]
		for _, existing := range records {
			if existing.Filename != record.Filename {
				out = append(out, existing)
			}
		}
		return append(out, record), nil
	})
}

// Delete removes the record for filename and reports whether one existed.
func (r *FileAssetRepository) Delete(ctx context.Context, filename string) (bool, error) {
	removed := false
	err := r.Update(ctx, func(records []domain.AssetRecord) ([]domain.AssetRecord, error) {
		out := records[:0]
		for _, existing := range records {
			if existing.Filename == filename {
				removed = true
				continue
			}
			out = append(out, existing)
		}
		return out, nil
	})
	return removed, err
}

// Update runs fn over the current catalog and saves its result, holding the
// catalog lock for the whole cycle. An error from fn aborts without writing.
func (r *FileAssetRepository) Update(ctx context.Context, fn func([]domain.AssetRecord) ([]domain.AssetRecord, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.read()
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return r.write(updated)
}

// Find returns the record for filename, or domain.ErrNotFound.
func (r *FileAssetRepository) Find(ctx context.Context, filename string) (*domain.AssetRecord, error) {
	records, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Filename == filename {
			return &records[i], nil
		}
	}
	return nil, domain.NewNotFoundError(fmt.Sprintf("asset %q not found", filename))
}

// Search returns records whose filename contains query, case-insensitively.
// An empty query returns everything.
func (r *FileAssetRepository) Search(ctx context.Context, query string) ([]domain.AssetRecord, error) {
	records, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records, nil
	}
	matches := make([]domain.AssetRecord, 0)
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Filename), query) {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

func (r *FileAssetRepository) read() ([]domain.AssetRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.AssetRecord{}, nil
		}
		return nil, domain.NewPersistenceError(domain.StageIndex, "failed to read asset catalog", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []domain.AssetRecord{}, nil
	}

	var records []domain.AssetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Get().Error("Asset catalog is corrupt", zap.String("path", r.path), zap.Error(err))
		return nil, domain.NewPersistenceError(domain.StageIndex, "failed to parse asset catalog", err)
	}
	if records == nil {
		records = []domain.AssetRecord{}
	}
	return records, nil
}

func (r *FileAssetRepository) write(records []domain.AssetRecord) error {
	if records == nil {
		records = []domain.AssetRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return domain.NewPersistenceError(domain.StageIndex, "failed to encode asset catalog", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return domain.NewPersistenceError(domain.StageIndex, "failed to create catalog directory", err)
	}
	if err := renameio.WriteFile(r.path, data, 0o644); err != nil {
		return domain.NewPersistenceError(domain.StageIndex, "failed to write asset catalog", err)
	}
	logger.Get().Debug("Asset catalog written", zap.String("path", r.path), zap.Int("records", len(records)))
	return nil
}
