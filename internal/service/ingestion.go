package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/fingerprint"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/metrics"
	"tanuki-quiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxCreateAttempts bounds retries when a concurrent upload claims the same
// resolved name between listing the directory and creating the file.
const maxCreateAttempts = 16

// UploadItem is one raw upload handed over by the transport layer.
type UploadItem struct {
	Filename string
	Data     []byte
}

// IngestResult is the per-item verdict of a bulk upload.
type IngestResult struct {
	Filename string
	Record   *domain.AssetRecord
	Err      error
}

// ReindexReport summarizes a catalog repair pass.
type ReindexReport struct {
	Total               int
	ThumbnailsRebuilt   int
	FingerprintsUpdated int
	Dropped             []string
}

// IngestionService validates, stores and indexes uploaded images.
type IngestionService interface {
	Ingest(ctx context.Context, data []byte, suggestedName string) (*domain.AssetRecord, error)
	IngestBulk(ctx context.Context, items []UploadItem) []IngestResult
	FindSimilar(ctx context.Context, filename string, maxDistance int) ([]domain.AssetRecord, error)
	List(ctx context.Context, query string) ([]domain.AssetRecord, error)
	Get(ctx context.Context, filename string) (*domain.AssetRecord, error)
	Delete(ctx context.Context, filename string) error
	Reindex(ctx context.Context) (*ReindexReport, error)
}

type ingestionService struct {
	repo            domain.AssetRepository
	storage         domain.AssetStorage
	codec           domain.ImageCodec
	bulkConcurrency int
	now             func() time.Time
}

// NewIngestionService creates a new instance of ingestionService.
func NewIngestionService(
	repo domain.AssetRepository,
	storage domain.AssetStorage,
	codec domain.ImageCodec,
	bulkConcurrency int,
) IngestionService {
	if bulkConcurrency < 1 {
		bulkConcurrency = 1
	}
	return &ingestionService{
		repo:            repo,
		storage:         storage,
		codec:           codec,
		bulkConcurrency: bulkConcurrency,
		now:             time.Now,
	}
}

// Ingest runs the upload pipeline. The catalog is only touched once every
// earlier stage succeeded; files written by a failed attempt are left in place
// and the returned error names the failing stage.
func (s *ingestionService) Ingest(ctx context.Context, data []byte, suggestedName string) (*domain.AssetRecord, error) {
	record, err := s.ingest(ctx, data, suggestedName)
	if err != nil {
		var domainErr *domain.DomainError
		result := string(domain.CodeInternal)
		if errors.As(err, &domainErr) {
			result = string(domainErr.Code)
		}
		metrics.UploadsTotal.WithLabelValues(result).Inc()
		logger.Get().Warn("Ingestion failed",
			zap.String("suggested_name", suggestedName),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	logger.Get().Info("Asset ingested",
		zap.String("filename", record.Filename),
		zap.Uint64("bytes", record.SizeBytes),
		zap.String("fingerprint", record.Fingerprint),
	)
	return record, nil
}

func (s *ingestionService) ingest(ctx context.Context, data []byte, suggestedName string) (*domain.AssetRecord, error) {
	// Rejects separators and sanitizes; collisions are resolved after decode.
	safeName, err := util.ResolveFilename(suggestedName, nil)
	if err != nil {
		return nil, err
	}

	img, _, err := s.codec.Decode(data)
	if err != nil {
		return nil, domain.NewInvalidImageDataError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := s.storeOriginal(safeName, data)
	if err != nil {
		return nil, err
	}

	thumb, err := s.codec.Thumbnail(img, domain.ThumbnailFormat(name))
	if err != nil {
		return nil, domain.NewPersistenceError(domain.StageStoreThumbnail, "failed to render thumbnail", err).
			WithContext("filename", name)
	}
	if err := s.storage.WriteThumbnail(name, thumb); err != nil {
		return nil, domain.NewPersistenceError(domain.StageStoreThumbnail, "failed to write thumbnail", err).
			WithContext("filename", name)
	}

	hash, err := fingerprint.Compute(img)
	if err != nil {
		return nil, domain.NewError(domain.CodeInvalidImageData, "failed to fingerprint image", err).
			WithContext("stage", domain.StageFingerprint).
			WithContext("filename", name)
	}

	record := domain.AssetRecord{
		Filename:     name,
		SizeBytes:    uint64(len(data)),
		HasThumbnail: true,
		Fingerprint:  hash,
		UploadedAt:   s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodePersistence {
			return nil, domainErr.WithContext("filename", name)
		}
		return nil, domain.NewPersistenceError(domain.StageIndex, "failed to update asset catalog", err)
	}
	return &record, nil
}

// storeOriginal picks a free name and creates the file exclusively, retrying
// when another upload wins the race for the same name.
func (s *ingestionService) storeOriginal(safeName string, data []byte) (string, error) {
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		existing, err := s.storage.ExistingNames()
		if err != nil {
			return "", domain.NewPersistenceError(domain.StageStoreOriginal, "failed to list asset directory", err)
		}
		name, err := util.ResolveFilename(safeName, existing)
		if err != nil {
			return "", err
		}
		err = s.storage.CreateOriginal(name, data)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", domain.NewPersistenceError(domain.StageStoreOriginal, "failed to write original", err).
				WithContext("filename", name)
		}
		logger.Get().Debug("Upload name taken concurrently, retrying", zap.String("filename", name))
	}
	return "", domain.NewPersistenceError(domain.StageStoreOriginal,
		fmt.Sprintf("no free filename after %d attempts", maxCreateAttempts), nil)
}

// IngestBulk ingests every item independently with bounded concurrency.
// Results are returned in input order; one failure never aborts the others.
func (s *ingestionService) IngestBulk(ctx context.Context, items []UploadItem) []IngestResult {
	results := make([]IngestResult, len(items))
	var g errgroup.Group
	g.SetLimit(s.bulkConcurrency)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			record, err := s.Ingest(ctx, item.Data, item.Filename)
			results[i] = IngestResult{Filename: item.Filename, Record: record, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// FindSimilar returns the other assets whose fingerprint is within
// maxDistance bits of the named asset, closest first. A missing asset or one
// without a fingerprint yields an empty result.
func (s *ingestionService) FindSimilar(ctx context.Context, filename string, maxDistance int) ([]domain.AssetRecord, error) {
	if maxDistance < 0 || maxDistance > fingerprint.MaxDistance {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("max distance must be between 0 and %d", fingerprint.MaxDistance))
	}
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	var target *domain.AssetRecord
	for i := range records {
		if records[i].Filename == filename {
			target = &records[i]
			break
		}
	}
	if target == nil || target.Fingerprint == "" {
		return []domain.AssetRecord{}, nil
	}
	if _, err := fingerprint.Parse(target.Fingerprint); err != nil {
		logger.Get().Error("Catalog holds a malformed fingerprint", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	type match struct {
		record   domain.AssetRecord
		distance int
	}
	var matches []match
	for _, rec := range records {
		if rec.Filename == target.Filename || rec.Fingerprint == "" {
			continue
		}
		d, err := fingerprint.Distance(target.Fingerprint, rec.Fingerprint)
		if err != nil {
			logger.Get().Error("Skipping asset with malformed fingerprint", zap.String("filename", rec.Filename), zap.Error(err))
			continue
		}
		if d <= maxDistance {
			matches = append(matches, match{record: rec, distance: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].record.Filename < matches[j].record.Filename
	})

	out := make([]domain.AssetRecord, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.record)
	}
	return out, nil
}

func (s *ingestionService) List(ctx context.Context, query string) ([]domain.AssetRecord, error) {
	return s.repo.Search(ctx, query)
}

// Get returns the catalog record for filename, or a NOT_FOUND error.
func (s *ingestionService) Get(ctx context.Context, filename string) (*domain.AssetRecord, error) {
	return s.repo.Find(ctx, filename)
}

// Delete removes the catalog record first, then its files.
func (s *ingestionService) Delete(ctx context.Context, filename string) error {
	if filename == "" || util.SanitizeFilename(filename) != filename {
		return domain.NewUnsafeFilenameError(filename)
	}
	removed, err := s.repo.Delete(ctx, filename)
	if err != nil {
		return err
	}
	if !removed {
		return domain.NewNotFoundError(fmt.Sprintf("asset %q not found", filename))
	}
	if err := s.storage.Remove(filename); err != nil {
		logger.Get().Error("Asset removed from catalog but files remain", zap.String("filename", filename), zap.Error(err))
		return domain.NewPersistenceError("delete", "failed to remove asset files", err)
	}
	logger.Get().Info("Asset deleted", zap.String("filename", filename))
	return nil
}

// Reindex rebuilds missing thumbnails and recomputes fingerprints for every
// catalog record, dropping records whose original file is gone. The catalog
// lock is held for the whole pass.
func (s *ingestionService) Reindex(ctx context.Context) (*ReindexReport, error) {
	report := &ReindexReport{}
	err := s.repo.Update(ctx, func(records []domain.AssetRecord) ([]domain.AssetRecord, error) {
		report.Total = len(records)
		out := make([]domain.AssetRecord, 0, len(records))
		for _, rec := range records {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			data, err := s.storage.ReadOriginal(rec.Filename)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					report.Dropped = append(report.Dropped, rec.Filename)
					continue
				}
				return nil, domain.NewPersistenceError(domain.StageStoreOriginal, "failed to read original", err).
					WithContext("filename", rec.Filename)
			}
			img, _, err := s.codec.Decode(data)
			if err != nil {
				logger.Get().Warn("Catalog entry no longer decodes, dropping", zap.String("filename", rec.Filename), zap.Error(err))
				report.Dropped = append(report.Dropped, rec.Filename)
				continue
			}

			if !s.storage.HasThumbnail(rec.Filename) {
				thumb, err := s.codec.Thumbnail(img, domain.ThumbnailFormat(rec.Filename))
				if err == nil {
					err = s.storage.WriteThumbnail(rec.Filename, thumb)
				}
				if err != nil {
					return nil, domain.NewPersistenceError(domain.StageStoreThumbnail, "failed to rebuild thumbnail", err).
						WithContext("filename", rec.Filename)
				}
				report.ThumbnailsRebuilt++
			}
			rec.HasThumbnail = true

			hash, err := fingerprint.Compute(img)
			if err != nil {
				return nil, domain.NewInternalError("failed to fingerprint "+rec.Filename, err)
			}
			if hash != rec.Fingerprint {
				rec.Fingerprint = hash
				report.FingerprintsUpdated++
			}
			rec.SizeBytes = uint64(len(data))
			out = append(out, rec)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
