package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tanuki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *FileAssetRepository {
	t.Helper()
	return NewFileAssetRepository(filepath.Join(t.TempDir(), "assets_index.json"))
}

func record(name string) domain.AssetRecord {
	return domain.AssetRecord{
		Filename:     name,
		SizeBytes:    42,
		HasThumbnail: true,
		Fingerprint:  "ffffffffffffffff",
		UploadedAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFileAssetRepository_LoadMissingCatalog(t *testing.T) {
	repo := newTestRepository(t)

	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFileAssetRepository_LoadEmptyFile(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, os.WriteFile(repo.Path(), []byte("  \n"), 0o644))

	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileAssetRepository_LoadCorruptCatalog(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, os.WriteFile(repo.Path(), []byte("{not json"), 0o644))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
}

func TestFileAssetRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	want := []domain.AssetRecord{record("tanuki.png"), record("anaguma.png")}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileAssetRepository_UpsertReplacesByFilename(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Upsert(ctx, record("tanuki.png")))
	require.NoError(t, repo.Upsert(ctx, record("anaguma.png")))

	updated := record("tanuki.png")
	updated.SizeBytes = 99
	require.NoError(t, repo.Upsert(ctx, updated))

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	found, err := repo.Find(ctx, "tanuki.png")
	require.NoError(t, err)
	assert.Equal(t, uint64(99), found.SizeBytes)
}

func TestFileAssetRepository_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Upsert(ctx, record(fmt.Sprintf("tanuki-%d.png", i))))
		}(i)
	}
	wg.Wait()

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, n)
}

func TestFileAssetRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, repo.Save(ctx, []domain.AssetRecord{record("tanuki.png"), record("anaguma.png")}))

	removed, err := repo.Delete(ctx, "tanuki.png")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "tanuki.png")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = repo.Find(ctx, "tanuki.png")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "anaguma.png", records[0].Filename)
}

func TestFileAssetRepository_UpdateAbortsOnError(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, repo.Save(ctx, []domain.AssetRecord{record("tanuki.png")}))

	boom := errors.New("boom")
	err := repo.Update(ctx, func(records []domain.AssetRecord) ([]domain.AssetRecord, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFileAssetRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, repo.Save(ctx, []domain.AssetRecord{
		record("tanuki-forest.png"),
		record("Tanuki-river.jpg"),
		record("hakubishin.png"),
	}))

	all, err := repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matches, err := repo.Search(ctx, "TANUKI")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.Search(ctx, "river")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Tanuki-river.jpg", matches[0].Filename)

	matches, err = repo.Search(ctx, "kitsune")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFileAssetRepository_CanceledContext(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Upsert(ctx, record("tanuki.png")), context.Canceled)
	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
