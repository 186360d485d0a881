package service

import (
	"context"

	"tanuki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockAssetStorage ---
type MockAssetStorage struct {
	mock.Mock
}

func (m *MockAssetStorage) ExistingNames() (map[string]struct{}, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockAssetStorage) CreateOriginal(name string, data []byte) error {
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockAssetStorage) ReadOriginal(name string) ([]byte, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAssetStorage) WriteThumbnail(name string, data []byte) error {
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockAssetStorage) HasThumbnail(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

func (m *MockAssetStorage) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

// --- MockAssetRepository ---
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Load(ctx context.Context) ([]domain.AssetRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetRecord), args.Error(1)
}

func (m *MockAssetRepository) Save(ctx context.Context, records []domain.AssetRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockAssetRepository) Upsert(ctx context.Context, record domain.AssetRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, filename string) (bool, error) {
	args := m.Called(ctx, filename)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetRepository) Update(ctx context.Context, fn func([]domain.AssetRecord) ([]domain.AssetRecord, error)) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockAssetRepository) Find(ctx context.Context, filename string) (*domain.AssetRecord, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetRecord), args.Error(1)
}

func (m *MockAssetRepository) Search(ctx context.Context, query string) ([]domain.AssetRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetRecord), args.Error(1)
}

// --- MockSessionStore ---
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, session domain.QuizSession) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Consume(ctx context.Context, id, selectedCategory string) domain.Verdict {
	args := m.Called(ctx, id, selectedCategory)
	return args.Get(0).(domain.Verdict)
}

