package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/domain"
	"docreview/internal/port"
)

// MockResultStore is a mock implementation of port.ResultStore.
type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) Save(ctx context.Context, fileID string, result domain.InferenceResult) (*domain.AnalysisRecord, error) {
	args := m.Called(ctx, fileID, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRecord), args.Error(1)
}

func (m *MockResultStore) Get(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRecord), args.Error(1)
}

func (m *MockResultStore) List(ctx context.Context, filter port.ListFilter) ([]domain.AnalysisRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisRecord), args.Error(1)
}

func (m *MockResultStore) ListByFileID(ctx context.Context, fileID string) ([]domain.AnalysisRecord, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisRecord), args.Error(1)
}

func (m *MockResultStore) Update(ctx context.Context, id string, patch domain.AnalysisRecordPatch) (*domain.AnalysisRecord, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRecord), args.Error(1)
}

func (m *MockResultStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
