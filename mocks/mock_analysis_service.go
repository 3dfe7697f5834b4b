package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"docreview/internal/domain"
	"docreview/internal/port"
	"docreview/internal/service"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Create(ctx context.Context, input service.CreateAnalysisInput) (*domain.AnalysisRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisService) GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisService) List(ctx context.Context, filter port.ListFilter) ([]domain.AnalysisRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisService) ListByFileID(ctx context.Context, fileID string) ([]domain.AnalysisRecord, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisService) Update(ctx context.Context, id string, patch domain.AnalysisRecordPatch) (*domain.AnalysisRecord, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnalysisService) Export(ctx context.Context, fileID string, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, fileID, format, w)
	return args.Error(0)
}
