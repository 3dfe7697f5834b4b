package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/domain"
	"docreview/internal/service"
)

// MockModelService is a mock implementation of service.ModelService.
type MockModelService struct {
	mock.Mock
}

func (m *MockModelService) Analyze(ctx context.Context, input service.AnalyzeInput) (domain.InferenceResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.InferenceResult), args.Error(1)
}
