package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/domain"
	"docreview/internal/service"
)

// MockCompareService is a mock implementation of service.CompareService.
type MockCompareService struct {
	mock.Mock
}

func (m *MockCompareService) Compare(ctx context.Context, input service.CompareInput) (domain.Envelope, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Envelope), args.Error(1)
}
