package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/service"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Review(ctx context.Context, input service.ReviewInput) (*service.ReviewOutcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewOutcome), args.Error(1)
}
