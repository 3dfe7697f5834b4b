package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/domain"
)

// MockInferencer is a mock implementation of port.Inferencer.
type MockInferencer struct {
	mock.Mock
}

func (m *MockInferencer) Infer(ctx context.Context, pages domain.PageSet, prompt string) (domain.InferenceResult, error) {
	args := m.Called(ctx, pages, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.InferenceResult), args.Error(1)
}
