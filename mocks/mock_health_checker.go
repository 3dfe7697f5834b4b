package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockHealthChecker is a mock implementation of port.HealthChecker.
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
