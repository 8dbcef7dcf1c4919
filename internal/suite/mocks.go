package suite

import (
	"context"

	"github.com/stretchr/testify/mock"

	"grimm.is/conform/internal/executor"
)

// MockExecutor is a mock implementation of Executor for testing.
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, script string) (*executor.Result, error) {
	args := m.Called(ctx, script)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*executor.Result), args.Error(1)
}
