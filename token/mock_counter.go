package token

import "github.com/stretchr/testify/mock"

// MockCounter is a mock implementation of the Counter interface using
// testify/mock.
type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) Count(text string) int {
	args := m.Called(text)
	return args.Int(0)
}

func (m *MockCounter) Name() string {
	args := m.Called()
	return args.String(0)
}
