package mocks

import (
	"context"

	"ui_mockups/generator"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Helper()
	Cleanup(func())
}

// MockLLMClient is a mock type for the LLMClient type
type MockLLMClient struct {
	mock.Mock
}

// Complete provides a mock function with given fields: ctx, prompt
func (_m *MockLLMClient) Complete(ctx context.Context, prompt generator.Prompt) (string, error) {
	ret := _m.Called(ctx, prompt)
	return ret.String(0), ret.Error(1)
}

// NewMockLLMClient creates a MockLLMClient and registers expectation assertions on cleanup.
func NewMockLLMClient(t testingT) *MockLLMClient {
	m := &MockLLMClient{}
	m.Mock.Test(t)
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockImageClient is a mock type for the ImageClient type
type MockImageClient struct {
	mock.Mock
}

// GenerateImages provides a mock function with given fields: ctx, req
func (_m *MockImageClient) GenerateImages(ctx context.Context, req generator.ImageRequest) ([]string, error) {
	ret := _m.Called(ctx, req)

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

func NewMockImageClient(t testingT) *MockImageClient {
	m := &MockImageClient{}
	m.Mock.Test(t)
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockVisionClient is a mock type for the VisionClient type
type MockVisionClient struct {
	mock.Mock
}

// Inspect provides a mock function with given fields: ctx, req
func (_m *MockVisionClient) Inspect(ctx context.Context, req generator.VisionRequest) (string, error) {
	ret := _m.Called(ctx, req)
	return ret.String(0), ret.Error(1)
}

func NewMockVisionClient(t testingT) *MockVisionClient {
	m := &MockVisionClient{}
	m.Mock.Test(t)
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockPlaceholderSource is a mock type for the PlaceholderSource type
type MockPlaceholderSource struct {
	mock.Mock
}

// Fetch provides a mock function with given fields: ctx
func (_m *MockPlaceholderSource) Fetch(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

func NewMockPlaceholderSource(t testingT) *MockPlaceholderSource {
	m := &MockPlaceholderSource{}
	m.Mock.Test(t)
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var (
	_ generator.LLMClient         = (*MockLLMClient)(nil)
	_ generator.ImageClient       = (*MockImageClient)(nil)
	_ generator.VisionClient      = (*MockVisionClient)(nil)
	_ generator.PlaceholderSource = (*MockPlaceholderSource)(nil)
)
