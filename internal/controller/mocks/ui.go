// Package mocks provides testify mocks of the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	m "remap.dev/pkg/remap/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// DisplayOutput provides a mock function with given fields: ctx, file, content
func (_m *MockUI) DisplayOutput(ctx context.Context, file m.SourceFile, content []byte) error {
	ret := _m.Called(ctx, file, content)

	if len(ret) == 0 {
		panic("no return value specified for DisplayOutput")
	}

	return ret.Error(0)
}

// DisplayReports provides a mock function with given fields: ctx, reports
func (_m *MockUI) DisplayReports(ctx context.Context, reports []m.TransformReport) error {
	ret := _m.Called(ctx, reports)

	if len(ret) == 0 {
		panic("no return value specified for DisplayReports")
	}

	return ret.Error(0)
}

// DisplayLookup provides a mock function with given fields: ctx, summary
func (_m *MockUI) DisplayLookup(ctx context.Context, summary m.LookupSummary) error {
	ret := _m.Called(ctx, summary)

	if len(ret) == 0 {
		panic("no return value specified for DisplayLookup")
	}

	return ret.Error(0)
}

// NewMockUI creates a new instance of MockUI. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
