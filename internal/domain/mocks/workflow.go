// Package mocks provides testify mocks of the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"remap.dev/pkg/remap/internal/domain"
	"remap.dev/pkg/remap/internal/domain/lookup"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// BuildLookup provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) BuildLookup(ctx context.Context, args domain.LookupArgs) (*lookup.Table, error) {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for BuildLookup")
	}

	var r0 *lookup.Table
	if v := ret.Get(0); v != nil {
		r0 = v.(*lookup.Table)
	}

	return r0, ret.Error(1)
}

// Transform provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Transform(ctx context.Context, args domain.TransformArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Transform")
	}

	return ret.Error(0)
}

// Compose provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Compose(ctx context.Context, args domain.ComposeArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Compose")
	}

	return ret.Error(0)
}

// Inspect provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Inspect(ctx context.Context, args domain.LookupArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Inspect")
	}

	return ret.Error(0)
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mock := &MockWorkflow{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
