// --- START OF FINAL REVISED FILE internal/testutil/mocks.go ---
// Package testutil provides mock implementations for interfaces defined in the
// office-doc2pdf core library (pkg/batch), plus small filesystem and archive
// helpers. These mocks facilitate unit testing by isolating components.
package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/manasrathbsw/office-doc2pdf/pkg/batch"
)

// MockEngine provides a mock implementation of the batch.Engine interface.
// Configure expectations using testify/mock methods (e.g., .On("Convert", ...).Return(...)).
// See batch.Engine for the interface contract, in particular the
// single-instance, non-reentrant assumption the runner enforces.
type MockEngine struct {
	mock.Mock
}

// Convert mocks the Convert method.
func (m *MockEngine) Convert(ctx context.Context, kind batch.DocKind, srcPath, dstPath string) error {
	args := m.Called(ctx, kind, srcPath, dstPath)
	return args.Error(0)
}

// MockHooks provides a mock implementation of the batch.Hooks interface.
// The batch runner may invoke hooks from a goroutine other than the test's;
// testify/mock call recording is already thread-safe.
type MockHooks struct {
	mock.Mock
}

// OnItemDiscovered mocks the OnItemDiscovered method.
func (m *MockHooks) OnItemDiscovered(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// OnItemStatusUpdate mocks the OnItemStatusUpdate method.
func (m *MockHooks) OnItemStatusUpdate(path string, status batch.Status, message string, duration time.Duration) error {
	args := m.Called(path, status, message, duration)
	return args.Error(0)
}

// OnRunComplete mocks the OnRunComplete method.
func (m *MockHooks) OnRunComplete(result batch.Result) error {
	args := m.Called(result)
	return args.Error(0)
}

// Compile-time interface compliance checks. // minimal comment
var (
	_ batch.Engine = (*MockEngine)(nil)
	_ batch.Hooks  = (*MockHooks)(nil)
)

// --- END OF FINAL REVISED FILE internal/testutil/mocks.go ---
