package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockChainReaderForTest creates a new mock ChainReader for testing
func NewMockChainReaderForTest(t *testing.T) *MockChainReader {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockChainReader(ctrl)
}

// NewMockExplorerClientForTest creates a new mock ExplorerClient for testing
func NewMockExplorerClientForTest(t *testing.T) *MockExplorerClient {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockExplorerClient(ctrl)
}

// NewMockSubgraphClientForTest creates a new mock SubgraphClient for testing
func NewMockSubgraphClientForTest(t *testing.T) *MockSubgraphClient {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockSubgraphClient(ctrl)
}

// NewMockProviderForTest creates a new mock wallet Provider for testing
func NewMockProviderForTest(t *testing.T) *MockProvider {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockProvider(ctrl)
}

// NewMockMetricsCollectorForTest creates a new mock MetricsCollector for testing
func NewMockMetricsCollectorForTest(t *testing.T) *MockMetricsCollector {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockMetricsCollector(ctrl)
}

// NewMockLockSourceForTest creates a new mock LockSource for testing
func NewMockLockSourceForTest(t *testing.T) *MockLockSource {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockLockSource(ctrl)
}

// NewMockBalanceSourceForTest creates a new mock BalanceSource for testing
func NewMockBalanceSourceForTest(t *testing.T) *MockBalanceSource {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockBalanceSource(ctrl)
}
