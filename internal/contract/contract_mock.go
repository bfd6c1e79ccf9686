package contract

import (
	"context"

	"github.com/huangsam/replaystat/schema"
	"github.com/stretchr/testify/mock"
)

// MockReplayResolver is a mock implementation of ReplayResolver for testing.
type MockReplayResolver struct {
	mock.Mock
}

var _ ReplayResolver = &MockReplayResolver{} // Compile-time check

// Resolve implements the ReplayResolver interface.
func (m *MockReplayResolver) Resolve(ctx context.Context, prefix, scorekey string) ([]byte, error) {
	args := m.Called(ctx, prefix, scorekey)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// MockChartResolver is a mock implementation of ChartResolver for testing.
type MockChartResolver struct {
	mock.Mock
}

var _ ChartResolver = &MockChartResolver{} // Compile-time check

// Resolve implements the ChartResolver interface.
func (m *MockChartResolver) Resolve(ctx context.Context, songsRoot, pack, song string) (*schema.ChartTiming, error) {
	args := m.Called(ctx, songsRoot, pack, song)
	timing, _ := args.Get(0).(*schema.ChartTiming)
	return timing, args.Error(1)
}
