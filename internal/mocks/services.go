package mocks

import (
	"context"
	"sync/atomic"

	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
)

// MockFactProvider is a mock implementation of FactProvider interface
type MockFactProvider struct {
	FetchLatestTitleFunc func(ctx context.Context) (string, bool)
	calls                atomic.Int32
}

func (m *MockFactProvider) FetchLatestTitle(ctx context.Context) (string, bool) {
	m.calls.Add(1)
	if m.FetchLatestTitleFunc != nil {
		return m.FetchLatestTitleFunc(ctx)
	}
	return "", false
}

func (m *MockFactProvider) Calls() int {
	return int(m.calls.Load())
}

// MockTitleSource is a mock implementation of TitleSource interface
type MockTitleSource struct {
	LatestTitleFunc func(ctx context.Context) (string, error)
	calls           atomic.Int32
}

func (m *MockTitleSource) LatestTitle(ctx context.Context) (string, error) {
	m.calls.Add(1)
	if m.LatestTitleFunc != nil {
		return m.LatestTitleFunc(ctx)
	}
	return "", nil
}

func (m *MockTitleSource) Calls() int {
	return int(m.calls.Load())
}

// MockDispatcher records every event it is asked to dispatch
type MockDispatcher struct {
	DispatchFunc func(ctx context.Context, event domain.InboundEvent) domain.SpokenReply
	calls        atomic.Int32
	last         atomic.Value
}

func (m *MockDispatcher) Dispatch(ctx context.Context, event domain.InboundEvent) domain.SpokenReply {
	m.calls.Add(1)
	m.last.Store(event)
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, event)
	}
	return domain.SpokenReply{}
}

func (m *MockDispatcher) Calls() int {
	return int(m.calls.Load())
}

// LastEvent returns the most recent event, or the zero event if none arrived.
func (m *MockDispatcher) LastEvent() domain.InboundEvent {
	if ev, ok := m.last.Load().(domain.InboundEvent); ok {
		return ev
	}
	return domain.InboundEvent{}
}
