package blog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/smartspeaker-gateway/internal/mocks"
)

func TestFetchLatestTitle_Present(t *testing.T) {
	source := &mocks.MockTitleSource{
		LatestTitleFunc: func(ctx context.Context) (string, error) {
			return "Post A", nil
		},
	}
	p := NewProvider(source, nil, time.Second, 0, zap.NewNop())

	title, ok := p.FetchLatestTitle(context.Background())
	if !ok || title != "Post A" {
		t.Errorf("expected ('Post A', true), got (%q, %v)", title, ok)
	}
}

func TestFetchLatestTitle_DegradesToAbsent(t *testing.T) {
	tests := []struct {
		name  string
		fetch func(ctx context.Context) (string, error)
	}{
		{"error", func(ctx context.Context) (string, error) {
			return "", errors.New("connection refused")
		}},
		{"empty", func(ctx context.Context) (string, error) {
			return "", nil
		}},
		{"panic", func(ctx context.Context) (string, error) {
			panic("feed parser blew up")
		}},
		{"timeout honoring context", func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}},
		{"timeout ignoring context", func(ctx context.Context) (string, error) {
			time.Sleep(300 * time.Millisecond)
			return "too late", nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mocks.MockTitleSource{LatestTitleFunc: tt.fetch}
			p := NewProvider(source, nil, 50*time.Millisecond, 0, zap.NewNop())

			title, ok := p.FetchLatestTitle(context.Background())
			if ok || title != "" {
				t.Errorf("expected absent, got (%q, %v)", title, ok)
			}
		})
	}
}

func TestFetchLatestTitle_UsesCache(t *testing.T) {
	source := &mocks.MockTitleSource{
		LatestTitleFunc: func(ctx context.Context) (string, error) {
			return "Post A", nil
		},
	}
	cache := mocks.NewMockCache()
	p := NewProvider(source, cache, time.Second, time.Minute, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		title, ok := p.FetchLatestTitle(ctx)
		if !ok || title != "Post A" {
			t.Fatalf("call %d: expected ('Post A', true), got (%q, %v)", i, title, ok)
		}
	}

	if source.Calls() != 1 {
		t.Errorf("expected one upstream fetch, got %d", source.Calls())
	}
}

func TestFetchLatestTitle_CacheErrorsIgnored(t *testing.T) {
	source := &mocks.MockTitleSource{
		LatestTitleFunc: func(ctx context.Context) (string, error) {
			return "Post A", nil
		},
	}
	cache := mocks.NewMockCache()
	cache.GetFunc = func(ctx context.Context, key string) (string, error) {
		return "", errors.New("redis down")
	}
	cache.SetFunc = func(ctx context.Context, key, value string, exp time.Duration) error {
		return errors.New("redis down")
	}
	p := NewProvider(source, cache, time.Second, time.Minute, zap.NewNop())

	title, ok := p.FetchLatestTitle(context.Background())
	if !ok || title != "Post A" {
		t.Errorf("expected ('Post A', true), got (%q, %v)", title, ok)
	}
}

func TestFetchLatestTitle_CollapsesConcurrentLookups(t *testing.T) {
	release := make(chan struct{})
	source := &mocks.MockTitleSource{
		LatestTitleFunc: func(ctx context.Context) (string, error) {
			<-release
			return "Post A", nil
		},
	}
	p := NewProvider(source, nil, 2*time.Second, 0, zap.NewNop())

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.FetchLatestTitle(context.Background())
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, r := range results {
		if r != "Post A" {
			t.Errorf("caller %d: expected 'Post A', got %q", i, r)
		}
	}
	if source.Calls() != 1 {
		t.Errorf("expected concurrent lookups to share one fetch, got %d", source.Calls())
	}
}

func TestFetchLatestTitle_CallerCancelled(t *testing.T) {
	source := &mocks.MockTitleSource{
		LatestTitleFunc: func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	p := NewProvider(source, nil, time.Second, 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, ok := p.FetchLatestTitle(ctx); ok {
		t.Error("expected absent for a cancelled caller")
	}
}
