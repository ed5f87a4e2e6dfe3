// Package blog answers "what is the latest post" without ever failing.
package blog

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
	"github.com/seu-repo/smartspeaker-gateway/internal/observability/telemetry"
	"github.com/seu-repo/smartspeaker-gateway/internal/ports"
)

const cacheKey = "blog:latest_title"

// Provider implements ports.FactProvider on top of a TitleSource.
type Provider struct {
	source   ports.TitleSource
	cache    ports.Cache
	cacheTTL time.Duration
	timeout  time.Duration
	group    singleflight.Group
	log      *zap.Logger
}

// NewProvider wires source behind a timeout. cache may be nil, and a
// non-positive cacheTTL disables caching.
func NewProvider(source ports.TitleSource, cache ports.Cache, timeout, cacheTTL time.Duration, log *zap.Logger) *Provider {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Provider{
		source:   source,
		cache:    cache,
		cacheTTL: cacheTTL,
		timeout:  timeout,
		log:      log,
	}
}

func (p *Provider) FetchLatestTitle(ctx context.Context) (string, bool) {
	ctx, span := otel.Tracer("blog").Start(ctx, "blog.FetchLatestTitle")
	defer span.End()

	if title, ok := p.cached(ctx); ok {
		span.SetAttributes(attribute.String("blog.result", "hit"))
		telemetry.FactLookupsTotal.WithLabelValues("hit").Inc()
		return title, true
	}

	ch := p.group.DoChan(cacheKey, func() (interface{}, error) {
		return p.fetch(context.WithoutCancel(ctx))
	})

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	var title string
	select {
	case res := <-ch:
		if res.Err != nil {
			p.log.Warn("Latest title lookup degraded to absent", zap.Error(res.Err))
			break
		}
		title = res.Val.(string)
	case <-timer.C:
		p.log.Warn("Latest title lookup timed out", zap.Duration("timeout", p.timeout))
	case <-ctx.Done():
		p.log.Warn("Latest title lookup abandoned", zap.Error(ctx.Err()))
	}

	if title == "" {
		span.SetAttributes(attribute.String("blog.result", "absent"))
		telemetry.FactLookupsTotal.WithLabelValues("absent").Inc()
		return "", false
	}

	span.SetAttributes(attribute.String("blog.result", "fetched"))
	telemetry.FactLookupsTotal.WithLabelValues("fetched").Inc()
	return title, true
}

func (p *Provider) cached(ctx context.Context) (string, bool) {
	if p.cache == nil || p.cacheTTL <= 0 {
		return "", false
	}
	title, err := p.cache.Get(ctx, cacheKey)
	if err != nil || title == "" {
		return "", false
	}
	return title, true
}

// fetch runs one bounded upstream call. Every failure, panics included,
// comes back wrapped in domain.ErrDependency.
func (p *Provider) fetch(ctx context.Context) (title string, err error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		telemetry.FactFetchLatency.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			title, err = "", fmt.Errorf("%w: panic: %v", domain.ErrDependency, r)
		}
	}()

	title, err = p.source.LatestTitle(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDependency, err)
	}
	if title == "" {
		return "", nil
	}

	if p.cache != nil && p.cacheTTL > 0 {
		if err := p.cache.Set(ctx, cacheKey, title, p.cacheTTL); err != nil {
			p.log.Warn("Failed to cache latest title", zap.Error(err))
		}
	}
	return title, nil
}
