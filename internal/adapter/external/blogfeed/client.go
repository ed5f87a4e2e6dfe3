// Package blogfeed reads the newest post title from an RSS, RDF or Atom feed.
package blogfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/seu-repo/smartspeaker-gateway/internal/infrastructure/circuitbreaker"
)

const maxFeedBytes = 4 << 20

// ErrEmptyFeed is returned when the feed parses but holds no titled entry.
var ErrEmptyFeed = errors.New("feed has no entries")

type Client struct {
	http    *circuitbreaker.HTTPClient
	feedURL string
	log     *zap.Logger
}

func NewClient(httpClient *circuitbreaker.HTTPClient, feedURL string, log *zap.Logger) *Client {
	return &Client{
		http:    httpClient,
		feedURL: feedURL,
		log:     log,
	}
}

// LatestTitle returns the title of the first item in the feed.
func (c *Client) LatestTitle(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/rdf+xml, application/atom+xml, application/xml;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected feed status: %d", resp.StatusCode)
	}

	return parseLatestTitle(io.LimitReader(resp.Body, maxFeedBytes))
}

// parseLatestTitle returns the first non-blank item title. gofeed detects the
// feed flavour and honours the declared XML encoding.
func parseLatestTitle(r io.Reader) (string, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode feed: %w", err)
	}

	for _, item := range feed.Items {
		if title := strings.TrimSpace(item.Title); title != "" {
			return title, nil
		}
	}
	return "", ErrEmptyFeed
}
