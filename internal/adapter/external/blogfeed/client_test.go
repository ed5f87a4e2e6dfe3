package blogfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/japanese"

	"github.com/seu-repo/smartspeaker-gateway/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/smartspeaker-gateway/pkg/config"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Blog</title>
    <item><title>  Post A </title><link>https://example.com/a</link></item>
    <item><title>Post B</title></item>
  </channel>
</rss>`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Blog</title>
  <entry><title>Atom Post</title></entry>
</feed>`

const rdfFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns="http://purl.org/rss/1.0/">
  <channel rdf:about="https://example.com/">
    <title>Blog</title>
  </channel>
  <item rdf:about="https://example.com/a"><title>Post A</title><link>https://example.com/a</link></item>
</rdf:RDF>`

const shiftJISTitle = "最新記事のタイトル"

func shiftJISFeed(t *testing.T) string {
	t.Helper()
	doc := `<?xml version="1.0" encoding="Shift_JIS"?>
<rss version="2.0"><channel><title>ブログ</title><item><title>` + shiftJISTitle + `</title></item></channel></rss>`
	encoded, err := japanese.ShiftJIS.NewEncoder().String(doc)
	if err != nil {
		t.Fatalf("failed to encode feed: %v", err)
	}
	return encoded
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := zap.NewNop()
	httpClient := circuitbreaker.NewHTTPClient(srv.Client(), circuitbreaker.New("blog-feed", config.CircuitBreakerConfig{}, log), log)
	return NewClient(httpClient, srv.URL, log)
}

func TestClient_LatestTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"rss", rssFeed, "Post A"},
		{"atom", atomFeed, "Atom Post"},
		{"rss 1.0", rdfFeed, "Post A"},
		{"shift_jis", shiftJISFeed(t), shiftJISTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/xml")
				w.Write([]byte(tt.body))
			})

			title, err := client.LatestTitle(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if title != tt.want {
				t.Errorf("expected %q, got %q", tt.want, title)
			}
		})
	}
}

func TestClient_LatestTitle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, "", nil},
		{"server error", http.StatusInternalServerError, "", nil},
		{"not a feed", http.StatusOK, "this is not a feed", nil},
		{"empty", http.StatusOK, `<rss><channel></channel></rss>`, ErrEmptyFeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.LatestTitle(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseLatestTitle_SkipsBlankTitles(t *testing.T) {
	body := `<rss><channel><item><title> </title></item><item><title>Second</title></item></channel></rss>`

	title, err := parseLatestTitle(strings.NewReader(body))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if title != "Second" {
		t.Errorf("expected 'Second', got %q", title)
	}
}
