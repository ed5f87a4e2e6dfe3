package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/cache"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/external/blogfeed"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/platform/alexa"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/platform/clova"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/platform/dialogflow"
	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
	"github.com/seu-repo/smartspeaker-gateway/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/smartspeaker-gateway/internal/service/blog"
	"github.com/seu-repo/smartspeaker-gateway/internal/service/voice"
	"github.com/seu-repo/smartspeaker-gateway/pkg/config"
)

// setupFullStack wires the feed, Redis cache, provider, dispatcher and routes
// the same way cmd/server does.
func setupFullStack(t *testing.T, feed http.HandlerFunc) (*fiber.App, *atomic.Int32) {
	t.Helper()
	log := zap.NewNop()

	var feedHits atomic.Int32
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feedHits.Add(1)
		feed(w, r)
	}))
	t.Cleanup(feedSrv.Close)

	mr := miniredis.RunT(t)
	redisCache, err := cache.NewRedisCache(config.RedisConfig{URL: "redis://" + mr.Addr()}, log)
	if err != nil {
		t.Fatalf("failed to create redis cache: %v", err)
	}
	t.Cleanup(func() { redisCache.Close() })

	feedHTTP := circuitbreaker.NewHTTPClient(feedSrv.Client(), circuitbreaker.New("blog-feed", config.CircuitBreakerConfig{}, log), log)
	facts := blog.NewProvider(blogfeed.NewClient(feedHTTP, feedSrv.URL, log), redisCache, time.Second, time.Minute, log)
	dispatcher := voice.NewDispatcher(facts, voice.DefaultTable(), log)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	app.Use(middleware.RequestID())
	NewWebhookHandler(dispatcher, log).RegisterRoutes(app.Group("/api"), Platforms{
		Line:       clova.New(clova.SkipVerifier{}, "ja"),
		GoogleHome: dialogflow.New(""),
		Alexa:      alexa.New(),
	}, middleware.FunctionKey("key"))

	return app, &feedHits
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path+"?code=key", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	return resp
}

func TestIntegration_LatestTitleAcrossPlatforms(t *testing.T) {
	app, feedHits := setupFullStack(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<rss version="2.0"><channel><item><title>Post A</title></item></channel></rss>`))
	})

	requests := map[string]string{
		"/api/line":       `{"version":"1.0","request":{"type":"IntentRequest","intent":{"name":"AskLatestBlogTitleIntent"}}}`,
		"/api/googlehome": `{"queryResult":{"intent":{"displayName":"AskLatestBlogTitleIntent"}}}`,
		"/api/alexa":      alexaLatest,
	}

	for path, body := range requests {
		resp := postJSON(t, app, path, body)
		var raw map[string]any
		err := json.NewDecoder(resp.Body).Decode(&raw)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("%s: Failed to decode response: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: Expected status 200, got %d", path, resp.StatusCode)
		}

		encoded, _ := json.Marshal(raw)
		if !strings.Contains(string(encoded), "Post A") {
			t.Errorf("%s: Expected reply to mention 'Post A', got %s", path, encoded)
		}
	}

	if feedHits.Load() != 1 {
		t.Errorf("Expected the cached title to serve later requests, feed hit %d times", feedHits.Load())
	}
}

func TestIntegration_FeedDownStillAnswers(t *testing.T) {
	app, _ := setupFullStack(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	resp := postJSON(t, app, "/api/alexa", alexaLatest)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var skill alexa.SkillResponse
	if err := json.NewDecoder(resp.Body).Decode(&skill); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	want := domain.DefaultMessages[domain.MsgLatestTitleUnknown]
	if skill.Response.OutputSpeech.Text != want {
		t.Errorf("Expected %q, got %q", want, skill.Response.OutputSpeech.Text)
	}
}

func TestIntegration_FunctionKeyRequired(t *testing.T) {
	app, _ := setupFullStack(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/api/alexa", strings.NewReader(alexaHello))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}
