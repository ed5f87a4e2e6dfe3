package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
)

const DefaultClovaPublicKeyURL = "https://clova-cek-requests.line.me/.well-known/signature-public-key.pem"

func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads configuration through v so tests can inject values.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.AddConfigPath("/app/configs")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Allow common env vars without APP_ prefix for container deploys
	v.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	v.BindEnv("redis.url", "REDIS_URL", "APP_REDIS_URL")
	v.BindEnv("auth.function_key", "FUNCTION_KEY", "APP_AUTH_FUNCTION_KEY")
	v.BindEnv("blog.feed_url", "BLOG_FEED_URL", "APP_BLOG_FEED_URL")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "smartspeaker-gateway")
	v.SetDefault("app.version", "v1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.body_limit", 256*1024)

	v.SetDefault("clova.public_key_url", DefaultClovaPublicKeyURL)
	v.SetDefault("dialogflow.welcome_intent", "Default Welcome Intent")
	v.SetDefault("messages.language", "ja")

	v.SetDefault("blog.feed_url", "https://chomado.com/feed/")
	v.SetDefault("blog.fetch_timeout", 3*time.Second)
	v.SetDefault("blog.cache_ttl", 5*time.Minute)

	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("circuit_breaker.enabled", true)
	v.SetDefault("circuit_breaker.max_requests", 3)
	v.SetDefault("circuit_breaker.interval", time.Minute)
	v.SetDefault("circuit_breaker.timeout", 30*time.Second)
	v.SetDefault("circuit_breaker.failure_threshold", 0.6)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("opentelemetry.service_name", "smartspeaker-gateway")
	v.SetDefault("opentelemetry.jaeger.endpoint", "http://jaeger:14268/api/traces")
	v.SetDefault("opentelemetry.jaeger.sampler_param", 1.0)

	v.SetDefault("prometheus.enabled", true)
	v.SetDefault("prometheus.path", "/metrics")
}

// Validate rejects values the service cannot run with.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.Blog.FetchTimeout <= 0 {
		return fmt.Errorf("blog.fetch_timeout must be positive, got %s", c.Blog.FetchTimeout)
	}
	if c.Blog.CacheTTL < 0 {
		return fmt.Errorf("blog.cache_ttl must not be negative, got %s", c.Blog.CacheTTL)
	}
	if c.Blog.FeedURL == "" {
		return errors.New("blog.feed_url is required")
	}
	if !c.Clova.SkipSignature && c.Clova.PublicKeyPath == "" && c.Clova.PublicKeyURL == "" {
		return errors.New("clova.public_key_path or clova.public_key_url is required")
	}
	if _, err := language.Parse(c.Messages.Language); err != nil {
		return fmt.Errorf("messages.language: %w", err)
	}
	for key, text := range c.Messages.Overrides {
		id := domain.MessageID(key)
		if _, ok := domain.DefaultMessages[id]; !ok {
			return fmt.Errorf("messages.overrides: unknown message id %q", key)
		}
		if id == domain.MsgLatestTitle {
			if err := domain.CheckTitleTemplate(text); err != nil {
				return fmt.Errorf("messages.overrides.%s: %w", key, err)
			}
		}
	}
	if c.CircuitBreaker.FailureThreshold < 0 || c.CircuitBreaker.FailureThreshold > 1 {
		return fmt.Errorf("circuit_breaker.failure_threshold must be within [0,1], got %v", c.CircuitBreaker.FailureThreshold)
	}
	return nil
}
