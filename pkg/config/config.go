package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "NEWSDASH_CONFIG"

type Config struct {
	Port          string        `yaml:"port"`
	LogLevel      string        `yaml:"logLevel"`
	LogFormat     string        `yaml:"logFormat"`
	PublicBaseURL string        `yaml:"publicBaseUrl"`
	Origins       []string      `yaml:"allowedOrigins"`
	Session       SessionConfig `yaml:"session"`
	News          NewsConfig    `yaml:"news"`
	OpenRouter    LLMConfig     `yaml:"openrouter"`
	Translate     TranslateCfg  `yaml:"translate"`
	Pipeline      PipelineCfg   `yaml:"pipeline"`
	DatabaseURL   string        `yaml:"databaseUrl"`
	Database      DatabaseCfg   `yaml:"database"`
	RedisURL      string        `yaml:"redisUrl"`
}

type SessionConfig struct {
	Secret       string `yaml:"secret"`
	Issuer       string `yaml:"issuer"`
	TTLMinutes   int    `yaml:"ttlMinutes"`
	CookieSecure bool   `yaml:"cookieSecure"`
	Hasher       string `yaml:"passwordHasher"`
}

// TTL is the session (and cookie) lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

type NewsConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
}

type LLMConfig struct {
	APIKey   string `yaml:"apiKey"`
	BaseURL  string `yaml:"baseUrl"`
	Model    string `yaml:"model"`
	AppTitle string `yaml:"appTitle"`
	Referer  string `yaml:"referer"`
}

type TranslateCfg struct {
	GoogleKey string `yaml:"googleKey"`
}

// DatabaseCfg sizes the Postgres pool used when DatabaseURL is set.
type DatabaseCfg struct {
	MaxConns               int `yaml:"maxConns"`
	MinConns               int `yaml:"minConns"`
	MaxConnLifetimeMinutes int `yaml:"maxConnLifetimeMinutes"`
	MaxConnIdleMinutes     int `yaml:"maxConnIdleMinutes"`
	HealthCheckSeconds     int `yaml:"healthCheckSeconds"`
}

type PipelineCfg struct {
	PageSize       int `yaml:"pageSize"`
	Concurrency    int `yaml:"concurrency"`
	TimeoutSeconds int `yaml:"upstreamTimeoutSeconds"`
	// DeadlineSeconds bounds a whole /api/news request; what is assembled by
	// then is returned as a partial result.
	DeadlineSeconds int `yaml:"requestDeadlineSeconds"`
}

// UpstreamTimeout bounds a single collaborator call.
func (p PipelineCfg) UpstreamTimeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

func (p PipelineCfg) RequestDeadline() time.Duration {
	return time.Duration(p.DeadlineSeconds) * time.Second
}

// Load reads environment variables, optionally from a .env file if present,
// on top of an optional YAML file named by NEWSDASH_CONFIG.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func defaults() Config {
	return Config{
		Port:      "5000",
		LogLevel:  "info",
		LogFormat: "json",
		Origins:   []string{"http://localhost:3000"},
		Session: SessionConfig{
			Secret:     "dev-secret-change",
			Issuer:     "newsdash",
			TTLMinutes: 30 * 24 * 60,
			Hasher:     "bcrypt",
		},
		News: NewsConfig{BaseURL: "https://newsapi.org/v2"},
		OpenRouter: LLMConfig{
			BaseURL:  "https://openrouter.ai/api/v1",
			AppTitle: "News Dashboard",
		},
		Pipeline: PipelineCfg{PageSize: 20, Concurrency: 4, TimeoutSeconds: 10, DeadlineSeconds: 45},
		Database: DatabaseCfg{
			MaxConns:               10,
			MaxConnLifetimeMinutes: 60,
			MaxConnIdleMinutes:     30,
			HealthCheckSeconds:     30,
		},
	}
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.PublicBaseURL = strings.TrimRight(getEnv("PUBLIC_BASE_URL", c.PublicBaseURL), "/")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Origins = splitList(v)
	}
	if len(c.Origins) == 0 {
		c.Origins = defaults().Origins
	}

	c.Session.Secret = getEnv("SESSION_SECRET", c.Session.Secret)
	c.Session.Issuer = getEnv("SESSION_ISSUER", c.Session.Issuer)
	c.Session.TTLMinutes = getEnvInt("SESSION_TTL_MINUTES", c.Session.TTLMinutes)
	c.Session.CookieSecure = getEnvBool("COOKIE_SECURE", c.Session.CookieSecure)
	c.Session.Hasher = getEnv("PASSWORD_HASHER", c.Session.Hasher)

	c.News.APIKey = getEnv("NEWS_API_KEY", c.News.APIKey)
	c.News.BaseURL = getEnv("NEWS_API_BASE", c.News.BaseURL)

	c.OpenRouter.APIKey = getEnv("OPENROUTER_API_KEY", c.OpenRouter.APIKey)
	c.OpenRouter.BaseURL = getEnv("OPENROUTER_BASE_URL", c.OpenRouter.BaseURL)
	c.OpenRouter.Model = getEnv("OPENROUTER_MODEL", c.OpenRouter.Model)
	c.OpenRouter.AppTitle = getEnv("OPENROUTER_APP_TITLE", c.OpenRouter.AppTitle)
	c.OpenRouter.Referer = getEnv("OPENROUTER_REFERER", c.OpenRouter.Referer)

	c.Translate.GoogleKey = getEnv("GOOGLE_TRANSLATE_KEY", c.Translate.GoogleKey)

	c.Pipeline.PageSize = getEnvInt("NEWS_PAGE_SIZE", c.Pipeline.PageSize)
	c.Pipeline.Concurrency = getEnvInt("PIPELINE_CONCURRENCY", c.Pipeline.Concurrency)
	c.Pipeline.TimeoutSeconds = getEnvInt("UPSTREAM_TIMEOUT_SECONDS", c.Pipeline.TimeoutSeconds)
	c.Pipeline.DeadlineSeconds = getEnvInt("PIPELINE_DEADLINE_SECONDS", c.Pipeline.DeadlineSeconds)

	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.Database.MaxConns = getEnvInt("DB_MAX_CONNS", c.Database.MaxConns)
	c.Database.MinConns = getEnvInt("DB_MIN_CONNS", c.Database.MinConns)
	c.Database.MaxConnLifetimeMinutes = getEnvInt("DB_MAX_CONN_LIFETIME_MINUTES", c.Database.MaxConnLifetimeMinutes)
	c.Database.MaxConnIdleMinutes = getEnvInt("DB_MAX_CONN_IDLE_MINUTES", c.Database.MaxConnIdleMinutes)
	c.Database.HealthCheckSeconds = getEnvInt("DB_HEALTH_CHECK_SECONDS", c.Database.HealthCheckSeconds)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
