package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/newsdash/pkg/auth"
	"github.com/artem13815/newsdash/pkg/config"
	"github.com/artem13815/newsdash/pkg/health"
	"github.com/artem13815/newsdash/pkg/health/checkers"
	"github.com/artem13815/newsdash/pkg/llm/openrouter"
	"github.com/artem13815/newsdash/pkg/migrate"
	"github.com/artem13815/newsdash/pkg/news"
	"github.com/artem13815/newsdash/pkg/news/newsapi"
	"github.com/artem13815/newsdash/pkg/preferences"
	"github.com/artem13815/newsdash/pkg/repository/memory"
	pgrepo "github.com/artem13815/newsdash/pkg/repository/postgres"
	redisrepo "github.com/artem13815/newsdash/pkg/repository/redis"
	"github.com/artem13815/newsdash/pkg/share"
	"github.com/artem13815/newsdash/pkg/storage/postgres"
	"github.com/artem13815/newsdash/pkg/storage/redis"
	"github.com/artem13815/newsdash/pkg/summarize"
	"github.com/artem13815/newsdash/pkg/translate"
)

type stores struct {
	users    auth.UserRepository
	sessions auth.SessionRepository
	shares   share.Repository
	prefs    preferences.Repository
	checkers []health.Checker
	closers  []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// openStores picks Postgres and Redis when configured and falls back to
// process memory otherwise.
func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*stores, error) {
	s := &stores{
		users:    memory.NewUserRepository(),
		sessions: memory.NewSessionRepository(),
		shares:   memory.NewShareRepository(),
		prefs:    memory.NewPreferencesRepository(),
	}

	if cfg.DatabaseURL != "" {
		if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
			return nil, err
		}
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, poolOptions(cfg.Database))
		if err != nil {
			return nil, err
		}
		db := pgrepo.NewDB(pool)
		s.closers = append(s.closers, db.Close)
		s.users = pgrepo.NewUserRepository(db)
		s.shares = pgrepo.NewShareRepository(db)
		s.prefs = pgrepo.NewPreferencesRepository(db)
		s.checkers = append(s.checkers, checkers.NewPostgresChecker(pool))
		log.Info("using postgres storage")
	} else {
		log.Warn("DATABASE_URL is not set, users and shares live in memory")
	}

	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Close() })
		s.sessions = redisrepo.NewSessionRepository(client)
		s.checkers = append(s.checkers, checkers.NewRedisChecker(client))
		log.Info("using redis session storage")
	}
	return s, nil
}

func poolOptions(c config.DatabaseCfg) postgres.PoolOptions {
	return postgres.PoolOptions{
		MaxConns:          int32(c.MaxConns),
		MinConns:          int32(c.MinConns),
		MaxConnLifetime:   time.Duration(c.MaxConnLifetimeMinutes) * time.Minute,
		MaxConnIdleTime:   time.Duration(c.MaxConnIdleMinutes) * time.Minute,
		HealthCheckPeriod: time.Duration(c.HealthCheckSeconds) * time.Second,
	}
}

// newPipeline picks collaborators from the configured keys: the LLM
// summarizer when OpenRouter is configured, else the extractive one; Google
// translation, else LLM translation, else none.
func newPipeline(cfg config.Config, log *zap.Logger) *news.Pipeline {
	policy := news.DefaultPolicy(cfg.Pipeline.UpstreamTimeout())

	if cfg.News.APIKey == "" {
		log.Warn("NEWS_API_KEY is not set, /api/news will report an upstream error")
	}
	source := news.NewResilientSource(newsapi.New(cfg.News.APIKey, cfg.News.BaseURL, 0), policy)

	var (
		summarizer news.Summarizer = summarize.NewExtractive()
		translator news.Translator
	)
	if cfg.OpenRouter.APIKey != "" {
		client := openrouter.New(
			cfg.OpenRouter.APIKey,
			cfg.OpenRouter.BaseURL,
			cfg.OpenRouter.Model,
			cfg.OpenRouter.AppTitle,
			cfg.OpenRouter.Referer,
			0,
		)
		summarizer = news.NewResilientSummarizer(summarize.NewLLM(client), policy)
		translator = news.NewResilientTranslator(translate.NewLLM(client), policy)
	}
	if cfg.Translate.GoogleKey != "" {
		translator = news.NewResilientTranslator(translate.NewGoogle(cfg.Translate.GoogleKey, "", 0), policy)
	}
	if translator == nil {
		log.Warn("no translation backend configured, articles are returned untranslated")
	}

	return news.NewPipeline(source, summarizer, translator, news.Options{
		Concurrency: cfg.Pipeline.Concurrency,
		Logger:      log,
	})
}
