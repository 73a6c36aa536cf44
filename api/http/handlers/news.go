package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/newsdash/api/http/presenter"
	"github.com/artem13815/newsdash/pkg/news"
)

const (
	defaultCategory = "general"
	defaultLanguage = "en"
)

// Enricher is the pipeline as seen by the HTTP layer.
type Enricher interface {
	Enrich(ctx context.Context, req news.Request) news.Result
}

type NewsHandler struct {
	pipeline Enricher
	pageSize int
	deadline time.Duration
	now      func() time.Time
}

func NewNewsHandler(pipeline Enricher, pageSize int, deadline time.Duration) *NewsHandler {
	return &NewsHandler{pipeline: pipeline, pageSize: pageSize, deadline: deadline, now: time.Now}
}

type newsResponse struct {
	Articles     []news.Article `json:"articles"`
	Category     string         `json:"category"`
	Timestamp    string         `json:"timestamp"`
	TotalResults int            `json:"totalResults"`
	Partial      bool           `json:"partial,omitempty"`
}

type newsErrorResponse struct {
	Articles []news.Article `json:"articles"`
	Error    string         `json:"error"`
}

// List fetches, summarizes and optionally translates headlines.
// @Summary Get news articles
// @Tags    news
// @Produce json
// @Param   category     query string false "NewsAPI category" default(general)
// @Param   language     query string false "source language"  default(en)
// @Param   userLanguage query string false "display language" default(en)
// @Param   pageSize     query int    false "articles per page (1-100)"
// @Success 200 {object} newsResponse
// @Router  /api/news [get]
func (h *NewsHandler) List(c *fiber.Ctx) error {
	category := queryOr(c, "category", defaultCategory)
	req := news.Request{
		Category:       category,
		SourceLanguage: queryOr(c, "language", defaultLanguage),
		TargetLanguage: queryOr(c, "userLanguage", defaultLanguage),
		PageSize:       parsePageSize(c, h.pageSize),
	}

	ctx := c.UserContext()
	if h.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.deadline)
		defer cancel()
	}

	res := h.pipeline.Enrich(ctx, req)
	if res.ErrorMessage != "" {
		return presenter.JSON(c, http.StatusOK, newsErrorResponse{Articles: []news.Article{}, Error: res.ErrorMessage})
	}
	return presenter.JSON(c, http.StatusOK, newsResponse{
		Articles:     res.Articles,
		Category:     category,
		Timestamp:    h.now().Format(time.RFC3339),
		TotalResults: res.TotalResults,
		Partial:      res.Partial,
	})
}

func queryOr(c *fiber.Ctx, key, def string) string {
	if v := strings.ToLower(strings.TrimSpace(c.Query(key))); v != "" {
		return v
	}
	return def
}
