package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/newsdash/api/http/presenter"
	"github.com/artem13815/newsdash/pkg/share"
)

type ShareHandler struct {
	useCase share.UseCase
	baseURL string
	log     *zap.Logger
}

// NewShareHandler builds the handler. An empty baseURL makes share links use
// the base URL of the incoming request.
func NewShareHandler(useCase share.UseCase, baseURL string, log *zap.Logger) *ShareHandler {
	return &ShareHandler{useCase: useCase, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

type shareRequest struct {
	Article json.RawMessage `json:"article"`
}

type shareResponse struct {
	ShareID  string `json:"shareId"`
	ShareURL string `json:"shareUrl"`
}

// Create stores an article snapshot and returns its share link.
// @Summary Share article
// @Tags    share
// @Accept  json
// @Produce json
// @Param   input body shareRequest true "article snapshot"
// @Success 200 {object} shareResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /api/share [post]
func (h *ShareHandler) Create(c *fiber.Ctx) error {
	var req shareRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	created, err := h.useCase.Create(c.UserContext(), req.Article)
	if err != nil {
		if errors.Is(err, share.ErrValidation) {
			return presenter.Error(c, http.StatusBadRequest, "No article data provided")
		}
		h.log.Error("create share failed", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "failed to share article")
	}

	base := h.baseURL
	if base == "" {
		base = strings.TrimRight(c.BaseURL(), "/")
	}
	return presenter.JSON(c, http.StatusOK, shareResponse{
		ShareID:  created.ShareID,
		ShareURL: base + "/shared/" + created.ShareID,
	})
}

// Get returns a shared snapshot and counts the view.
// @Summary Read shared article
// @Tags    share
// @Produce json
// @Param   shareId path string true "share id"
// @Success 200 {object} share.SharedArticle
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /api/shared/{shareId} [get]
func (h *ShareHandler) Get(c *fiber.Ctx) error {
	got, err := h.useCase.Get(c.UserContext(), c.Params("shareId"))
	if err != nil {
		if errors.Is(err, share.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Article not found")
		}
		h.log.Error("read share failed", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "failed to load shared article")
	}
	return presenter.JSON(c, http.StatusOK, got)
}
