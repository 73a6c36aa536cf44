package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/newsdash/api/http/presenter"
	"github.com/artem13815/newsdash/pkg/preferences"
	"github.com/artem13815/newsdash/pkg/security/jwt"
)

type PreferencesHandler struct {
	useCase preferences.UseCase
	log     *zap.Logger
}

func NewPreferencesHandler(useCase preferences.UseCase, log *zap.Logger) *PreferencesHandler {
	return &PreferencesHandler{useCase: useCase, log: log}
}

type preferencesResponse struct {
	Message     string          `json:"message,omitempty"`
	Preferences json.RawMessage `json:"preferences"`
}

// Save stores the caller's dashboard preferences.
// @Summary Save preferences
// @Tags    preferences
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body object true "preferences object"
// @Success 200 {object} preferencesResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /api/preferences [post]
func (h *PreferencesHandler) Save(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Not authenticated")
	}
	saved, err := h.useCase.Save(c.UserContext(), identity.ID, json.RawMessage(c.Body()))
	if err != nil {
		if errors.Is(err, preferences.ErrValidation) {
			return presenter.Error(c, http.StatusBadRequest, "preferences must be a JSON object")
		}
		h.log.Error("save preferences failed", zap.String("user", identity.ID), zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "failed to save preferences")
	}
	return presenter.JSON(c, http.StatusOK, preferencesResponse{Message: "Preferences saved successfully", Preferences: saved})
}

// Get returns the caller's preferences, {} when none were saved.
// @Summary Get preferences
// @Tags    preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} preferencesResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /api/preferences [get]
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Not authenticated")
	}
	prefs, err := h.useCase.Get(c.UserContext(), identity.ID)
	if err != nil {
		h.log.Error("load preferences failed", zap.String("user", identity.ID), zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "failed to load preferences")
	}
	return presenter.JSON(c, http.StatusOK, preferencesResponse{Preferences: prefs})
}
