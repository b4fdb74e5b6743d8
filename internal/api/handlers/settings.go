package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/helpbeacon/helpbeacon/internal/api"
	"github.com/helpbeacon/helpbeacon/internal/service"
)

type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type SettingsResponse struct {
	ActionURL  string `json:"action_url"`
	ShowNotice bool   `json:"show_notice"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actionURL, err := h.settings.ActionURL(r.Context())
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	showNotice, err := h.settings.ShowNotice(r.Context())
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	api.Success(w, http.StatusOK, SettingsResponse{
		ActionURL:  actionURL,
		ShowNotice: showNotice,
	})
}

type UpdateSettingsRequest struct {
	ActionURL string `json:"action_url"`
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.UpdateActionURL(r.Context(), req.ActionURL); err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, SettingsResponse{ActionURL: req.ActionURL})
}

func (h *SettingsHandler) DismissNotice(w http.ResponseWriter, r *http.Request) {
	if err := h.settings.DismissNotice(r.Context()); err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to dismiss notice")
		return
	}

	api.Success(w, http.StatusOK, map[string]string{"status": "dismissed"})
}
