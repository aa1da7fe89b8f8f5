package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akshayam/wellness-store.git/internal/settings"
)

type SettingsHandler struct {
	Repo  *settings.Repo
	Cache *settings.Cached
}

func (h *SettingsHandler) Register(r chi.Router) {
	r.Get("/settings/{key}", h.getSetting)
}

func (h *SettingsHandler) RegisterAdmin(r chi.Router) {
	r.Get("/settings", h.listSettings)
	r.Put("/settings/{key}", h.updateSetting)
}

func (h *SettingsHandler) getSetting(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Get(r.Context(), chi.URLParam(r, "key"))
	if errors.Is(err, settings.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "Setting not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) listSettings(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type updateSettingReq struct {
	ValueCents  int64   `json:"value_cents"`
	Description *string `json:"description"`
}

func (h *SettingsHandler) updateSetting(w http.ResponseWriter, r *http.Request) {
	var req updateSettingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := h.Repo.Update(r.Context(), chi.URLParam(r, "key"), req.ValueCents, req.Description)
	if errors.Is(err, settings.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "Setting not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	// the engine reads through the cache; drop the stale value now
	h.Cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, s)
}
