package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mtz196822-maker/digistore-araby/internal/notify"
	"github.com/mtz196822-maker/digistore-araby/internal/settings"
)

// Settings is the preference surface exposed over HTTP.
type Settings interface {
	Theme() settings.Theme
	Toggle(ctx context.Context) settings.Theme
	Set(ctx context.Context, theme settings.Theme)
}

// Notifications exposes the retained message window.
type Notifications interface {
	Recent() []notify.Notification
}

type SettingsHandler struct {
	settings      Settings
	notifications Notifications
}

func NewSettingsHandler(s Settings, n Notifications) *SettingsHandler {
	return &SettingsHandler{
		settings:      s,
		notifications: n,
	}
}

type ThemeDTO struct {
	Theme settings.Theme `json:"theme"`
}

func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ThemeDTO{Theme: h.settings.Theme()})
}

func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Theme != settings.ThemeLight && req.Theme != settings.ThemeDark {
		respondError(w, http.StatusBadRequest, "invalid_theme", "theme must be light or dark")
		return
	}

	h.settings.Set(r.Context(), req.Theme)
	respondJSON(w, http.StatusOK, ThemeDTO{Theme: h.settings.Theme()})
}

func (h *SettingsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := h.settings.Toggle(r.Context())
	respondJSON(w, http.StatusOK, ThemeDTO{Theme: theme})
}

func (h *SettingsHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	recent := h.notifications.Recent()
	if recent == nil {
		recent = []notify.Notification{}
	}
	respondJSON(w, http.StatusOK, recent)
}
