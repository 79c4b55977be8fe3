package handlers

import (
	"TapShare/internal/middleware"
	"TapShare/internal/model"
	"TapShare/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileHandler обрабатывает CRUD профилей.
type ProfileHandler struct {
	ProfileService *service.ProfileService
	Logger         *zap.SugaredLogger
}

// NewProfileHandler создаёт хендлер профилей
func NewProfileHandler(profileService *service.ProfileService, logger *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{ProfileService: profileService, Logger: logger}
}

// decodeProfileInput подбирает типизированный ввод под тип из пути.
func decodeProfileInput(t model.ProfileType, r *http.Request) (service.ProfileInput, error) {
	switch t {
	case model.ProfileFamily:
		var in service.FamilyProfileInput
		return in, json.NewDecoder(r.Body).Decode(&in)
	case model.ProfileFriends:
		var in service.FriendsProfileInput
		return in, json.NewDecoder(r.Body).Decode(&in)
	case model.ProfileWork:
		var in service.WorkProfileInput
		return in, json.NewDecoder(r.Body).Decode(&in)
	default:
		var in service.AcquaintancesProfileInput
		return in, json.NewDecoder(r.Body).Decode(&in)
	}
}

func decodeProfileUpdate(t model.ProfileType, r *http.Request) (service.ProfileUpdate, error) {
	switch t {
	case model.ProfileFamily:
		var in service.FamilyProfileUpdate
		return in, json.NewDecoder(r.Body).Decode(&in)
	case model.ProfileFriends:
		var in service.FriendsProfileUpdate
		return in, json.NewDecoder(r.Body).Decode(&in)
	case model.ProfileWork:
		var in service.WorkProfileUpdate
		return in, json.NewDecoder(r.Body).Decode(&in)
	default:
		var in service.AcquaintancesProfileUpdate
		return in, json.NewDecoder(r.Body).Decode(&in)
	}
}

// Create создаёт профиль типа из пути вместе с расширением
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	t := model.ProfileType(chi.URLParam(r, "type"))
	if !t.Valid() {
		writeBadRequest(w, "unknown profile type")
		return
	}

	in, err := decodeProfileInput(t, r)
	if err != nil {
		h.Logger.Warnw("Create profile: invalid request body", "error", err)
		writeBadRequest(w, "invalid request body")
		return
	}

	view, err := h.ProfileService.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// List отдаёт профили пользователя; ?include_connections=false отключает
// профили связанных пользователей
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	includeConnections := r.URL.Query().Get("include_connections") != "false"

	views, err := h.ProfileService.List(r.Context(), userID, includeConnections)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// Get отдаёт профиль владельцу
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	view, err := h.ProfileService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Update применяет частичное обновление профиля
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	t := model.ProfileType(chi.URLParam(r, "type"))
	if !t.Valid() {
		writeBadRequest(w, "unknown profile type")
		return
	}

	in, err := decodeProfileUpdate(t, r)
	if err != nil {
		h.Logger.Warnw("Update profile: invalid request body", "error", err)
		writeBadRequest(w, "invalid request body")
		return
	}

	view, err := h.ProfileService.Update(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Delete каскадно удаляет профиль; повторный вызов — тоже успех
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	if err := h.ProfileService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "profile deleted"})
}
