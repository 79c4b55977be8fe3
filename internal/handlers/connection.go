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

// ConnectionHandler обрабатывает рёбра графа связей.
type ConnectionHandler struct {
	ConnectionService *service.ConnectionService
	Logger            *zap.SugaredLogger
}

// NewConnectionHandler создаёт хендлер связей
func NewConnectionHandler(connectionService *service.ConnectionService, logger *zap.SugaredLogger) *ConnectionHandler {
	return &ConnectionHandler{ConnectionService: connectionService, Logger: logger}
}

type createConnectionRequest struct {
	ConnectedUserID string               `json:"connected_user_id"`
	ConnectionType  model.ConnectionType `json:"connection_type"`
}

// Create добавляет направленное ребро от текущего пользователя
func (h *ConnectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req createConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create connection: invalid request body", "error", err)
		writeBadRequest(w, "invalid request body")
		return
	}

	c, err := h.ConnectionService.Create(r.Context(), userID, req.ConnectedUserID, req.ConnectionType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// List отдаёт исходящие рёбра пользователя
func (h *ConnectionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	conns, err := h.ConnectionService.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conns)
}

// Delete удаляет ребро владельца
func (h *ConnectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	if err := h.ConnectionService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "connection deleted"})
}
