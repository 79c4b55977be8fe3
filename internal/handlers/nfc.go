package handlers

import (
	"TapShare/internal/config"
	"TapShare/internal/middleware"
	"TapShare/internal/model"
	"TapShare/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NFCHandler обрабатывает жизненный цикл токенов шаринга.
type NFCHandler struct {
	NFCService *service.NFCService
	Logger     *zap.SugaredLogger
	Config     *config.Config
}

// NewNFCHandler создаёт хендлер NFC-токенов
func NewNFCHandler(nfcService *service.NFCService, logger *zap.SugaredLogger, cfg *config.Config) *NFCHandler {
	return &NFCHandler{NFCService: nfcService, Logger: logger, Config: cfg}
}

type generateTokenRequest struct {
	ProfileType model.ProfileType `json:"profile_type"`
	// ExpiresAt задаёт срок явно; NeverExpires выпускает бессрочный токен.
	// Без того и другого действует TTL из конфигурации.
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	NeverExpires bool       `json:"never_expires,omitempty"`
}

// Generate выпускает NFC-токен на тип профиля
func (h *NFCHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req generateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Generate token: invalid request body", "error", err)
		writeBadRequest(w, "invalid request body")
		return
	}

	expiresAt := req.ExpiresAt
	if expiresAt == nil && !req.NeverExpires {
		t := time.Now().UTC().Add(time.Duration(h.Config.NFCTokenTTLMin) * time.Minute)
		expiresAt = &t
	}

	tok, err := h.NFCService.Generate(r.Context(), userID, req.ProfileType, expiresAt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tok)
}

// Validate проверяет токен и отдаёт ровно тот тип профиля, на который
// токен выписан. Аутентификации не требует — токен и есть кредентиал.
func (h *NFCHandler) Validate(w http.ResponseWriter, r *http.Request) {
	tok, view, err := h.NFCService.SharedProfile(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      tok.UserID,
		"profile_type": tok.ProfileType,
		"profile":      view,
	})
}

// Connect создаёт связь с владельцем токена; токен одноразовый
func (h *NFCHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	conn, view, err := h.NFCService.ConnectViaToken(r.Context(), userID, chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "connection created",
		"connection": conn,
		"profile":    view,
	})
}

// ListActive отдаёт активные токены владельца
func (h *NFCHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	toks, err := h.NFCService.ListActive(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toks)
}

// Revoke гасит токен по явному действию владельца
func (h *NFCHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	if err := h.NFCService.Revoke(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "token revoked"})
}
