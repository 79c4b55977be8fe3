package handlers

import (
	"TapShare/internal/middleware"
	"TapShare/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// AccountHandler обрабатывает операции над аккаунтом целиком.
type AccountHandler struct {
	AccountService *service.AccountService
	Logger         *zap.SugaredLogger
}

// NewAccountHandler создаёт хендлер аккаунта
func NewAccountHandler(accountService *service.AccountService, logger *zap.SugaredLogger) *AccountHandler {
	return &AccountHandler{AccountService: accountService, Logger: logger}
}

// Delete удаляет все данные пользователя: профили с расширениями,
// связи в обе стороны и токены
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	if err := h.AccountService.DeleteAccount(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "account data deleted"})
}
