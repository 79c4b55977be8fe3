package handlers

import (
	"TapShare/internal/model"
	"encoding/json"
	"errors"
	"net/http"
)

// errorResponse — единый конверт ошибки API.
type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// writeJSON сериализует ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError переводит доменную ошибку в HTTP-статус и конверт.
func writeError(w http.ResponseWriter, err error) {
	var (
		status = http.StatusInternalServerError
		code   = "INTERNAL_ERROR"
	)
	switch {
	case errors.Is(err, model.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, model.ErrConflict):
		status, code = http.StatusConflict, "DUPLICATE_ENTRY"
	case errors.Is(err, model.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, model.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, model.ErrPrecondition):
		status, code = http.StatusPreconditionFailed, "PRECONDITION_FAILED"
	case errors.Is(err, model.ErrTokenInvalid):
		status, code = http.StatusUnauthorized, "INVALID_TOKEN"
	case errors.Is(err, model.ErrTokenExpired):
		status, code = http.StatusUnauthorized, "EXPIRED_TOKEN"
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		// внутренности не выносим наружу
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{ErrorCode: code, Message: msg})
}

// writeUnauthorized — запрос без проверенной идентичности.
func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{ErrorCode: "UNAUTHORIZED", Message: "authentication required"})
}

// writeBadRequest — нечитаемое тело запроса и прочие ошибки разбора.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{ErrorCode: "VALIDATION_ERROR", Message: msg})
}
