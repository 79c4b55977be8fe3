package handlers

import (
	"TapShare/internal/config"
	"TapShare/internal/middleware"
	"TapShare/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	profileService *service.ProfileService,
	connectionService *service.ConnectionService,
	nfcService *service.NFCService,
	accountService *service.AccountService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	profileHandler := NewProfileHandler(profileService, logger)
	connectionHandler := NewConnectionHandler(connectionService, logger)
	nfcHandler := NewNFCHandler(nfcService, logger, config)
	accountHandler := NewAccountHandler(accountService, logger)

	// Profile routes
	r.Post("/api/profiles/{type}", profileHandler.Create)
	r.Get("/api/profiles", profileHandler.List)
	r.Get("/api/profiles/{id}", profileHandler.Get)
	r.Put("/api/profiles/{type}/{id}", profileHandler.Update)
	r.Delete("/api/profiles/{id}", profileHandler.Delete)

	// Connection routes
	r.Get("/api/connections", connectionHandler.List)
	r.Post("/api/connections", connectionHandler.Create)
	r.Delete("/api/connections/{id}", connectionHandler.Delete)

	// NFC token routes; validate — публичный, сам токен и есть кредентиал
	r.Post("/api/nfc/generate", nfcHandler.Generate)
	r.Get("/api/nfc/validate/{token}", nfcHandler.Validate)
	r.Post("/api/nfc/connect/{token}", nfcHandler.Connect)
	r.Get("/api/nfc/tokens", nfcHandler.ListActive)
	r.Delete("/api/nfc/tokens/{id}", nfcHandler.Revoke)

	// Account routes
	r.Delete("/api/user/account", accountHandler.Delete)

	return &Handler{Router: r}
}
