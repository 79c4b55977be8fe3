package main

import (
	"TapShare/internal/config"
	"TapShare/internal/handlers"
	"TapShare/internal/middleware"
	"TapShare/internal/repo"
	"TapShare/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	profileRepo := repo.NewProfileRepository(gormDB)
	connectionRepo := repo.NewConnectionRepository(gormDB)
	tokenRepo := repo.NewTokenRepository(gormDB)
	accountRepo := repo.NewAccountRepository(gormDB)

	profileService := service.NewProfileService(profileRepo, connectionRepo, sugar)
	connectionService := service.NewConnectionService(connectionRepo, sugar)
	nfcService := service.NewNFCService(tokenRepo, profileRepo, connectionRepo, sugar)
	accountService := service.NewAccountService(accountRepo, sugar)

	h := handlers.NewHandler(profileService, connectionService, nfcService, accountService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"NFCTokenTTLMin", cfg.NFCTokenTTLMin,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
