package handlers_test

import (
	"TapShare/internal/config"
	"TapShare/internal/handlers"
	"TapShare/internal/middleware"
	"TapShare/internal/repo"
	"TapShare/internal/service"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"

// newTestRouter поднимает полный стек (роутер, сервисы, репозитории) над
// in-memory SQLite. Отдельный DSN, чтобы не пересекаться с тестами repo
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:handlersdb?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{AuthSecret: testSecret, NFCTokenTTLMin: 60}
	logger := zap.NewNop().Sugar()

	profileRepo := repo.NewProfileRepository(db)
	connectionRepo := repo.NewConnectionRepository(db)
	tokenRepo := repo.NewTokenRepository(db)
	accountRepo := repo.NewAccountRepository(db)

	profileSvc := service.NewProfileService(profileRepo, connectionRepo, logger)
	connectionSvc := service.NewConnectionService(connectionRepo, logger)
	nfcSvc := service.NewNFCService(tokenRepo, profileRepo, connectionRepo, logger)
	accountSvc := service.NewAccountService(accountRepo, logger)

	h := handlers.NewHandler(profileSvc, connectionSvc, nfcSvc, accountSvc, logger, cfg)
	return h.Router
}

func addAuth(t *testing.T, req *http.Request, userID string) {
	t.Helper()
	token, err := middleware.NewAccessToken(testSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue access token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
