package service

import (
	"TapShare/internal/repo"
	"context"

	"go.uber.org/zap"
)

// AccountService — каскадное удаление всех данных пользователя.
// Самой учётной записью владеет внешний identity provider, здесь
// выносятся только наши таблицы.
type AccountService struct {
	accounts repo.AccountRepository
	logger   *zap.SugaredLogger
}

// NewAccountService создаёт сервис аккаунта.
func NewAccountService(a repo.AccountRepository, logger *zap.SugaredLogger) *AccountService {
	return &AccountService{accounts: a, logger: logger}
}

// DeleteAccount удаляет профили, связи и токены пользователя одной
// транзакцией. Идемпотентна.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.accounts.PurgeUser(ctx, userID); err != nil {
		return err
	}
	s.logger.Infow("account data purged", "user_id", userID)
	return nil
}
