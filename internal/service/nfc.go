package service

import (
	"TapShare/internal/model"
	"TapShare/internal/repo"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenLength   = 32

	// сколько раз перегенерируем строку при коллизии уникального индекса
	tokenCreateAttempts = 5
)

// NFCService — жизненный цикл токенов шаринга: выпуск, валидация, отзыв
// и подключение по токену. Валидация — единственный путь, по которому
// данные профиля видны другому принципалу.
type NFCService struct {
	tokens      repo.TokenRepository
	profiles    repo.ProfileRepository
	connections repo.ConnectionRepository
	logger      *zap.SugaredLogger
}

// NewNFCService создаёт сервис NFC-токенов.
func NewNFCService(t repo.TokenRepository, p repo.ProfileRepository, c repo.ConnectionRepository, logger *zap.SugaredLogger) *NFCService {
	return &NFCService{tokens: t, profiles: p, connections: c, logger: logger}
}

// generateTokenString — криптослучайная строка из tokenLength символов
// алфавита [A-Za-z0-9].
func generateTokenString() (string, error) {
	b := make([]byte, tokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating token: %w", err)
		}
		b[i] = tokenAlphabet[n.Int64()]
	}
	return string(b), nil
}

// Generate выпускает токен на тип профиля. Требует существующий профиль
// этого типа (иначе ErrPrecondition); прежние активные токены того же
// типа гаснут — действует ровно один. expiresAt=nil — бессрочный токен.
func (s *NFCService) Generate(ctx context.Context, userID string, t model.ProfileType, expiresAt *time.Time) (*model.NFCToken, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown profile type %q: %w", t, model.ErrValidation)
	}

	if _, err := s.profiles.GetByUserAndType(ctx, userID, t); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("no %q profile to share: %w", t, model.ErrPrecondition)
		}
		return nil, err
	}

	if err := s.tokens.DeactivateForType(ctx, userID, t); err != nil {
		return nil, err
	}

	// уникальность строки обеспечивает индекс; на коллизии перегенерируем
	for attempt := 0; attempt < tokenCreateAttempts; attempt++ {
		str, err := generateTokenString()
		if err != nil {
			return nil, err
		}
		tok := &model.NFCToken{
			ID:          uuid.NewString(),
			UserID:      userID,
			Token:       str,
			ProfileType: t,
			IsActive:    true,
			ExpiresAt:   expiresAt,
		}
		err = s.tokens.Create(ctx, tok)
		if err == nil {
			s.logger.Infow("nfc token issued", "user_id", userID, "profile_type", t, "token_id", tok.ID)
			return tok, nil
		}
		if !errors.Is(err, model.ErrConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("token collision after %d attempts: %w", tokenCreateAttempts, model.ErrConflict)
}

// Validate проверяет строку токена и возвращает сам токен (владелец и
// тип профиля — всё, что нужно для scoped-чтения). Неизвестная или
// пустая строка — ErrTokenInvalid; отозванный или истёкший —
// ErrTokenExpired. Истёкший гасится лениво прямо здесь.
func (s *NFCService) Validate(ctx context.Context, tokenString string) (*model.NFCToken, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("empty token string: %w", model.ErrTokenInvalid)
	}

	tok, err := s.tokens.GetByToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("unknown token: %w", model.ErrTokenInvalid)
		}
		return nil, err
	}

	if !tok.IsActive {
		return nil, fmt.Errorf("token revoked: %w", model.ErrTokenExpired)
	}
	if tok.Expired(time.Now().UTC()) {
		if err := s.tokens.DeactivateByID(ctx, tok.ID); err != nil {
			s.logger.Warnw("failed to deactivate expired token", "token_id", tok.ID, "error", err)
		}
		return nil, fmt.Errorf("token past expiry: %w", model.ErrTokenExpired)
	}
	return tok, nil
}

// SharedProfile валидирует токен и отдаёт представление ровно того типа
// профиля, на который токен выписан.
func (s *NFCService) SharedProfile(ctx context.Context, tokenString string) (*model.NFCToken, *ProfileView, error) {
	tok, err := s.Validate(ctx, tokenString)
	if err != nil {
		return nil, nil, err
	}

	p, err := s.profiles.GetByUserAndType(ctx, tok.UserID, tok.ProfileType)
	if err != nil {
		return nil, nil, err
	}
	ext, err := s.profiles.Extension(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	return tok, &ProfileView{Profile: *p, Extension: ext}, nil
}

// Revoke гасит токен по явному действию владельца.
func (s *NFCService) Revoke(ctx context.Context, userID, tokenID string) error {
	if err := s.tokens.Deactivate(ctx, userID, tokenID); err != nil {
		return err
	}
	s.logger.Infow("nfc token revoked", "user_id", userID, "token_id", tokenID)
	return nil
}

// ListActive — активные токены владельца.
func (s *NFCService) ListActive(ctx context.Context, userID string) ([]model.NFCToken, error) {
	return s.tokens.ListActiveByUser(ctx, userID)
}

// ConnectViaToken создаёт связь по чужому токену: callerID -> владелец
// токена, тип связи выводится из типа профиля. Токен одноразовый —
// после подключения гаснет. Возвращает связь и расшаренный профиль.
func (s *NFCService) ConnectViaToken(ctx context.Context, callerID, tokenString string) (*model.Connection, *ProfileView, error) {
	tok, view, err := s.SharedProfile(ctx, tokenString)
	if err != nil {
		return nil, nil, err
	}
	if tok.UserID == callerID {
		return nil, nil, fmt.Errorf("cannot connect with yourself: %w", model.ErrValidation)
	}

	c := &model.Connection{
		ID:              uuid.NewString(),
		UserID:          callerID,
		ConnectedUserID: tok.UserID,
		ConnectionType:  model.ConnectionTypeFor(tok.ProfileType),
	}
	if err := s.connections.Create(ctx, c); err != nil {
		return nil, nil, err
	}

	if err := s.tokens.DeactivateByID(ctx, tok.ID); err != nil {
		s.logger.Warnw("failed to deactivate used token", "token_id", tok.ID, "error", err)
	}
	s.logger.Infow("connection created via nfc token", "user_id", callerID, "connected_user_id", tok.UserID)
	return c, view, nil
}
