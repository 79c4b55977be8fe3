package repo

import (
	"TapShare/internal/authz"
	"TapShare/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// TokenRepository — хранение NFC-токенов. Уникальность строки токена
// гарантирует индекс БД; на коллизии вызывающий получает ErrConflict
// и перегенерирует строку.
type TokenRepository interface {
	// Create вставляет токен. Коллизия строки — model.ErrConflict.
	Create(ctx context.Context, tok *model.NFCToken) error

	// GetByToken ищет по строке токена. Отсутствие — ErrNotFound;
	// интерпретация как ErrTokenInvalid — дело сервиса.
	GetByToken(ctx context.Context, token string) (*model.NFCToken, error)

	// GetOwned возвращает токен, если им владеет callerID.
	GetOwned(ctx context.Context, callerID, tokenID string) (*model.NFCToken, error)

	// Deactivate гасит токен по явному действию владельца.
	Deactivate(ctx context.Context, callerID, tokenID string) error

	// DeactivateByID гасит токен системно: ленивое истечение на валидации
	// и одноразовость при подключении. Проверка владельца не нужна.
	DeactivateByID(ctx context.Context, tokenID string) error

	// DeactivateForType гасит все активные токены владельца на тип профиля
	// (перевыпуск и каскад удаления профиля).
	DeactivateForType(ctx context.Context, userID string, t model.ProfileType) error

	// ListActiveByUser — активные токены владельца.
	ListActiveByUser(ctx context.Context, userID string) ([]model.NFCToken, error)
}

type tokenRepo struct {
	db *gorm.DB
}

// NewTokenRepository создаёт реализацию репозитория токенов.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) Create(ctx context.Context, tok *model.NFCToken) error {
	if err := r.db.WithContext(ctx).Create(tok).Error; err != nil {
		return translateCreateErr(err)
	}
	return nil
}

func (r *tokenRepo) GetByToken(ctx context.Context, token string) (*model.NFCToken, error) {
	var t model.NFCToken
	err := r.db.WithContext(ctx).First(&t, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("token lookup: %w", model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching token: %w", err)
	}
	return &t, nil
}

func (r *tokenRepo) GetOwned(ctx context.Context, callerID, tokenID string) (*model.NFCToken, error) {
	var t model.NFCToken
	err := r.db.WithContext(ctx).First(&t, "id = ?", tokenID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("token %s: %w", tokenID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching token: %w", err)
	}
	if err := authz.Authorize(callerID, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepo) Deactivate(ctx context.Context, callerID, tokenID string) error {
	t, err := r.GetOwned(ctx, callerID, tokenID)
	if err != nil {
		return err
	}
	return r.DeactivateByID(ctx, t.ID)
}

func (r *tokenRepo) DeactivateByID(ctx context.Context, tokenID string) error {
	err := r.db.WithContext(ctx).Model(&model.NFCToken{}).
		Where("id = ?", tokenID).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("deactivating token: %w", err)
	}
	return nil
}

func (r *tokenRepo) DeactivateForType(ctx context.Context, userID string, t model.ProfileType) error {
	err := r.db.WithContext(ctx).Model(&model.NFCToken{}).
		Where("user_id = ? AND profile_type = ? AND is_active = ?", userID, t, true).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("deactivating tokens for type %q: %w", t, err)
	}
	return nil
}

func (r *tokenRepo) ListActiveByUser(ctx context.Context, userID string) ([]model.NFCToken, error) {
	var out []model.NFCToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing tokens: %w", err)
	}
	return out, nil
}
