package repo

import (
	"TapShare/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// AccountRepository — каскадная чистка всех данных пользователя.
type AccountRepository interface {
	// PurgeUser удаляет одной транзакцией: профили с расширениями,
	// связи (в обе стороны) и NFC-токены. Идемпотентна.
	PurgeUser(ctx context.Context, userID string) error
}

type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepository создаёт реализацию каскадной чистки.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) PurgeUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profiles []model.Profile
		if err := tx.Where("user_id = ?", userID).Find(&profiles).Error; err != nil {
			return fmt.Errorf("listing profiles: %w", err)
		}
		for _, p := range profiles {
			if err := tx.Where("profile_id = ?", p.ID).Delete(extensionFor(p.Type)).Error; err != nil {
				return fmt.Errorf("deleting extension: %w", err)
			}
		}
		if err := tx.Delete(&model.Profile{}, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("deleting profiles: %w", err)
		}
		// рёбра удаляем в обе стороны: и исходящие, и входящие
		if err := tx.Delete(&model.Connection{}, "user_id = ? OR connected_user_id = ?", userID, userID).Error; err != nil {
			return fmt.Errorf("deleting connections: %w", err)
		}
		if err := tx.Delete(&model.NFCToken{}, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("deleting tokens: %w", err)
		}
		return nil
	})
}
