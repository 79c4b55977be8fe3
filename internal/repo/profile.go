package repo

import (
	"TapShare/internal/authz"
	"TapShare/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ProfileRepository — доступ к базовой записи профиля и её расширению.
// Владельческие операции принимают callerID и проверяют его политикой
// authz прямо на границе хранилища, а не в вызывающем коде.
type ProfileRepository interface {
	// Create вставляет базовую запись и расширение одной транзакцией.
	// Нарушение unique(user_id, type) — model.ErrConflict.
	Create(ctx context.Context, p *model.Profile, ext any) error

	// GetOwned возвращает профиль, если им владеет callerID.
	GetOwned(ctx context.Context, callerID, profileID string) (*model.Profile, error)

	// GetByUserAndType — внутренняя выборка без проверки владельца:
	// используется precondition-проверкой выпуска токена и scoped-чтением
	// после валидации токена.
	GetByUserAndType(ctx context.Context, userID string, t model.ProfileType) (*model.Profile, error)

	// Extension подгружает расширение, соответствующее типу профиля.
	Extension(ctx context.Context, p *model.Profile) (any, error)

	// ListByUser возвращает все профили пользователя.
	ListByUser(ctx context.Context, userID string) ([]model.Profile, error)

	// Update применяет изменения базовой записи и расширения одной
	// транзакцией, updated_at выставляется явно внутри неё.
	Update(ctx context.Context, callerID, profileID string, base, ext map[string]any) (*model.Profile, error)

	// Delete каскадно удаляет профиль: расширение, базовая запись и
	// деактивация токенов этого типа. Отсутствующий профиль — no-op.
	Delete(ctx context.Context, callerID, profileID string) error
}

type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepository создаёт реализацию репозитория профилей.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, p *model.Profile, ext any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return translateCreateErr(err)
		}
		if err := tx.Create(ext).Error; err != nil {
			return translateCreateErr(err)
		}
		return nil
	})
}

func (r *profileRepo) GetOwned(ctx context.Context, callerID, profileID string) (*model.Profile, error) {
	p, err := r.getByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(callerID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepo) getByID(ctx context.Context, profileID string) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile %s: %w", profileID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) GetByUserAndType(ctx context.Context, userID string, t model.ProfileType) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).First(&p, "user_id = ? AND type = ?", userID, t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile of type %q: %w", t, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching profile by type: %w", err)
	}
	return &p, nil
}

// extensionFor возвращает пустую структуру расширения под тип профиля.
func extensionFor(t model.ProfileType) any {
	switch t {
	case model.ProfileFamily:
		return &model.FamilyProfile{}
	case model.ProfileFriends:
		return &model.FriendsProfile{}
	case model.ProfileWork:
		return &model.WorkProfile{}
	default:
		return &model.AcquaintancesProfile{}
	}
}

func (r *profileRepo) Extension(ctx context.Context, p *model.Profile) (any, error) {
	ext := extensionFor(p.Type)
	err := r.db.WithContext(ctx).First(ext, "profile_id = ?", p.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// расширение живёт строго вместе с базовой записью
		return nil, fmt.Errorf("extension for profile %s: %w", p.ID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching extension: %w", err)
	}
	return ext, nil
}

func (r *profileRepo) ListByUser(ctx context.Context, userID string) ([]model.Profile, error) {
	var out []model.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return out, nil
}

func (r *profileRepo) Update(ctx context.Context, callerID, profileID string, base, ext map[string]any) (*model.Profile, error) {
	var updated *model.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Profile
		err := tx.First(&p, "id = ?", profileID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("profile %s: %w", profileID, model.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}
		if err := authz.Authorize(callerID, &p); err != nil {
			return err
		}

		// updated_at ставим явным шагом транзакции, а не скрытым триггером
		if base == nil {
			base = map[string]any{}
		}
		base["updated_at"] = time.Now().UTC()
		if err := tx.Model(&model.Profile{}).Where("id = ?", profileID).Updates(base).Error; err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}

		if len(ext) > 0 {
			extModel := extensionFor(p.Type)
			if err := tx.Model(extModel).Where("profile_id = ?", profileID).Updates(ext).Error; err != nil {
				return fmt.Errorf("updating extension: %w", err)
			}
		}

		if err := tx.First(&p, "id = ?", profileID).Error; err != nil {
			return fmt.Errorf("reloading profile: %w", err)
		}
		updated = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *profileRepo) Delete(ctx context.Context, callerID, profileID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Profile
		err := tx.First(&p, "id = ?", profileID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// идемпотентность: уже удалено — успех
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}
		if err := authz.Authorize(callerID, &p); err != nil {
			return err
		}

		if err := tx.Where("profile_id = ?", profileID).Delete(extensionFor(p.Type)).Error; err != nil {
			return fmt.Errorf("deleting extension: %w", err)
		}
		if err := tx.Delete(&model.Profile{}, "id = ?", profileID).Error; err != nil {
			return fmt.Errorf("deleting profile: %w", err)
		}
		// токены, выданные на этот тип профиля, гаснут вместе с ним
		err = tx.Model(&model.NFCToken{}).
			Where("user_id = ? AND profile_type = ?", p.UserID, p.Type).
			Update("is_active", false).Error
		if err != nil {
			return fmt.Errorf("revoking tokens: %w", err)
		}
		return nil
	})
}
