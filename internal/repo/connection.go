package repo

import (
	"TapShare/internal/authz"
	"TapShare/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ConnectionRepository — доступ к направленным рёбрам графа связей.
type ConnectionRepository interface {
	// Create вставляет ребро. Повторная упорядоченная пара
	// (user_id, connected_user_id) — model.ErrConflict независимо от типа.
	Create(ctx context.Context, c *model.Connection) error

	// GetOwned возвращает ребро, если им владеет callerID.
	GetOwned(ctx context.Context, callerID, connectionID string) (*model.Connection, error)

	// Delete удаляет ребро владельца. Отсутствие — ErrNotFound,
	// чужое ребро — ErrForbidden.
	Delete(ctx context.Context, callerID, connectionID string) error

	// ListByUser — рёбра, где userID является источником,
	// по возрастанию created_at.
	ListByUser(ctx context.Context, userID string) ([]model.Connection, error)
}

type connectionRepo struct {
	db *gorm.DB
}

// NewConnectionRepository создаёт реализацию репозитория связей.
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepo{db: db}
}

func (r *connectionRepo) Create(ctx context.Context, c *model.Connection) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return translateCreateErr(err)
	}
	return nil
}

func (r *connectionRepo) GetOwned(ctx context.Context, callerID, connectionID string) (*model.Connection, error) {
	var c model.Connection
	err := r.db.WithContext(ctx).First(&c, "id = ?", connectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("connection %s: %w", connectionID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching connection: %w", err)
	}
	if err := authz.Authorize(callerID, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *connectionRepo) Delete(ctx context.Context, callerID, connectionID string) error {
	c, err := r.GetOwned(ctx, callerID, connectionID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&model.Connection{}, "id = ?", c.ID).Error; err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}
	return nil
}

func (r *connectionRepo) ListByUser(ctx context.Context, userID string) ([]model.Connection, error) {
	var out []model.Connection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	return out, nil
}
