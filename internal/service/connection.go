package service

import (
	"TapShare/internal/model"
	"TapShare/internal/repo"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConnectionService — операции над направленным графом связей.
type ConnectionService struct {
	connections repo.ConnectionRepository
	logger      *zap.SugaredLogger
}

// NewConnectionService создаёт сервис связей.
func NewConnectionService(c repo.ConnectionRepository, logger *zap.SugaredLogger) *ConnectionService {
	return &ConnectionService{connections: c, logger: logger}
}

// Create добавляет ребро userID -> connectedUserID. Связь с самим собой
// отклоняется, дубликат упорядоченной пары — ErrConflict.
func (s *ConnectionService) Create(ctx context.Context, userID, connectedUserID string, t model.ConnectionType) (*model.Connection, error) {
	if connectedUserID == "" {
		return nil, fmt.Errorf("connected user id is required: %w", model.ErrValidation)
	}
	if userID == connectedUserID {
		return nil, fmt.Errorf("self-connection is not allowed: %w", model.ErrValidation)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("unknown connection type %q: %w", t, model.ErrValidation)
	}

	c := &model.Connection{
		ID:              uuid.NewString(),
		UserID:          userID,
		ConnectedUserID: connectedUserID,
		ConnectionType:  t,
	}
	if err := s.connections.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Infow("connection created", "user_id", userID, "connected_user_id", connectedUserID, "type", t)
	return c, nil
}

// Delete удаляет ребро владельца.
func (s *ConnectionService) Delete(ctx context.Context, userID, connectionID string) error {
	return s.connections.Delete(ctx, userID, connectionID)
}

// List — исходящие рёбра пользователя по возрастанию created_at.
func (s *ConnectionService) List(ctx context.Context, userID string) ([]model.Connection, error) {
	return s.connections.ListByUser(ctx, userID)
}
