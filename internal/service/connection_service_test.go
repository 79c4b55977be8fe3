package service

import (
	"TapShare/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newConnectionService(cr *mockConnectionRepo) *ConnectionService {
	return NewConnectionService(cr, zap.NewNop().Sugar())
}

func TestConnectionService_Create(t *testing.T) {
	cr := new(mockConnectionRepo)
	svc := newConnectionService(cr)

	cr.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Connection) bool {
		return c.UserID == "u1" && c.ConnectedUserID == "u2" && c.ConnectionType == model.ConnectionFriend && c.ID != ""
	})).Return(nil).Once()

	c, err := svc.Create(context.Background(), "u1", "u2", model.ConnectionFriend)
	assert.NoError(t, err)
	assert.Equal(t, "u2", c.ConnectedUserID)
	cr.AssertExpectations(t)
}

// Тест: связь с самим собой, пустой получатель и неизвестный тип — ErrValidation
func TestConnectionService_CreateValidation(t *testing.T) {
	cr := new(mockConnectionRepo)
	svc := newConnectionService(cr)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "u1", model.ConnectionFriend)
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = svc.Create(ctx, "u1", "", model.ConnectionFriend)
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = svc.Create(ctx, "u1", "u2", model.ConnectionType("bff"))
	assert.True(t, errors.Is(err, model.ErrValidation))

	cr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConnectionService_CreateConflictPassthrough(t *testing.T) {
	cr := new(mockConnectionRepo)
	svc := newConnectionService(cr)

	cr.On("Create", mock.Anything, mock.Anything).Return(model.ErrConflict)

	_, err := svc.Create(context.Background(), "u1", "u2", model.ConnectionWork)
	assert.True(t, errors.Is(err, model.ErrConflict))
}

func TestAccountService_DeleteAccount(t *testing.T) {
	ar := new(mockAccountRepo)
	svc := NewAccountService(ar, zap.NewNop().Sugar())

	ar.On("PurgeUser", mock.Anything, "u1").Return(nil).Once()
	assert.NoError(t, svc.DeleteAccount(context.Background(), "u1"))
	ar.AssertExpectations(t)
}
