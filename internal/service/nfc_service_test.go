package service

import (
	"TapShare/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newNFCService(tr *mockTokenRepo, pr *mockProfileRepo, cr *mockConnectionRepo) *NFCService {
	return NewNFCService(tr, pr, cr, zap.NewNop().Sugar())
}

func TestNFCService_Generate(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)
	ctx := context.Background()

	pr.On("GetByUserAndType", mock.Anything, "u1", model.ProfileFamily).
		Return(&model.Profile{ID: "p1", UserID: "u1", Type: model.ProfileFamily}, nil)
	tr.On("DeactivateForType", mock.Anything, "u1", model.ProfileFamily).Return(nil)
	tr.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	tok, err := svc.Generate(ctx, "u1", model.ProfileFamily, nil)
	assert.NoError(t, err)
	assert.Len(t, tok.Token, tokenLength)
	assert.True(t, tok.IsActive)
	assert.Nil(t, tok.ExpiresAt)
	tr.AssertExpectations(t)
}

// Тест: выпуск без профиля нужного типа — ErrPrecondition
func TestNFCService_GenerateNoProfile(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)

	pr.On("GetByUserAndType", mock.Anything, "u1", model.ProfileWork).
		Return(nil, model.ErrNotFound)

	_, err := svc.Generate(context.Background(), "u1", model.ProfileWork, nil)
	assert.True(t, errors.Is(err, model.ErrPrecondition))
	tr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNFCService_GenerateInvalidType(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)

	_, err := svc.Generate(context.Background(), "u1", model.ProfileType("besties"), nil)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

// Тест: коллизия строки токена — перегенерация и успех со второй попытки
func TestNFCService_GenerateRetriesOnCollision(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)

	pr.On("GetByUserAndType", mock.Anything, "u1", model.ProfileFamily).
		Return(&model.Profile{ID: "p1", UserID: "u1", Type: model.ProfileFamily}, nil)
	tr.On("DeactivateForType", mock.Anything, "u1", model.ProfileFamily).Return(nil)
	tr.On("Create", mock.Anything, mock.Anything).Return(model.ErrConflict).Once()
	tr.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	tok, err := svc.Generate(context.Background(), "u1", model.ProfileFamily, nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	tr.AssertExpectations(t)
}

// Тест: строки токенов не повторяются
func TestGenerateTokenString_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		s, err := generateTokenString()
		assert.NoError(t, err)
		assert.Len(t, s, tokenLength)
		assert.False(t, seen[s], "token string repeated: %s", s)
		seen[s] = true
	}
}

func TestNFCService_ValidateUnknownAndEmpty(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)
	ctx := context.Background()

	_, err := svc.Validate(ctx, "")
	assert.True(t, errors.Is(err, model.ErrTokenInvalid))

	tr.On("GetByToken", mock.Anything, "nope").Return(nil, model.ErrNotFound)
	_, err = svc.Validate(ctx, "nope")
	assert.True(t, errors.Is(err, model.ErrTokenInvalid))
}

// Тест: is_active=false — всегда ErrTokenExpired, даже без expires_at
func TestNFCService_ValidateRevoked(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)

	tr.On("GetByToken", mock.Anything, "revoked").
		Return(&model.NFCToken{ID: "t1", UserID: "u1", Token: "revoked", IsActive: false}, nil)

	_, err := svc.Validate(context.Background(), "revoked")
	assert.True(t, errors.Is(err, model.ErrTokenExpired))
}

// Тест: истёкший, но is_active=true — ErrTokenExpired и ленивое гашение
func TestNFCService_ValidateExpiredLazyDeactivate(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)

	past := time.Now().UTC().Add(-time.Hour)
	tr.On("GetByToken", mock.Anything, "stale").
		Return(&model.NFCToken{ID: "t2", UserID: "u1", Token: "stale", IsActive: true, ExpiresAt: &past}, nil)
	tr.On("DeactivateByID", mock.Anything, "t2").Return(nil).Once()

	_, err := svc.Validate(context.Background(), "stale")
	assert.True(t, errors.Is(err, model.ErrTokenExpired))
	tr.AssertExpectations(t)
}

func TestNFCService_ValidateActive(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)

	future := time.Now().UTC().Add(time.Hour)
	tr.On("GetByToken", mock.Anything, "good").
		Return(&model.NFCToken{ID: "t3", UserID: "owner", Token: "good", ProfileType: model.ProfileFamily, IsActive: true, ExpiresAt: &future}, nil)

	tok, err := svc.Validate(context.Background(), "good")
	assert.NoError(t, err)
	assert.Equal(t, "owner", tok.UserID)
	assert.Equal(t, model.ProfileFamily, tok.ProfileType)
}

// Тест: подключение по собственному токену — ErrValidation
func TestNFCService_ConnectViaTokenSelf(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)

	tr.On("GetByToken", mock.Anything, "mine").
		Return(&model.NFCToken{ID: "t4", UserID: "u1", Token: "mine", ProfileType: model.ProfileFriends, IsActive: true}, nil)
	pr.On("GetByUserAndType", mock.Anything, "u1", model.ProfileFriends).
		Return(&model.Profile{ID: "p1", UserID: "u1", Type: model.ProfileFriends, Name: "Me"}, nil)
	pr.On("Extension", mock.Anything, mock.Anything).
		Return(&model.FriendsProfile{ProfileID: "p1"}, nil)

	_, _, err := svc.ConnectViaToken(context.Background(), "u1", "mine")
	assert.True(t, errors.Is(err, model.ErrValidation))
	cr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Тест: подключение по чужому токену — связь типа из профиля, токен одноразовый
func TestNFCService_ConnectViaToken(t *testing.T) {
	tr, pr, cr := new(mockTokenRepo), new(mockProfileRepo), new(mockConnectionRepo)
	svc := newNFCService(tr, pr, cr)

	tr.On("GetByToken", mock.Anything, "share").
		Return(&model.NFCToken{ID: "t5", UserID: "owner", Token: "share", ProfileType: model.ProfileWork, IsActive: true}, nil)
	pr.On("GetByUserAndType", mock.Anything, "owner", model.ProfileWork).
		Return(&model.Profile{ID: "p2", UserID: "owner", Type: model.ProfileWork, Name: "Owner W"}, nil)
	pr.On("Extension", mock.Anything, mock.Anything).
		Return(&model.WorkProfile{ProfileID: "p2", Telegram: strptr("@owner")}, nil)
	cr.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Connection) bool {
		return c.UserID == "guest" && c.ConnectedUserID == "owner" && c.ConnectionType == model.ConnectionWork
	})).Return(nil).Once()
	tr.On("DeactivateByID", mock.Anything, "t5").Return(nil).Once()

	conn, view, err := svc.ConnectViaToken(context.Background(), "guest", "share")
	assert.NoError(t, err)
	assert.Equal(t, model.ConnectionWork, conn.ConnectionType)
	assert.Equal(t, "Owner W", view.Profile.Name)
	tr.AssertExpectations(t)
	cr.AssertExpectations(t)
}
