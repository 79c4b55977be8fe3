package service

import (
	"TapShare/internal/model"
	"TapShare/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// Моки репозиториев для сервисных тестов

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) Create(ctx context.Context, p *model.Profile, ext any) error {
	args := m.Called(ctx, p, ext)
	return args.Error(0)
}
func (m *mockProfileRepo) GetOwned(ctx context.Context, callerID, profileID string) (*model.Profile, error) {
	args := m.Called(ctx, callerID, profileID)
	if v, ok := args.Get(0).(*model.Profile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProfileRepo) GetByUserAndType(ctx context.Context, userID string, t model.ProfileType) (*model.Profile, error) {
	args := m.Called(ctx, userID, t)
	if v, ok := args.Get(0).(*model.Profile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProfileRepo) Extension(ctx context.Context, p *model.Profile) (any, error) {
	args := m.Called(ctx, p)
	return args.Get(0), args.Error(1)
}
func (m *mockProfileRepo) ListByUser(ctx context.Context, userID string) ([]model.Profile, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Profile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProfileRepo) Update(ctx context.Context, callerID, profileID string, base, ext map[string]any) (*model.Profile, error) {
	args := m.Called(ctx, callerID, profileID, base, ext)
	if v, ok := args.Get(0).(*model.Profile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProfileRepo) Delete(ctx context.Context, callerID, profileID string) error {
	args := m.Called(ctx, callerID, profileID)
	return args.Error(0)
}

var _ repo.ProfileRepository = (*mockProfileRepo)(nil)

type mockConnectionRepo struct{ mock.Mock }

func (m *mockConnectionRepo) Create(ctx context.Context, c *model.Connection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *mockConnectionRepo) GetOwned(ctx context.Context, callerID, connectionID string) (*model.Connection, error) {
	args := m.Called(ctx, callerID, connectionID)
	if v, ok := args.Get(0).(*model.Connection); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockConnectionRepo) Delete(ctx context.Context, callerID, connectionID string) error {
	args := m.Called(ctx, callerID, connectionID)
	return args.Error(0)
}
func (m *mockConnectionRepo) ListByUser(ctx context.Context, userID string) ([]model.Connection, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Connection); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ConnectionRepository = (*mockConnectionRepo)(nil)

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Create(ctx context.Context, tok *model.NFCToken) error {
	args := m.Called(ctx, tok)
	return args.Error(0)
}
func (m *mockTokenRepo) GetByToken(ctx context.Context, token string) (*model.NFCToken, error) {
	args := m.Called(ctx, token)
	if v, ok := args.Get(0).(*model.NFCToken); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTokenRepo) GetOwned(ctx context.Context, callerID, tokenID string) (*model.NFCToken, error) {
	args := m.Called(ctx, callerID, tokenID)
	if v, ok := args.Get(0).(*model.NFCToken); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTokenRepo) Deactivate(ctx context.Context, callerID, tokenID string) error {
	args := m.Called(ctx, callerID, tokenID)
	return args.Error(0)
}
func (m *mockTokenRepo) DeactivateByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
func (m *mockTokenRepo) DeactivateForType(ctx context.Context, userID string, t model.ProfileType) error {
	args := m.Called(ctx, userID, t)
	return args.Error(0)
}
func (m *mockTokenRepo) ListActiveByUser(ctx context.Context, userID string) ([]model.NFCToken, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.NFCToken); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.TokenRepository = (*mockTokenRepo)(nil)

type mockAccountRepo struct{ mock.Mock }

func (m *mockAccountRepo) PurgeUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ repo.AccountRepository = (*mockAccountRepo)(nil)

func strptr(s string) *string { return &s }
