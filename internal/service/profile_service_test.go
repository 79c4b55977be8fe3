package service

import (
	"TapShare/internal/model"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newProfileService(pr *mockProfileRepo, cr *mockConnectionRepo) *ProfileService {
	return NewProfileService(pr, cr, zap.NewNop().Sugar())
}

func TestProfileService_CreateFamily(t *testing.T) {
	pr, cr := new(mockProfileRepo), new(mockConnectionRepo)
	svc := newProfileService(pr, cr)

	pr.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
		return p.UserID == "u1" && p.Type == model.ProfileFamily && p.Name == "Alice" && p.ID != ""
	}), mock.Anything).Return(nil).Once()

	view, err := svc.Create(context.Background(), "u1", FamilyProfileInput{
		Name:        "Alice",
		PhoneNumber: strptr("555-0100"),
		Email:       strptr("alice@example.com"),
	})
	assert.NoError(t, err)
	fam, ok := view.Extension.(*model.FamilyProfile)
	assert.True(t, ok)
	assert.Equal(t, view.Profile.ID, fam.ProfileID)
	pr.AssertExpectations(t)
}

// Тест: кривой email и кривой телефон — ErrValidation, до репозитория не доходит
func TestProfileService_CreateValidation(t *testing.T) {
	pr, cr := new(mockProfileRepo), new(mockConnectionRepo)
	svc := newProfileService(pr, cr)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", FamilyProfileInput{Name: "A", Email: strptr("not-an-email")})
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = svc.Create(ctx, "u1", FriendsProfileInput{Name: "A", PhoneNumber: strptr("call me maybe")})
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = svc.Create(ctx, "u1", WorkProfileInput{Name: "A", Website: strptr("not a url")})
	assert.True(t, errors.Is(err, model.ErrValidation))

	// пустое имя
	_, err = svc.Create(ctx, "u1", AcquaintancesProfileInput{})
	assert.True(t, errors.Is(err, model.ErrValidation))

	pr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_CreateConflict(t *testing.T) {
	pr, cr := new(mockProfileRepo), new(mockConnectionRepo)
	svc := newProfileService(pr, cr)

	pr.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrConflict)

	_, err := svc.Create(context.Background(), "u1", FamilyProfileInput{Name: "Alice"})
	assert.True(t, errors.Is(err, model.ErrConflict))
}

// Тест: обновление чужим типом запроса — ErrValidation
func TestProfileService_UpdateTypeMismatch(t *testing.T) {
	pr, cr := new(mockProfileRepo), new(mockConnectionRepo)
	svc := newProfileService(pr, cr)

	pr.On("GetOwned", mock.Anything, "u1", "p1").
		Return(&model.Profile{ID: "p1", UserID: "u1", Type: model.ProfileWork}, nil)

	_, err := svc.Update(context.Background(), "u1", "p1", FamilyProfileUpdate{Name: strptr("X")})
	assert.True(t, errors.Is(err, model.ErrValidation))
	pr.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_Update(t *testing.T) {
	pr, cr := new(mockProfileRepo), new(mockConnectionRepo)
	svc := newProfileService(pr, cr)

	p := &model.Profile{ID: "p1", UserID: "u1", Type: model.ProfileWork, Name: "Old"}
	pr.On("GetOwned", mock.Anything, "u1", "p1").Return(p, nil)
	pr.On("Update", mock.Anything, "u1", "p1",
		map[string]any{"name": "New"},
		map[string]any{"telegram": "@new"},
	).Return(&model.Profile{ID: "p1", UserID: "u1", Type: model.ProfileWork, Name: "New"}, nil).Once()
	pr.On("Extension", mock.Anything, mock.Anything).
		Return(&model.WorkProfile{ProfileID: "p1", Telegram: strptr("@new")}, nil)

	view, err := svc.Update(context.Background(), "u1", "p1", WorkProfileUpdate{
		Name:     strptr("New"),
		Telegram: strptr("@new"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "New", view.Profile.Name)
	pr.AssertExpectations(t)
}

// Тест: плоская сериализация — поля расширения рядом с базовыми
func TestProfileView_MarshalFlat(t *testing.T) {
	view := ProfileView{
		Profile:   model.Profile{ID: "p1", UserID: "u1", Type: model.ProfileFamily, Name: "Alice"},
		Extension: &model.FamilyProfile{ProfileID: "p1", PhoneNumber: strptr("555-0100")},
	}

	raw, err := json.Marshal(view)
	assert.NoError(t, err)

	var m map[string]any
	assert.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "p1", m["id"])
	assert.Equal(t, "Alice", m["name"])
	assert.Equal(t, "555-0100", m["phone_number"])
	_, hasProfileID := m["profile_id"]
	assert.False(t, hasProfileID)
}

func TestProfileService_ListWithConnections(t *testing.T) {
	pr, cr := new(mockProfileRepo), new(mockConnectionRepo)
	svc := newProfileService(pr, cr)

	own := model.Profile{ID: "p1", UserID: "u1", Type: model.ProfileFamily, Name: "Mine"}
	theirs := model.Profile{ID: "p2", UserID: "u2", Type: model.ProfileFriends, Name: "Theirs"}

	pr.On("ListByUser", mock.Anything, "u1").Return([]model.Profile{own}, nil)
	pr.On("ListByUser", mock.Anything, "u2").Return([]model.Profile{theirs}, nil)
	pr.On("Extension", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool { return p.ID == "p1" })).
		Return(&model.FamilyProfile{ProfileID: "p1"}, nil)
	pr.On("Extension", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool { return p.ID == "p2" })).
		Return(&model.FriendsProfile{ProfileID: "p2"}, nil)
	cr.On("ListByUser", mock.Anything, "u1").
		Return([]model.Connection{{ID: "c1", UserID: "u1", ConnectedUserID: "u2", ConnectionType: model.ConnectionFriend}}, nil)

	views, err := svc.List(context.Background(), "u1", true)
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.True(t, *views[0].IsOwn)
	assert.False(t, *views[1].IsOwn)
	assert.Equal(t, "c1", *views[1].ConnectionID)
	assert.Equal(t, model.ConnectionFriend, *views[1].ConnectionType)
}
