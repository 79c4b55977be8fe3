package service

import (
	"TapShare/internal/model"
	"TapShare/internal/repo"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService инкапсулирует бизнес-логику профилей: создание пары
// базовая запись + расширение, обновления, каскадное удаление и выборки.
type ProfileService struct {
	profiles    repo.ProfileRepository
	connections repo.ConnectionRepository
	logger      *zap.SugaredLogger
}

// NewProfileService создаёт сервис профилей.
func NewProfileService(p repo.ProfileRepository, c repo.ConnectionRepository, logger *zap.SugaredLogger) *ProfileService {
	return &ProfileService{profiles: p, connections: c, logger: logger}
}

// ProfileInput — типизированный ввод одного из четырёх видов профиля.
// Конкретный тип сам знает, какое расширение и какого типа создавать.
type ProfileInput interface {
	ProfileType() model.ProfileType
	base() (name string, photo *string)
	extension(profileID string) any
}

// ProfileUpdate — типизированное обновление. Все поля опциональны,
// не-nil попадают в карту изменений соответствующей таблицы.
type ProfileUpdate interface {
	ProfileType() model.ProfileType
	baseUpdates() map[string]any
	extUpdates() map[string]any
}

// FamilyProfileInput — создание семейного профиля.
type FamilyProfileInput struct {
	Name        string     `json:"name" validate:"required"`
	Photo       *string    `json:"photo,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Email       *string    `json:"email,omitempty" validate:"omitempty,email"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	WhatsApp    *string    `json:"whatsapp,omitempty"`
}

func (FamilyProfileInput) ProfileType() model.ProfileType  { return model.ProfileFamily }
func (in FamilyProfileInput) base() (string, *string)      { return in.Name, in.Photo }
func (in FamilyProfileInput) extension(profileID string) any {
	return &model.FamilyProfile{
		ProfileID:   profileID,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		DateOfBirth: in.DateOfBirth,
		WhatsApp:    in.WhatsApp,
	}
}

// FriendsProfileInput — создание профиля для друзей.
type FriendsProfileInput struct {
	Name        string  `json:"name" validate:"required"`
	Photo       *string `json:"photo,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Instagram   *string `json:"instagram,omitempty"`
	Snapchat    *string `json:"snapchat,omitempty"`
}

func (FriendsProfileInput) ProfileType() model.ProfileType { return model.ProfileFriends }
func (in FriendsProfileInput) base() (string, *string)     { return in.Name, in.Photo }
func (in FriendsProfileInput) extension(profileID string) any {
	return &model.FriendsProfile{
		ProfileID:   profileID,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Instagram:   in.Instagram,
		Snapchat:    in.Snapchat,
	}
}

// WorkProfileInput — создание рабочего профиля.
type WorkProfileInput struct {
	Name     string  `json:"name" validate:"required"`
	Photo    *string `json:"photo,omitempty"`
	WhatsApp *string `json:"whatsapp,omitempty"`
	Telegram *string `json:"telegram,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Resume   *string `json:"resume,omitempty"`
	Website  *string `json:"website,omitempty" validate:"omitempty,url"`
}

func (WorkProfileInput) ProfileType() model.ProfileType { return model.ProfileWork }
func (in WorkProfileInput) base() (string, *string)     { return in.Name, in.Photo }
func (in WorkProfileInput) extension(profileID string) any {
	return &model.WorkProfile{
		ProfileID: profileID,
		WhatsApp:  in.WhatsApp,
		Telegram:  in.Telegram,
		LinkedIn:  in.LinkedIn,
		Resume:    in.Resume,
		Website:   in.Website,
	}
}

// AcquaintancesProfileInput — создание профиля для знакомых.
type AcquaintancesProfileInput struct {
	Name  string  `json:"name" validate:"required"`
	Photo *string `json:"photo,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

func (AcquaintancesProfileInput) ProfileType() model.ProfileType { return model.ProfileAcquaintances }
func (in AcquaintancesProfileInput) base() (string, *string)     { return in.Name, in.Photo }
func (in AcquaintancesProfileInput) extension(profileID string) any {
	return &model.AcquaintancesProfile{ProfileID: profileID, Email: in.Email}
}

// putIf кладёт значение в карту изменений, только если указатель не nil.
func putIf[T any](m map[string]any, key string, v *T) {
	if v != nil {
		m[key] = *v
	}
}

// FamilyProfileUpdate — частичное обновление семейного профиля.
type FamilyProfileUpdate struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Photo       *string    `json:"photo,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Email       *string    `json:"email,omitempty" validate:"omitempty,email"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	WhatsApp    *string    `json:"whatsapp,omitempty"`
}

func (FamilyProfileUpdate) ProfileType() model.ProfileType { return model.ProfileFamily }
func (u FamilyProfileUpdate) baseUpdates() map[string]any {
	m := map[string]any{}
	putIf(m, "name", u.Name)
	putIf(m, "photo", u.Photo)
	return m
}
func (u FamilyProfileUpdate) extUpdates() map[string]any {
	m := map[string]any{}
	putIf(m, "phone_number", u.PhoneNumber)
	putIf(m, "email", u.Email)
	putIf(m, "date_of_birth", u.DateOfBirth)
	putIf(m, "whatsapp", u.WhatsApp)
	return m
}

// FriendsProfileUpdate — частичное обновление профиля для друзей.
type FriendsProfileUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Photo       *string `json:"photo,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Instagram   *string `json:"instagram,omitempty"`
	Snapchat    *string `json:"snapchat,omitempty"`
}

func (FriendsProfileUpdate) ProfileType() model.ProfileType { return model.ProfileFriends }
func (u FriendsProfileUpdate) baseUpdates() map[string]any {
	m := map[string]any{}
	putIf(m, "name", u.Name)
	putIf(m, "photo", u.Photo)
	return m
}
func (u FriendsProfileUpdate) extUpdates() map[string]any {
	m := map[string]any{}
	putIf(m, "phone_number", u.PhoneNumber)
	putIf(m, "email", u.Email)
	putIf(m, "instagram", u.Instagram)
	putIf(m, "snapchat", u.Snapchat)
	return m
}

// WorkProfileUpdate — частичное обновление рабочего профиля.
type WorkProfileUpdate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Photo    *string `json:"photo,omitempty"`
	WhatsApp *string `json:"whatsapp,omitempty"`
	Telegram *string `json:"telegram,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Resume   *string `json:"resume,omitempty"`
	Website  *string `json:"website,omitempty" validate:"omitempty,url"`
}

func (WorkProfileUpdate) ProfileType() model.ProfileType { return model.ProfileWork }
func (u WorkProfileUpdate) baseUpdates() map[string]any {
	m := map[string]any{}
	putIf(m, "name", u.Name)
	putIf(m, "photo", u.Photo)
	return m
}
func (u WorkProfileUpdate) extUpdates() map[string]any {
	m := map[string]any{}
	putIf(m, "whatsapp", u.WhatsApp)
	putIf(m, "telegram", u.Telegram)
	putIf(m, "linkedin", u.LinkedIn)
	putIf(m, "resume", u.Resume)
	putIf(m, "website", u.Website)
	return m
}

// AcquaintancesProfileUpdate — частичное обновление профиля для знакомых.
type AcquaintancesProfileUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Photo *string `json:"photo,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

func (AcquaintancesProfileUpdate) ProfileType() model.ProfileType { return model.ProfileAcquaintances }
func (u AcquaintancesProfileUpdate) baseUpdates() map[string]any {
	m := map[string]any{}
	putIf(m, "name", u.Name)
	putIf(m, "photo", u.Photo)
	return m
}
func (u AcquaintancesProfileUpdate) extUpdates() map[string]any {
	m := map[string]any{}
	putIf(m, "email", u.Email)
	return m
}

// ProfileView — профиль вместе с расширением. Сериализуется плоским
// объектом (поля расширения рядом с базовыми), как отдаёт API.
type ProfileView struct {
	Profile   model.Profile
	Extension any

	// поля списка с учётом связей
	IsOwn          *bool                 `json:"-"`
	ConnectionID   *string               `json:"-"`
	ConnectionType *model.ConnectionType `json:"-"`
}

// MarshalJSON сливает базовую запись и расширение в один объект.
func (v ProfileView) MarshalJSON() ([]byte, error) {
	out := map[string]any{}

	baseJSON, err := json.Marshal(v.Profile)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(baseJSON, &out); err != nil {
		return nil, err
	}

	if v.Extension != nil {
		extJSON, err := json.Marshal(v.Extension)
		if err != nil {
			return nil, err
		}
		ext := map[string]any{}
		if err := json.Unmarshal(extJSON, &ext); err != nil {
			return nil, err
		}
		delete(ext, "profile_id") // дублирует id базовой записи
		for k, val := range ext {
			out[k] = val
		}
	}

	if v.IsOwn != nil {
		out["is_own"] = *v.IsOwn
	}
	if v.ConnectionID != nil {
		out["connection_id"] = *v.ConnectionID
	}
	if v.ConnectionType != nil {
		out["connection_type"] = *v.ConnectionType
	}
	return json.Marshal(out)
}

// Create создаёт базовую запись и расширение одной транзакцией.
func (s *ProfileService) Create(ctx context.Context, userID string, in ProfileInput) (*ProfileView, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	name, photo := in.base()
	p := &model.Profile{
		ID:     uuid.NewString(),
		UserID: userID,
		Type:   in.ProfileType(),
		Name:   name,
		Photo:  photo,
	}
	ext := in.extension(p.ID)

	if err := s.profiles.Create(ctx, p, ext); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, fmt.Errorf("profile of type %q already exists: %w", p.Type, model.ErrConflict)
		}
		return nil, err
	}
	s.logger.Infow("profile created", "user_id", userID, "profile_id", p.ID, "type", p.Type)
	return &ProfileView{Profile: *p, Extension: ext}, nil
}

// Update применяет частичное обновление. Несовпадение типа профиля с
// типом запроса — ошибка валидации.
func (s *ProfileService) Update(ctx context.Context, userID, profileID string, in ProfileUpdate) (*ProfileView, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetOwned(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	if p.Type != in.ProfileType() {
		return nil, fmt.Errorf("profile %s is %q, not %q: %w", profileID, p.Type, in.ProfileType(), model.ErrValidation)
	}

	updated, err := s.profiles.Update(ctx, userID, profileID, in.baseUpdates(), in.extUpdates())
	if err != nil {
		return nil, err
	}
	ext, err := s.profiles.Extension(ctx, updated)
	if err != nil {
		return nil, err
	}
	return &ProfileView{Profile: *updated, Extension: ext}, nil
}

// Delete каскадно удаляет профиль; отсутствие — no-op успех.
func (s *ProfileService) Delete(ctx context.Context, userID, profileID string) error {
	if err := s.profiles.Delete(ctx, userID, profileID); err != nil {
		return err
	}
	s.logger.Infow("profile deleted", "user_id", userID, "profile_id", profileID)
	return nil
}

// Get возвращает профиль с расширением владельцу.
func (s *ProfileService) Get(ctx context.Context, callerID, profileID string) (*ProfileView, error) {
	p, err := s.profiles.GetOwned(ctx, callerID, profileID)
	if err != nil {
		return nil, err
	}
	ext, err := s.profiles.Extension(ctx, p)
	if err != nil {
		return nil, err
	}
	return &ProfileView{Profile: *p, Extension: ext}, nil
}

// GetShared — чтение, ограниченное типом профиля из валидированного
// токена. Единственный путь, отдающий данные не-владельцу: возвращает
// ровно один тип, полного представления владельца здесь нет.
func (s *ProfileService) GetShared(ctx context.Context, ownerID string, t model.ProfileType) (*ProfileView, error) {
	p, err := s.profiles.GetByUserAndType(ctx, ownerID, t)
	if err != nil {
		return nil, err
	}
	ext, err := s.profiles.Extension(ctx, p)
	if err != nil {
		return nil, err
	}
	return &ProfileView{Profile: *p, Extension: ext}, nil
}

// List возвращает профили пользователя; при includeConnections к ним
// добавляются профили связанных пользователей с пометкой связи.
func (s *ProfileService) List(ctx context.Context, userID string, includeConnections bool) ([]ProfileView, error) {
	own, err := s.profiles.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ProfileView, 0, len(own))
	yes := true
	for i := range own {
		ext, err := s.profiles.Extension(ctx, &own[i])
		if err != nil {
			return nil, err
		}
		views = append(views, ProfileView{Profile: own[i], Extension: ext, IsOwn: &yes})
	}

	if !includeConnections {
		return views, nil
	}

	conns, err := s.connections.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	no := false
	for i := range conns {
		conn := conns[i]
		theirs, err := s.profiles.ListByUser(ctx, conn.ConnectedUserID)
		if err != nil {
			return nil, err
		}
		for j := range theirs {
			ext, err := s.profiles.Extension(ctx, &theirs[j])
			if err != nil {
				return nil, err
			}
			views = append(views, ProfileView{
				Profile:        theirs[j],
				Extension:      ext,
				IsOwn:          &no,
				ConnectionID:   &conn.ID,
				ConnectionType: &conn.ConnectionType,
			})
		}
	}
	return views, nil
}
