package model

import "time"

// ProfileType — тип аудитории, для которой пользователь показывает профиль.
type ProfileType string

const (
	ProfileFamily        ProfileType = "family"
	ProfileFriends       ProfileType = "friends"
	ProfileWork          ProfileType = "work"
	ProfileAcquaintances ProfileType = "acquaintances"
)

// Valid проверяет, что значение входит в перечисление.
func (t ProfileType) Valid() bool {
	switch t {
	case ProfileFamily, ProfileFriends, ProfileWork, ProfileAcquaintances:
		return true
	}
	return false
}

// Profile — базовая запись профиля. На пару (user_id, type) — не больше одной.
type Profile struct {
	ID     string      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string      `gorm:"not null;index;uniqueIndex:idx_profiles_user_type" json:"user_id"`
	Type   ProfileType `gorm:"not null;uniqueIndex:idx_profiles_user_type" json:"type"`

	Name  string  `gorm:"not null" json:"name"`
	Photo *string `json:"photo,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OwnerID — владелец строки для политики авторизации.
func (p *Profile) OwnerID() string { return p.UserID }

// Расширения профиля. Каждое живёт 1:1 с Profile своего типа и ключуется
// его идентификатором: создаются и удаляются одной транзакцией с базовой записью.

// FamilyProfile — контакты для семьи.
type FamilyProfile struct {
	ProfileID string   `gorm:"primaryKey;type:uuid" json:"profile_id"`
	Profile   *Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	PhoneNumber *string    `json:"phone_number,omitempty"`
	Email       *string    `json:"email,omitempty"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	WhatsApp    *string    `gorm:"column:whatsapp" json:"whatsapp,omitempty"`
}

// FriendsProfile — контакты для друзей.
type FriendsProfile struct {
	ProfileID string   `gorm:"primaryKey;type:uuid" json:"profile_id"`
	Profile   *Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	PhoneNumber *string `json:"phone_number,omitempty"`
	Email       *string `json:"email,omitempty"`
	Instagram   *string `json:"instagram,omitempty"`
	Snapchat    *string `json:"snapchat,omitempty"`
}

// WorkProfile — рабочие контакты.
type WorkProfile struct {
	ProfileID string   `gorm:"primaryKey;type:uuid" json:"profile_id"`
	Profile   *Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	WhatsApp *string `gorm:"column:whatsapp" json:"whatsapp,omitempty"`
	Telegram *string `json:"telegram,omitempty"`
	LinkedIn *string `gorm:"column:linkedin" json:"linkedin,omitempty"`
	Resume   *string `json:"resume,omitempty"`
	Website  *string `json:"website,omitempty"`
}

// AcquaintancesProfile — минимальный набор для знакомых.
type AcquaintancesProfile struct {
	ProfileID string   `gorm:"primaryKey;type:uuid" json:"profile_id"`
	Profile   *Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Email *string `json:"email,omitempty"`
}
