package model

import "time"

// NFCToken — предъявительский токен, дающий ограниченный по времени доступ
// на чтение одного типа профиля. Строка token — секрет, глобально уникальна.
// Жизненный цикл: Active -> Expired | Revoked, обратно не возвращается.
type NFCToken struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`

	Token       string      `gorm:"not null;uniqueIndex" json:"token"`
	ProfileType ProfileType `gorm:"not null" json:"profile_type"`

	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil — бессрочный

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OwnerID — владелец строки для политики авторизации.
func (t *NFCToken) OwnerID() string { return t.UserID }

// Expired сообщает, истёк ли токен к моменту now. Проверка ленивыми
// средствами на валидации, фонового процесса нет.
func (t *NFCToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
