package model

import "time"

// ConnectionType — категория связи между пользователями.
// Отдельное перечисление от ProfileType (единственное число!).
type ConnectionType string

const (
	ConnectionFamily       ConnectionType = "family"
	ConnectionFriend       ConnectionType = "friend"
	ConnectionWork         ConnectionType = "work"
	ConnectionAcquaintance ConnectionType = "acquaintance"
)

// Valid проверяет, что значение входит в перечисление.
func (t ConnectionType) Valid() bool {
	switch t {
	case ConnectionFamily, ConnectionFriend, ConnectionWork, ConnectionAcquaintance:
		return true
	}
	return false
}

// ConnectionTypeFor — соответствие типа профиля типу связи при
// подключении по NFC-токену.
func ConnectionTypeFor(pt ProfileType) ConnectionType {
	switch pt {
	case ProfileFamily:
		return ConnectionFamily
	case ProfileWork:
		return ConnectionWork
	case ProfileAcquaintances:
		return ConnectionAcquaintance
	default:
		return ConnectionFriend
	}
}

// Connection — направленное ребро графа: user_id -> connected_user_id.
// Обратная связь — отдельная запись, автоматически не создаётся.
type Connection struct {
	ID              string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID          string         `gorm:"not null;index;uniqueIndex:idx_connections_pair" json:"user_id"`
	ConnectedUserID string         `gorm:"not null;uniqueIndex:idx_connections_pair" json:"connected_user_id"`
	ConnectionType  ConnectionType `gorm:"not null" json:"connection_type"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OwnerID — владелец строки для политики авторизации.
func (c *Connection) OwnerID() string { return c.UserID }
