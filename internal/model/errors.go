package model

import "errors"

// Таксономия ошибок доменного слоя. Хендлеры превращают их в HTTP-коды,
// всё остальное пробрасывает через fmt.Errorf("...: %w", err).
var (
	// ErrValidation — некорректный ввод (формат контактов, self-connection и т.п.)
	ErrValidation = errors.New("validation failed")
	// ErrConflict — нарушение уникальности (profile per type, пара connection, строка токена)
	ErrConflict = errors.New("already exists")
	// ErrNotFound — запись отсутствует
	ErrNotFound = errors.New("not found")
	// ErrForbidden — вызывающий не владелец строки
	ErrForbidden = errors.New("forbidden")
	// ErrPrecondition — зависимый ресурс отсутствует (токен для несуществующего профиля)
	ErrPrecondition = errors.New("precondition failed")
	// ErrTokenInvalid — строка токена не найдена или пуста
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired — токен отозван (is_active=false) либо истёк по expires_at
	ErrTokenExpired = errors.New("token expired")
)
