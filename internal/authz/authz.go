package authz

import (
	"TapShare/internal/model"
	"fmt"
)

// Пакет воспроизводит row-level security БД на границе доступа к данным:
// каждая операция репозитория над строкой с владельцем проходит через
// Authorize. Идентичность вызывающего всегда передаётся явно аргументом,
// никакого ambient-состояния.

// Owned — строка, у которой есть владелец.
type Owned interface {
	OwnerID() string
}

// Authorize сравнивает идентичность вызывающего с владельцем строки.
// Пустой callerID не проходит никогда: анонимный доступ к owner-scoped
// данным возможен только через валидацию NFC-токена, минуя этот путь.
func Authorize(callerID string, row Owned) error {
	if callerID == "" || row == nil || row.OwnerID() != callerID {
		return fmt.Errorf("caller is not the row owner: %w", model.ErrForbidden)
	}
	return nil
}
