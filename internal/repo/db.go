package repo

import (
	"TapShare/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает Postgres и прогоняет миграции всех моделей.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate выполняет AutoMigrate. Вынесено отдельно, чтобы тесты могли
// накатить схему на in-memory SQLite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Profile{},
		&model.FamilyProfile{},
		&model.FriendsProfile{},
		&model.WorkProfile{},
		&model.AcquaintancesProfile{},
		&model.Connection{},
		&model.NFCToken{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// isUniqueViolation распознаёт нарушение уникального индекса у обоих
// диалектов (postgres: "duplicate key", sqlite: "UNIQUE constraint failed").
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// translateCreateErr сводит ошибку вставки к доменной таксономии.
func translateCreateErr(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	}
	return err
}
