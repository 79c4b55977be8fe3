package service

import (
	"TapShare/internal/model"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Формальную проверку контактных полей (email, телефон, URL) делегируем
// validator/v10 — это и есть внешний «проверщик форматов» доменного слоя.
var validate = newValidator()

// допускаем цифры, пробелы, скобки и дефисы, опционально ведущий "+"
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\-\s()]{5,19}$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// checkInput валидирует структуру по тегам validate и сводит ошибку
// к доменной model.ErrValidation.
func checkInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return nil
}
