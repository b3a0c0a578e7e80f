package domain

import (
	"errors"
	"fmt"
)

var (
	// Дата не существует в календаре (например 2026-02-31)
	ErrDateNotFound = errors.New("date does not exist")

	// Неизвестный тип бронирования
	ErrUnknownBookingType = errors.New("unknown booking type")
)

// ConfigError - ошибка конфигурации, фатальная на старте приложения
type ConfigError struct {
	Field string
	Value string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %q: %s", e.Value, e.Msg)
	}
	return fmt.Sprintf("config: %s: %q: %s", e.Field, e.Value, e.Msg)
}
