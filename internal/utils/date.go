package utils

import (
	"fmt"
	"time"

	"appointer/internal/core/domain"
)

// StartOfDay возвращает полночь того же дня в той же таймзоне
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MondayOf возвращает полночь понедельника недели, в которую попадает
// дата
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t.AddDate(0, 0, -offset))
}

// CombineDate собирает момент времени из даты и времени суток
func CombineDate(day time.Time, tod domain.TimeOfDay) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, day.Location())
}

// ParseISODate строго парсит дату запроса в формате 2006-01-02.
// Несуществующая календарная дата дает ErrDateNotFound, чтобы
// вызывающая сторона могла отдать "not found" вместо 500
func ParseISODate(str string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", str, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrDateNotFound, str)
	}
	return parsed, nil
}
