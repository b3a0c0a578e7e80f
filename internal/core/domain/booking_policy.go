package domain

import (
	"time"
)

type WeekdayCode string

const (
	WeekdayCodeMon WeekdayCode = "mon"
	WeekdayCodeTue WeekdayCode = "tue"
	WeekdayCodeWed WeekdayCode = "wed"
	WeekdayCodeThu WeekdayCode = "thu"
	WeekdayCodeFri WeekdayCode = "fri"
	WeekdayCodeSat WeekdayCode = "sat"
	WeekdayCodeSun WeekdayCode = "sun"
)

var weekdayCodes = map[time.Weekday]WeekdayCode{
	time.Monday:    WeekdayCodeMon,
	time.Tuesday:   WeekdayCodeTue,
	time.Wednesday: WeekdayCodeWed,
	time.Thursday:  WeekdayCodeThu,
	time.Friday:    WeekdayCodeFri,
	time.Saturday:  WeekdayCodeSat,
	time.Sunday:    WeekdayCodeSun,
}

func WeekdayCodeFor(weekday time.Weekday) WeekdayCode {
	return weekdayCodes[weekday]
}

const overrideDateLayout = "2006-01-02"

// NormalizeOverrideKey приводит ключ переопределения к каноничному
// виду: код дня недели в нижнем регистре либо дата в формате
// 2006-01-02. Нормализация на старте делает дальнейший поиск по ключам
// детерминированным
func NormalizeOverrideKey(key string) (normalized string, isDate bool, err error) {
	lower := WeekdayCode(toLower(key))
	for _, code := range weekdayCodes {
		if lower == code {
			return string(code), false, nil
		}
	}

	date, perr := time.Parse(overrideDateLayout, key)
	if perr != nil {
		return "", false, &ConfigError{Value: key, Msg: "expected weekday code (mon..sun) or date YYYY-MM-DD"}
	}

	return date.Format(overrideDateLayout), true, nil
}

func toLower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// BookingPolicy - чистая конфигурация одного типа бронирования.
// Загружается один раз на старте и дальше только читается
type BookingPolicy struct {
	ID          string
	Label       string
	Description string
	Location    string

	// Длительность встречи в минутах, > 0
	DurationMinutes int
	// Шаг сетки слотов в минутах, > 0
	SlotStepMinutes int
	// Минимальное время предупреждения в часах, >= 0
	LeadTimeHours int
	// Горизонт бронирования в днях, 0 - не ограничен
	FutureLimitDays int

	// Переопределения доступности, ключи нормализованы через
	// NormalizeOverrideKey. Наличие хотя бы одного ключа-даты полностью
	// отключает поиск по дням недели для этого типа
	Overrides        map[string]Availability
	HasDateOverrides bool

	// Флаги отображения
	CollapseDays      bool
	ShowConflictLabel bool
	Hidden            bool
}

func (p *BookingPolicy) SlotDuration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}

func (p *BookingPolicy) SlotStep() time.Duration {
	return time.Duration(p.SlotStepMinutes) * time.Minute
}

func (p *BookingPolicy) LeadTime() time.Duration {
	return time.Duration(p.LeadTimeHours) * time.Hour
}
