package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay - время внутри абстрактного дня, в минутах от полуночи.
// Не привязано к дате и таймзоне
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// TimeOfDayOf возвращает время суток для конкретного момента времени
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ParseTimeOfDay парсит строку вида "9:30" или "09:30"
func ParseTimeOfDay(str string) (TimeOfDay, error) {
	parts := strings.Split(str, ":")
	if len(parts) != 2 {
		return 0, &ConfigError{Value: str, Msg: "expected HH:MM"}
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, &ConfigError{Value: str, Msg: "hour out of range"}
	}

	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return 0, &ConfigError{Value: str, Msg: "minute out of range"}
	}

	return NewTimeOfDay(hour, minute), nil
}

// TimeRange - открытый для бронирования промежуток внутри одного дня
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Availability - набор промежутков одного дня. Пустой набор означает,
// что день полностью закрыт. Промежутки не обязаны быть отсортированы
// или не пересекаться
type Availability struct {
	Ranges []TimeRange
}

// ParseAvailability парсит строку конфигурации вида
// "HH:MM-HH:MM[,HH:MM-HH:MM...]". Пустая строка или "none" (без учета
// регистра) дают пустой набор. Любой другой некорректный токен - ошибка
// конфигурации, она должна всплывать на старте приложения
func ParseAvailability(text string) (Availability, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return Availability{}, nil
	}

	ranges := make([]TimeRange, 0)
	for _, token := range strings.Split(trimmed, ",") {
		token = strings.TrimSpace(token)

		parts := strings.Split(token, "-")
		if len(parts) != 2 {
			return Availability{}, &ConfigError{Value: token, Msg: "expected HH:MM-HH:MM"}
		}

		start, err := ParseTimeOfDay(parts[0])
		if err != nil {
			return Availability{}, err
		}
		end, err := ParseTimeOfDay(parts[1])
		if err != nil {
			return Availability{}, err
		}
		if end < start {
			return Availability{}, &ConfigError{Value: token, Msg: "range end before start"}
		}

		ranges = append(ranges, TimeRange{Start: start, End: end})
	}

	return Availability{Ranges: ranges}, nil
}

// IsAvailable проверяет, что запрошенный интервал целиком вложен в один
// из промежутков. Интервал, покрытый объединением двух соседних
// промежутков, доступным не считается
func (a Availability) IsAvailable(start, end TimeOfDay) bool {
	for _, r := range a.Ranges {
		if r.Start <= start && end <= r.End {
			return true
		}
	}
	return false
}

// DayRange возвращает крайние точки всех промежутков дня.
// Используется только для границ отображаемого окна, не для проверки
// доступности
func (a Availability) DayRange() (TimeOfDay, TimeOfDay, bool) {
	if len(a.Ranges) == 0 {
		return 0, 0, false
	}

	min, max := a.Ranges[0].Start, a.Ranges[0].End
	for _, r := range a.Ranges[1:] {
		if r.Start < min {
			min = r.Start
		}
		if r.End > max {
			max = r.End
		}
	}

	return min, max, true
}

func (a Availability) IsEmpty() bool {
	return len(a.Ranges) == 0
}

// WeekAvailability - глобальная доступность по дням недели,
// понедельник первый. Собирается один раз на старте из конфигурации и
// передается в сервис явно
type WeekAvailability [7]Availability

// ForWeekday возвращает доступность для дня недели стандартной
// библиотеки (воскресенье = 0)
func (w WeekAvailability) ForWeekday(weekday time.Weekday) Availability {
	return w[(int(weekday)+6)%7]
}
