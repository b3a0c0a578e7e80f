package week_view_service

import (
	"time"

	"appointer/internal/core/domain"
)

// ResolveAvailability возвращает действующую доступность для
// конкретной даты. Если у политики есть хотя бы одно переопределение
// по дате, поиск идет только по ключам-датам: несовпавшая дата
// считается полностью закрытой, отката к дням недели нет. Иначе
// берется переопределение по дню недели, а при его отсутствии -
// глобальная доступность этого дня
func (e *Engine) ResolveAvailability(policy *domain.BookingPolicy, date time.Time) domain.Availability {
	if policy.HasDateOverrides {
		key := date.Format("2006-01-02")
		if avail, ok := policy.Overrides[key]; ok {
			return avail
		}
		return domain.Availability{}
	}

	weekdayKey := string(domain.WeekdayCodeFor(date.Weekday()))
	if avail, ok := policy.Overrides[weekdayKey]; ok {
		return avail
	}

	return e.Defaults.ForWeekday(date.Weekday())
}
