package week_view_service

import (
	"time"

	"appointer/internal/core/domain"
)

// Engine - чистое ядро расчета доступности. Не делает I/O, не держит
// состояния между вызовами: занятые события и "сейчас" передаются явно
// в каждый вызов
type Engine struct {
	// Глобальная доступность по дням недели, собранная на старте
	Defaults domain.WeekAvailability
	// Локальная таймзона организатора
	Location *time.Location
}

func NewEngine(defaults domain.WeekAvailability, location *time.Location) *Engine {
	return &Engine{
		Defaults: defaults,
		Location: location,
	}
}

// GenerateWeekGrid считает свернутую сетку недели, в которую попадает
// дата. Чистая функция от (политика, дата, занятые события, сейчас)
func (e *Engine) GenerateWeekGrid(policy *domain.BookingPolicy, date time.Time, busyEvents []domain.BusyEvent, now time.Time) *domain.WeekGrid {
	candidates := e.weekCandidates(policy, date)
	return e.assembleGrid(policy, candidates, busyEvents, now)
}

// CheckSlot проверяет один слот и возвращает структурированный
// результат. Недоступность слота - не ошибка
func (e *Engine) CheckSlot(policy *domain.BookingPolicy, start, end time.Time, busyEvents []domain.BusyEvent, now time.Time) domain.Slot {
	available, reason := e.checkSlot(policy, start, end, busyEvents, now)
	return domain.Slot{
		Start:     start,
		End:       end,
		Available: available,
		Reason:    reason,
	}
}
