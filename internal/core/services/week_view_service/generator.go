package week_view_service

import (
	"time"

	"appointer/internal/core/domain"
	"appointer/internal/utils"
)

// weekCandidates - сырая сетка кандидатов одной недели до проверки
// конфликтов
type weekCandidates struct {
	monday time.Time
	// Включенные дни недели в порядке понедельник - воскресенье.
	// День с пустой доступностью исключается целиком
	weekdays []time.Weekday
	// Смещения включенных дней от понедельника, параллельно weekdays
	dayOffsets []int
	// Времена строк от минимального начала до максимального конца
	// всех включенных дней, с шагом сетки политики
	rowTimes []domain.TimeOfDay
}

func (e *Engine) weekCandidates(policy *domain.BookingPolicy, date time.Time) weekCandidates {
	monday := utils.MondayOf(date.In(e.Location))

	cand := weekCandidates{monday: monday}

	// Общее окно отображения: минимум начал и максимум концов по всем
	// включенным дням
	var windowStart, windowEnd domain.TimeOfDay
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)

		avail := e.ResolveAvailability(policy, day)
		dayStart, dayEnd, ok := avail.DayRange()
		if !ok {
			continue
		}

		if len(cand.weekdays) == 0 || dayStart < windowStart {
			windowStart = dayStart
		}
		if len(cand.weekdays) == 0 || dayEnd > windowEnd {
			windowEnd = dayEnd
		}

		cand.weekdays = append(cand.weekdays, day.Weekday())
		cand.dayOffsets = append(cand.dayOffsets, offset)
	}

	if len(cand.weekdays) == 0 {
		return cand
	}

	// Полуоткрытый перебор: последняя строка начинается до конца окна
	step := domain.TimeOfDay(policy.SlotStepMinutes)
	for row := windowStart; row < windowEnd; row += step {
		cand.rowTimes = append(cand.rowTimes, row)
	}

	return cand
}

// slotStart возвращает момент начала слота-кандидата для строки и
// смещения дня
func (c weekCandidates) slotStart(row domain.TimeOfDay, dayOffset int) time.Time {
	return utils.CombineDate(c.monday.AddDate(0, 0, dayOffset), row)
}
