package week_view_service

import (
	"time"

	"appointer/internal/core/domain"
)

// assembleGrid прогоняет проверку по всем кандидатам и сворачивает
// результат в компактную сетку
func (e *Engine) assembleGrid(policy *domain.BookingPolicy, cand weekCandidates, busyEvents []domain.BusyEvent, now time.Time) *domain.WeekGrid {
	grid := &domain.WeekGrid{Monday: cand.monday}

	if len(cand.weekdays) == 0 {
		return grid
	}

	duration := policy.SlotDuration()

	rawRows := make([][]domain.Slot, 0, len(cand.rowTimes))
	columnAvailable := make([]bool, len(cand.weekdays))

	for _, row := range cand.rowTimes {
		cells := make([]domain.Slot, 0, len(cand.weekdays))
		for col, offset := range cand.dayOffsets {
			start := cand.slotStart(row, offset)
			slot := e.CheckSlot(policy, start, start.Add(duration), busyEvents, now)

			if slot.Available {
				columnAvailable[col] = true
				grid.HasAvailableSlot = true
			}
			cells = append(cells, slot)
		}
		rawRows = append(rawRows, cells)
	}

	weekdays := cand.weekdays
	// Сворачивание дней: колонки без единого доступного слота
	// выбрасываются равномерно из всех строк
	if policy.CollapseDays {
		weekdays = make([]time.Weekday, 0, len(cand.weekdays))
		kept := make([]int, 0, len(cand.weekdays))
		for col, available := range columnAvailable {
			if available {
				weekdays = append(weekdays, cand.weekdays[col])
				kept = append(kept, col)
			}
		}

		collapsed := make([][]domain.Slot, 0, len(rawRows))
		for _, cells := range rawRows {
			row := make([]domain.Slot, 0, len(kept))
			for _, col := range kept {
				row = append(row, cells[col])
			}
			collapsed = append(collapsed, row)
		}
		rawRows = collapsed
	}

	grid.Weekdays = weekdays
	grid.Rows = condenseRows(rawRows)

	return grid
}

// condenseRows заменяет подряд идущие полностью недоступные строки
// одним маркером разрыва и срезает разрывы в начале и в конце
func condenseRows(rawRows [][]domain.Slot) []domain.WeekRow {
	rows := make([]domain.WeekRow, 0, len(rawRows))
	pendingGap := false

	for _, cells := range rawRows {
		if len(cells) == 0 || allUnavailable(cells) {
			pendingGap = true
			continue
		}

		// Разрыв перед первой оставленной строкой не выводится
		if pendingGap && len(rows) > 0 {
			rows = append(rows, domain.GapRow())
		}
		pendingGap = false

		rows = append(rows, domain.SlotsRow(cells))
	}

	// Висящий разрыв в конце тоже отбрасывается
	return rows
}

func allUnavailable(cells []domain.Slot) bool {
	for _, slot := range cells {
		if slot.Available {
			return false
		}
	}
	return true
}
