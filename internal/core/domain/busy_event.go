package domain

import "time"

// BusyEvent - занятый интервал из внешнего календаря. Список событий
// приходит свежим на каждый запрос и движком не изменяется
type BusyEvent struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Overlaps проверяет пересечение с полуоткрытым интервалом
// [start, end). Интервалы, касающиеся границами, не конфликтуют
func (e BusyEvent) Overlaps(start, end time.Time) bool {
	return start.Before(e.End) && end.After(e.Start)
}
