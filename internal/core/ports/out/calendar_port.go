package out

import (
	"context"
	"time"

	"appointer/internal/core/domain"
)

// CalendarPort - внешний календарь организатора. Отдает занятые
// интервалы за запрошенное окно, обычно [понедельник, понедельник+7д)
type CalendarPort interface {
	GetBusyEvents(ctx context.Context, from, to time.Time) ([]domain.BusyEvent, error)
}
