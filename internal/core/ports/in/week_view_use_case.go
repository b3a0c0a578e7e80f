package in

import (
	"context"
	"time"

	"appointer/internal/core/domain"
)

type WeekViewUseCase interface {
	// Сетка недели для типа бронирования и произвольной даты внутри
	// недели
	GenerateWeekView(ctx context.Context, bookingTypeID string, date time.Time) (*domain.WeekGrid, error)

	// Проверка одного конкретного слота
	CheckSlot(ctx context.Context, bookingTypeID string, start, end time.Time) (domain.Slot, error)

	// Список видимых типов бронирования
	BookingTypes() []*domain.BookingPolicy

	// Поиск типа бронирования, включая скрытые
	BookingPolicy(bookingTypeID string) (*domain.BookingPolicy, error)

	// Сброс кэша по сообщениям из внешних систем
	InvalidateCache(ctx context.Context)
	InvalidateBookingTypeCache(ctx context.Context, bookingTypeID string)
}
