package out

import (
	"context"
	"time"

	"appointer/internal/core/domain"
)

type CachePort interface {
	// Кэширование посчитанных сеток недели
	GetWeekGrid(ctx context.Context, bookingTypeID string, monday time.Time) (*domain.WeekGrid, bool)
	StoreWeekGrid(ctx context.Context, bookingTypeID string, grid *domain.WeekGrid)

	// Сброс кэша
	InvalidateBookingType(ctx context.Context, bookingTypeID string)
	InvalidateAll(ctx context.Context)
}
