package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"appointer/internal/config"
	"appointer/internal/core/domain"
	"appointer/internal/core/ports/out"
	"appointer/internal/core/services/week_view_service"
	"appointer/internal/utils"
)

// WeekViewService - вариант использования поверх чистого движка:
// достает занятые события из календаря, сэмплирует "сейчас" один раз
// на вызов и ходит в кэш, если тот включен
type WeekViewService struct {
	engine       *week_view_service.Engine
	calendarPort out.CalendarPort
	cachePort    out.CachePort
	logger       out.LoggerPort
	policies     map[string]*domain.BookingPolicy
	location     *time.Location
}

func NewWeekViewService(
	cfg *config.Config,
	calendarPort out.CalendarPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
) *WeekViewService {
	return &WeekViewService{
		engine:       week_view_service.NewEngine(cfg.Availability.Week, cfg.App.Location),
		calendarPort: calendarPort,
		cachePort:    cachePort,
		logger:       logger.WithModule("WeekViewService"),
		policies:     cfg.BookingTypes.Policies,
		location:     cfg.App.Location,
	}
}

func (s *WeekViewService) GenerateWeekView(ctx context.Context, bookingTypeID string, date time.Time) (*domain.WeekGrid, error) {
	policy, err := s.BookingPolicy(bookingTypeID)
	if err != nil {
		return nil, err
	}

	monday := utils.MondayOf(date.In(s.location))

	s.logger.Debug("weekview.generate.started", out.LogFields{
		"bookingType": bookingTypeID,
		"monday":      monday.Format("2006-01-02"),
	})

	if s.cachePort != nil {
		if grid, exists := s.cachePort.GetWeekGrid(ctx, bookingTypeID, monday); exists {
			s.logger.Debug("weekview.generate.cache.hit", out.LogFields{
				"bookingType": bookingTypeID,
				"monday":      monday.Format("2006-01-02"),
			})
			return grid, nil
		}
	}

	busyEvents, err := s.calendarPort.GetBusyEvents(ctx, monday, monday.AddDate(0, 0, 7))
	if err != nil {
		s.logger.Error("weekview.generate.busy_events.fetch_failed", out.LogFields{
			"bookingType": bookingTypeID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("weekview.generate.busy_events.fetch_failed: %w", err)
	}

	now := time.Now().In(s.location)
	grid := s.engine.GenerateWeekGrid(policy, date, busyEvents, now)

	if s.cachePort != nil {
		s.cachePort.StoreWeekGrid(ctx, bookingTypeID, grid)
	}

	s.logger.Info("weekview.generate.finished", out.LogFields{
		"bookingType":      bookingTypeID,
		"monday":           monday.Format("2006-01-02"),
		"busyEventsCount":  len(busyEvents),
		"rowsCount":        len(grid.Rows),
		"hasAvailableSlot": grid.HasAvailableSlot,
	})

	return grid, nil
}

func (s *WeekViewService) CheckSlot(ctx context.Context, bookingTypeID string, start, end time.Time) (domain.Slot, error) {
	policy, err := s.BookingPolicy(bookingTypeID)
	if err != nil {
		return domain.Slot{}, err
	}

	start = start.In(s.location)
	// Конец по умолчанию - начало плюс длительность встречи
	if end.IsZero() {
		end = start.Add(policy.SlotDuration())
	} else {
		end = end.In(s.location)
	}

	day := utils.StartOfDay(start)
	busyEvents, err := s.calendarPort.GetBusyEvents(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("slot.check.busy_events.fetch_failed", out.LogFields{
			"bookingType": bookingTypeID,
			"error":       err.Error(),
		})
		return domain.Slot{}, fmt.Errorf("slot.check.busy_events.fetch_failed: %w", err)
	}

	now := time.Now().In(s.location)
	slot := s.engine.CheckSlot(policy, start, end, busyEvents, now)

	s.logger.Debug("slot.check.finished", out.LogFields{
		"bookingType": bookingTypeID,
		"start":       start,
		"available":   slot.Available,
		"reason":      slot.Reason,
	})

	return slot, nil
}

// BookingTypes возвращает видимые политики, отсортированные по
// идентификатору
func (s *WeekViewService) BookingTypes() []*domain.BookingPolicy {
	ids := make([]string, 0, len(s.policies))
	for id, policy := range s.policies {
		if policy.Hidden {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]*domain.BookingPolicy, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.policies[id])
	}
	return result
}

func (s *WeekViewService) BookingPolicy(bookingTypeID string) (*domain.BookingPolicy, error) {
	policy, ok := s.policies[bookingTypeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBookingType, bookingTypeID)
	}
	return policy, nil
}

func (s *WeekViewService) InvalidateCache(ctx context.Context) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateAll(ctx)
	s.logger.Info("cache.invalidate.all", out.LogFields{})
}

func (s *WeekViewService) InvalidateBookingTypeCache(ctx context.Context, bookingTypeID string) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateBookingType(ctx, bookingTypeID)
	s.logger.Info("cache.invalidate.booking_type", out.LogFields{
		"bookingType": bookingTypeID,
	})
}
