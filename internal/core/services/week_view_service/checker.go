package week_view_service

import (
	"fmt"
	"time"

	"appointer/internal/core/domain"
)

// checkSlot применяет проверки в фиксированном порядке и
// останавливается на первой неудачной
func (e *Engine) checkSlot(policy *domain.BookingPolicy, start, end time.Time, busyEvents []domain.BusyEvent, now time.Time) (bool, string) {
	if start.Before(now) {
		return false, domain.SlotReasonPast
	}

	if start.Before(now.Add(policy.LeadTime())) {
		return false, leadTimeReason(policy.LeadTimeHours)
	}

	if policy.FutureLimitDays != 0 && start.After(now.AddDate(0, 0, policy.FutureLimitDays)) {
		return false, domain.SlotReasonTooFar
	}

	avail := e.ResolveAvailability(policy, start)
	startTod := domain.TimeOfDayOf(start)
	// Конец считается от начала, а не от end.Time(): слот через
	// полночь не должен сворачиваться обратно в начало дня
	endTod := startTod + domain.TimeOfDay(end.Sub(start)/time.Minute)
	if !avail.IsAvailable(startTod, endTod) {
		return false, domain.SlotReasonClosed
	}

	for _, event := range busyEvents {
		if !event.Overlaps(start, end) {
			continue
		}
		if policy.ShowConflictLabel && event.Label != "" {
			return false, "conflicts with event: " + event.Label
		}
		return false, domain.SlotReasonConflict
	}

	return true, domain.SlotReasonAvailable
}

func leadTimeReason(hours int) string {
	unit := "hours"
	if hours == 1 {
		unit = "hour"
	}
	return fmt.Sprintf("less than %d %s notice", hours, unit)
}
