package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"appointer/internal/config"
	"appointer/internal/core/domain"
	"appointer/internal/core/ports/out"
)

const icsMaxOccurrences = 1000

// ICSAdapter - альтернативный источник занятых интервалов: приватная
// ICS лента. Повторяющиеся события разворачиваются по RRULE,
// события на весь день интерпретируются в локальной таймзоне
type ICSAdapter struct {
	client   *http.Client
	feedURL  string
	location *time.Location
	logger   out.LoggerPort
}

func NewICSAdapter(cfg *config.Config, logger out.LoggerPort) *ICSAdapter {
	return &ICSAdapter{
		client:   &http.Client{Timeout: 15 * time.Second},
		feedURL:  cfg.Calendar.ICSFeedURL,
		location: cfg.App.Location,
		logger:   logger,
	}
}

func (a *ICSAdapter) GetBusyEvents(ctx context.Context, from, to time.Time) ([]domain.BusyEvent, error) {
	if a.feedURL == "" {
		return nil, errors.New("ics feed url is not configured")
	}

	a.logger.Debug("ics.busy_events.fetch", out.LogFields{
		"from": from,
		"to":   to,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("ics.busy_events.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("ics.busy_events.fetch_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	cal, err := ics.ParseCalendar(resp.Body)
	if err != nil {
		a.logger.Error("ics.busy_events.parse_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	busyEvents := expandCalendar(cal, from, to, a.location)

	a.logger.Debug("ics.busy_events.fetch_success", out.LogFields{
		"count": len(busyEvents),
	})

	return busyEvents, nil
}

// expandCalendar разворачивает VEVENT в занятые интервалы внутри окна
// [from, to). Вынесено отдельно, чтобы тестироваться без сети
func expandCalendar(cal *ics.Calendar, from, to time.Time, loc *time.Location) []domain.BusyEvent {
	busyEvents := make([]domain.BusyEvent, 0)

	for _, ve := range cal.Events() {
		start, end, allDay, ok := eventTimes(ve, loc)
		if !ok {
			continue
		}

		label := ""
		if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
			label = p.Value
		}

		rawRRule := ""
		if p := ve.GetProperty(ics.ComponentPropertyRrule); p != nil {
			rawRRule = p.Value
		}

		if rawRRule == "" {
			if start.Before(to) && end.After(from) {
				busyEvents = append(busyEvents, domain.BusyEvent{Start: start, End: end, Label: label})
			}
			continue
		}

		rule, err := rrule.StrToRRule(rawRRule)
		if err != nil {
			// Кривое правило не должно ронять всю ленту
			continue
		}
		rule.DTStart(start)

		duration := end.Sub(start)
		occurrences := rule.Between(from.Add(-duration), to, true)
		if len(occurrences) > icsMaxOccurrences {
			occurrences = occurrences[:icsMaxOccurrences]
		}

		for _, occStart := range occurrences {
			occStart = occStart.In(loc)
			if allDay {
				occStart = time.Date(occStart.Year(), occStart.Month(), occStart.Day(), 0, 0, 0, 0, loc)
			}
			occEnd := occStart.Add(duration)

			if occStart.Before(to) && occEnd.After(from) {
				busyEvents = append(busyEvents, domain.BusyEvent{Start: occStart, End: occEnd, Label: label})
			}
		}
	}

	return busyEvents
}

// eventTimes возвращает начало и конец события. Событие на весь день
// (VALUE=DATE) занимает [полночь, полночь следующего дня) в локальной
// таймзоне
func eventTimes(ve *ics.VEvent, loc *time.Location) (start, end time.Time, allDay, ok bool) {
	dtStart := ve.GetProperty(ics.ComponentPropertyDtStart)
	if dtStart == nil {
		return time.Time{}, time.Time{}, false, false
	}

	allDay = isDateOnly(dtStart)

	if allDay {
		parsed, err := time.ParseInLocation("20060102", dtStart.Value, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, false
		}
		start = parsed

		end = start.AddDate(0, 0, 1)
		if dtEnd := ve.GetProperty(ics.ComponentPropertyDtEnd); dtEnd != nil {
			if parsed, err := time.ParseInLocation("20060102", dtEnd.Value, loc); err == nil {
				end = parsed
			}
		}
		return start, end, true, true
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return time.Time{}, time.Time{}, false, false
	}
	start = start.In(loc)

	end, err = ve.GetEndAt()
	if err != nil {
		// DTEND не обязателен, считаем событие точечным
		end = start
	} else {
		end = end.In(loc)
	}

	return start, end, false, true
}

func isDateOnly(prop *ics.IANAProperty) bool {
	if prop.ICalParameters != nil {
		if values, exists := prop.ICalParameters["VALUE"]; exists && len(values) > 0 && strings.EqualFold(values[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(prop.Value, "T")
}
