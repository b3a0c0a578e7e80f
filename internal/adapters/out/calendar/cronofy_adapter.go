package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"appointer/internal/config"
	"appointer/internal/core/domain"
	"appointer/internal/core/json_types"
	"appointer/internal/core/ports/out"
)

const cronofyMaxPages = 50

// CronofyAdapter достает занятые интервалы организатора из Cronofy.
// Проверяются только календари с именами из конфигурации; пустой
// список имен означает все календари
type CronofyAdapter struct {
	client        *http.Client
	baseURL       string
	accessToken   string
	calendarNames []string
	location      *time.Location
	logger        out.LoggerPort
}

func NewCronofyAdapter(cfg *config.Config, logger out.LoggerPort) *CronofyAdapter {
	return &CronofyAdapter{
		client:        &http.Client{Timeout: 10 * time.Second},
		baseURL:       cfg.Calendar.CronofyURL,
		accessToken:   cfg.Calendar.CronofyAccessToken,
		calendarNames: cfg.Calendar.CalendarNames,
		location:      cfg.App.Location,
		logger:        logger,
	}
}

type cronofyCalendar struct {
	CalendarID   string `json:"calendar_id"`
	CalendarName string `json:"calendar_name"`
}

type cronofyCalendarsResponse struct {
	Calendars []cronofyCalendar `json:"calendars"`
}

type cronofyEvent struct {
	CalendarID     string              `json:"calendar_id"`
	Summary        string              `json:"summary"`
	Start          json_types.FlexTime `json:"start"`
	End            json_types.FlexTime `json:"end"`
	FreeBusyStatus string              `json:"free_busy_status"`
}

type cronofyEventsResponse struct {
	Pages struct {
		NextPage string `json:"next_page"`
	} `json:"pages"`
	Events []cronofyEvent `json:"events"`
}

func (a *CronofyAdapter) GetBusyEvents(ctx context.Context, from, to time.Time) ([]domain.BusyEvent, error) {
	a.logger.Debug("cronofy.busy_events.fetch", out.LogFields{
		"from": from,
		"to":   to,
	})

	calendarIDs, err := a.calendarIDs(ctx)
	if err != nil {
		return nil, err
	}

	// Окно запрашивается в UTC
	query := url.Values{}
	query.Set("from", from.UTC().Format(time.RFC3339))
	query.Set("to", to.UTC().Format(time.RFC3339))
	query.Set("tzid", a.location.String())
	query.Set("include_managed", "true")

	pageURL := fmt.Sprintf("%s/v1/events?%s", a.baseURL, query.Encode())

	busyEvents := make([]domain.BusyEvent, 0)
	for page := 0; pageURL != "" && page < cronofyMaxPages; page++ {
		var response cronofyEventsResponse
		if err := a.getJSON(ctx, pageURL, &response); err != nil {
			a.logger.Error("cronofy.busy_events.fetch_failed", out.LogFields{
				"error": err.Error(),
			})
			return nil, err
		}

		for _, event := range response.Events {
			// Свободные события не конфликтуют
			if event.FreeBusyStatus == "free" {
				continue
			}
			if len(calendarIDs) > 0 && !calendarIDs[event.CalendarID] {
				continue
			}

			busyEvents = append(busyEvents, domain.BusyEvent{
				Start: event.Start.In(a.location),
				End:   event.End.In(a.location),
				Label: event.Summary,
			})
		}

		pageURL = response.Pages.NextPage
	}

	a.logger.Debug("cronofy.busy_events.fetch_success", out.LogFields{
		"count": len(busyEvents),
	})

	return busyEvents, nil
}

// calendarIDs возвращает идентификаторы календарей, имена которых
// совпадают с настроенными, без учета регистра
func (a *CronofyAdapter) calendarIDs(ctx context.Context) (map[string]bool, error) {
	if len(a.calendarNames) == 0 {
		return nil, nil
	}

	var response cronofyCalendarsResponse
	if err := a.getJSON(ctx, a.baseURL+"/v1/calendars", &response); err != nil {
		a.logger.Error("cronofy.calendars.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	names := make(map[string]bool, len(a.calendarNames))
	for _, name := range a.calendarNames {
		names[strings.ToLower(name)] = true
	}

	ids := make(map[string]bool)
	for _, cal := range response.Calendars {
		if names[strings.ToLower(cal.CalendarName)] {
			ids[cal.CalendarID] = true
		}
	}

	return ids, nil
}

func (a *CronofyAdapter) getJSON(ctx context.Context, rawURL string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+a.accessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
