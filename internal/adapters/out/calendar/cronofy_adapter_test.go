package calendar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointer/internal/config"
	"appointer/internal/core/ports/out"
)

type noopLogger struct{}

func (noopLogger) Debug(string, out.LogFields) {}
func (noopLogger) Info(string, out.LogFields)  {}
func (noopLogger) Warn(string, out.LogFields)  {}
func (noopLogger) Error(string, out.LogFields) {}

func (l noopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l noopLogger) WithModule(string) out.LoggerPort        { return l }

func cronofyConfig(baseURL string, names ...string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Location = time.UTC
	cfg.Calendar.CronofyURL = baseURL
	cfg.Calendar.CronofyAccessToken = "test-token"
	cfg.Calendar.CalendarNames = names
	return cfg
}

func TestCronofyAdapter_GetBusyEvents(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		switch r.URL.Path {
		case "/v1/events":
			// Вторая страница отдается по next_page
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `{"pages":{},"events":[
					{"calendar_id":"cal-1","summary":"Planning",
					 "start":"2026-09-08T14:00:00Z","end":"2026-09-08T15:00:00Z",
					 "free_busy_status":"busy"}
				]}`)
				return
			}

			fmt.Fprintf(w, `{"pages":{"next_page":%q},"events":[
				{"calendar_id":"cal-1","summary":"Standup",
				 "start":"2026-09-07T10:00:00Z","end":"2026-09-07T10:30:00Z",
				 "free_busy_status":"busy"},
				{"calendar_id":"cal-1","summary":"Focus time",
				 "start":"2026-09-07T11:00:00Z","end":"2026-09-07T12:00:00Z",
				 "free_busy_status":"free"}
			]}`, "http://"+r.Host+"/v1/events?page=2")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	adapter := NewCronofyAdapter(cronofyConfig(server.URL), noopLogger{})

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	events, err := adapter.GetBusyEvents(context.Background(), from, from.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)

	// Свободное событие отброшено, страницы склеены
	require.Len(t, events, 2)
	assert.Equal(t, "Standup", events[0].Label)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, "Planning", events[1].Label)
}

func TestCronofyAdapter_CalendarNameFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/calendars":
			fmt.Fprint(w, `{"calendars":[
				{"calendar_id":"cal-work","calendar_name":"Work"},
				{"calendar_id":"cal-personal","calendar_name":"Personal"}
			]}`)
		case "/v1/events":
			fmt.Fprint(w, `{"pages":{},"events":[
				{"calendar_id":"cal-work","summary":"Standup",
				 "start":"2026-09-07T10:00:00Z","end":"2026-09-07T10:30:00Z",
				 "free_busy_status":"busy"},
				{"calendar_id":"cal-personal","summary":"Dentist",
				 "start":"2026-09-07T11:00:00Z","end":"2026-09-07T12:00:00Z",
				 "free_busy_status":"busy"}
			]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	// Фильтр по имени без учета регистра
	adapter := NewCronofyAdapter(cronofyConfig(server.URL, "work"), noopLogger{})

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	events, err := adapter.GetBusyEvents(context.Background(), from, from.AddDate(0, 0, 7))
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "Standup", events[0].Label)
}

func TestCronofyAdapter_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := NewCronofyAdapter(cronofyConfig(server.URL), noopLogger{})

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	_, err := adapter.GetBusyEvents(context.Background(), from, from.AddDate(0, 0, 7))
	require.Error(t, err)
}
