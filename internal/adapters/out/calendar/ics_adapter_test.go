package calendar

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointer/internal/core/domain"
)

const testFeed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:plain-1
DTSTART:20260907T100000Z
DTEND:20260907T110000Z
SUMMARY:Standup
END:VEVENT
BEGIN:VEVENT
UID:allday-1
DTSTART;VALUE=DATE:20260908
SUMMARY:Holiday
END:VEVENT
BEGIN:VEVENT
UID:weekly-1
DTSTART:20260901T090000Z
DTEND:20260901T093000Z
RRULE:FREQ=WEEKLY;BYDAY=TU
SUMMARY:Weekly sync
END:VEVENT
BEGIN:VEVENT
UID:outside-1
DTSTART:20260601T100000Z
DTEND:20260601T110000Z
SUMMARY:Old meeting
END:VEVENT
END:VCALENDAR
`

func parseFeed(t *testing.T) *ics.Calendar {
	t.Helper()

	cal, err := ics.ParseCalendar(strings.NewReader(testFeed))
	require.NoError(t, err)
	return cal
}

func eventByLabel(events []domain.BusyEvent, label string) *domain.BusyEvent {
	for i := range events {
		if events[i].Label == label {
			return &events[i]
		}
	}
	return nil
}

func TestExpandCalendar(t *testing.T) {
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	events := expandCalendar(parseFeed(t), from, to, time.UTC)

	// Событие вне окна отброшено
	assert.Nil(t, eventByLabel(events, "Old meeting"))

	standup := eventByLabel(events, "Standup")
	require.NotNil(t, standup)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), standup.Start)
	assert.Equal(t, time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC), standup.End)

	// Событие на весь день без DTEND занимает ровно сутки
	holiday := eventByLabel(events, "Holiday")
	require.NotNil(t, holiday)
	assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), holiday.Start)
	assert.Equal(t, time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC), holiday.End)

	// Повторяющееся событие развернулось в экземпляр внутри окна
	sync := eventByLabel(events, "Weekly sync")
	require.NotNil(t, sync)
	assert.Equal(t, time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC), sync.Start)
	assert.Equal(t, time.Date(2026, 9, 8, 9, 30, 0, 0, time.UTC), sync.End)
}

func TestExpandCalendar_RecurringMultipleWeeks(t *testing.T) {
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 21)

	events := expandCalendar(parseFeed(t), from, to, time.UTC)

	count := 0
	for _, event := range events {
		if event.Label == "Weekly sync" {
			count++
		}
	}
	assert.Equal(t, 3, count)
}

func TestExpandCalendar_EmptyWindow(t *testing.T) {
	from := time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	events := expandCalendar(parseFeed(t), from, to, time.UTC)

	// Окно далеко впереди: остаются только повторяющиеся события
	for _, event := range events {
		assert.Equal(t, "Weekly sync", event.Label)
	}
}
