package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointer/internal/core/domain"
)

func writeBookingTypes(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "booking_types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBookingTypes(t *testing.T) {
	path := writeBookingTypes(t, `
booking_types:
  meeting:
    label: Meeting
    description: Project meeting
    location: Office 2.14
    duration: 30
    slots: 30
    lead_time: 2
    future_limit: 21
    show_conflict_label: true
  consultation:
    label: Consultation
    duration: 60
    slots: 30
    collapse_days: true
    hidden: true
    overrides:
      FRI: none
      sat: "10:00-13:00"
`)

	policies, err := LoadBookingTypes(path)
	require.NoError(t, err)
	require.Len(t, policies, 2)

	meeting := policies["meeting"]
	require.NotNil(t, meeting)
	assert.Equal(t, "meeting", meeting.ID)
	assert.Equal(t, "Meeting", meeting.Label)
	assert.Equal(t, 30, meeting.DurationMinutes)
	assert.Equal(t, 2, meeting.LeadTimeHours)
	assert.Equal(t, 21, meeting.FutureLimitDays)
	assert.True(t, meeting.ShowConflictLabel)
	assert.False(t, meeting.Hidden)
	assert.Empty(t, meeting.Overrides)

	consultation := policies["consultation"]
	require.NotNil(t, consultation)
	assert.True(t, consultation.CollapseDays)
	assert.True(t, consultation.Hidden)
	assert.False(t, consultation.HasDateOverrides)

	// Ключи переопределений нормализуются к нижнему регистру
	require.Contains(t, consultation.Overrides, "fri")
	require.Contains(t, consultation.Overrides, "sat")
	assert.True(t, consultation.Overrides["fri"].IsEmpty())
	assert.False(t, consultation.Overrides["sat"].IsEmpty())
}

func TestLoadBookingTypes_DateOverrides(t *testing.T) {
	path := writeBookingTypes(t, `
booking_types:
  meeting:
    label: Meeting
    duration: 30
    slots: 30
    overrides:
      "2026-09-08": "10:00-12:00"
`)

	policies, err := LoadBookingTypes(path)
	require.NoError(t, err)
	assert.True(t, policies["meeting"].HasDateOverrides)
}

func TestLoadBookingTypes_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name:    "empty file",
			content: "booking_types: {}\n",
		},
		{
			name: "bad duration",
			content: `
booking_types:
  meeting:
    label: Meeting
    duration: 0
    slots: 30
`,
		},
		{
			name: "bad override key",
			content: `
booking_types:
  meeting:
    label: Meeting
    duration: 30
    slots: 30
    overrides:
      tomorrow: "10:00-12:00"
`,
		},
		{
			name: "duplicate normalized key",
			content: `
booking_types:
  meeting:
    label: Meeting
    duration: 30
    slots: 30
    overrides:
      mon: "10:00-12:00"
      MON: none
`,
		},
		{
			name: "bad availability",
			content: `
booking_types:
  meeting:
    label: Meeting
    duration: 30
    slots: 30
    overrides:
      mon: "10:00-25:00"
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeBookingTypes(t, tc.content)

			_, err := LoadBookingTypes(path)
			require.Error(t, err)

			var cfgErr *domain.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestLoadBookingTypes_MissingFile(t *testing.T) {
	_, err := LoadBookingTypes(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
