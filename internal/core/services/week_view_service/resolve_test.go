package week_view_service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"appointer/internal/core/domain"
)

func TestResolveAvailability_Defaults(t *testing.T) {
	engine := testEngine(t)

	avail := engine.ResolveAvailability(testPolicy(), at(7, 0, 0))
	assert.False(t, avail.IsEmpty())

	// Суббота закрыта глобально
	avail = engine.ResolveAvailability(testPolicy(), at(12, 0, 0))
	assert.True(t, avail.IsEmpty())
}

func TestResolveAvailability_WeekdayOverride(t *testing.T) {
	engine := testEngine(t)
	policy := testPolicy()
	policy.Overrides = map[string]domain.Availability{
		"fri": {},
		"sat": mustAvail(t, "10:00-13:00"),
	}

	// Пятница переопределена в закрытую
	assert.True(t, engine.ResolveAvailability(policy, at(11, 0, 0)).IsEmpty())
	// Суббота открыта вопреки глобальной доступности
	assert.False(t, engine.ResolveAvailability(policy, at(12, 0, 0)).IsEmpty())
	// Понедельник без переопределения берет глобальную
	assert.False(t, engine.ResolveAvailability(policy, at(7, 0, 0)).IsEmpty())
}

func TestResolveAvailability_DateOverridesWinTotally(t *testing.T) {
	engine := testEngine(t)
	policy := testPolicy()
	policy.Overrides = map[string]domain.Availability{
		"2026-09-08": mustAvail(t, "10:00-12:00"),
		"mon":        mustAvail(t, "8:00-20:00"),
	}
	policy.HasDateOverrides = true

	// Совпавшая дата берет свою доступность
	avail := engine.ResolveAvailability(policy, at(8, 0, 0))
	start, end, ok := avail.DayRange()
	assert.True(t, ok)
	assert.Equal(t, domain.NewTimeOfDay(10, 0), start)
	assert.Equal(t, domain.NewTimeOfDay(12, 0), end)

	// Наличие дат отключает откат: понедельник закрыт несмотря на
	// переопределение по дню недели и глобальную доступность
	assert.True(t, engine.ResolveAvailability(policy, at(7, 0, 0)).IsEmpty())
	assert.True(t, engine.ResolveAvailability(policy, at(9, 0, 0)).IsEmpty())
}
