package rabbitmq

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCacheMessageRoutingKey(t *testing.T) {
	key, err := parseCacheMessageRoutingKey(amqp.Delivery{
		RoutingKey: "cronofy.booking-engine.calendar.changed",
	})
	require.NoError(t, err)
	assert.Equal(t, "cronofy", key.Source)
	assert.Equal(t, "booking-engine", key.Receiver)
	assert.Equal(t, CacheHitResourceTypeCalendar, key.ResourceType)
	assert.Equal(t, "changed", key.Action)

	key, err = parseCacheMessageRoutingKey(amqp.Delivery{
		RoutingKey: "booking.booking-engine.bookingtype.invalidate",
	})
	require.NoError(t, err)
	assert.Equal(t, CacheHitResourceTypeBookingType, key.ResourceType)

	_, err = parseCacheMessageRoutingKey(amqp.Delivery{
		RoutingKey: "calendar.changed",
	})
	require.Error(t, err)
}
