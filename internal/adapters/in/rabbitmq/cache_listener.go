package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"appointer/internal/config"
	"appointer/internal/core/ports/in"
	"appointer/internal/core/ports/out"
)

// CacheListener слушает сообщения внешних систем об изменениях
// календаря и бронирований и сбрасывает кэш сеток
type CacheListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.WeekViewUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type CacheHitResourceType string

const (
	CacheHitResourceTypeAll         CacheHitResourceType = "_all_"
	CacheHitResourceTypeCalendar    CacheHitResourceType = "calendar"
	CacheHitResourceTypeBookingType CacheHitResourceType = "bookingtype"
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	Action       string
}

func NewCacheListener(useCase in.WeekViewUseCase, cfg *config.Config, logger out.LoggerPort) (*CacheListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &CacheListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *CacheListener) Start(ctx context.Context) error {
	if err := l.startCacheQueue(ctx); err != nil {
		return err
	}

	l.logger.Info("cache.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.Queue,
	})

	return nil
}

func (l *CacheListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// Пример routingKey:
// cronofy.booking-engine.calendar.changed
// booking.booking-engine.bookingtype.invalidate
func parseCacheMessageRoutingKey(msg amqp.Delivery) (CacheMessageRoutingKey, error) {
	parts := strings.Split(msg.RoutingKey, ".")
	if len(parts) < 4 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", msg.RoutingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		Action:       parts[3],
	}, nil
}
