package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"appointer/internal/core/ports/out"
)

type CacheBookingTypeMessage struct {
	BookingTypeID string `json:"booking_type_id"`
}

func (l *CacheListener) startCacheQueue(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Bind,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := l.processCacheMessage(ctx, msg); err != nil {
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *CacheListener) processCacheMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseCacheMessageRoutingKey(msg)
	if err != nil {
		return err
	}

	switch routingKey.ResourceType {
	case CacheHitResourceTypeAll, CacheHitResourceTypeCalendar:
		// Любое изменение календаря делает все посчитанные сетки
		// устаревшими
		l.useCase.InvalidateCache(ctx)

		l.logger.Info("cache.message.invalidated_all", out.LogFields{
			"routingKey": msg.RoutingKey,
		})

	case CacheHitResourceTypeBookingType:
		var message CacheBookingTypeMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			return err
		}
		if message.BookingTypeID == "" {
			l.useCase.InvalidateCache(ctx)
			return nil
		}

		l.useCase.InvalidateBookingTypeCache(ctx, message.BookingTypeID)

		l.logger.Info("cache.message.invalidated_booking_type", out.LogFields{
			"bookingType": message.BookingTypeID,
		})
	}

	return nil
}
