package userevents

import (
	"context"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/events"
	"userable/internal/core/domain/logging"
	"userable/internal/rabbitmq"
	"userable/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ publishes user lifecycle events to a topic exchange, the
// routing key is the event type.
type RabbitMQ struct {
	log      logging.Logger
	channel  *rabbitmq.Channel
	exchange string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, exchange string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange}
}

func (p *RabbitMQ) Publish(ctx context.Context, event events.Event) error {
	message := schema.UserEvent{
		Type:   string(event.Type),
		UserID: int64(event.UserID),
		Email:  string(event.Email),
		At:     event.At,
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		p.log.Error(
			ctx,
			"Could not publish AMQP message.",
			logging.Entry("exchange", p.exchange),
			logging.Entry("RK", event.Type),
			logging.Entry("err", err),
		)
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", event.Type),
		logging.Entry("userID", event.UserID),
	)
	return nil
}
