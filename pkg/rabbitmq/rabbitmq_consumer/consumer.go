package rabbitmq_consumer

import (
	"context"
	"fmt"
	"sync"

	"eaukcija-parser-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumerConfig configures a queue consumer.
type ConsumerConfig struct {
	rabbitmq_common.Config
	QueueName       string
	DeclareQueue    bool
	DurableQueue    bool
	AutoDeleteQueue bool
	QueueArgs       amqp.Table

	ExchangeNameForBind string
	RoutingKeyForBind   string

	PrefetchCount int
	ConsumerTag   string

	Logger rabbitmq_common.Logger
}

// Handler processes one delivery. A nil return acks the message; an
// error nacks it. The delivery is requeued once and then dropped, so a
// poison message cannot loop forever.
type Handler func(ctx context.Context, delivery amqp.Delivery) error

// Consumer consumes one queue on a channel obtained from the shared
// connection manager.
type Consumer struct {
	config  ConsumerConfig
	channel *amqp.Channel
	wg      sync.WaitGroup

	Logger rabbitmq_common.Logger
}

// NewConsumer opens a channel, applies QoS and declares/binds the queue
// according to the configuration.
func NewConsumer(cfg ConsumerConfig, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("consumer: invalid base config: %w", err)
	}
	if !cfg.DeclareQueue && cfg.QueueName == "" {
		return nil, fmt.Errorf("consumer: queue name is required if DeclareQueue is false")
	}

	_, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel from manager: %w", err)
	}

	c := &Consumer{
		config:  cfg,
		channel: ch,
		Logger:  logger,
	}

	if cfg.PrefetchCount > 0 {
		if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("consumer: failed to set QoS: %w", err)
		}
	}

	if cfg.DeclareQueue {
		_, err := ch.QueueDeclare(
			cfg.QueueName,
			cfg.DurableQueue,
			cfg.AutoDeleteQueue,
			false, // exclusive
			false, // no-wait
			cfg.QueueArgs,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("consumer: failed to declare queue '%s': %w", cfg.QueueName, err)
		}
	}

	if cfg.ExchangeNameForBind != "" {
		err := ch.QueueBind(cfg.QueueName, cfg.RoutingKeyForBind, cfg.ExchangeNameForBind, false, nil)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("consumer: failed to bind queue '%s': %w", cfg.QueueName, err)
		}
	}

	return c, nil
}

// Start consumes deliveries until the context is cancelled or the
// delivery channel closes.
func (c *Consumer) Start(ctx context.Context, handler Handler) error {
	deliveries, err := c.channel.Consume(
		c.config.QueueName,
		c.config.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumer: failed to start consuming '%s': %w", c.config.QueueName, err)
	}

	c.Logger.Info("Consumer: started", "queue", c.config.QueueName)

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Consumer: context cancelled, stopping", "queue", c.config.QueueName)
			c.wg.Wait()
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				c.wg.Wait()
				return fmt.Errorf("consumer: delivery channel closed for queue '%s'", c.config.QueueName)
			}
			c.wg.Add(1)
			func() {
				defer c.wg.Done()
				if err := handler(ctx, delivery); err != nil {
					requeue := !delivery.Redelivered
					c.Logger.Error(err, "Consumer: handler failed",
						"queue", c.config.QueueName,
						"requeue", requeue,
					)
					_ = delivery.Nack(false, requeue)
					return
				}
				_ = delivery.Ack(false)
			}()
		}
	}
}

// Close closes the consumer's channel.
func (c *Consumer) Close() error {
	c.Logger.Debug("Consumer: closing...")
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return fmt.Errorf("consumer: failed to close channel: %w", err)
		}
		c.channel = nil
	}
	return nil
}
