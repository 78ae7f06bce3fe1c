// Package publisher pushes anomaly flags to a RabbitMQ topic exchange, one
// JSON message per flag routed by severity.
package publisher

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	errwrap "github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

const routingKeyPrefix = "anomaly."

type Publisher interface {
	PublishAnomalies(ctx context.Context, runID string, flags []entity.AnomalyFlag) error
	Close() error
}

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AMQPPublisher struct {
	conn     io.Closer
	ch       channel
	exchange string
	logger   *zap.Logger
}

// Dial connects to url and declares exchange as a durable topic exchange.
func Dial(url, exchange string, logger *zap.Logger) (*AMQPPublisher, error) {
	funcName := "publisher.Dial"
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errwrap.Wrap(err, funcName)
	}
	p, err := newAMQPPublisher(ch, conn, exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func newAMQPPublisher(ch channel, conn io.Closer, exchange string, logger *zap.Logger) (*AMQPPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, errwrap.Wrap(err, "publisher.ExchangeDeclare")
	}
	return &AMQPPublisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		logger:   helper.OrNop(logger),
	}, nil
}

// RoutingKey is anomaly.<severity>.
func RoutingKey(flag entity.AnomalyFlag) string {
	return routingKeyPrefix + flag.Severity
}

// PublishAnomalies sends every flag and stops at the first failure.
func (p *AMQPPublisher) PublishAnomalies(ctx context.Context, runID string, flags []entity.AnomalyFlag) error {
	funcName := "AMQPPublisher.PublishAnomalies"
	for i := range flags {
		if err := helper.CheckDeadline(ctx); err != nil {
			return errwrap.Wrap(err, funcName)
		}

		flag := flags[i]
		flag.RunID = runID
		body, err := json.Marshal(flag)
		if err != nil {
			return errwrap.Wrap(err, funcName)
		}

		msg := amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			Headers:      amqp.Table{"run_id": runID},
			Body:         body,
		}
		if err := p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(flag), false, false, msg); err != nil {
			return errwrap.Wrap(err, funcName)
		}
		p.logger.Debug("anomaly published",
			zap.String("run_id", runID),
			zap.String("pattern_key", flag.PatternKey),
			zap.String("severity", flag.Severity))
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	chErr := p.ch.Close()
	var connErr error
	if p.conn != nil {
		connErr = p.conn.Close()
	}
	if chErr != nil {
		return errwrap.Wrap(chErr, "AMQPPublisher.Close")
	}
	return errwrap.Wrap(connErr, "AMQPPublisher.Close")
}

// Noop drops every flag. It stands in when no broker is configured.
type Noop struct{}

func (Noop) PublishAnomalies(context.Context, string, []entity.AnomalyFlag) error { return nil }

func (Noop) Close() error { return nil }
