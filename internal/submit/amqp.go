package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/twoloonies/loonies/internal/config"
	"github.com/twoloonies/loonies/internal/model"
)

const publishTimeout = 5 * time.Second

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// AMQPSink publishes each submission as a persistent JSON message.
type AMQPSink struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	pub      publisher
	exchange string
	queue    string
	log      logrus.FieldLogger
}

// DialAMQP connects to the broker and declares a durable direct exchange with
// a queue bound under its own name.
func DialAMQP(cfg config.AMQPConfig, log logrus.FieldLogger) (*AMQPSink, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	s := newAMQPSink(channel, cfg.Exchange, cfg.Queue, log)
	s.conn = conn
	s.channel = channel

	if err := s.setup(); err != nil {
		s.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return s, nil
}

func newAMQPSink(pub publisher, exchange, queue string, log logrus.FieldLogger) *AMQPSink {
	return &AMQPSink{
		pub:      pub,
		exchange: exchange,
		queue:    queue,
		log:      log.WithField("component", "submit"),
	}
}

func (s *AMQPSink) setup() error {
	err := s.channel.ExchangeDeclare(
		s.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = s.channel.QueueDeclare(
		s.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := s.channel.QueueBind(s.queue, s.queue, s.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (s *AMQPSink) Deliver(ctx context.Context, doc model.Submission) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = s.pub.PublishWithContext(ctx,
		s.exchange, // exchange
		s.queue,    // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    doc.SubmittedAt,
			Type:         "loonies.submission.v1",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish submission: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"exchange": s.exchange,
		"queue":    s.queue,
		"entries":  len(doc.Entries),
	}).Info("published submission")
	return nil
}

// Close releases the channel and connection.
func (s *AMQPSink) Close() error {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
