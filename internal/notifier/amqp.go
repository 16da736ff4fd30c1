package notifier

import (
	"encoding/json"
	"time"

	"github.com/streadway/amqp"
)

const notificationExchange = "rental.notifications"

// AMQPNotifier publishes notification events to a durable fanout exchange.
// A delivery worker consumes them out of process; this service only enqueues.
type AMQPNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func DialAMQP(url string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(notificationExchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPNotifier{conn: conn, ch: ch}, nil
}

func (n *AMQPNotifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}

func (n *AMQPNotifier) publish(eventType, email, details string) error {
	body, err := json.Marshal(Event{
		Type:    eventType,
		Email:   email,
		Details: details,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return n.ch.Publish(notificationExchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
}

func (n *AMQPNotifier) NotifyBookingConfirmed(email, details string) error {
	return n.publish(EventBookingConfirmed, email, details)
}

func (n *AMQPNotifier) NotifyPaymentConfirmed(email, details string) error {
	return n.publish(EventPaymentConfirmed, email, details)
}

func (n *AMQPNotifier) NotifyRefundProcessed(email, details string) error {
	return n.publish(EventRefundProcessed, email, details)
}
