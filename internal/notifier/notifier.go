// Package notifier emits best-effort notification events for booking and
// payment lifecycle transitions. Delivery is fire-and-forget: callers log
// failures and never let them affect the primary operation.
package notifier

import (
	"time"

	"carrental/internal/utils"
)

const (
	EventBookingConfirmed = "booking_confirmed"
	EventPaymentConfirmed = "payment_confirmed"
	EventRefundProcessed  = "refund_processed"
)

type Event struct {
	Type    string    `json:"type"`
	Email   string    `json:"email"`
	Details string    `json:"details"`
	SentAt  time.Time `json:"sent_at"`
}

type Notifier interface {
	NotifyBookingConfirmed(email, details string) error
	NotifyPaymentConfirmed(email, details string) error
	NotifyRefundProcessed(email, details string) error
}

// LogNotifier is the fallback when no broker is configured: it records the
// event in the log and reports success.
type LogNotifier struct{}

func (LogNotifier) NotifyBookingConfirmed(email, details string) error {
	utils.LogEvent("", "notifier", EventBookingConfirmed, "to="+email+" "+details)
	return nil
}

func (LogNotifier) NotifyPaymentConfirmed(email, details string) error {
	utils.LogEvent("", "notifier", EventPaymentConfirmed, "to="+email+" "+details)
	return nil
}

func (LogNotifier) NotifyRefundProcessed(email, details string) error {
	utils.LogEvent("", "notifier", EventRefundProcessed, "to="+email+" "+details)
	return nil
}

// FromEnv returns an AMQP notifier when a broker URL is configured, falling
// back to log-only delivery otherwise (including when the dial fails).
func FromEnv(amqpURL string) Notifier {
	if amqpURL == "" {
		return LogNotifier{}
	}
	n, err := DialAMQP(amqpURL)
	if err != nil {
		utils.LogEvent("", "notifier", "dial", "AMQP unavailable, using log notifier: "+err.Error())
		return LogNotifier{}
	}
	return n
}
