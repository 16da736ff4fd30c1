package services

import (
	"carrental/internal/notifier"
	"carrental/internal/utils"
)

// notifyAsync fires a notification in the background. Failures are logged
// and swallowed: the primary operation has already committed.
func notifyAsync(n notifier.Notifier, requestID, module, event, email, details string) {
	if n == nil {
		return
	}
	go func() {
		var err error
		switch event {
		case notifier.EventBookingConfirmed:
			err = n.NotifyBookingConfirmed(email, details)
		case notifier.EventPaymentConfirmed:
			err = n.NotifyPaymentConfirmed(email, details)
		case notifier.EventRefundProcessed:
			err = n.NotifyRefundProcessed(email, details)
		}
		if err != nil {
			utils.LogEvent(requestID, module, "notify", event+" notification failed: "+err.Error())
		}
	}()
}
