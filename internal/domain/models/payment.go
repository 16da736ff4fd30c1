package models

import (
	"fmt"
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	s := PaymentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown payment status %q", raw)
	}
	return s, nil
}

type Payment struct {
	ID            int64
	BookingID     int64
	AmountCents   int64
	Status        PaymentStatus
	TransactionID string
	PaymentDate   time.Time
	PaymentMethod string
}
