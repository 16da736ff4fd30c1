package services

import (
	"database/sql"
	"fmt"
	"time"

	"carrental/internal/config"
	"carrental/internal/domain"
	"carrental/internal/domain/models"
	"carrental/internal/notifier"
	"carrental/internal/repositories"
	"carrental/internal/utils"

	"github.com/google/uuid"
)

// PaymentService settles bookings: it charges through the gateway, keeps the
// one-payment-per-booking rule, and cascades refunds back to the booking and
// the car availability flag.
type PaymentService struct {
	Payments  repositories.PaymentRepository
	Bookings  repositories.BookingRepository
	Users     repositories.UserRepository
	Gateway   Gateway
	Notifier  notifier.Notifier
	DB        *sql.DB
	RequestID string
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s PaymentService) gateway() Gateway {
	if s.Gateway != nil {
		return s.Gateway
	}
	return StubGateway{}
}

// Process charges the booking's total price. Any existing payment row for
// the booking, including a FAILED one, blocks the charge. A successful
// charge confirms the booking in the same transaction.
func (s PaymentService) Process(bookingID int64, method string, card CardDetails) (models.Payment, error) {
	if method == "" {
		return models.Payment{}, domain.ValidationError{Field: "payment_method", Msg: "payment method is required"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	booking, err := s.Bookings.GetByIDForUpdate(tx, bookingID)
	if err != nil {
		return models.Payment{}, err
	}

	exists, err := s.Payments.ExistsForBooking(tx, bookingID)
	if err != nil {
		return models.Payment{}, err
	}
	if exists {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "payment already exists for this booking"}
	}

	charged := s.gateway().Charge(method, card, booking.TotalPriceCents)

	payment := models.Payment{
		BookingID:     booking.ID,
		AmountCents:   booking.TotalPriceCents,
		Status:        models.PaymentCompleted,
		TransactionID: uuid.NewString(),
		PaymentDate:   time.Now().UTC(),
		PaymentMethod: method,
	}
	if !charged {
		payment.Status = models.PaymentFailed
	}

	payment.ID, err = s.Payments.Create(tx, payment)
	if err != nil {
		return models.Payment{}, err
	}

	if charged {
		if !booking.Status.CanTransitionTo(models.BookingConfirmed) {
			return models.Payment{}, domain.ConflictError{
				Resource: "booking",
				Msg:      fmt.Sprintf("cannot confirm booking in status %s", booking.Status),
			}
		}
		if err := s.Bookings.UpdateStatus(tx, booking.ID, models.BookingConfirmed); err != nil {
			return models.Payment{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}

	if charged {
		if user, err := s.Users.GetByID(booking.UserID); err == nil {
			notifyAsync(s.Notifier, s.RequestID, "payment", notifier.EventPaymentConfirmed, user.Email, fmt.Sprintf(
				"Amount: %s; Transaction: %s; Method: %s",
				utils.FormatAmount(payment.AmountCents), payment.TransactionID, payment.PaymentMethod,
			))
		} else {
			utils.LogEvent(s.RequestID, "payment", "notify", "skipping notification, user lookup failed: "+err.Error())
		}
	}

	return payment, nil
}

// Refund reverses a completed payment: payment -> REFUNDED, booking ->
// CANCELLED, car released, all in one transaction. A gateway refusal leaves
// every record untouched.
func (s PaymentService) Refund(paymentID int64) (models.Payment, error) {
	tx, err := s.db().Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	payment, err := s.Payments.GetByIDForUpdate(tx, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if payment.Status != models.PaymentCompleted {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "only completed payments can be refunded"}
	}

	if !s.gateway().Refund(payment.TransactionID, payment.AmountCents) {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "refund processing failed"}
	}

	if err := s.Payments.UpdateStatus(tx, payment.ID, models.PaymentRefunded); err != nil {
		return models.Payment{}, err
	}
	// Cascade: refund always cancels the booking, which releases the car.
	if err := s.Bookings.UpdateStatus(tx, payment.BookingID, models.BookingCancelled); err != nil {
		return models.Payment{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	payment.Status = models.PaymentRefunded

	if booking, err := s.Bookings.GetByID(payment.BookingID); err == nil {
		if user, err := s.Users.GetByID(booking.UserID); err == nil {
			notifyAsync(s.Notifier, s.RequestID, "payment", notifier.EventRefundProcessed, user.Email, fmt.Sprintf(
				"Amount: %s; Transaction: %s",
				utils.FormatAmount(payment.AmountCents), payment.TransactionID,
			))
		}
	}

	return payment, nil
}

func (s PaymentService) GetAll() ([]models.Payment, error) {
	return s.Payments.List()
}

func (s PaymentService) GetByID(id int64) (models.Payment, error) {
	return s.Payments.GetByID(id)
}

func (s PaymentService) GetByBookingID(bookingID int64) (models.Payment, error) {
	if _, err := s.Bookings.GetByID(bookingID); err != nil {
		return models.Payment{}, err
	}
	return s.Payments.GetByBookingID(bookingID)
}
