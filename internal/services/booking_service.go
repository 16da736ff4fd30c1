package services

import (
	"database/sql"
	"fmt"

	"carrental/internal/config"
	"carrental/internal/domain"
	"carrental/internal/domain/models"
	"carrental/internal/notifier"
	"carrental/internal/repositories"
	"carrental/internal/utils"
)

// BookingService is the booking admission and lifecycle engine: it decides
// whether a reservation may be admitted, computes the price, and drives
// status transitions together with the car availability cascade.
type BookingService struct {
	Bookings  repositories.BookingRepository
	Cars      repositories.CarRepository
	Users     repositories.UserRepository
	Notifier  notifier.Notifier
	DB        *sql.DB
	RequestID string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

type CreateBookingInput struct {
	CarID     int64
	StartDate string
	EndDate   string
}

// Create admits a new booking for the authenticated user. The overlap check
// and insert run in one transaction holding the car row lock, so two
// concurrent admissions for the same car cannot both pass the check.
func (s BookingService) Create(userEmail string, in CreateBookingInput) (models.BookingDetail, error) {
	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return models.BookingDetail{}, domain.ValidationError{Field: "start_date", Msg: "must be a valid YYYY-MM-DD date", Err: err}
	}
	end, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return models.BookingDetail{}, domain.ValidationError{Field: "end_date", Msg: "must be a valid YYYY-MM-DD date", Err: err}
	}
	if start.After(end) {
		return models.BookingDetail{}, domain.ValidationError{Field: "start_date", Msg: "start date must be on or before end date"}
	}
	today := utils.Today()
	if !start.After(today) {
		return models.BookingDetail{}, domain.ValidationError{Field: "start_date", Msg: "start date must be in the future"}
	}
	if !end.After(today) {
		return models.BookingDetail{}, domain.ValidationError{Field: "end_date", Msg: "end date must be in the future"}
	}

	user, err := s.Users.GetByEmail(userEmail)
	if err != nil {
		return models.BookingDetail{}, err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	car, err := s.Cars.GetByIDForUpdate(tx, in.CarID)
	if err != nil {
		return models.BookingDetail{}, err
	}
	if !car.Available {
		return models.BookingDetail{}, domain.ConflictError{Resource: "car", Msg: "car is not available for booking"}
	}

	overlapping, err := s.Bookings.CountOverlapping(tx, car.ID, start, end)
	if err != nil {
		return models.BookingDetail{}, err
	}
	if overlapping > 0 {
		return models.BookingDetail{}, domain.ConflictError{Resource: "booking", Msg: "car is already booked for the selected dates"}
	}

	days := utils.InclusiveDays(start, end)
	booking := models.Booking{
		UserID:          user.ID,
		CarID:           car.ID,
		StartDate:       start,
		EndDate:         end,
		TotalPriceCents: car.PricePerDayCents * days,
		Status:          models.BookingPending,
	}
	booking.ID, err = s.Bookings.Create(tx, booking)
	if err != nil {
		return models.BookingDetail{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}

	// Booking is durable at this point; notification is best-effort.
	notifyAsync(s.Notifier, s.RequestID, "booking", notifier.EventBookingConfirmed, user.Email, fmt.Sprintf(
		"Car: %s %s; Dates: %s to %s; Total: %s",
		car.Make, car.Model,
		utils.FormatDate(start), utils.FormatDate(end),
		utils.FormatAmount(booking.TotalPriceCents),
	))

	detail, err := s.Bookings.GetDetailByID(booking.ID)
	if err != nil {
		return models.BookingDetail{}, err
	}
	return detail, nil
}

// UpdateStatus applies an explicit status transition. Transitions outside the
// table (PENDING -> CONFIRMED|CANCELLED, CONFIRMED -> CANCELLED) are
// rejected; cancelling releases the car inside the same transaction.
func (s BookingService) UpdateStatus(id int64, next models.BookingStatus) (models.BookingDetail, error) {
	if !next.Valid() {
		return models.BookingDetail{}, domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	booking, err := s.Bookings.GetByIDForUpdate(tx, id)
	if err != nil {
		return models.BookingDetail{}, err
	}
	if !booking.Status.CanTransitionTo(next) {
		return models.BookingDetail{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, next),
		}
	}
	if err := s.Bookings.UpdateStatus(tx, id, next); err != nil {
		return models.BookingDetail{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}

	return s.Bookings.GetDetailByID(id)
}

// Delete removes a booking unconditionally: no availability restore and no
// payment cascade. Administrative use only.
func (s BookingService) Delete(id int64) error {
	return s.Bookings.Delete(id)
}

func (s BookingService) GetAll() ([]models.BookingDetail, error) {
	return s.Bookings.ListDetails()
}

func (s BookingService) GetByID(id int64) (models.BookingDetail, error) {
	return s.Bookings.GetDetailByID(id)
}

func (s BookingService) GetByUser(email string) ([]models.BookingDetail, error) {
	user, err := s.Users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	return s.Bookings.ListDetailsByUser(user.ID)
}

func (s BookingService) GetByCar(carID int64) ([]models.BookingDetail, error) {
	if _, err := s.Cars.GetByID(carID); err != nil {
		return nil, err
	}
	return s.Bookings.ListDetailsByCar(carID)
}
