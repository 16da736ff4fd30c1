package services

import (
	"errors"
	"testing"
	"time"

	"carrental/internal/domain"
	"carrental/internal/domain/models"
	"carrental/internal/repositories"
	"carrental/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
)

// chanNotifier records delivered events so tests can wait for the
// fire-and-forget goroutine.
type chanNotifier struct {
	events chan string
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{events: make(chan string, 4)}
}

func (n *chanNotifier) NotifyBookingConfirmed(email, details string) error {
	n.events <- "booking_confirmed:" + email
	return nil
}

func (n *chanNotifier) NotifyPaymentConfirmed(email, details string) error {
	n.events <- "payment_confirmed:" + email
	return nil
}

func (n *chanNotifier) NotifyRefundProcessed(email, details string) error {
	n.events <- "refund_processed:" + email
	return nil
}

func (n *chanNotifier) wait(t *testing.T) string {
	t.Helper()
	select {
	case e := <-n.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return ""
	}
}

func userRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
		AddRow(1, "Alice", "alice@example.com", "x", models.RoleUser, time.Now())
}

func carRow(available bool, priceCents int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "make", "model", "year", "price_per_day_cents", "available",
		"image_url", "license_plate", "color", "transmission", "seats", "fuel_type",
	}).AddRow(2, "Toyota", "Corolla", 2022, priceCents, available, "", "", "", "", 5, "")
}

func bookingDetailRow(id int64, status models.BookingStatus, start, end time.Time, totalCents int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"b.id", "b.user_id", "b.car_id", "b.start_date", "b.end_date", "b.total_price_cents", "b.status", "b.created_at",
		"u.id", "u.name", "u.email", "u.role",
		"c.id", "c.make", "c.model", "c.year", "c.price_per_day_cents", "c.available",
		"c.image_url", "c.license_plate", "c.color", "c.transmission", "c.seats", "c.fuel_type",
	}).AddRow(
		id, 1, 2, start, end, totalCents, string(status), time.Now(),
		1, "Alice", "alice@example.com", models.RoleUser,
		2, "Toyota", "Corolla", 2022, 5000, true, "", "", "", "", 5, "",
	)
}

func futureRange(t *testing.T, startOffset, endOffset int) (time.Time, time.Time) {
	t.Helper()
	start := utils.Today().AddDate(0, 0, startOffset)
	return start, utils.Today().AddDate(0, 0, endOffset)
}

func TestCreateBookingAdmitsAndPrices(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start, end := futureRange(t, 10, 12) // 3 inclusive days
	wantTotal := int64(5000 * 3)

	mock.ExpectQuery("FROM users WHERE email").WithArgs("alice@example.com").
		WillReturnRows(userRow())
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM cars WHERE id=\? LIMIT 1 FOR UPDATE`).WithArgs(int64(2)).
		WillReturnRows(carRow(true, 5000))
	mock.ExpectQuery(`SELECT COUNT\(\*\)[\s\S]*FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(1), int64(2), start, end, wantTotal, string(models.BookingPending)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(7)).
		WillReturnRows(bookingDetailRow(7, models.BookingPending, start, end, wantTotal))

	notif := newChanNotifier()
	svc := BookingService{
		Bookings: repositories.BookingRepository{DB: db},
		Cars:     repositories.CarRepository{DB: db},
		Users:    repositories.UserRepository{DB: db},
		Notifier: notif,
		DB:       db,
	}

	detail, err := svc.Create("alice@example.com", CreateBookingInput{
		CarID:     2,
		StartDate: utils.FormatDate(start),
		EndDate:   utils.FormatDate(end),
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if detail.Booking.TotalPriceCents != wantTotal {
		t.Fatalf("total = %d, want %d", detail.Booking.TotalPriceCents, wantTotal)
	}
	if detail.Booking.Status != models.BookingPending {
		t.Fatalf("status = %s, want PENDING", detail.Booking.Status)
	}
	if got := notif.wait(t); got != "booking_confirmed:alice@example.com" {
		t.Fatalf("notification = %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start, end := futureRange(t, 10, 12)

	mock.ExpectQuery("FROM users WHERE email").WillReturnRows(userRow())
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM cars WHERE id=\? LIMIT 1 FOR UPDATE`).
		WillReturnRows(carRow(true, 5000))
	mock.ExpectQuery(`SELECT COUNT\(\*\)[\s\S]*FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	svc := BookingService{
		Bookings: repositories.BookingRepository{DB: db},
		Cars:     repositories.CarRepository{DB: db},
		Users:    repositories.UserRepository{DB: db},
		DB:       db,
	}

	_, err = svc.Create("alice@example.com", CreateBookingInput{
		CarID:     2,
		StartDate: utils.FormatDate(start),
		EndDate:   utils.FormatDate(end),
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsUnavailableCar(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start, end := futureRange(t, 5, 6)

	mock.ExpectQuery("FROM users WHERE email").WillReturnRows(userRow())
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM cars WHERE id=\? LIMIT 1 FOR UPDATE`).
		WillReturnRows(carRow(false, 5000))
	mock.ExpectRollback()

	svc := BookingService{
		Bookings: repositories.BookingRepository{DB: db},
		Cars:     repositories.CarRepository{DB: db},
		Users:    repositories.UserRepository{DB: db},
		DB:       db,
	}

	_, err = svc.Create("alice@example.com", CreateBookingInput{
		CarID:     2,
		StartDate: utils.FormatDate(start),
		EndDate:   utils.FormatDate(end),
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingDateValidation(t *testing.T) {
	svc := BookingService{} // validation fails before any DB access

	cases := []struct {
		name       string
		start, end string
	}{
		{"garbage start", "01/07/2025", "2099-07-05"},
		{"garbage end", "2099-07-01", "later"},
		{"start after end", "2099-07-05", "2099-07-01"},
		{"start today", utils.FormatDate(utils.Today()), utils.FormatDate(utils.Today().AddDate(0, 0, 2))},
		{"end in the past", "2020-01-01", "2020-01-03"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Create("alice@example.com", CreateBookingInput{
				CarID:     2,
				StartDate: c.start,
				EndDate:   c.end,
			})
			var ve domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start, end := futureRange(t, 3, 4)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings WHERE id=\? LIMIT 1 FOR UPDATE`).WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "car_id", "start_date", "end_date", "total_price_cents", "status", "created_at",
		}).AddRow(9, 1, 2, start, end, 5000, string(models.BookingCancelled), time.Now()))
	mock.ExpectRollback()

	svc := BookingService{Bookings: repositories.BookingRepository{DB: db}, DB: db}

	_, err = svc.UpdateStatus(9, models.BookingConfirmed)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusCancelReleasesCar(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start, end := futureRange(t, 3, 4)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings WHERE id=\? LIMIT 1 FOR UPDATE`).WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "car_id", "start_date", "end_date", "total_price_cents", "status", "created_at",
		}).AddRow(9, 1, 2, start, end, 5000, string(models.BookingConfirmed), time.Now()))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(string(models.BookingCancelled), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE cars SET available=1").WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(9)).
		WillReturnRows(bookingDetailRow(9, models.BookingCancelled, start, end, 5000))

	svc := BookingService{Bookings: repositories.BookingRepository{DB: db}, DB: db}

	detail, err := svc.UpdateStatus(9, models.BookingCancelled)
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if detail.Booking.Status != models.BookingCancelled {
		t.Fatalf("status = %s, want CANCELLED", detail.Booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
