package repositories

import (
	"testing"
	"time"

	"carrental/internal/domain"
	"carrental/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestPaymentCreateDuplicateKeyIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'uniq_booking'"})

	repo := PaymentRepository{DB: db}
	_, err = repo.Create(db, models.Payment{
		BookingID:     7,
		AmountCents:   15000,
		Status:        models.PaymentCompleted,
		TransactionID: "tx-123",
		PaymentDate:   time.Now(),
		PaymentMethod: "CREDIT_CARD",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestPaymentExistsForBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments WHERE booking_id`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments WHERE booking_id`).WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := PaymentRepository{DB: db}
	if got, err := repo.ExistsForBooking(db, 7); err != nil || !got {
		t.Fatalf("ExistsForBooking(7) = %v, %v; want true", got, err)
	}
	if got, err := repo.ExistsForBooking(db, 8); err != nil || got {
		t.Fatalf("ExistsForBooking(8) = %v, %v; want false", got, err)
	}
}
