package repositories

import (
	"database/sql"
	"errors"

	"carrental/internal/config"
	intdb "carrental/internal/db"
	"carrental/internal/domain"
	"carrental/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const paymentColumns = `id, booking_id, amount_cents, status, transaction_id, payment_date, payment_method`

func scanPayment(s interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	var status string
	err := s.Scan(&p.ID, &p.BookingID, &p.AmountCents, &status, &p.TransactionID, &p.PaymentDate, &p.PaymentMethod)
	p.Status = models.PaymentStatus(status)
	return p, err
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	return r.getByID(r.db(), id, "")
}

func (r PaymentRepository) GetByIDForUpdate(q intdb.Queryer, id int64) (models.Payment, error) {
	return r.getByID(q, id, " FOR UPDATE")
}

func (r PaymentRepository) getByID(q intdb.Queryer, id int64, suffix string) (models.Payment, error) {
	p, err := scanPayment(q.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id=? LIMIT 1`+suffix, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return models.Payment{}, domain.InternalError{Err: err}
	}
	return p, nil
}

func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, error) {
	p, err := scanPayment(r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE booking_id=? LIMIT 1`, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return models.Payment{}, domain.InternalError{Err: err}
	}
	return p, nil
}

// ExistsForBooking reports whether any payment row, regardless of status,
// exists for the booking. One payment per booking is absolute.
func (r PaymentRepository) ExistsForBooking(q intdb.Queryer, bookingID int64) (bool, error) {
	var n int
	if err := q.QueryRow(`SELECT COUNT(*) FROM payments WHERE booking_id=?`, bookingID).Scan(&n); err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// Create inserts the payment. The UNIQUE KEY on booking_id backs up the
// existence pre-check; a duplicate insert surfaces as ConflictError.
func (r PaymentRepository) Create(q intdb.Queryer, p models.Payment) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO payments (booking_id, amount_cents, status, transaction_id, payment_date, payment_method)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.BookingID, p.AmountCents, string(p.Status), p.TransactionID, p.PaymentDate, p.PaymentMethod)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, domain.ConflictError{Resource: "payment", Msg: "payment already exists for this booking"}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r PaymentRepository) UpdateStatus(q intdb.Queryer, id int64, status models.PaymentStatus) error {
	if _, err := q.Exec(`UPDATE payments SET status=? WHERE id=?`, string(status), id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r PaymentRepository) List() ([]models.Payment, error) {
	rows, err := r.db().Query(`SELECT ` + paymentColumns + ` FROM payments ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}
