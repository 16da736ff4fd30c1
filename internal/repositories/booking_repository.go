package repositories

import (
	"database/sql"
	"errors"
	"time"

	"carrental/internal/config"
	intdb "carrental/internal/db"
	"carrental/internal/domain"
	"carrental/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const bookingColumns = `id, user_id, car_id, start_date, end_date, total_price_cents, status, created_at`

func scanBooking(s interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var status string
	err := s.Scan(&b.ID, &b.UserID, &b.CarID, &b.StartDate, &b.EndDate, &b.TotalPriceCents, &status, &b.CreatedAt)
	b.Status = models.BookingStatus(status)
	return b, err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	return r.getByID(r.db(), id, "")
}

// GetByIDForUpdate locks the booking row for the surrounding transaction so
// status transitions and payment admission serialize per booking.
func (r BookingRepository) GetByIDForUpdate(q intdb.Queryer, id int64) (models.Booking, error) {
	return r.getByID(q, id, " FOR UPDATE")
}

func (r BookingRepository) getByID(q intdb.Queryer, id int64, suffix string) (models.Booking, error) {
	b, err := scanBooking(q.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`+suffix, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// CountOverlapping counts non-cancelled bookings for the car whose inclusive
// [start_date,end_date] range intersects [start,end]. Two ranges intersect
// exactly when each starts no later than the other ends.
func (r BookingRepository) CountOverlapping(q intdb.Queryer, carID int64, start, end time.Time) (int, error) {
	var n int
	err := q.QueryRow(`
		SELECT COUNT(*)
		FROM bookings
		WHERE car_id = ?
		  AND status <> ?
		  AND start_date <= ?
		  AND end_date >= ?`,
		carID, string(models.BookingCancelled), end, start).Scan(&n)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

func (r BookingRepository) Create(q intdb.Queryer, b models.Booking) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO bookings (user_id, car_id, start_date, end_date, total_price_cents, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserID, b.CarID, b.StartDate, b.EndDate, b.TotalPriceCents, string(b.Status))
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// UpdateStatus writes the new status and keeps the car availability cache in
// sync: entering CANCELLED releases the car. This is the single place that
// performs the cancellation cascade, so every transition path shares it.
func (r BookingRepository) UpdateStatus(q intdb.Queryer, id int64, status models.BookingStatus) error {
	res, err := q.Exec(`UPDATE bookings SET status=? WHERE id=?`, string(status), id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Row may exist with the same status already; treat as applied.
		var exists int
		if err := q.QueryRow(`SELECT COUNT(*) FROM bookings WHERE id=?`, id).Scan(&exists); err != nil {
			return domain.InternalError{Err: err}
		}
		if exists == 0 {
			return domain.NotFoundError{Resource: "booking"}
		}
	}
	if status == models.BookingCancelled {
		if _, err := q.Exec(`
			UPDATE cars SET available=1
			WHERE id = (SELECT car_id FROM bookings WHERE id=?)`, id); err != nil {
			return domain.InternalError{Err: err}
		}
	}
	return nil
}

func (r BookingRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

const bookingDetailSelect = `
	SELECT b.id, b.user_id, b.car_id, b.start_date, b.end_date, b.total_price_cents, b.status, b.created_at,
	       u.id, u.name, u.email, u.role,
	       c.id, c.make, c.model, c.year, c.price_per_day_cents, c.available,
	       COALESCE(c.image_url,''), COALESCE(c.license_plate,''), COALESCE(c.color,''),
	       COALESCE(c.transmission,''), COALESCE(c.seats,0), COALESCE(c.fuel_type,'')
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	JOIN cars c ON c.id = b.car_id`

func scanBookingDetail(s interface{ Scan(...any) error }) (models.BookingDetail, error) {
	var d models.BookingDetail
	var status string
	err := s.Scan(
		&d.Booking.ID, &d.Booking.UserID, &d.Booking.CarID,
		&d.Booking.StartDate, &d.Booking.EndDate, &d.Booking.TotalPriceCents, &status, &d.Booking.CreatedAt,
		&d.User.ID, &d.User.Name, &d.User.Email, &d.User.Role,
		&d.Car.ID, &d.Car.Make, &d.Car.Model, &d.Car.Year, &d.Car.PricePerDayCents, &d.Car.Available,
		&d.Car.ImageURL, &d.Car.LicensePlate, &d.Car.Color,
		&d.Car.Transmission, &d.Car.Seats, &d.Car.FuelType,
	)
	d.Booking.Status = models.BookingStatus(status)
	return d, err
}

func (r BookingRepository) GetDetailByID(id int64) (models.BookingDetail, error) {
	d, err := scanBookingDetail(r.db().QueryRow(bookingDetailSelect+` WHERE b.id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetail{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}
	return d, nil
}

func (r BookingRepository) ListDetails() ([]models.BookingDetail, error) {
	return r.listDetails(bookingDetailSelect + ` ORDER BY b.id`)
}

func (r BookingRepository) ListDetailsByUser(userID int64) ([]models.BookingDetail, error) {
	return r.listDetails(bookingDetailSelect+` WHERE b.user_id=? ORDER BY b.id`, userID)
}

func (r BookingRepository) ListDetailsByCar(carID int64) ([]models.BookingDetail, error) {
	return r.listDetails(bookingDetailSelect+` WHERE b.car_id=? ORDER BY b.id`, carID)
}

func (r BookingRepository) listDetails(query string, args ...any) ([]models.BookingDetail, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}
