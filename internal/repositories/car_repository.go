package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"carrental/internal/config"
	intdb "carrental/internal/db"
	"carrental/internal/domain"
	"carrental/internal/domain/models"
)

type CarRepository struct {
	DB *sql.DB
}

func (r CarRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const carColumns = `id, make, model, year, price_per_day_cents, available,
	COALESCE(image_url,''), COALESCE(license_plate,''), COALESCE(color,''),
	COALESCE(transmission,''), COALESCE(seats,0), COALESCE(fuel_type,'')`

func scanCar(s interface{ Scan(...any) error }) (models.Car, error) {
	var c models.Car
	err := s.Scan(
		&c.ID, &c.Make, &c.Model, &c.Year, &c.PricePerDayCents, &c.Available,
		&c.ImageURL, &c.LicensePlate, &c.Color,
		&c.Transmission, &c.Seats, &c.FuelType,
	)
	return c, err
}

func (r CarRepository) GetByID(id int64) (models.Car, error) {
	return r.getByID(r.db(), id, "")
}

// GetByIDForUpdate locks the car row for the duration of the surrounding
// transaction; admission and cancellation serialize per car on this lock.
func (r CarRepository) GetByIDForUpdate(q intdb.Queryer, id int64) (models.Car, error) {
	return r.getByID(q, id, " FOR UPDATE")
}

func (r CarRepository) getByID(q intdb.Queryer, id int64, suffix string) (models.Car, error) {
	c, err := scanCar(q.QueryRow(`SELECT `+carColumns+` FROM cars WHERE id=? LIMIT 1`+suffix, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Car{}, domain.NotFoundError{Resource: "car"}
		}
		return models.Car{}, domain.InternalError{Err: err}
	}
	return c, nil
}

func (r CarRepository) List() ([]models.Car, error) {
	return r.list(`SELECT ` + carColumns + ` FROM cars ORDER BY id`)
}

func (r CarRepository) ListAvailable() ([]models.Car, error) {
	return r.list(`SELECT ` + carColumns + ` FROM cars WHERE available=1 ORDER BY id`)
}

// Search applies optional make/model substring and price/availability filters.
func (r CarRepository) Search(f models.CarFilter) ([]models.Car, error) {
	where := []string{}
	args := []any{}
	if s := strings.TrimSpace(f.Make); s != "" {
		where = append(where, "LOWER(make) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(f.Model); s != "" {
		where = append(where, "LOWER(model) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if f.MinPriceCents > 0 {
		where = append(where, "price_per_day_cents >= ?")
		args = append(args, f.MinPriceCents)
	}
	if f.MaxPriceCents > 0 {
		where = append(where, "price_per_day_cents <= ?")
		args = append(args, f.MaxPriceCents)
	}
	if f.Available != nil {
		where = append(where, "available = ?")
		args = append(args, *f.Available)
	}

	query := `SELECT ` + carColumns + ` FROM cars`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`
	return r.list(query, args...)
}

func (r CarRepository) list(query string, args ...any) ([]models.Car, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (r CarRepository) Create(c models.Car) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO cars (make, model, year, price_per_day_cents, available,
			image_url, license_plate, color, transmission, seats, fuel_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Make, c.Model, c.Year, c.PricePerDayCents, c.Available,
		intdb.NullIfEmpty(c.ImageURL), intdb.NullIfEmpty(c.LicensePlate), intdb.NullIfEmpty(c.Color),
		intdb.NullIfEmpty(c.Transmission), c.Seats, intdb.NullIfEmpty(c.FuelType))
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r CarRepository) Update(c models.Car) error {
	res, err := r.db().Exec(`
		UPDATE cars
		SET make=?, model=?, year=?, price_per_day_cents=?, available=?,
			image_url=?, license_plate=?, color=?, transmission=?, seats=?, fuel_type=?
		WHERE id=?`,
		c.Make, c.Model, c.Year, c.PricePerDayCents, c.Available,
		intdb.NullIfEmpty(c.ImageURL), intdb.NullIfEmpty(c.LicensePlate), intdb.NullIfEmpty(c.Color),
		intdb.NullIfEmpty(c.Transmission), c.Seats, intdb.NullIfEmpty(c.FuelType), c.ID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "car"}
	}
	return nil
}

func (r CarRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM cars WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "car"}
	}
	return nil
}

// SetAvailable flips the cached availability flag inside a transaction.
func (r CarRepository) SetAvailable(q intdb.Queryer, id int64, available bool) error {
	if _, err := q.Exec(`UPDATE cars SET available=? WHERE id=?`, available, id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
