package config

import "database/sql"

// EnsureSchema creates the tables this service owns. The UNIQUE KEY on
// payments.booking_id is load-bearing: it enforces one-payment-per-booking
// even if two concurrent charges pass the existence pre-check.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS cars (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			make VARCHAR(100) NOT NULL,
			model VARCHAR(100) NOT NULL,
			year INT NOT NULL,
			price_per_day_cents BIGINT NOT NULL,
			available TINYINT(1) NOT NULL DEFAULT 1,
			image_url VARCHAR(500) NULL,
			license_plate VARCHAR(50) NULL,
			color VARCHAR(50) NULL,
			transmission VARCHAR(50) NULL,
			seats INT NULL,
			fuel_type VARCHAR(50) NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			car_id BIGINT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			total_price_cents BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_car_dates (car_id, start_date, end_date),
			KEY idx_user (user_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			amount_cents BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL,
			transaction_id VARCHAR(64) NOT NULL,
			payment_date DATETIME NOT NULL,
			payment_method VARCHAR(50) NOT NULL,
			UNIQUE KEY uniq_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}
	for _, ddl := range stmts {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
