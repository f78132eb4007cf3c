package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'user',
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_users_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	`
CREATE TABLE IF NOT EXISTS rides (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	driver_id VARCHAR(36) NOT NULL,
	origin VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL,
	departure_time DATETIME NOT NULL,
	fare DECIMAL(12,2) NOT NULL DEFAULT 0,
	currency CHAR(3) NOT NULL DEFAULT 'INR',
	max_passengers INT NOT NULL,
	available_seats INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_rides_route (origin, destination, departure_time),
	KEY idx_rides_driver (driver_id),
	CONSTRAINT chk_rides_seats CHECK (available_seats >= 0 AND max_passengers > 0)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	`
CREATE TABLE IF NOT EXISTS bookings (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	ride_id VARCHAR(36) NOT NULL,
	user_id VARCHAR(36) NOT NULL,
	passenger_count INT NOT NULL,
	total_price DECIMAL(12,2) NOT NULL DEFAULT 0,
	currency CHAR(3) NOT NULL DEFAULT 'INR',
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
	payment_method VARCHAR(50) NULL,
	special_requests TEXT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_bookings_ride (ride_id),
	KEY idx_bookings_user (user_id),
	CONSTRAINT fk_bookings_ride FOREIGN KEY (ride_id) REFERENCES rides (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
}

// EnsureSchema creates the tables the service needs when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range schema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
