package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "github.com/devteam-creator/hushryd-app-sub001/internal/config"
)

// RideSales aggregates a ride's bookings. Cancelled bookings count toward
// Bookings but not toward SeatsSold or Revenue.
type RideSales struct {
	RideID         string    `json:"rideId"`
	DriverID       string    `json:"driverId"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	Currency       string    `json:"currency"`
	MaxPassengers  int       `json:"maxPassengers"`
	AvailableSeats int       `json:"availableSeats"`
	SeatsSold      int       `json:"seatsSold"`
	Revenue        float64   `json:"revenue"`
	Bookings       int       `json:"bookings"`
}

type RideSalesFilter struct {
	DriverID string
	From     time.Time
	To       time.Time
}

type ReportRepo struct {
	DB *sql.DB
}

func (r ReportRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ReportRepo) RideSales(ctx context.Context, f RideSalesFilter) ([]RideSales, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.DriverID != "" {
		where = append(where, "r.driver_id = ?")
		args = append(args, f.DriverID)
	}
	if !f.From.IsZero() {
		where = append(where, "r.departure_time >= ?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "r.departure_time < ?")
		args = append(args, f.To)
	}

	query := `
		SELECT r.id, r.driver_id, r.origin, r.destination, r.departure_time, r.currency,
			r.max_passengers, r.available_seats,
			COALESCE(SUM(CASE WHEN b.status <> 'cancelled' THEN b.passenger_count ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN b.status <> 'cancelled' THEN b.total_price ELSE 0 END), 0),
			COUNT(b.id)
		FROM rides r
		LEFT JOIN bookings b ON b.ride_id = r.id
		WHERE ` + strings.Join(where, " AND ") + `
		GROUP BY r.id, r.driver_id, r.origin, r.destination, r.departure_time, r.currency,
			r.max_passengers, r.available_seats
		ORDER BY r.departure_time ASC`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ride sales report: %w", err)
	}
	defer rows.Close()

	out := []RideSales{}
	for rows.Next() {
		var s RideSales
		if err := rows.Scan(
			&s.RideID,
			&s.DriverID,
			&s.Origin,
			&s.Destination,
			&s.DepartureTime,
			&s.Currency,
			&s.MaxPassengers,
			&s.AvailableSeats,
			&s.SeatsSold,
			&s.Revenue,
			&s.Bookings,
		); err != nil {
			return out, fmt.Errorf("scan ride sales: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
