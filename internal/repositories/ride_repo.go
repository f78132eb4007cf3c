package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "github.com/devteam-creator/hushryd-app-sub001/internal/config"
	intdb "github.com/devteam-creator/hushryd-app-sub001/internal/db"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
)

const rideColumns = `id, driver_id, origin, destination, departure_time, fare, currency,
	max_passengers, available_seats, status, created_at, updated_at`

type RideRepo struct {
	DB *sql.DB
}

func (r RideRepo) q(q intdb.Querier) intdb.Querier {
	if q != nil {
		return q
	}
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanRide(row interface{ Scan(...any) error }) (models.Ride, error) {
	var out models.Ride
	var status string
	err := row.Scan(
		&out.ID,
		&out.DriverID,
		&out.Origin,
		&out.Destination,
		&out.DepartureTime,
		&out.Fare,
		&out.Currency,
		&out.MaxPassengers,
		&out.AvailableSeats,
		&status,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	out.Status = models.RideStatus(status)
	return out, err
}

func (r RideRepo) Create(ctx context.Context, q intdb.Querier, ride models.Ride) error {
	_, err := r.q(q).ExecContext(ctx, `
		INSERT INTO rides (id, driver_id, origin, destination, departure_time, fare, currency,
			max_passengers, available_seats, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		ride.ID,
		ride.DriverID,
		ride.Origin,
		ride.Destination,
		ride.DepartureTime,
		ride.Fare,
		ride.Currency,
		ride.MaxPassengers,
		ride.AvailableSeats,
		string(ride.Status),
	)
	if err != nil {
		return fmt.Errorf("insert ride: %w", err)
	}
	return nil
}

func (r RideRepo) GetByID(ctx context.Context, q intdb.Querier, id string) (models.Ride, error) {
	return r.get(ctx, q, id, false)
}

// GetForUpdate reads the ride and holds its row lock until q's transaction ends.
func (r RideRepo) GetForUpdate(ctx context.Context, q intdb.Querier, id string) (models.Ride, error) {
	return r.get(ctx, q, id, true)
}

func (r RideRepo) get(ctx context.Context, q intdb.Querier, id string, lock bool) (models.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = ? LIMIT 1`
	if lock {
		query += ` FOR UPDATE`
	}
	ride, err := scanRide(r.q(q).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ride{}, domain.NotFoundError{Resource: "ride", ID: id, Err: err}
		}
		return models.Ride{}, fmt.Errorf("get ride: %w", err)
	}
	return ride, nil
}

// AdjustSeats adds delta (negative to reserve) to available_seats.
func (r RideRepo) AdjustSeats(ctx context.Context, q intdb.Querier, id string, delta int) error {
	res, err := r.q(q).ExecContext(ctx,
		`UPDATE rides SET available_seats = available_seats + ?, updated_at = NOW() WHERE id = ?`,
		delta, id)
	if err != nil {
		return fmt.Errorf("adjust ride seats: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "ride", ID: id}
	}
	return nil
}

func (r RideRepo) Search(ctx context.Context, q intdb.Querier, f models.RideQuery) ([]models.Ride, error) {
	where := []string{"status = ?"}
	args := []any{string(models.RideScheduled)}

	if s := strings.TrimSpace(f.Origin); s != "" {
		where = append(where, "origin = ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.Destination); s != "" {
		where = append(where, "destination = ?")
		args = append(args, s)
	}
	if !f.Date.IsZero() {
		where = append(where, "departure_time >= ? AND departure_time < ?")
		args = append(args, f.Date, f.Date.AddDate(0, 0, 1))
	}
	if f.MinSeats > 0 {
		where = append(where, "available_seats >= ?")
		args = append(args, f.MinSeats)
	}
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)

	query := `SELECT ` + rideColumns + ` FROM rides WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY departure_time ASC LIMIT ?`
	return r.list(ctx, q, query, args...)
}

func (r RideRepo) ListByDriver(ctx context.Context, q intdb.Querier, driverID string) ([]models.Ride, error) {
	return r.list(ctx, q,
		`SELECT `+rideColumns+` FROM rides WHERE driver_id = ? ORDER BY departure_time DESC`,
		driverID)
}

func (r RideRepo) list(ctx context.Context, q intdb.Querier, query string, args ...any) ([]models.Ride, error) {
	rows, err := r.q(q).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rides: %w", err)
	}
	defer rows.Close()

	out := []models.Ride{}
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return out, fmt.Errorf("scan ride: %w", err)
		}
		out = append(out, ride)
	}
	return out, rows.Err()
}
