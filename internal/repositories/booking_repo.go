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

const bookingColumns = `id, ride_id, user_id, passenger_count, total_price, currency, status,
	payment_status, COALESCE(payment_method, ''), COALESCE(special_requests, ''), created_at, updated_at`

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) q(q intdb.Querier) intdb.Querier {
	if q != nil {
		return q
	}
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var status, payStatus string
	err := row.Scan(
		&b.ID,
		&b.RideID,
		&b.UserID,
		&b.PassengerCount,
		&b.TotalPrice,
		&b.Currency,
		&status,
		&payStatus,
		&b.PaymentMethod,
		&b.SpecialRequests,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	b.Status = models.BookingStatus(status)
	b.PaymentStatus = models.PaymentStatus(payStatus)
	return b, err
}

func (r BookingRepo) Insert(ctx context.Context, q intdb.Querier, b models.Booking) error {
	_, err := r.q(q).ExecContext(ctx, `
		INSERT INTO bookings (id, ride_id, user_id, passenger_count, total_price, currency,
			status, payment_status, payment_method, special_requests, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		b.ID,
		b.RideID,
		b.UserID,
		b.PassengerCount,
		b.TotalPrice,
		b.Currency,
		string(b.Status),
		string(b.PaymentStatus),
		intdb.NullIfEmpty(b.PaymentMethod),
		intdb.NullIfEmpty(b.SpecialRequests),
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r BookingRepo) GetByID(ctx context.Context, q intdb.Querier, id string) (models.Booking, error) {
	return r.get(ctx, q, id, false)
}

// GetForUpdate reads the booking and holds its row lock until q's transaction ends.
func (r BookingRepo) GetForUpdate(ctx context.Context, q intdb.Querier, id string) (models.Booking, error) {
	return r.get(ctx, q, id, true)
}

func (r BookingRepo) get(ctx context.Context, q intdb.Querier, id string, lock bool) (models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? LIMIT 1`
	if lock {
		query += ` FOR UPDATE`
	}
	b, err := scanBooking(r.q(q).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: id, Err: err}
		}
		return models.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// Update applies the allow-listed fields present in upd. It reports false
// when upd carries none of them.
func (r BookingRepo) Update(ctx context.Context, q intdb.Querier, id string, upd models.BookingUpdate) (bool, error) {
	sets := []string{}
	args := []any{}

	if upd.PassengerCount != nil {
		sets = append(sets, "passenger_count = ?")
		args = append(args, *upd.PassengerCount)
	}
	if upd.TotalPrice != nil {
		sets = append(sets, "total_price = ?")
		args = append(args, *upd.TotalPrice)
	}
	if upd.Currency != nil {
		sets = append(sets, "currency = ?")
		args = append(args, strings.TrimSpace(*upd.Currency))
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*upd.Status))
	}
	if upd.PaymentStatus != nil {
		sets = append(sets, "payment_status = ?")
		args = append(args, string(*upd.PaymentStatus))
	}
	if upd.PaymentMethod != nil {
		sets = append(sets, "payment_method = ?")
		args = append(args, intdb.NullIfEmpty(strings.TrimSpace(*upd.PaymentMethod)))
	}
	if upd.SpecialRequests != nil {
		sets = append(sets, "special_requests = ?")
		args = append(args, intdb.NullIfEmpty(strings.TrimSpace(*upd.SpecialRequests)))
	}
	if len(sets) == 0 {
		return false, nil
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	if _, err := r.q(q).ExecContext(ctx, `UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return true, fmt.Errorf("update booking: %w", err)
	}
	return true, nil
}

func (r BookingRepo) SetStatus(ctx context.Context, q intdb.Querier, id string, status models.BookingStatus) error {
	if _, err := r.q(q).ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?`,
		string(status), id); err != nil {
		return fmt.Errorf("set booking status: %w", err)
	}
	return nil
}

func (r BookingRepo) Delete(ctx context.Context, q intdb.Querier, id string) error {
	res, err := r.q(q).ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "booking", ID: id}
	}
	return nil
}

func (r BookingRepo) ListByUser(ctx context.Context, q intdb.Querier, userID string) ([]models.Booking, error) {
	return r.list(ctx, q, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r BookingRepo) ListByRide(ctx context.Context, q intdb.Querier, rideID string) ([]models.Booking, error) {
	return r.list(ctx, q, `SELECT `+bookingColumns+` FROM bookings WHERE ride_id = ? ORDER BY created_at ASC`, rideID)
}

// ReservedSeats sums passenger_count of the ride's non-cancelled bookings.
func (r BookingRepo) ReservedSeats(ctx context.Context, q intdb.Querier, rideID string) (int, error) {
	var total int
	err := r.q(q).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(passenger_count), 0) FROM bookings WHERE ride_id = ? AND status <> ?`,
		rideID, string(models.BookingCancelled)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum reserved seats: %w", err)
	}
	return total, nil
}

func (r BookingRepo) list(ctx context.Context, q intdb.Querier, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.q(q).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
