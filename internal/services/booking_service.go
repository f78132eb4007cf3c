package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	intconfig "github.com/devteam-creator/hushryd-app-sub001/internal/config"
	intdb "github.com/devteam-creator/hushryd-app-sub001/internal/db"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
	"github.com/devteam-creator/hushryd-app-sub001/internal/events"
	"github.com/devteam-creator/hushryd-app-sub001/internal/metrics"
	"github.com/devteam-creator/hushryd-app-sub001/internal/repositories"
	"github.com/devteam-creator/hushryd-app-sub001/internal/utils"
)

// BookingService owns every write to rides.available_seats. Seats are taken
// only by Create and given back only by Cancel and Delete, each inside one
// transaction that holds the row lock of the ride or booking it reads.
type BookingService struct {
	DB          *sql.DB
	RideRepo    repositories.RideRepo
	BookingRepo repositories.BookingRepo
	Events      events.Publisher
	NewID       func() string
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) rides() repositories.RideRepo {
	if s.RideRepo.DB != nil {
		return s.RideRepo
	}
	return repositories.RideRepo{DB: s.db()}
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Create reserves in.PassengerCount seats on the ride and records the booking.
func (s BookingService) Create(ctx context.Context, in models.NewBooking) (models.Booking, error) {
	in.RideID = strings.TrimSpace(in.RideID)
	in.UserID = strings.TrimSpace(in.UserID)
	if err := validateNewBooking(in); err != nil {
		return models.Booking{}, err
	}

	payStatus := in.PaymentStatus
	if payStatus == "" {
		payStatus = models.PaymentPending
	}
	booking := models.Booking{
		ID:              s.newID(),
		RideID:          in.RideID,
		UserID:          in.UserID,
		PassengerCount:  in.PassengerCount,
		TotalPrice:      utils.RoundMoney(in.TotalPrice),
		Currency:        utils.NormalizeCurrency(in.Currency),
		Status:          models.BookingPending,
		PaymentStatus:   payStatus,
		PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
	}

	err := intdb.WithTx(ctx, s.db(), func(q intdb.Querier) error {
		ride, err := s.rides().GetForUpdate(ctx, q, booking.RideID)
		if err != nil {
			return err
		}
		if !ride.CanReserve(booking.PassengerCount) {
			return domain.InsufficientCapacityError{
				RideID:    ride.ID,
				Requested: booking.PassengerCount,
				Available: ride.AvailableSeats,
			}
		}
		if err := s.bookings().Insert(ctx, q, booking); err != nil {
			return err
		}
		return s.rides().AdjustSeats(ctx, q, ride.ID, -booking.PassengerCount)
	})
	if err != nil {
		if domain.IsInsufficientCapacity(err) {
			metrics.CapacityRejections.Inc()
		}
		return models.Booking{}, s.txError("create", err)
	}

	metrics.BookingsCreated.Inc()
	metrics.SeatsReserved.Add(float64(booking.PassengerCount))
	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%s ride_id=%s seats=%d", booking.ID, booking.RideID, booking.PassengerCount))

	created, err := s.bookings().GetByID(ctx, nil, booking.ID)
	if err != nil {
		return models.Booking{}, err
	}
	s.publish(ctx, events.BookingCreated, created)
	return created, nil
}

// Cancel marks the booking cancelled and gives its seats back to the ride.
// A booking that is already cancelled is rejected with InvalidStateError.
func (s BookingService) Cancel(ctx context.Context, bookingID string) (models.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "required"}
	}

	var seats int
	err := intdb.WithTx(ctx, s.db(), func(q intdb.Querier) error {
		b, err := s.bookings().GetForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if b.Status == models.BookingCancelled {
			return domain.InvalidStateError{Resource: "booking", State: string(b.Status), Op: "cancel"}
		}
		if err := s.bookings().SetStatus(ctx, q, b.ID, models.BookingCancelled); err != nil {
			return err
		}
		seats = b.PassengerCount
		return s.rides().AdjustSeats(ctx, q, b.RideID, b.PassengerCount)
	})
	if err != nil {
		return models.Booking{}, s.txError("cancel", err)
	}

	metrics.BookingsCancelled.Inc()
	metrics.SeatsReleased.Add(float64(seats))
	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%s seats=%d", bookingID, seats))

	cancelled, err := s.bookings().GetByID(ctx, nil, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	s.publish(ctx, events.BookingCancelled, cancelled)
	return cancelled, nil
}

// Delete gives the booking's seats back and removes the row. Seats are
// restored even when the booking was already cancelled.
func (s BookingService) Delete(ctx context.Context, bookingID string) error {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return domain.ValidationError{Field: "booking_id", Msg: "required"}
	}

	var deleted models.Booking
	err := intdb.WithTx(ctx, s.db(), func(q intdb.Querier) error {
		b, err := s.bookings().GetForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if b.Status == models.BookingCancelled {
			utils.LogWarn(s.RequestID, "booking", "delete",
				fmt.Sprintf("booking_id=%s already cancelled, seats restored a second time", b.ID))
		}
		if err := s.rides().AdjustSeats(ctx, q, b.RideID, b.PassengerCount); err != nil {
			return err
		}
		deleted = b
		return s.bookings().Delete(ctx, q, b.ID)
	})
	if err != nil {
		return s.txError("delete", err)
	}

	metrics.BookingsDeleted.Inc()
	metrics.SeatsReleased.Add(float64(deleted.PassengerCount))
	utils.LogEvent(s.RequestID, "booking", "delete",
		fmt.Sprintf("booking_id=%s seats=%d", deleted.ID, deleted.PassengerCount))
	s.publish(ctx, events.BookingDeleted, deleted)
	return nil
}

// Update writes the allow-listed fields of upd. It never touches the ride's
// seat count, including when PassengerCount changes, and does not check
// status transitions.
func (s BookingService) Update(ctx context.Context, bookingID string, upd models.BookingUpdate) (models.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "required"}
	}
	if upd.Empty() {
		return models.Booking{}, domain.NoFieldsError{Resource: "booking"}
	}
	if err := validateBookingUpdate(&upd); err != nil {
		return models.Booking{}, err
	}

	err := intdb.WithTx(ctx, s.db(), func(q intdb.Querier) error {
		if _, err := s.bookings().GetForUpdate(ctx, q, bookingID); err != nil {
			return err
		}
		touched, err := s.bookings().Update(ctx, q, bookingID, upd)
		if err != nil {
			return err
		}
		if !touched {
			return domain.NoFieldsError{Resource: "booking"}
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, s.txError("update", err)
	}

	updated, err := s.bookings().GetByID(ctx, nil, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "update", "booking_id="+bookingID)
	s.publish(ctx, events.BookingUpdated, updated)
	return updated, nil
}

func (s BookingService) Get(ctx context.Context, bookingID string) (models.Booking, error) {
	return s.bookings().GetByID(ctx, nil, strings.TrimSpace(bookingID))
}

// Authorize loads the booking and checks that rc may act on it.
func (s BookingService) Authorize(ctx context.Context, rc domain.RequestContext, bookingID string) (models.Booking, error) {
	b, err := s.Get(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if !rc.CanAccess(b.UserID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	return b, nil
}

func (s BookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookings().ListByUser(ctx, nil, userID)
}

func (s BookingService) ListForRide(ctx context.Context, rideID string) ([]models.Booking, error) {
	return s.bookings().ListByRide(ctx, nil, rideID)
}

func (s BookingService) publish(ctx context.Context, kind string, b models.Booking) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.NewBookingEvent(kind, b, s.RequestID)); err != nil {
		utils.LogWarn(s.RequestID, "booking", "publish", kind+" publish failed: "+err.Error())
	}
}

// txError passes domain errors through and marks lock conflicts retryable.
func (s BookingService) txError(op string, err error) error {
	if intdb.IsLockConflict(err) {
		utils.LogWarn(s.RequestID, "booking", op, "lock conflict: "+err.Error())
		return domain.ConflictError{Resource: "booking", Msg: "concurrent update, retry the request", Err: err}
	}
	return err
}

func validateNewBooking(in models.NewBooking) error {
	switch {
	case in.RideID == "":
		return domain.ValidationError{Field: "rideId", Msg: "required"}
	case in.UserID == "":
		return domain.ValidationError{Field: "userId", Msg: "required"}
	case in.PassengerCount <= 0:
		return domain.ValidationError{Field: "passengerCount", Msg: "must be greater than 0"}
	case !utils.ValidAmount(in.TotalPrice):
		return domain.ValidationError{Field: "totalPrice", Msg: "must be a non-negative amount"}
	case in.PaymentStatus != "" && !in.PaymentStatus.Valid():
		return domain.ValidationError{Field: "paymentStatus", Msg: "unknown value " + string(in.PaymentStatus)}
	}
	if c := strings.TrimSpace(in.Currency); c != "" && !utils.ValidCurrency(strings.ToUpper(c)) {
		return domain.ValidationError{Field: "currency", Msg: "must be a 3-letter code"}
	}
	return nil
}

func validateBookingUpdate(upd *models.BookingUpdate) error {
	if upd.PassengerCount != nil && *upd.PassengerCount <= 0 {
		return domain.ValidationError{Field: "passengerCount", Msg: "must be greater than 0"}
	}
	if upd.TotalPrice != nil {
		if !utils.ValidAmount(*upd.TotalPrice) {
			return domain.ValidationError{Field: "totalPrice", Msg: "must be a non-negative amount"}
		}
		rounded := utils.RoundMoney(*upd.TotalPrice)
		upd.TotalPrice = &rounded
	}
	if upd.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*upd.Currency))
		if !utils.ValidCurrency(c) {
			return domain.ValidationError{Field: "currency", Msg: "must be a 3-letter code"}
		}
		upd.Currency = &c
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "unknown value " + string(*upd.Status)}
	}
	if upd.PaymentStatus != nil && !upd.PaymentStatus.Valid() {
		return domain.ValidationError{Field: "paymentStatus", Msg: "unknown value " + string(*upd.PaymentStatus)}
	}
	return nil
}
