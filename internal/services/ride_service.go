package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	intconfig "github.com/devteam-creator/hushryd-app-sub001/internal/config"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
	"github.com/devteam-creator/hushryd-app-sub001/internal/repositories"
	"github.com/devteam-creator/hushryd-app-sub001/internal/utils"
)

type RideService struct {
	DB          *sql.DB
	RideRepo    repositories.RideRepo
	BookingRepo repositories.BookingRepo
	NewID       func() string
	Now         func() time.Time
	RequestID   string
}

// SeatInventory is a snapshot of a ride's seats next to the sum of its
// non-cancelled bookings.
type SeatInventory struct {
	RideID         string `json:"rideId"`
	MaxPassengers  int    `json:"maxPassengers"`
	AvailableSeats int    `json:"availableSeats"`
	ReservedSeats  int    `json:"reservedSeats"`
	Consistent     bool   `json:"consistent"`
}

func (s RideService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RideService) rides() repositories.RideRepo {
	if s.RideRepo.DB != nil {
		return s.RideRepo
	}
	return repositories.RideRepo{DB: s.db()}
}

func (s RideService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s RideService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Publish creates a scheduled ride with every seat available.
func (s RideService) Publish(ctx context.Context, in models.NewRide) (models.Ride, error) {
	in.DriverID = strings.TrimSpace(in.DriverID)
	in.Origin = utils.NormalizeSpace(in.Origin)
	in.Destination = utils.NormalizeSpace(in.Destination)

	switch {
	case in.DriverID == "":
		return models.Ride{}, domain.ValidationError{Field: "driverId", Msg: "required"}
	case in.Origin == "":
		return models.Ride{}, domain.ValidationError{Field: "origin", Msg: "required"}
	case in.Destination == "":
		return models.Ride{}, domain.ValidationError{Field: "destination", Msg: "required"}
	case strings.EqualFold(in.Origin, in.Destination):
		return models.Ride{}, domain.ValidationError{Field: "destination", Msg: "must differ from origin"}
	case in.MaxPassengers <= 0:
		return models.Ride{}, domain.ValidationError{Field: "maxPassengers", Msg: "must be greater than 0"}
	case !utils.ValidAmount(in.Fare):
		return models.Ride{}, domain.ValidationError{Field: "fare", Msg: "must be a non-negative amount"}
	case in.DepartureTime.IsZero():
		return models.Ride{}, domain.ValidationError{Field: "departureTime", Msg: "required"}
	case in.DepartureTime.Before(s.now()):
		return models.Ride{}, domain.ValidationError{Field: "departureTime", Msg: "must be in the future"}
	}
	currency := utils.NormalizeCurrency(in.Currency)
	if !utils.ValidCurrency(currency) {
		return models.Ride{}, domain.ValidationError{Field: "currency", Msg: "must be a 3-letter code"}
	}

	id := uuid.NewString()
	if s.NewID != nil {
		id = s.NewID()
	}
	ride := models.Ride{
		ID:             id,
		DriverID:       in.DriverID,
		Origin:         in.Origin,
		Destination:    in.Destination,
		DepartureTime:  in.DepartureTime.UTC(),
		Fare:           utils.RoundMoney(in.Fare),
		Currency:       currency,
		MaxPassengers:  in.MaxPassengers,
		AvailableSeats: in.MaxPassengers,
		Status:         models.RideScheduled,
	}
	if err := s.rides().Create(ctx, nil, ride); err != nil {
		return models.Ride{}, err
	}
	utils.LogEvent(s.RequestID, "ride", "publish",
		fmt.Sprintf("ride_id=%s driver_id=%s seats=%d", ride.ID, ride.DriverID, ride.MaxPassengers))

	return s.rides().GetByID(ctx, nil, ride.ID)
}

func (s RideService) Get(ctx context.Context, id string) (models.Ride, error) {
	return s.rides().GetByID(ctx, nil, strings.TrimSpace(id))
}

func (s RideService) Search(ctx context.Context, f models.RideQuery) ([]models.Ride, error) {
	f.Origin = utils.NormalizeSpace(f.Origin)
	f.Destination = utils.NormalizeSpace(f.Destination)
	if f.MinSeats < 0 {
		return nil, domain.ValidationError{Field: "seats", Msg: "must not be negative"}
	}
	return s.rides().Search(ctx, nil, f)
}

func (s RideService) ListByDriver(ctx context.Context, driverID string) ([]models.Ride, error) {
	return s.rides().ListByDriver(ctx, nil, strings.TrimSpace(driverID))
}

// Inventory compares the ride's available seats with its live bookings.
// Consistent is false when the two disagree or the count left its bounds.
func (s RideService) Inventory(ctx context.Context, rideID string) (SeatInventory, error) {
	ride, err := s.Get(ctx, rideID)
	if err != nil {
		return SeatInventory{}, err
	}
	reserved, err := s.bookings().ReservedSeats(ctx, nil, ride.ID)
	if err != nil {
		return SeatInventory{}, err
	}
	inv := SeatInventory{
		RideID:         ride.ID,
		MaxPassengers:  ride.MaxPassengers,
		AvailableSeats: ride.AvailableSeats,
		ReservedSeats:  reserved,
		Consistent:     ride.Consistent() && ride.AvailableSeats+reserved == ride.MaxPassengers,
	}
	if !inv.Consistent {
		utils.LogWarn(s.RequestID, "ride", "inventory",
			fmt.Sprintf("ride_id=%s max=%d available=%d reserved=%d", ride.ID, ride.MaxPassengers, ride.AvailableSeats, reserved))
	}
	return inv, nil
}
