package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
)

func newMockRideService(t *testing.T) (RideService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return RideService{
		DB:    db,
		NewID: func() string { return "r1" },
		Now:   func() time.Time { return now },
	}, mock
}

func TestPublishStartsWithAllSeatsAvailable(t *testing.T) {
	svc, mock := newMockRideService(t)
	departure := time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO rides`).
		WithArgs("r1", "d1", "Hyderabad", "Vijayawada", departure, 250.0, "INR", 4, 4, "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM rides WHERE id = \? LIMIT 1$`).WithArgs("r1").
		WillReturnRows(rideRows("r1", 4, 4))

	ride, err := svc.Publish(context.Background(), models.NewRide{
		DriverID:      "d1",
		Origin:        "  Hyderabad ",
		Destination:   "Vijayawada",
		DepartureTime: departure,
		Fare:          250,
		MaxPassengers: 4,
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if ride.AvailableSeats != ride.MaxPassengers || ride.Status != models.RideScheduled {
		t.Fatalf("unexpected ride %+v", ride)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPublishValidation(t *testing.T) {
	svc, mock := newMockRideService(t)
	future := time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC)
	past := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	cases := map[string]models.NewRide{
		"no seats":     {DriverID: "d1", Origin: "A", Destination: "B", DepartureTime: future, MaxPassengers: 0},
		"same route":   {DriverID: "d1", Origin: "A", Destination: "a", DepartureTime: future, MaxPassengers: 2},
		"past":         {DriverID: "d1", Origin: "A", Destination: "B", DepartureTime: past, MaxPassengers: 2},
		"no driver":    {Origin: "A", Destination: "B", DepartureTime: future, MaxPassengers: 2},
		"bad fare":     {DriverID: "d1", Origin: "A", Destination: "B", DepartureTime: future, MaxPassengers: 2, Fare: -5},
		"no departure": {DriverID: "d1", Origin: "A", Destination: "B", MaxPassengers: 2},
	}
	for name, in := range cases {
		if _, err := svc.Publish(context.Background(), in); !domain.IsValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", name, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must not reach the db: %v", err)
	}
}

func TestInventoryConsistency(t *testing.T) {
	tests := []struct {
		name       string
		available  int
		reserved   int
		consistent bool
	}{
		{"balanced", 2, 2, true},
		{"double restored", 6, 0, false},
		{"drift", 1, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newMockRideService(t)
			mock.ExpectQuery(`FROM rides WHERE id = \?`).WithArgs("r1").
				WillReturnRows(rideRows("r1", 4, tt.available))
			mock.ExpectQuery(`SELECT COALESCE\(SUM\(passenger_count\), 0\) FROM bookings`).
				WithArgs("r1", "cancelled").
				WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(tt.reserved))

			inv, err := svc.Inventory(context.Background(), "r1")
			if err != nil {
				t.Fatalf("Inventory returned error: %v", err)
			}
			if inv.Consistent != tt.consistent {
				t.Fatalf("expected consistent=%v, got %+v", tt.consistent, inv)
			}
		})
	}
}

func TestSearchRejectsNegativeSeats(t *testing.T) {
	svc, _ := newMockRideService(t)
	if _, err := svc.Search(context.Background(), models.RideQuery{MinSeats: -1}); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
