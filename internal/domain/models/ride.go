package models

import (
	"fmt"
	"time"
)

type RideStatus string

const (
	RideScheduled  RideStatus = "scheduled"
	RideInProgress RideStatus = "in_progress"
	RideCompleted  RideStatus = "completed"
	RideCancelled  RideStatus = "cancelled"
)

// Ride is a published trip with a fixed seat capacity.
type Ride struct {
	ID             string     `json:"id"`
	DriverID       string     `json:"driverId"`
	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	DepartureTime  time.Time  `json:"departureTime"`
	Fare           float64    `json:"fare"`
	Currency       string     `json:"currency"`
	MaxPassengers  int        `json:"maxPassengers"`
	AvailableSeats int        `json:"availableSeats"`
	Status         RideStatus `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CanReserve reports whether n more passengers fit on the ride.
func (r Ride) CanReserve(n int) bool {
	return n > 0 && r.AvailableSeats >= n
}

// Reserve takes n seats. It never lets AvailableSeats go negative.
func (r *Ride) Reserve(n int) error {
	if n <= 0 {
		return fmt.Errorf("reserve: passenger count must be positive, got %d", n)
	}
	if r.AvailableSeats < n {
		return fmt.Errorf("reserve: %d seats requested, %d available", n, r.AvailableSeats)
	}
	r.AvailableSeats -= n
	return nil
}

// Release returns n seats. It does not clamp at MaxPassengers: callers that
// release twice for one booking will push the count above capacity.
func (r *Ride) Release(n int) {
	if n <= 0 {
		return
	}
	r.AvailableSeats += n
}

// Consistent reports whether 0 <= AvailableSeats <= MaxPassengers.
func (r Ride) Consistent() bool {
	return r.AvailableSeats >= 0 && r.AvailableSeats <= r.MaxPassengers
}

// NewRide carries the inputs of a ride publication.
type NewRide struct {
	DriverID      string
	Origin        string
	Destination   string
	DepartureTime time.Time
	Fare          float64
	Currency      string
	MaxPassengers int
}

// RideQuery filters ride search.
type RideQuery struct {
	Origin      string
	Destination string
	Date        time.Time
	MinSeats    int
	Limit       int
}
