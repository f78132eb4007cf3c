package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingActive, BookingCancelled, BookingCompleted, BookingNoShow},
	BookingActive:    {BookingCompleted, BookingCancelled, BookingNoShow},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled || s == BookingNoShow
}

// CanTransitionTo reports whether next is reachable from s in the booking lifecycle.
// BookingService.Update does not consult it; any valid status may be written there.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

// Booking is a passenger reservation against a ride.
type Booking struct {
	ID              string        `json:"id"`
	RideID          string        `json:"rideId"`
	UserID          string        `json:"userId"`
	PassengerCount  int           `json:"passengerCount"`
	TotalPrice      float64       `json:"totalPrice"`
	Currency        string        `json:"currency"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// Reserves reports whether b still holds seats on its ride.
func (b Booking) Reserves() bool {
	return b.Status != BookingCancelled
}

// NewBooking carries the inputs of a booking creation.
type NewBooking struct {
	RideID          string
	UserID          string
	PassengerCount  int
	TotalPrice      float64
	Currency        string
	PaymentMethod   string
	PaymentStatus   PaymentStatus
	SpecialRequests string
}

// BookingUpdate supports PATCH-style updates via key presence.
type BookingUpdate struct {
	PassengerCount  *int
	TotalPrice      *float64
	Currency        *string
	Status          *BookingStatus
	PaymentStatus   *PaymentStatus
	PaymentMethod   *string
	SpecialRequests *string
}

func (u BookingUpdate) Empty() bool {
	return u.PassengerCount == nil &&
		u.TotalPrice == nil &&
		u.Currency == nil &&
		u.Status == nil &&
		u.PaymentStatus == nil &&
		u.PaymentMethod == nil &&
		u.SpecialRequests == nil
}
