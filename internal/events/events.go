package events

import (
	"context"
	"time"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
)

const (
	BookingCreated   = "booking.created"
	BookingUpdated   = "booking.updated"
	BookingCancelled = "booking.cancelled"
	BookingDeleted   = "booking.deleted"
)

// BookingEvent is emitted after a booking transaction commits.
type BookingEvent struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"bookingId"`
	RideID         string    `json:"rideId"`
	UserID         string    `json:"userId"`
	PassengerCount int       `json:"passengerCount"`
	Status         string    `json:"status"`
	RequestID      string    `json:"requestId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func NewBookingEvent(kind string, b models.Booking, requestID string) BookingEvent {
	return BookingEvent{
		Type:           kind,
		BookingID:      b.ID,
		RideID:         b.RideID,
		UserID:         b.UserID,
		PassengerCount: b.PassengerCount,
		Status:         string(b.Status),
		RequestID:      requestID,
		OccurredAt:     time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev BookingEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
