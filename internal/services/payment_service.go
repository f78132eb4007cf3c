package services

import (
	"context"
	"strings"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
	"github.com/devteam-creator/hushryd-app-sub001/internal/utils"
)

// PaymentService records settled payments against bookings. Seats are
// never touched here; a payment only moves payment_status and, for a
// pending booking, confirms it.
type PaymentService struct {
	Bookings  BookingService
	RequestID string
}

// ConfirmPayment marks the booking paid with method. Cancelled bookings
// and bookings already paid are rejected with InvalidStateError.
func (s PaymentService) ConfirmPayment(ctx context.Context, bookingID, method string) (models.Booking, error) {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		return models.Booking{}, domain.ValidationError{Field: "paymentMethod", Msg: "required"}
	}

	b, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	switch {
	case b.Status == models.BookingCancelled:
		return models.Booking{}, domain.InvalidStateError{Resource: "booking", State: string(b.Status), Op: "pay"}
	case b.PaymentStatus == models.PaymentPaid:
		return models.Booking{}, domain.InvalidStateError{Resource: "payment", State: string(b.PaymentStatus), Op: "confirm"}
	}

	paid := models.PaymentPaid
	upd := models.BookingUpdate{PaymentStatus: &paid, PaymentMethod: &method}
	if b.Status == models.BookingPending {
		confirmed := models.BookingConfirmed
		upd.Status = &confirmed
	}

	out, err := s.Bookings.Update(ctx, b.ID, upd)
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "payment", "confirm", "booking_id="+b.ID+" method="+method)
	return out, nil
}
