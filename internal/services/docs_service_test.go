package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
)

func TestDocsServiceGenerate(t *testing.T) {
	loader := func(_ context.Context, id string) (bookingDocData, error) {
		return bookingDocData{
			Booking: models.Booking{
				ID:             id,
				RideID:         "r1",
				UserID:         "u1",
				PassengerCount: 2,
				TotalPrice:     500,
				Currency:       "INR",
				Status:         models.BookingConfirmed,
				PaymentStatus:  models.PaymentPaid,
				PaymentMethod:  "upi",
			},
			Ride: models.Ride{
				ID:            "r1",
				Origin:        "Hyderabad",
				Destination:   "Vijayawada",
				DepartureTime: time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC),
				MaxPassengers: 4,
			},
		}, nil
	}

	svc := DocsService{Loader: loader, Now: func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) }}

	pdf, filename, err := svc.GenerateETicket(context.Background(), "b1")
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("e-ticket is not a pdf")
	}
	if filename != "ETICKET_b1_Hyderabad_Vijayawada.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}

	invoice, invName, err := svc.GenerateInvoice(context.Background(), "b1")
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(invoice) == 0 || !strings.HasPrefix(invName, "INV-b1") {
		t.Fatalf("GenerateInvoice returned %d bytes, name %q", len(invoice), invName)
	}
}

func TestDocsServiceMissingBooking(t *testing.T) {
	svc := DocsService{Loader: func(_ context.Context, id string) (bookingDocData, error) {
		return bookingDocData{}, domain.NotFoundError{Resource: "booking", ID: id}
	}}
	if _, _, err := svc.GenerateETicket(context.Background(), "nope"); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
