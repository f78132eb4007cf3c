package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
)

func TestConfirmPaymentConfirmsPendingBooking(t *testing.T) {
	svc, mock, _ := newMockService(t)

	mock.ExpectQuery(getBookingSQL).WithArgs("b1").WillReturnRows(bookingRows("b1", "r1", 2, 500, "pending"))
	mock.ExpectBegin()
	mock.ExpectQuery(lockBookingSQL).WithArgs("b1").WillReturnRows(bookingRows("b1", "r1", 2, 500, "pending"))
	mock.ExpectExec(`UPDATE bookings SET status = \?, payment_status = \?, payment_method = \?, updated_at = NOW\(\) WHERE id = \?`).
		WithArgs("confirmed", "paid", "upi", "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(getBookingSQL).WithArgs("b1").WillReturnRows(bookingRows("b1", "r1", 2, 500, "confirmed"))

	b, err := PaymentService{Bookings: svc}.ConfirmPayment(context.Background(), "b1", " UPI ")
	if err != nil {
		t.Fatalf("ConfirmPayment returned error: %v", err)
	}
	if b.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", b.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmPaymentRejectsCancelled(t *testing.T) {
	svc, mock, _ := newMockService(t)
	mock.ExpectQuery(getBookingSQL).WithArgs("b1").WillReturnRows(bookingRows("b1", "r1", 2, 500, "cancelled"))

	if _, err := (PaymentService{Bookings: svc}).ConfirmPayment(context.Background(), "b1", "cash"); !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestConfirmPaymentRequiresMethod(t *testing.T) {
	svc, _, _ := newMockService(t)
	if _, err := (PaymentService{Bookings: svc}).ConfirmPayment(context.Background(), "b1", " "); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
