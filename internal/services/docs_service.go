package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	intconfig "github.com/devteam-creator/hushryd-app-sub001/internal/config"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
	"github.com/devteam-creator/hushryd-app-sub001/internal/repositories"
	"github.com/devteam-creator/hushryd-app-sub001/internal/utils"
)

// DocsService renders booking documents as PDF.
type DocsService struct {
	DB          *sql.DB
	RideRepo    repositories.RideRepo
	BookingRepo repositories.BookingRepo
	RequestID   string
	Loader      func(ctx context.Context, bookingID string) (bookingDocData, error)
	Now         func() time.Time
}

type bookingDocData struct {
	Booking models.Booking
	Ride    models.Ride
}

func (s DocsService) GenerateETicket(ctx context.Context, bookingID string) ([]byte, string, error) {
	data, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "booking_id="+bookingID)
	return buildETicketPDF(data)
}

func (s DocsService) GenerateInvoice(ctx context.Context, bookingID string) ([]byte, string, error) {
	data, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", "booking_id="+bookingID)
	return buildInvoicePDF(data, s.now())
}

func (s DocsService) load(ctx context.Context, bookingID string) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}
	b, err := s.bookings().GetByID(ctx, nil, bookingID)
	if err != nil {
		return bookingDocData{}, err
	}
	ride, err := s.rides().GetByID(ctx, nil, b.RideID)
	if err != nil {
		return bookingDocData{}, err
	}
	return bookingDocData{Booking: b, Ride: ride}, nil
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) rides() repositories.RideRepo {
	if s.RideRepo.DB != nil {
		return s.RideRepo
	}
	return repositories.RideRepo{DB: s.db()}
}

func (s DocsService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func buildETicketPDF(d bookingDocData) ([]byte, string, error) {
	b, r := d.Booking, d.Ride

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "HUSHRYD E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking      : %s", b.ID),
		fmt.Sprintf("Status       : %s", b.Status),
		fmt.Sprintf("Route        : %s -> %s", safe(r.Origin, "-"), safe(r.Destination, "-")),
		fmt.Sprintf("Departure    : %s UTC", utils.FormatDateTime(r.DepartureTime)),
		fmt.Sprintf("Passengers   : %d", b.PassengerCount),
		fmt.Sprintf("Total        : %s", utils.FormatMoney(b.TotalPrice, b.Currency)),
		fmt.Sprintf("Payment      : %s %s", b.PaymentStatus, safe(b.PaymentMethod, "")),
		fmt.Sprintf("Ride         : %s", r.ID),
	}
	if req := strings.TrimSpace(b.SpecialRequests); req != "" {
		lines = append(lines, "Requests     : "+req)
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	note := fmt.Sprintf("Valid for %d passenger(s). Show this ticket to the driver at pickup.", b.PassengerCount)
	if b.Status == models.BookingCancelled {
		note = "This booking was cancelled and is no longer valid for travel."
	}
	pdf.MultiCell(0, 6, note, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", utils.SafeFilenamePart(b.ID), utils.SafeFilenamePart(r.Origin+"_"+r.Destination))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d bookingDocData, issued time.Time) ([]byte, string, error) {
	b, r := d.Booking, d.Ride

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := "INV-" + utils.SafeFilenamePart(b.ID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+utils.FormatDateTime(issued))
	pdf.Ln(10)

	desc := fmt.Sprintf("Ride %s -> %s on %s, %d seat(s)",
		safe(r.Origin, "-"), safe(r.Destination, "-"), utils.FormatDateTime(r.DepartureTime), b.PassengerCount)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)
	if b.PassengerCount > 0 {
		pdf.Cell(0, 6, "Per seat: "+utils.FormatMoney(utils.RoundMoney(b.TotalPrice/float64(b.PassengerCount)), b.Currency))
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(b.TotalPrice, b.Currency))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Payment status: "+string(b.PaymentStatus))
	pdf.Ln(12)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), invNo + ".pdf", nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
