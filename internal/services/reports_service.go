package services

import (
	"context"
	"strings"
	"time"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/repositories"
	"github.com/devteam-creator/hushryd-app-sub001/internal/utils"
)

type SalesReportFilter struct {
	DriverID string
	From     string
	To       string
}

type SalesReport struct {
	From     string                   `json:"from,omitempty"`
	To       string                   `json:"to,omitempty"`
	Rides    []repositories.RideSales `json:"rides"`
	Seats    int                      `json:"seatsSold"`
	Revenue  float64                  `json:"revenue"`
	Bookings int                      `json:"bookings"`
}

type ReportsService struct {
	ReportRepo repositories.ReportRepo
}

// RideSales reports seats sold and revenue per ride departing in [From, To],
// both inclusive YYYY-MM-DD dates. Drivers only ever see their own rides.
func (s ReportsService) RideSales(ctx context.Context, rc domain.RequestContext, f SalesReportFilter) (SalesReport, error) {
	filter := repositories.RideSalesFilter{DriverID: strings.TrimSpace(f.DriverID)}
	if !rc.IsAdmin() {
		filter.DriverID = rc.UserID
	}
	if f.From != "" {
		from, err := utils.ParseDate(f.From)
		if err != nil {
			return SalesReport{}, domain.ValidationError{Field: "from", Msg: "must be YYYY-MM-DD"}
		}
		filter.From = from
	}
	if f.To != "" {
		to, err := utils.ParseDate(f.To)
		if err != nil {
			return SalesReport{}, domain.ValidationError{Field: "to", Msg: "must be YYYY-MM-DD"}
		}
		filter.To = to.Add(24 * time.Hour)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && !filter.From.Before(filter.To) {
		return SalesReport{}, domain.ValidationError{Field: "to", Msg: "must not be before from"}
	}

	rides, err := s.ReportRepo.RideSales(ctx, filter)
	if err != nil {
		return SalesReport{}, err
	}
	report := SalesReport{From: f.From, To: f.To, Rides: rides}
	for _, r := range rides {
		report.Seats += r.SeatsSold
		report.Revenue += r.Revenue
		report.Bookings += r.Bookings
	}
	report.Revenue = utils.RoundMoney(report.Revenue)
	return report, nil
}
