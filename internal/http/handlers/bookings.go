package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
	"github.com/devteam-creator/hushryd-app-sub001/internal/http/middleware"
	"github.com/devteam-creator/hushryd-app-sub001/internal/services"
	"github.com/devteam-creator/hushryd-app-sub001/internal/utils"
)

type createBookingRequest struct {
	RideID          string   `json:"rideId" binding:"required"`
	UserID          string   `json:"userId"`
	PassengerCount  int      `json:"passengerCount"`
	TotalPrice      *float64 `json:"totalPrice"`
	Currency        string   `json:"currency"`
	PaymentMethod   string   `json:"paymentMethod"`
	SpecialRequests string   `json:"specialRequests"`
}

type updateBookingRequest struct {
	PassengerCount  *int                  `json:"passengerCount"`
	TotalPrice      *float64              `json:"totalPrice"`
	Currency        *string               `json:"currency"`
	Status          *models.BookingStatus `json:"status"`
	PaymentStatus   *models.PaymentStatus `json:"paymentStatus"`
	PaymentMethod   *string               `json:"paymentMethod"`
	SpecialRequests *string               `json:"specialRequests"`
}

// adminOnlyFields lists the fields in req that move money, seats or the
// booking lifecycle. Owners may only edit paymentMethod and specialRequests.
func (req updateBookingRequest) adminOnlyFields() []string {
	var out []string
	if req.PassengerCount != nil {
		out = append(out, "passengerCount")
	}
	if req.TotalPrice != nil {
		out = append(out, "totalPrice")
	}
	if req.Currency != nil {
		out = append(out, "currency")
	}
	if req.Status != nil {
		out = append(out, "status")
	}
	if req.PaymentStatus != nil {
		out = append(out, "paymentStatus")
	}
	return out
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Events:    deps().Events,
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/bookings
// Without totalPrice the ride fare times passengerCount is charged.
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	rc := middleware.Caller(c)
	userID := rc.UserID
	if rc.IsAdmin() && strings.TrimSpace(req.UserID) != "" {
		userID = req.UserID
	}

	in := models.NewBooking{
		RideID:          req.RideID,
		UserID:          userID,
		PassengerCount:  req.PassengerCount,
		Currency:        req.Currency,
		PaymentMethod:   req.PaymentMethod,
		SpecialRequests: req.SpecialRequests,
	}
	if req.TotalPrice != nil {
		in.TotalPrice = *req.TotalPrice
	} else if strings.TrimSpace(req.RideID) != "" && req.PassengerCount > 0 {
		ride, err := rideService(c).Get(c.Request.Context(), req.RideID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		in.TotalPrice = utils.ComputeFare(ride.Fare, req.PassengerCount, 0)
		if in.Currency == "" {
			in.Currency = ride.Currency
		}
	}

	booking, err := bookingService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings
func ListMyBookings(c *gin.Context) {
	list, err := bookingService(c).ListForUser(c.Request.Context(), middleware.Caller(c).UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

func GetBooking(c *gin.Context) {
	b, err := bookingService(c).Authorize(c.Request.Context(), middleware.Caller(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PATCH /api/bookings/:id
// Non-admin owners may change paymentMethod and specialRequests only.
func UpdateBooking(c *gin.Context) {
	svc := bookingService(c)
	rc := middleware.Caller(c)
	if _, err := svc.Authorize(c.Request.Context(), rc, c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	var req updateBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if fields := req.adminOnlyFields(); len(fields) > 0 && !rc.IsAdmin() {
		RespondDomainError(c, domain.ForbiddenError{Msg: "only an admin may change " + strings.Join(fields, ", ")})
		return
	}
	b, err := svc.Update(c.Request.Context(), c.Param("id"), models.BookingUpdate{
		PassengerCount:  req.PassengerCount,
		TotalPrice:      req.TotalPrice,
		Currency:        req.Currency,
		Status:          req.Status,
		PaymentStatus:   req.PaymentStatus,
		PaymentMethod:   req.PaymentMethod,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	svc := bookingService(c)
	if _, err := svc.Authorize(c.Request.Context(), middleware.Caller(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	b, err := svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/bookings/:id
func DeleteBooking(c *gin.Context) {
	svc := bookingService(c)
	if _, err := svc.Authorize(c.Request.Context(), middleware.Caller(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted", "id": c.Param("id")})
}
