package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devteam-creator/hushryd-app-sub001/internal/http/middleware"
	"github.com/devteam-creator/hushryd-app-sub001/internal/services"
)

type confirmPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// POST /api/bookings/:id/confirm-payment (admin)
func ConfirmBookingPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.PaymentService{
		Bookings:  bookingService(c),
		RequestID: middleware.GetRequestID(c),
	}
	b, err := svc.ConfirmPayment(c.Request.Context(), c.Param("id"), req.PaymentMethod)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
