package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devteam-creator/hushryd-app-sub001/internal/http/middleware"
	"github.com/devteam-creator/hushryd-app-sub001/internal/services"
)

// GetBookingETicketPDF returns the booking's e-ticket (inline).
func GetBookingETicketPDF(c *gin.Context) {
	servePDF(c, func(svc services.DocsService) ([]byte, string, error) {
		return svc.GenerateETicket(c.Request.Context(), c.Param("id"))
	})
}

// GetBookingInvoicePDF returns the booking's invoice (inline).
func GetBookingInvoicePDF(c *gin.Context) {
	servePDF(c, func(svc services.DocsService) ([]byte, string, error) {
		return svc.GenerateInvoice(c.Request.Context(), c.Param("id"))
	})
}

func servePDF(c *gin.Context, render func(services.DocsService) ([]byte, string, error)) {
	if _, err := bookingService(c).Authorize(c.Request.Context(), middleware.Caller(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	pdfBytes, filename, err := render(services.DocsService{RequestID: middleware.GetRequestID(c)})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
