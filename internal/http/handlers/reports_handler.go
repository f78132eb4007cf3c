package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devteam-creator/hushryd-app-sub001/internal/http/middleware"
	"github.com/devteam-creator/hushryd-app-sub001/internal/services"
)

// GetRideSalesReport handles GET /api/reports/rides?from=&to=&driverId=.
func GetRideSalesReport(c *gin.Context) {
	report, err := services.ReportsService{}.RideSales(c.Request.Context(), middleware.Caller(c), services.SalesReportFilter{
		DriverID: c.Query("driverId"),
		From:     strings.TrimSpace(c.Query("from")),
		To:       strings.TrimSpace(c.Query("to")),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
