package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
	"github.com/devteam-creator/hushryd-app-sub001/internal/http/middleware"
	"github.com/devteam-creator/hushryd-app-sub001/internal/services"
	"github.com/devteam-creator/hushryd-app-sub001/internal/utils"
)

type publishRideRequest struct {
	DriverID      string  `json:"driverId"`
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	DepartureTime string  `json:"departureTime" binding:"required"`
	Fare          float64 `json:"fare"`
	Currency      string  `json:"currency"`
	MaxPassengers int     `json:"maxPassengers"`
}

func rideService(c *gin.Context) services.RideService {
	return services.RideService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/rides?origin=&destination=&date=YYYY-MM-DD&seats=&limit=
func SearchRides(c *gin.Context) {
	q := models.RideQuery{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
	}
	if d := strings.TrimSpace(c.Query("date")); d != "" {
		day, err := utils.ParseDate(d)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", gin.H{"field": "date"})
			return
		}
		q.Date = day
	}
	if s := c.Query("seats"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "seats must be a number", gin.H{"field": "seats"})
			return
		}
		q.MinSeats = n
	}
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, "validation_error", "limit must be a non-negative number", gin.H{"field": "limit"})
			return
		}
		q.Limit = n
	}

	rides, err := rideService(c).Search(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rides": rides})
}

func GetRide(c *gin.Context) {
	ride, err := rideService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ride)
}

// POST /api/rides (driver/admin). Drivers always publish as themselves.
func PublishRide(c *gin.Context) {
	var req publishRideRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	departure, err := utils.ParseDepartureTime(req.DepartureTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error",
			"departureTime must be RFC3339 or YYYY-MM-DD HH:MM", gin.H{"field": "departureTime"})
		return
	}

	rc := middleware.Caller(c)
	driverID := rc.UserID
	if rc.IsAdmin() && strings.TrimSpace(req.DriverID) != "" {
		driverID = req.DriverID
	}

	ride, err := rideService(c).Publish(c.Request.Context(), models.NewRide{
		DriverID:      driverID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: departure,
		Fare:          req.Fare,
		Currency:      req.Currency,
		MaxPassengers: req.MaxPassengers,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ride)
}

// GET /api/rides/mine (driver/admin)
func ListMyRides(c *gin.Context) {
	rides, err := rideService(c).ListByDriver(c.Request.Context(), middleware.Caller(c).UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rides": rides})
}

// ownRide loads the ride and checks that the caller drives it or is an admin.
func ownRide(c *gin.Context) (models.Ride, bool) {
	ride, err := rideService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return models.Ride{}, false
	}
	if !middleware.Caller(c).CanAccess(ride.DriverID) {
		RespondDomainError(c, domain.ForbiddenError{Msg: "ride belongs to another driver"})
		return models.Ride{}, false
	}
	return ride, true
}

// GET /api/rides/:id/bookings (driver of the ride or admin)
func ListRideBookings(c *gin.Context) {
	ride, ok := ownRide(c)
	if !ok {
		return
	}
	list, err := bookingService(c).ListForRide(c.Request.Context(), ride.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// GET /api/rides/:id/inventory (driver of the ride or admin)
func RideInventory(c *gin.Context) {
	ride, ok := ownRide(c)
	if !ok {
		return
	}
	inv, err := rideService(c).Inventory(c.Request.Context(), ride.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}
