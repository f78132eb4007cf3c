package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/devteam-creator/hushryd-app-sub001/internal/auth"
	"github.com/devteam-creator/hushryd-app-sub001/internal/cache"
	intconfig "github.com/devteam-creator/hushryd-app-sub001/internal/config"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/events"
	h "github.com/devteam-creator/hushryd-app-sub001/internal/http/handlers"
	"github.com/devteam-creator/hushryd-app-sub001/internal/http/middleware"
)

// Options carries the optional collaborators wired in main. A nil
// Idempotency store disables Idempotency-Key handling.
type Options struct {
	Events      events.Publisher
	Idempotency cache.IdempotencyStore
}

func NewRouter(env intconfig.Env, opts Options) *gin.Engine {
	tokens := auth.NewIssuer(env.JWTSecret, env.JWTTTL)
	h.SetDeps(h.Deps{Events: opts.Events, Tokens: tokens})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := middleware.AuthRequired(tokens)
	staff := middleware.RequireRoles(domain.RoleDriver, domain.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)

		api.GET("/users/me", authed, h.GetMe)

		// Rides
		rides := api.Group("/rides")
		rides.GET("", h.SearchRides)
		rides.GET("/mine", authed, staff, h.ListMyRides)
		rides.GET("/:id", h.GetRide)
		rides.POST("", authed, staff, h.PublishRide)
		rides.GET("/:id/bookings", authed, staff, h.ListRideBookings)
		rides.GET("/:id/inventory", authed, staff, h.RideInventory)

		// Bookings
		bookings := api.Group("/bookings", authed)
		bookings.POST("", middleware.Idempotency(opts.Idempotency), h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
		bookings.POST("/:id/cancel", middleware.Idempotency(opts.Idempotency), h.CancelBooking)
		bookings.GET("/:id/e-ticket", h.GetBookingETicketPDF)
		bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)
		bookings.POST("/:id/confirm-payment", middleware.RequireRoles(domain.RoleAdmin), h.ConfirmBookingPayment)

		// Reports
		reports := api.Group("/reports", authed, staff)
		reports.GET("/rides", h.GetRideSalesReport)
	}

	h.SetRouter(r)
	return r
}
