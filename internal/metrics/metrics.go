package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hushryd_bookings_created_total",
		Help: "Bookings committed by the inventory manager",
	})
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hushryd_bookings_cancelled_total",
		Help: "Bookings cancelled with seats restored",
	})
	BookingsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hushryd_bookings_deleted_total",
		Help: "Bookings deleted with seats restored",
	})
	CapacityRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hushryd_booking_capacity_rejections_total",
		Help: "Create attempts rejected for insufficient seats",
	})
	SeatsReserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hushryd_seats_reserved_total",
		Help: "Seats taken by committed bookings",
	})
	SeatsReleased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hushryd_seats_released_total",
		Help: "Seats returned by cancel and delete",
	})
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hushryd_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
)
